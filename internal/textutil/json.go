// Package textutil extracts JSON fragments from free-form model output.
// Reasoning services wrap structured answers in prose, code fences or partial
// markup; these helpers locate the first plausible fragment without assuming
// the surrounding text is well formed.
package textutil

import "regexp"

// flatObjectPattern matches a flat JSON object whose values are all strings,
// the shape reasoning services most commonly emit for record-like data.
var flatObjectPattern = regexp.MustCompile(`\{\s*"[^"]+"\s*:\s*"[^"]*"(?:\s*,\s*"[^"]+"\s*:\s*"[^"]*")*\s*,?\s*\}`)

// FirstJSONObject returns the first balanced brace-delimited substring.
// String literals are honored so braces inside quoted values do not
// terminate the scan. Returns false when no balanced object exists.
func FirstJSONObject(s string) (string, bool) {
	return firstBalanced(s, '{', '}')
}

// FirstJSONArray returns the first balanced bracket-delimited substring.
func FirstJSONArray(s string) (string, bool) {
	return firstBalanced(s, '[', ']')
}

// FlatJSONObjects returns every flat, string-valued JSON object substring in
// order of appearance. Objects with non-string values are not matched; use
// FirstJSONObject for those.
func FlatJSONObjects(s string) []string {
	return flatObjectPattern.FindAllString(s, -1)
}

func firstBalanced(s string, open, close byte) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if start < 0 {
			if c == open {
				start = i
				depth = 1
			}
			continue
		}
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
