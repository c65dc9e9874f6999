package agent

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/hupe1980/tripmesh/internal/textutil"
)

// Offer is one structured flight/travel record extracted from search
// results. Offers live only inside a single planner turn; the validated,
// sorted list is exposed through state metadata and the rendered response.
type Offer struct {
	Airline       string `json:"airline"`
	Price         string `json:"price"`
	PriceUSD      string `json:"price_usd,omitempty"`
	Origin        string `json:"origin,omitempty"`
	Destination   string `json:"destination,omitempty"`
	DepartureDate string `json:"departure_date,omitempty"`
	ReturnDate    string `json:"return_date,omitempty"`
	URL           string `json:"url,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// queryInfo is the small structured record extracted from the user's query.
// Its origin/destination back-fill offers that name neither.
type queryInfo struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	Dates         string `json:"dates"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date"`
}

// Placeholder tokens the extraction instruction forbids but models emit
// anyway. Matching is case-insensitive.
var (
	airlinePlaceholders = map[string]bool{"not specified": true, "unknown": true, "n/a": true, "": true}
	pricePlaceholders   = map[string]bool{"not available": true, "not specified": true, "n/a": true, "": true}
	urlPlaceholders     = map[string]bool{"not available": true, "not specified": true, "n/a": true, "": true}
)

var (
	offerFieldPatterns = map[string]*regexp.Regexp{
		"airline":     regexp.MustCompile(`"airline"\s*:\s*"([^"]+)"`),
		"price":       regexp.MustCompile(`"price"\s*:\s*"([^"]+)"`),
		"origin":      regexp.MustCompile(`"origin"\s*:\s*"([^"]+)"`),
		"destination": regexp.MustCompile(`"destination"\s*:\s*"([^"]+)"`),
		"url":         regexp.MustCompile(`"url"\s*:\s*"([^"]+)"`),
	}
	labelPricePattern = regexp.MustCompile(`([A-Za-z][A-Za-z ]{2,}):\s*([₹$€£]?[0-9][0-9,]*)`)
	priceStripPattern = regexp.MustCompile(`[₹$€£,\s]`)
)

// parseOffers reduces free-form model output to offer records through an
// ordered chain of parse strategies, stopping at the first success:
// a full JSON array, then individual flat JSON objects (with per-field regex
// rescue), then a raw "<label>: <price>" text scan. The chain is intentional
// defense against unreliable generated text, not something to simplify.
func parseOffers(text string) []Offer {
	if arr, ok := textutil.FirstJSONArray(text); ok {
		var items []map[string]any
		if err := json.Unmarshal([]byte(arr), &items); err == nil {
			offers := make([]Offer, 0, len(items))
			for _, item := range items {
				offers = append(offers, offerFromMap(item))
			}
			if len(offers) > 0 {
				return offers
			}
		}
	}

	var offers []Offer
	for _, candidate := range textutil.FlatJSONObjects(text) {
		var item map[string]any
		if err := json.Unmarshal([]byte(candidate), &item); err == nil {
			if _, hasAirline := item["airline"]; hasAirline {
				if _, hasPrice := item["price"]; hasPrice {
					offers = append(offers, offerFromMap(item))
				}
			}
			continue
		}
		if o, ok := offerFromFieldScan(candidate); ok {
			offers = append(offers, o)
		}
	}
	if len(offers) > 0 {
		return offers
	}

	return offersFromText(text)
}

func offerFromMap(item map[string]any) Offer {
	return Offer{
		Airline:       stringField(item, "airline"),
		Price:         stringField(item, "price"),
		PriceUSD:      stringField(item, "price_usd"),
		Origin:        stringField(item, "origin"),
		Destination:   stringField(item, "destination"),
		DepartureDate: stringField(item, "departure_date"),
		ReturnDate:    stringField(item, "return_date"),
		URL:           stringField(item, "url"),
		Notes:         stringField(item, "notes"),
	}
}

func stringField(item map[string]any, key string) string {
	v, ok := item[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// offerFromFieldScan rescues an offer from a JSON-ish fragment that failed
// to parse, pulling fields out one regex at a time. Airline and price are
// required; everything else is best effort.
func offerFromFieldScan(fragment string) (Offer, bool) {
	field := func(name string) string {
		if m := offerFieldPatterns[name].FindStringSubmatch(fragment); m != nil {
			return m[1]
		}
		return ""
	}
	airline, price := field("airline"), field("price")
	if airline == "" || price == "" {
		return Offer{}, false
	}
	return Offer{
		Airline:     airline,
		Price:       price,
		Origin:      field("origin"),
		Destination: field("destination"),
		URL:         field("url"),
	}, true
}

// offersFromText is the last-resort scan over raw text for
// "<label>: <currency><digits>" patterns. Bare amounts get the rupee symbol
// since that is the reference currency of the label/price shorthand.
func offersFromText(text string) []Offer {
	var offers []Offer
	for _, m := range labelPricePattern.FindAllStringSubmatch(text, -1) {
		label := strings.TrimSpace(m[1])
		price := m[2]
		if len(label) <= 2 {
			continue
		}
		if !strings.ContainsAny(price, "₹$€£") {
			price = "₹" + price
		}
		offers = append(offers, Offer{Airline: label, Price: price})
	}
	return offers
}

// validateOffers drops offers whose airline or price is empty or a known
// placeholder, back-fills missing origin/destination from the query-derived
// record and normalizes placeholder URLs to empty. Running it on an
// already-validated list returns the same list unchanged.
func validateOffers(offers []Offer, qi queryInfo) []Offer {
	validated := make([]Offer, 0, len(offers))
	for _, o := range offers {
		if airlinePlaceholders[strings.ToLower(strings.TrimSpace(o.Airline))] {
			continue
		}
		if pricePlaceholders[strings.ToLower(strings.TrimSpace(o.Price))] {
			continue
		}
		if placeholderOrEmpty(o.Origin) {
			o.Origin = orDefault(qi.Origin, "India")
		}
		if placeholderOrEmpty(o.Destination) {
			o.Destination = orDefault(qi.Destination, "Delhi")
		}
		if urlPlaceholders[strings.ToLower(strings.TrimSpace(o.URL))] {
			o.URL = ""
		}
		validated = append(validated, o)
	}
	return validated
}

func placeholderOrEmpty(s string) bool {
	lower := strings.ToLower(strings.TrimSpace(s))
	return lower == "" || lower == "not specified" || lower == "n/a"
}

func orDefault(s, def string) string {
	if s != "" {
		return s
	}
	return def
}

// sortOffersByPrice returns a new slice sorted ascending by numeric price.
// Offers whose price cannot be parsed sort last but are never dropped here;
// the sort is stable so equal/unparseable prices keep their input order.
func sortOffersByPrice(offers []Offer) []Offer {
	sorted := make([]Offer, len(offers))
	copy(sorted, offers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return priceValue(sorted[i].Price) < priceValue(sorted[j].Price)
	})
	return sorted
}

// priceValue strips currency symbols and thousands separators and parses the
// remainder as a float. Unparseable prices map to +Inf.
func priceValue(price string) float64 {
	cleaned := priceStripPattern.ReplaceAllString(price, "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return math.Inf(1)
	}
	return v
}
