package checkpoint

import "fmt"

var (
	// ErrThreadNotFound is returned when no snapshot exists for the given
	// thread id. Callers treat this as "new conversation", not a failure.
	ErrThreadNotFound = fmt.Errorf("thread not found")
)
