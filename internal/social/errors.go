package social

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned when a user or profile does not exist upstream.
var ErrNotFound = errors.New("social: not found")

// TransportError is a failed round trip to the social API: either a non-2xx
// response or, with StatusCode 0, no response at all.
type TransportError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 && e.Err != nil {
		return fmt.Sprintf("social api %s %s: %v", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("social api %s %s: status %d", e.Method, e.Path, e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is lets a 404 match ErrNotFound.
func (e *TransportError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}
