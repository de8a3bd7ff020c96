package llm

import (
	"errors"
	"fmt"
)

// ErrSchemaValidation marks an answer that does not match the requested shape.
var ErrSchemaValidation = errors.New("llm: response failed schema validation")

// RequestError is a transport failure or non-2xx response from the LLM API.
type RequestError struct {
	Op         string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("llm %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("llm %s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }
