package forwarder

import (
	"errors"
	"fmt"
)

// RequestError is returned when the inbound body cannot be used.
type RequestError struct {
	Reason string
	Err    error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return "invalid request: " + e.Reason + ": " + e.Err.Error()
	}
	return "invalid request: " + e.Reason
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// InferenceError is returned when the inference endpoint answers with a
// non-2xx status.
type InferenceError struct {
	StatusCode int
	Body       string
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference API returned %d: %s", e.StatusCode, e.Body)
}

// ErrEmptyResponse is returned when the inference reply holds no generated text.
var ErrEmptyResponse = errors.New("no text found in inference response")
