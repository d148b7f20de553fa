// Package llm provides the wire representations exchanged with chat clients
// and with the text-generation inference endpoint.
package llm

// ErrorResponse is the envelope returned to the client on any failure.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewErrorResponse builds a failure envelope for err.
func NewErrorResponse(err error) ErrorResponse {
	msg := "internal error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return ErrorResponse{Success: false, Error: msg}
}
