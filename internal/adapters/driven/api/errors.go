package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/askdocs-labs/askdoc-cli/internal/core/domain"
)

// ServerError is a non-success response with a structured error body.
type ServerError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Message is the server's error message, if it sent one.
	Message string
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("server error: %s (status %d)", e.Message, e.StatusCode)
}

// errorBody is the structured error shape the backend returns.
type errorBody struct {
	Error string `json:"error"`
}

// wrapTransport marks an error as a transport failure.
func wrapTransport(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, domain.ErrTransport, err)
}

// serverError builds a ServerError from a non-success response,
// consuming what is left of the body.
func serverError(resp *http.Response) error {
	var body errorBody
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(data) > 0 {
		// A malformed body still yields a usable ServerError.
		_ = json.Unmarshal(data, &body)
	}
	return &ServerError{
		StatusCode: resp.StatusCode,
		Message:    body.Error,
	}
}
