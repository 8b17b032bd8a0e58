package client

import (
	"errors"
	"fmt"
)

// TransportError means the server could not be reached at all: timeout, DNS
// failure, connection refused. These trigger the local fallback.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError means the server was reached and explicitly rejected the request.
// These surface to the caller; falling back would paper over a real
// validation failure.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// ErrNotFound is returned by GET-style operations when neither store knows
// the record.
var ErrNotFound = errors.New("not found")
