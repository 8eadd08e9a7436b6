package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable wraps transport failures where no response arrived.
	ErrUnavailable = errors.New("connection error")
	// ErrNotActivated is returned by Login on HTTP 403.
	ErrNotActivated = errors.New("account is not activated")
)

// StatusError is a non-2xx API response. Message is the server's detail
// or message field when present.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("http error: status %d", e.Code)
}

// StatusCode extracts the HTTP status from err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}
