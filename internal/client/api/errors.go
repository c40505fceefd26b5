package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable wraps transport-level failures: the server could not be
	// reached or the connection broke mid-request.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized is returned for 401 responses.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnexpectedResponse is returned when the server answered but the
	// response body did not have the expected shape.
	ErrUnexpectedResponse = errors.New("unexpected response")
)

// StatusError is returned for non-2xx responses other than 401.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned status %d", e.Code)
}
