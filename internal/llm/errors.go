package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is returned when the remote service answers with a non-2xx
// status. It keeps the code and body so callers can distinguish throttling
// from other failures.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote status %d: %s", e.StatusCode, e.Body)
}

// RateLimited reports whether the status signals throttling.
func (e *StatusError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// ConnectionError wraps transport-level failures: dial errors, request
// timeouts, broken connections.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsRateLimit reports whether err is a throttling response.
func IsRateLimit(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.RateLimited()
}

// IsConnection reports whether err is a transport-level failure.
func IsConnection(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}

// IsStatus reports whether err is a non-2xx response, returning the code.
func IsStatus(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode, true
	}
	return 0, false
}
