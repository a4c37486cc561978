package ghost

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidKeyFormat indicates the configured admin API key does not split
// into exactly two non-empty ID:SECRET parts.
var ErrInvalidKeyFormat = errors.New(`invalid API key format. Expected 'ID:SECRET'`)

// SigningError wraps a failure to mint the request token (malformed secret
// hex or a signing primitive error).
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("Failed to generate JWT token: %v", e.Err)
}

func (e *SigningError) Unwrap() error { return e.Err }

// UnsupportedMethodError is returned before any network I/O when a verb
// outside GET/POST/PUT is requested.
type UnsupportedMethodError struct {
	Method string
}

func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("Unsupported method: %s", e.Method)
}

// StatusError carries the diagnostics of a non-2xx response: the status code,
// the resolved request URL, the request headers that were sent and the raw
// response body, preserved verbatim.
type StatusError struct {
	StatusCode int
	URL        string
	Headers    http.Header
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d for %s: %s", e.StatusCode, e.URL, e.Body)
}

// TransportError wraps failures to carry out the HTTP exchange: request
// encoding, DNS, connection refused, TLS, timeout.  The layers above do not
// distinguish between those causes.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// ShapeError indicates a 2xx response whose body did not match the expected
// envelope.  Raw holds the response payload for diagnostics.
type ShapeError struct {
	Msg string
	Raw string
}

func (e *ShapeError) Error() string { return e.Msg }
