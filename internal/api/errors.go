package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Fixed messages for failures where no server body exists.
const (
	NetworkErrorMessage = "Network error - no response received"
	SetupErrorMessage   = "Request setup error"
)

// ErrorKind classifies a failed request.
type ErrorKind int

const (
	// KindServerRejected means the backend answered with a non-2xx status.
	KindServerRejected ErrorKind = iota + 1

	// KindNoResponse means the request was sent but no response came back
	// (offline, DNS failure, timeout, cancelled context).
	KindNoResponse

	// KindRequestSetup means the request could not be built.
	KindRequestSetup
)

func (k ErrorKind) String() string {
	switch k {
	case KindServerRejected:
		return "server rejected"
	case KindNoResponse:
		return "no response"
	case KindRequestSetup:
		return "request setup"
	default:
		return "unknown"
	}
}

// Error is the classified error returned by every endpoint method.
type Error struct {
	Kind ErrorKind

	// StatusCode is the HTTP status for KindServerRejected, else 0.
	StatusCode int

	// Body is the raw response body for KindServerRejected, byte for byte.
	Body []byte

	// Err is the underlying cause. It is logged, never shown to the user.
	Err error
}

func (e *Error) Error() string {
	return e.Message()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns the text a caller should show the user.
// For server rejections this is the body's "error" or "message" field when
// the body is a JSON object carrying one, else the body itself, else the
// status text.
func (e *Error) Message() string {
	switch e.Kind {
	case KindNoResponse:
		return NetworkErrorMessage
	case KindRequestSetup:
		return SetupErrorMessage
	}

	var fields map[string]json.RawMessage
	if json.Unmarshal(e.Body, &fields) == nil {
		for _, key := range []string{"error", "message"} {
			var s string
			if raw, ok := fields[key]; ok && json.Unmarshal(raw, &s) == nil && s != "" {
				return s
			}
		}
	}
	if body := strings.TrimSpace(string(e.Body)); body != "" {
		return body
	}
	if text := http.StatusText(e.StatusCode); text != "" {
		return text
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// Unauthorized reports whether the backend rejected the session.
func (e *Error) Unauthorized() bool {
	return e.Kind == KindServerRejected && e.StatusCode == http.StatusUnauthorized
}

// MarshalJSON renders the error the way a caller of the REST API sees it:
// the server's own body for rejections, {"error": "..."} otherwise.
func (e *Error) MarshalJSON() ([]byte, error) {
	if e.Kind == KindServerRejected {
		if json.Valid(e.Body) {
			return append([]byte(nil), e.Body...), nil
		}
		return json.Marshal(map[string]string{"error": e.Message()})
	}
	return json.Marshal(map[string]string{"error": e.Message()})
}

// AsError returns the classified error in err's chain, if any.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a 401 rejection.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Unauthorized()
}

func noResponse(err error) *Error {
	return &Error{Kind: KindNoResponse, Err: err}
}

func setupError(err error) *Error {
	return &Error{Kind: KindRequestSetup, Err: err}
}
