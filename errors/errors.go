package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// Error is the structured error type returned by this library.
type Error struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// StatusCode is the upstream HTTP status code, when the error came from
	// an API response (0 otherwise).
	StatusCode int `json:"status_code,omitempty"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.StatusCode > 0 {
		fmt.Fprintf(&b, " (HTTP %d)", e.StatusCode)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new Error with automatic retryable detection.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// ResolverUnavailable creates an Error for a resolver that could not be
// constructed because no Fly.io private networking was detected.
func ResolverUnavailable() *Error {
	return &Error{
		Code:      ErrCodeResolverUnavailable,
		Message:   "no Fly.io private networking detected",
		Retryable: false,
	}
}

// LookupFailure creates an Error for a failed internal DNS query.
func LookupFailure(query string, cause error) *Error {
	return &Error{
		Code:      ErrCodeLookupFailed,
		Message:   fmt.Sprintf("internal DNS query %q failed", query),
		Retryable: true,
		Details:   map[string]any{"query": query},
		Cause:     cause,
	}
}

// APIFailure creates an Error for a failed Machines API call. statusCode is
// 0 for transport-level failures; body carries the response body for
// non-success statuses.
func APIFailure(statusCode int, body []byte, cause error) *Error {
	e := &Error{
		Code:       ErrCodeAPIFailed,
		Message:    "Machines API request failed",
		StatusCode: statusCode,
		Retryable:  statusCode == 0 || statusCode >= 500 || statusCode == http.StatusTooManyRequests,
		Cause:      cause,
	}
	if len(body) > 0 {
		e.Details = map[string]any{"body": string(body)}
	}
	return e
}

// DiscoveryFailure wraps a strategy failure for the peer discovery facade,
// preserving which strategy failed and why. Retryability follows the cause
// when it is a structured error.
func DiscoveryFailure(strategy string, cause error) *Error {
	retryable := true
	if e, ok := AsError(cause); ok {
		retryable = e.Retryable
	}
	return &Error{
		Code:      ErrCodeDiscoveryFailed,
		Message:   fmt.Sprintf("peer discovery via %s failed", strategy),
		Retryable: retryable,
		Details:   map[string]any{"strategy": strategy},
		Cause:     cause,
	}
}

// EnvironmentUnavailable creates an Error for a missing environment variable.
func EnvironmentUnavailable(name string) *Error {
	return &Error{
		Code:      ErrCodeEnvironmentUnavailable,
		Message:   fmt.Sprintf("$%s is not set", name),
		Retryable: false,
		Details:   map[string]any{"variable": name},
	}
}

// ParseFailure creates an Error for a value that did not match its expected
// shape.
func ParseFailure(what, input string) *Error {
	return &Error{
		Code:      ErrCodeParseFailed,
		Message:   fmt.Sprintf("failed to parse %s", what),
		Retryable: false,
		Details:   map[string]any{"input": input},
	}
}
