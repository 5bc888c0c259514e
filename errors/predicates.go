package errors

import stderrors "errors"

// AsError converts an error to an *Error if possible.
func AsError(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// is reports whether err is an *Error with the given code anywhere in its
// chain.
func is(err error, code ErrorCode) bool {
	for err != nil {
		var e *Error
		if !stderrors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// IsResolverUnavailable checks if an error indicates no resolver could be
// constructed.
func IsResolverUnavailable(err error) bool {
	return is(err, ErrCodeResolverUnavailable)
}

// IsLookupFailure checks if an error is a DNS lookup failure.
func IsLookupFailure(err error) bool {
	return is(err, ErrCodeLookupFailed)
}

// IsAPIFailure checks if an error is a Machines API failure.
func IsAPIFailure(err error) bool {
	return is(err, ErrCodeAPIFailed)
}

// IsDiscoveryFailure checks if an error is a peer discovery failure.
func IsDiscoveryFailure(err error) bool {
	return is(err, ErrCodeDiscoveryFailed)
}

// IsParseFailure checks if an error is a parse failure.
func IsParseFailure(err error) bool {
	return is(err, ErrCodeParseFailed)
}

// IsRetryable checks if an error can be retried.
func IsRetryable(err error) bool {
	e, ok := AsError(err)
	return ok && e.Retryable
}

// StatusCode returns the upstream HTTP status carried by an API failure,
// or 0 if the error carries none.
func StatusCode(err error) int {
	if e, ok := AsError(err); ok {
		return e.StatusCode
	}
	return 0
}
