package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Discovery errors
const (
	// ErrCodeResolverUnavailable indicates no usable nameserver could be
	// determined when constructing a resolver.
	ErrCodeResolverUnavailable ErrorCode = "RESOLVER_UNAVAILABLE"
	// ErrCodeLookupFailed indicates a DNS query failed or returned
	// unparsable records.
	ErrCodeLookupFailed ErrorCode = "LOOKUP_FAILED"
	// ErrCodeAPIFailed indicates a Machines API call failed, returned a
	// non-success status, or returned a malformed body.
	ErrCodeAPIFailed ErrorCode = "API_FAILED"
	// ErrCodeDiscoveryFailed wraps a strategy failure surfaced through the
	// peer discovery facade.
	ErrCodeDiscoveryFailed ErrorCode = "DISCOVERY_FAILED"
)

// Environment errors
const (
	// ErrCodeEnvironmentUnavailable indicates a required $FLY_* environment
	// variable is unset or empty.
	ErrCodeEnvironmentUnavailable ErrorCode = "ENVIRONMENT_UNAVAILABLE"
	// ErrCodeParseFailed indicates a record or value did not match its
	// expected shape.
	ErrCodeParseFailed ErrorCode = "PARSE_FAILED"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeResolverUnavailable:    false,
	ErrCodeLookupFailed:           true,
	ErrCodeAPIFailed:              true,
	ErrCodeDiscoveryFailed:        true,
	ErrCodeEnvironmentUnavailable: false,
	ErrCodeParseFailed:            false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
