// Package errors provides structured error handling for the Fly.io runtime
// environment library. It implements typed errors with machine-readable
// codes, retryable detection, and cause preservation so that callers can
// decide whether to retry, degrade, or abort.
package errors
