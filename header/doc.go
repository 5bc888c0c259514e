// Package header reads and writes the typed HTTP request headers the Fly.io
// edge proxy adds to incoming requests.
package header
