// Package machines is a client for the Fly.io Machines API, used to
// discover application topology when internal DNS is not reachable (or
// richer machine state is needed).
//
// # Usage
//
//	client, err := machines.New(machines.Config{Token: token}, log)
//	ms, err := client.Machines(ctx, "my-app")
//
// The zero-origin Config picks the in-network API endpoint when the host is
// on a Fly.io private network, and the public endpoint otherwise.
package machines
