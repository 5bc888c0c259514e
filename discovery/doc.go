// Package discovery finds the peers of a Fly.io app behind a single
// interface, regardless of how they are found: the "dns" source queries the
// internal DNS service, and the "api" source calls the Machines API.
//
// # Usage
//
//	d, err := discovery.New(discovery.Config{Strategy: "dns"}, log)
//	peers, err := d.Peers(ctx)
//
// Additional sources can be plugged in with RegisterSource.
package discovery
