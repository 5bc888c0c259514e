// Package resolver queries the Fly.io internal DNS service for application
// topology: deployed regions, running machines, and their private addresses.
//
// # Usage
//
//	r, err := resolver.New(resolver.Config{}, log)
//	if err != nil {
//	    // not connected to a Fly.io private network
//	}
//
//	peers, err := r.App("my-app").Peers(ctx)
//
// The zero Config resolves the nameserver automatically from the host's
// private network address. Hosts connected over WireGuard use the
// organization-specific server instead of the in-datacenter one; see
// DNSServerAddress.
package resolver
