package resolver

import (
	"net/netip"
	"strings"

	"github.com/silverlyra/flytrap/errors"
	"github.com/silverlyra/flytrap/region"
)

// Node is a running Fly.io machine with an ID and region, as returned by
// querying the vms.<app>.internal TXT record.
type Node struct {
	ID       string          `json:"id"`
	Location region.Location `json:"region"`
}

// ParseNode parses a single "<id> <region>" record.
func ParseNode(s string) (Node, error) {
	id, code, ok := strings.Cut(s, " ")
	if !ok || id == "" {
		return Node{}, errors.ParseFailure("node record", s)
	}

	location, err := region.ParseLocation(code)
	if err != nil {
		return Node{}, errors.ParseFailure("node record", s).WithCause(err)
	}

	return Node{ID: id, Location: location}, nil
}

// Region resolves the node's location to a known region, if its code is
// recognized.
func (n Node) Region() (region.Region, bool) {
	return n.Location.Region()
}

// Peer is a fully-resolved Node whose private IP address is known.
type Peer struct {
	Node
	PrivateIP netip.Addr `json:"private_ip"`
}

// Instance is a running machine of any app in the organization, as returned
// by querying the _instances.internal TXT record.
type Instance struct {
	App string `json:"app"`
	Peer
}

// ParseInstance parses a single
// "instance=<id>,app=<app>,ip=<ip>,region=<region>" record. Unrecognized
// fields are ignored; all four named fields are required.
func ParseInstance(s string) (Instance, error) {
	var (
		app, id  string
		ip       netip.Addr
		location region.Location
	)

	for _, field := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		switch key {
		case "instance":
			id = value
		case "app":
			app = value
		case "ip":
			addr, err := netip.ParseAddr(value)
			if err != nil || !addr.Is6() {
				return Instance{}, errors.ParseFailure("instance record", s)
			}
			ip = addr
		case "region":
			l, err := region.ParseLocation(value)
			if err != nil {
				return Instance{}, errors.ParseFailure("instance record", s).WithCause(err)
			}
			location = l
		}
	}

	if app == "" || id == "" || !ip.IsValid() || location == "" {
		return Instance{}, errors.ParseFailure("instance record", s)
	}

	return Instance{
		App:  app,
		Peer: Peer{Node: Node{ID: id, Location: location}, PrivateIP: ip},
	}, nil
}
