package header

import (
	"net/http"
	"net/netip"
	"strconv"

	"github.com/silverlyra/flytrap/region"
)

// Header names set by the Fly.io edge proxy.
const (
	NameClientIP      = "Fly-Client-IP"
	NameForwardedPort = "Fly-Forwarded-Port"
	NameRegion        = "Fly-Region"
)

// ClientIP reads the Fly-Client-IP header: the address of the client that
// opened the connection to the edge.
func ClientIP(h http.Header) (netip.Addr, bool) {
	value := h.Get(NameClientIP)
	if value == "" {
		return netip.Addr{}, false
	}
	addr, err := netip.ParseAddr(value)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr, true
}

// SetClientIP writes the Fly-Client-IP header.
func SetClientIP(h http.Header, addr netip.Addr) {
	h.Set(NameClientIP, addr.String())
}

// ForwardedPort reads the Fly-Forwarded-Port header: the port the client
// connected to at the edge.
func ForwardedPort(h http.Header) (uint16, bool) {
	value := h.Get(NameForwardedPort)
	if value == "" {
		return 0, false
	}
	port, err := strconv.ParseUint(value, 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(port), true
}

// SetForwardedPort writes the Fly-Forwarded-Port header.
func SetForwardedPort(h http.Header, port uint16) {
	h.Set(NameForwardedPort, strconv.FormatUint(uint64(port), 10))
}

// Edge reads the Fly-Region header: the region of the edge server that
// accepted the connection. This is generally not the region running the
// receiving process.
func Edge(h http.Header) (region.Location, bool) {
	value := h.Get(NameRegion)
	if value == "" {
		return "", false
	}
	l, err := region.ParseLocation(value)
	if err != nil {
		return "", false
	}
	return l, true
}

// SetEdge writes the Fly-Region header.
func SetEdge(h http.Header, l region.Location) {
	h.Set(NameRegion, l.String())
}
