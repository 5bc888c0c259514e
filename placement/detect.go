package placement

import (
	"net"
	"net/netip"
)

// privateNetwork is the ULA prefix Fly.io allocates 6PN addresses from.
var privateNetwork = netip.MustParsePrefix("fdaa::/16")

// interfaceAddrs is swapped out in tests.
var interfaceAddrs = net.InterfaceAddrs

// detectAddress scans local interfaces for the first address inside the
// Fly.io private network.
func detectAddress() (netip.Addr, bool) {
	addrs, err := interfaceAddrs()
	if err != nil {
		return netip.Addr{}, false
	}

	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok {
			continue
		}
		addr, ok := netip.AddrFromSlice(ipNet.IP)
		if !ok {
			continue
		}
		addr = addr.Unmap()
		if privateNetwork.Contains(addr) {
			return addr, true
		}
	}

	return netip.Addr{}, false
}
