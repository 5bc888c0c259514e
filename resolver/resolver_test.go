package resolver

import (
	"context"
	"net"
	"net/netip"
	"testing"

	"github.com/miekg/dns"

	"github.com/silverlyra/flytrap/errors"
)

// startDNS runs a nameserver on a loopback port, answering from the given
// record set, and returns its address.
func startDNS(t *testing.T, records map[string][]dns.RR) string {
	t.Helper()

	mux := dns.NewServeMux()
	mux.HandleFunc(".", func(w dns.ResponseWriter, req *dns.Msg) {
		m := new(dns.Msg)
		m.SetReply(req)

		q := req.Question[0]
		rrs, ok := records[q.Name]
		if !ok {
			m.Rcode = dns.RcodeNameError
		}
		for _, rr := range rrs {
			if rr.Header().Rrtype == q.Qtype {
				m.Answer = append(m.Answer, rr)
			}
		}

		_ = w.WriteMsg(m)
	})

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	srv := &dns.Server{PacketConn: pc, Handler: mux}
	go func() { _ = srv.ActivateAndServe() }()
	t.Cleanup(func() { _ = srv.Shutdown() })

	return pc.LocalAddr().String()
}

func txt(name string, values ...string) dns.RR {
	return &dns.TXT{
		Hdr: dns.RR_Header{Name: name, Rrtype: dns.TypeTXT, Class: dns.ClassINET, Ttl: 5},
		Txt: values,
	}
}

func aaaa(name, addr string) dns.RR {
	return &dns.AAAA{
		Hdr:  dns.RR_Header{Name: name, Rrtype: dns.TypeAAAA, Class: dns.ClassINET, Ttl: 5},
		AAAA: net.ParseIP(addr),
	}
}

func testResolver(t *testing.T, cfg Config, records map[string][]dns.RR) *Resolver {
	t.Helper()

	cfg.Server = startDNS(t, records)
	r, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestDNSServerAddress(t *testing.T) {
	local := netip.MustParseAddr("fdaa:0:18:a7b:d6b:0:a:2")

	external, err := DNSServerAddress(local, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := netip.MustParseAddr("fdaa:0:18::3"); external != want {
		t.Errorf("external: expected %s, got %s", want, external)
	}

	hosted, err := DNSServerAddress(local, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := netip.MustParseAddr("fdaa::3"); hosted != want {
		t.Errorf("hosted: expected %s, got %s", want, hosted)
	}
}

func TestDNSServerAddress_NotPrivate(t *testing.T) {
	for _, input := range []string{"2605:4c40:92:1a6d::1", "192.168.1.4", "fe80::1"} {
		if _, err := DNSServerAddress(netip.MustParseAddr(input), true); !errors.IsParseFailure(err) {
			t.Errorf("DNSServerAddress(%s): expected PARSE_FAILED, got %v", input, err)
		}
	}
}

func TestNew_Unavailable(t *testing.T) {
	restore := privateAddress
	t.Cleanup(func() { privateAddress = restore })
	privateAddress = func() (netip.Addr, bool) { return netip.Addr{}, false }

	_, err := New(Config{}, nil)
	if !errors.IsResolverUnavailable(err) {
		t.Fatalf("expected RESOLVER_UNAVAILABLE, got %v", err)
	}
}

func TestNew_Detected(t *testing.T) {
	restoreAddr, restoreHosted := privateAddress, hosted
	t.Cleanup(func() { privateAddress, hosted = restoreAddr, restoreHosted })
	privateAddress = func() (netip.Addr, bool) {
		return netip.MustParseAddr("fdaa:0:18:a7b:d6b:0:a:2"), true
	}
	hosted = func() bool { return false }

	r, err := New(Config{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if want := "[fdaa:0:18::3]:53"; r.servers[0] != want {
		t.Errorf("expected server %s, got %s", want, r.servers[0])
	}
}

func TestApps(t *testing.T) {
	r := testResolver(t, Config{}, map[string][]dns.RR{
		"_apps.internal.": {txt("_apps.internal.", "flytrap-demo,fly-builder-winter-sun-1234,paradrop")},
	})

	apps, err := r.Apps(context.Background())
	if err != nil {
		t.Fatalf("Apps: %v", err)
	}
	if len(apps) != 2 || apps[0] != "flytrap-demo" || apps[1] != "paradrop" {
		t.Errorf("unexpected apps: %v", apps)
	}
}

func TestInstances(t *testing.T) {
	r := testResolver(t, Config{}, map[string][]dns.RR{
		"_instances.internal.": {txt("_instances.internal.",
			"instance=148e21dad76789,app=flytrap-demo,ip=fdaa:2:224b:a7b:2dbb:3e15:aaea:2,region=sea;",
			"instance=4d89699c030518,app=paradrop,ip=fdaa:2:224b:a7b:d068:bd62:1a96:2,region=ams")},
	})

	instances, err := r.Instances(context.Background())
	if err != nil {
		t.Fatalf("Instances: %v", err)
	}
	if len(instances) != 2 {
		t.Fatalf("expected 2 instances, got %d: %v", len(instances), instances)
	}

	first := instances[0]
	if first.App != "flytrap-demo" || first.ID != "148e21dad76789" {
		t.Errorf("unexpected instance: %+v", first)
	}
	if first.Location != "sea" {
		t.Errorf("unexpected region: %s", first.Location)
	}
	if want := netip.MustParseAddr("fdaa:2:224b:a7b:2dbb:3e15:aaea:2"); first.PrivateIP != want {
		t.Errorf("unexpected address: %s", first.PrivateIP)
	}
}

func TestInstances_Malformed(t *testing.T) {
	records := map[string][]dns.RR{
		"_instances.internal.": {txt("_instances.internal.",
			"instance=148e21dad76789,app=flytrap-demo,ip=fdaa:2:224b:a7b:2dbb:3e15:aaea:2,region=sea;",
			"instance=broken,app=paradrop")},
	}

	r := testResolver(t, Config{}, records)
	instances, err := r.Instances(context.Background())
	if err != nil {
		t.Fatalf("Instances: %v", err)
	}
	if len(instances) != 1 || instances[0].ID != "148e21dad76789" {
		t.Errorf("expected the malformed record skipped, got %v", instances)
	}

	r = testResolver(t, Config{Strict: true}, records)
	if _, err := r.Instances(context.Background()); !errors.IsParseFailure(err) {
		t.Errorf("strict: expected PARSE_FAILED, got %v", err)
	}
}

func TestNodes(t *testing.T) {
	r := testResolver(t, Config{}, map[string][]dns.RR{
		"vms.flytrap-demo.internal.": {txt("vms.flytrap-demo.internal.",
			"148e21dad76789 sea,4d89699c030518 ams,6e82de14c35038 sin")},
	})

	nodes, err := r.App("flytrap-demo").Nodes(context.Background())
	if err != nil {
		t.Fatalf("Nodes: %v", err)
	}

	want := []Node{
		{ID: "148e21dad76789", Location: "sea"},
		{ID: "4d89699c030518", Location: "ams"},
		{ID: "6e82de14c35038", Location: "sin"},
	}
	if len(nodes) != len(want) {
		t.Fatalf("expected %d nodes, got %d", len(want), len(nodes))
	}
	for i, n := range nodes {
		if n != want[i] {
			t.Errorf("node %d: expected %+v, got %+v", i, want[i], n)
		}
	}
}

func TestPeers(t *testing.T) {
	r := testResolver(t, Config{}, map[string][]dns.RR{
		"vms.flytrap-demo.internal.": {txt("vms.flytrap-demo.internal.",
			"148e21dad76789 sea,4d89699c030518 ams")},
		"148e21dad76789.vm.flytrap-demo.internal.": {
			aaaa("148e21dad76789.vm.flytrap-demo.internal.", "fdaa:2:224b:a7b:2dbb:3e15:aaea:2"),
		},
		"4d89699c030518.vm.flytrap-demo.internal.": {
			aaaa("4d89699c030518.vm.flytrap-demo.internal.", "fdaa:2:224b:a7b:d068:bd62:1a96:2"),
		},
	})

	peers, err := r.App("flytrap-demo").Peers(context.Background())
	if err != nil {
		t.Fatalf("Peers: %v", err)
	}
	if len(peers) != 2 {
		t.Fatalf("expected 2 peers, got %d", len(peers))
	}
	if peers[0].ID != "148e21dad76789" || peers[0].PrivateIP != netip.MustParseAddr("fdaa:2:224b:a7b:2dbb:3e15:aaea:2") {
		t.Errorf("unexpected peer: %+v", peers[0])
	}
}

func TestPeers_NoRecords(t *testing.T) {
	r := testResolver(t, Config{}, map[string][]dns.RR{
		"vms.flytrap-demo.internal.": {},
	})

	peers, err := r.App("flytrap-demo").Peers(context.Background())
	if err != nil {
		t.Fatalf("Peers: %v", err)
	}
	if len(peers) != 0 {
		t.Errorf("an app with no machines should yield no peers, got %v", peers)
	}
}

func TestNearest(t *testing.T) {
	r := testResolver(t, Config{}, map[string][]dns.RR{
		"top2.nearest.of.flytrap-demo.internal.": {
			aaaa("top2.nearest.of.flytrap-demo.internal.", "fdaa:2:224b:a7b:2dbb:3e15:aaea:2"),
			aaaa("top2.nearest.of.flytrap-demo.internal.", "fdaa:2:224b:a7b:d068:bd62:1a96:2"),
		},
	})

	addrs, err := r.App("flytrap-demo").Nearest(context.Background(), 2)
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}
	if len(addrs) != 2 {
		t.Fatalf("expected 2 addresses, got %d", len(addrs))
	}
}

func TestRegions(t *testing.T) {
	r := testResolver(t, Config{}, map[string][]dns.RR{
		"regions.flytrap-demo.internal.": {txt("regions.flytrap-demo.internal.", "sea,ams,zzz")},
	})

	regions, err := r.App("flytrap-demo").Regions(context.Background())
	if err != nil {
		t.Fatalf("Regions: %v", err)
	}
	if len(regions) != 2 || regions[0].Code != "sea" || regions[1].Code != "ams" {
		t.Errorf("unexpected regions: %v", regions)
	}
}

func TestLookupFailure(t *testing.T) {
	r := testResolver(t, Config{}, map[string][]dns.RR{})

	_, err := r.App("flytrap-demo").Nodes(context.Background())
	if !errors.IsLookupFailure(err) {
		t.Fatalf("expected LOOKUP_FAILED, got %v", err)
	}
}

func TestCurrent(t *testing.T) {
	r := testResolver(t, Config{}, nil)

	t.Setenv("FLY_APP_NAME", "")
	if _, err := r.Current(); err == nil {
		t.Error("expected an error without $FLY_APP_NAME")
	}

	t.Setenv("FLY_APP_NAME", "flytrap-demo")
	a, err := r.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if a.App() != "flytrap-demo" {
		t.Errorf("unexpected app: %s", a.App())
	}
}
