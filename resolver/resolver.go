package resolver

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"os"
	"strings"

	"github.com/miekg/dns"

	"github.com/silverlyra/flytrap/errors"
	"github.com/silverlyra/flytrap/logger"
	"github.com/silverlyra/flytrap/placement"
)

// internalDomain is the zone the Fly.io DNS server answers for.
const internalDomain = "internal."

// Swapped out in tests.
var (
	privateAddress = placement.PrivateAddress
	hosted         = placement.Hosted
)

// Resolver queries the Fly.io internal DNS service.
type Resolver struct {
	udp     *dns.Client
	tcp     *dns.Client
	servers []string
	strict  bool
	log     *logger.Logger
}

// New creates a Resolver. With a zero Config, the nameserver and local bind
// address are derived from the host's private network address; when the host
// has no such address, an unavailability error is returned without any
// network traffic.
func New(cfg Config, log *logger.Logger) (*Resolver, error) {
	if log == nil {
		log = logger.Nop()
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var server netip.AddrPort
	var local netip.Addr

	if cfg.Server != "" {
		server, _ = serverAddress(cfg.Server)
		if cfg.Local != "" {
			local, _ = netip.ParseAddr(cfg.Local)
		}
	} else {
		addr, ok := privateAddress()
		if !ok {
			return nil, errors.ResolverUnavailable()
		}

		dnsAddr, err := DNSServerAddress(addr, hosted())
		if err != nil {
			return nil, err
		}

		server = netip.AddrPortFrom(dnsAddr, 53)
		local = addr
	}

	return build(cfg, []string{server.String()}, local, log), nil
}

// System creates a Resolver which queries the nameservers configured in the
// host operating system (in /etc/resolv.conf).
func System(cfg Config, log *logger.Logger) (*Resolver, error) {
	if log == nil {
		log = logger.Nop()
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	conf, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil {
		return nil, errors.ResolverUnavailable().WithCause(err)
	}
	if len(conf.Servers) == 0 {
		return nil, errors.ResolverUnavailable()
	}

	servers := make([]string, 0, len(conf.Servers))
	for _, s := range conf.Servers {
		servers = append(servers, net.JoinHostPort(s, conf.Port))
	}

	return build(cfg, servers, netip.Addr{}, log), nil
}

func build(cfg Config, servers []string, local netip.Addr, log *logger.Logger) *Resolver {
	udp := &dns.Client{Net: "udp", Timeout: cfg.Timeout}
	tcp := &dns.Client{Net: "tcp", Timeout: cfg.Timeout}

	if local.IsValid() {
		ip := local.AsSlice()
		udp.Dialer = &net.Dialer{LocalAddr: &net.UDPAddr{IP: ip}}
		tcp.Dialer = &net.Dialer{LocalAddr: &net.TCPAddr{IP: ip}}
	}

	return &Resolver{
		udp:     udp,
		tcp:     tcp,
		servers: servers,
		strict:  cfg.Strict,
		log:     log.WithComponent("resolver"),
	}
}

// App creates an AppResolver for querying the named app.
func (r *Resolver) App(name string) *AppResolver {
	return &AppResolver{
		app:      name,
		domain:   dns.Fqdn(name + "." + internalDomain),
		resolver: r,
	}
}

// Current creates an AppResolver for the running app, as named by
// $FLY_APP_NAME.
func (r *Resolver) Current() (*AppResolver, error) {
	app := os.Getenv(placement.EnvAppName)
	if app == "" {
		return nil, errors.EnvironmentUnavailable(placement.EnvAppName)
	}
	return r.App(app), nil
}

// Apps finds all apps in the current Fly.io organization. Builder apps are
// filtered out of the results.
func (r *Resolver) Apps(ctx context.Context) ([]string, error) {
	value, err := r.TXT(ctx, "_apps")
	if err != nil {
		return nil, err
	}

	var apps []string
	for _, app := range strings.Split(value, ",") {
		if app == "" || strings.HasPrefix(app, "fly-builder-") {
			continue
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// Instances finds all running machines in the current Fly.io organization,
// across all apps.
func (r *Resolver) Instances(ctx context.Context) ([]Instance, error) {
	value, err := r.TXT(ctx, "_instances")
	if err != nil {
		return nil, err
	}

	var instances []Instance
	for _, record := range strings.Split(value, ";") {
		if record == "" {
			continue
		}
		instance, err := ParseInstance(record)
		if err != nil {
			if err := r.malformed(err, "_instances", record); err != nil {
				return nil, err
			}
			continue
		}
		instances = append(instances, instance)
	}
	return instances, nil
}

// TXT performs an arbitrary TXT record query on the .internal domain. The
// strings of every answer record are concatenated.
func (r *Resolver) TXT(ctx context.Context, name string) (string, error) {
	return r.lookupTXT(ctx, dns.Fqdn(name+"."+internalDomain))
}

func (r *Resolver) lookupTXT(ctx context.Context, query string) (string, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(query, dns.TypeTXT)
	msg.SetEdns0(dns.DefaultMsgSize, false)

	resp, err := r.exchange(ctx, msg)
	if err != nil {
		return "", err
	}

	var value strings.Builder
	for _, rr := range resp.Answer {
		if txt, ok := rr.(*dns.TXT); ok {
			for _, item := range txt.Txt {
				value.WriteString(item)
			}
		}
	}
	return value.String(), nil
}

func (r *Resolver) lookupAAAA(ctx context.Context, query string) ([]netip.Addr, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(query, dns.TypeAAAA)
	msg.SetEdns0(dns.DefaultMsgSize, false)

	resp, err := r.exchange(ctx, msg)
	if err != nil {
		return nil, err
	}

	var addrs []netip.Addr
	for _, rr := range resp.Answer {
		record, ok := rr.(*dns.AAAA)
		if !ok {
			continue
		}
		if addr, ok := netip.AddrFromSlice(record.AAAA); ok {
			addrs = append(addrs, addr)
		}
	}
	return addrs, nil
}

// exchange sends msg to each configured server in turn, over UDP with a TCP
// retry on truncation, and returns the first successful response.
func (r *Resolver) exchange(ctx context.Context, msg *dns.Msg) (*dns.Msg, error) {
	query := msg.Question[0].Name
	var last error

	for _, server := range r.servers {
		resp, _, err := r.udp.ExchangeContext(ctx, msg, server)
		if err == nil && resp.Truncated {
			resp, _, err = r.tcp.ExchangeContext(ctx, msg, server)
		}
		if err != nil {
			last = errors.LookupFailure(query, err)
			continue
		}
		if resp.Rcode != dns.RcodeSuccess {
			last = errors.LookupFailure(query, fmt.Errorf("server returned %s", dns.RcodeToString[resp.Rcode]))
			continue
		}
		return resp, nil
	}

	if last == nil {
		last = errors.ResolverUnavailable()
	}
	return nil, last
}

// malformed applies the record error policy: in strict mode the error is
// returned, otherwise the record is skipped with a warning.
func (r *Resolver) malformed(err error, query, record string) error {
	if r.strict {
		return err
	}
	r.log.Warn("skipping malformed record", map[string]interface{}{
		logger.FieldQuery: query,
		"record":          record,
	})
	return nil
}

// DNSServerAddress returns the Fly.io DNS server which serves a given local
// private network address. Machines in a Fly.io datacenter use a fixed
// server (fdaa::3); hosts connected over the WireGuard VPN use an
// organization-specific one (fdaa:b:c::3).
//
// An error is returned if local is not a Fly.io private network address,
// i.e. its first 16 bits are not fdaa.
func DNSServerAddress(local netip.Addr, hosted bool) (netip.Addr, error) {
	b := local.As16()
	if !local.Is6() || b[0] != 0xfd || b[1] != 0xaa {
		return netip.Addr{}, errors.ParseFailure("private network address", local.String())
	}

	var out [16]byte
	out[0], out[1] = 0xfd, 0xaa
	if !hosted {
		copy(out[2:6], b[2:6])
	}
	out[15] = 3

	return netip.AddrFrom16(out), nil
}
