package resolver

import (
	"context"
	"fmt"
	"net/netip"
	"strings"

	"github.com/miekg/dns"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/silverlyra/flytrap/region"
)

var tracer = otel.Tracer("github.com/silverlyra/flytrap/resolver")

// AppResolver queries the internal DNS records of a particular app.
type AppResolver struct {
	app      string
	domain   string
	resolver *Resolver
}

// App returns the name of the app this resolver queries.
func (a *AppResolver) App() string { return a.app }

// Regions finds the Fly.io regions where the app is deployed. Codes missing
// from the region table are skipped.
func (a *AppResolver) Regions(ctx context.Context) (_ []region.Region, err error) {
	ctx, span := a.span(ctx, "Regions")
	defer func() { end(span, err) }()

	value, err := a.TXT(ctx, "regions")
	if err != nil {
		return nil, err
	}

	var regions []region.Region
	for _, code := range strings.Split(value, ",") {
		r, err := region.Parse(code)
		if err != nil {
			a.resolver.log.Debug("skipping unrecognized region", map[string]interface{}{
				"app":  a.app,
				"code": code,
			})
			continue
		}
		regions = append(regions, r)
	}
	return regions, nil
}

// Nodes finds all running machines of the app, with their IDs and regions.
func (a *AppResolver) Nodes(ctx context.Context) (_ []Node, err error) {
	ctx, span := a.span(ctx, "Nodes")
	defer func() { end(span, err) }()

	value, err := a.TXT(ctx, "vms")
	if err != nil {
		return nil, err
	}

	var nodes []Node
	for _, record := range strings.Split(value, ",") {
		if record == "" {
			continue
		}
		node, err := ParseNode(record)
		if err != nil {
			if err := a.resolver.malformed(err, "vms", record); err != nil {
				return nil, err
			}
			continue
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// Peers finds all running machines of the app and resolves each machine ID
// to its private IP address. Machines whose address lookup returns no
// records are omitted.
func (a *AppResolver) Peers(ctx context.Context) (_ []Peer, err error) {
	ctx, span := a.span(ctx, "Peers")
	defer func() { end(span, err) }()

	nodes, err := a.Nodes(ctx)
	if err != nil {
		return nil, err
	}

	addrs := make([][]netip.Addr, len(nodes))
	g, gctx := errgroup.WithContext(ctx)
	for i, node := range nodes {
		g.Go(func() error {
			query := dns.Fqdn(node.ID + ".vm." + a.domain)
			found, err := a.resolver.lookupAAAA(gctx, query)
			if err != nil {
				return err
			}
			addrs[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	peers := make([]Peer, 0, len(nodes))
	for i, node := range nodes {
		if len(addrs[i]) == 0 {
			continue
		}
		peers = append(peers, Peer{Node: node, PrivateIP: addrs[i][0]})
	}
	return peers, nil
}

// Nearest finds the private addresses of the n geographically nearest
// machines of the app.
func (a *AppResolver) Nearest(ctx context.Context, n int) (_ []netip.Addr, err error) {
	ctx, span := a.span(ctx, "Nearest")
	span.SetAttributes(attribute.Int("count", n))
	defer func() { end(span, err) }()

	query := dns.Fqdn(fmt.Sprintf("top%d.nearest.of.%s", n, a.domain))
	return a.resolver.lookupAAAA(ctx, query)
}

// IP performs an arbitrary AAAA record query on the <app>.internal domain.
func (a *AppResolver) IP(ctx context.Context, name string) ([]netip.Addr, error) {
	return a.resolver.lookupAAAA(ctx, dns.Fqdn(name+"."+a.domain))
}

// TXT performs an arbitrary TXT record query on the <app>.internal domain.
func (a *AppResolver) TXT(ctx context.Context, name string) (string, error) {
	return a.resolver.lookupTXT(ctx, dns.Fqdn(name+"."+a.domain))
}

func (a *AppResolver) span(ctx context.Context, op string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "AppResolver."+op,
		trace.WithAttributes(attribute.String("app", a.app)))
}

func end(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	}
	span.End()
}
