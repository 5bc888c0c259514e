package discovery

import (
	"context"

	"github.com/silverlyra/flytrap/logger"
	"github.com/silverlyra/flytrap/resolver"
)

func init() {
	RegisterSource(StrategyDNS, newDNSSource)
}

// dnsSource finds peers by querying the Fly.io internal DNS service.
type dnsSource struct {
	app *resolver.AppResolver
}

var _ Source = (*dnsSource)(nil)

func newDNSSource(cfg Config, log *logger.Logger) (Source, error) {
	r, err := resolver.New(cfg.Resolver, log)
	if err != nil {
		return nil, err
	}
	return &dnsSource{app: r.App(cfg.App)}, nil
}

func (s *dnsSource) Name() string { return StrategyDNS }

func (s *dnsSource) Peers(ctx context.Context) ([]Peer, error) {
	found, err := s.app.Peers(ctx)
	if err != nil {
		return nil, err
	}

	peers := make([]Peer, 0, len(found))
	for _, p := range found {
		peers = append(peers, Peer{
			ID:        p.ID,
			Location:  p.Location,
			PrivateIP: p.PrivateIP,
		})
	}
	return peers, nil
}
