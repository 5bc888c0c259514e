package discovery

import (
	"context"

	"github.com/silverlyra/flytrap/logger"
	"github.com/silverlyra/flytrap/machines"
)

func init() {
	RegisterSource(StrategyAPI, newAPISource)
}

// apiSource finds peers by calling the Fly.io Machines API. Only started
// machines are reported, matching what internal DNS lists.
type apiSource struct {
	client *machines.Client
	app    string
}

var _ Source = (*apiSource)(nil)

func newAPISource(cfg Config, log *logger.Logger) (Source, error) {
	client, err := machines.New(cfg.Machines, log)
	if err != nil {
		return nil, err
	}
	return &apiSource{client: client, app: cfg.App}, nil
}

func (s *apiSource) Name() string { return StrategyAPI }

func (s *apiSource) Peers(ctx context.Context) ([]Peer, error) {
	found, err := s.client.Machines(ctx, s.app)
	if err != nil {
		return nil, err
	}

	peers := make([]Peer, 0, len(found))
	for _, m := range found {
		if !m.IsRunning() {
			continue
		}
		peers = append(peers, Peer{
			ID:        m.ID,
			Location:  m.Location,
			PrivateIP: m.PrivateIP,
		})
	}
	return peers, nil
}
