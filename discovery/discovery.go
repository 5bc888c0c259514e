package discovery

import (
	"context"
	"net/netip"
	"os"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/silverlyra/flytrap/errors"
	"github.com/silverlyra/flytrap/logger"
	"github.com/silverlyra/flytrap/placement"
	"github.com/silverlyra/flytrap/region"
)

// Strategy names for the built-in sources.
const (
	StrategyDNS = "dns"
	StrategyAPI = "api"
)

// Peer is a running machine of the discovered app.
type Peer struct {
	ID        string          `json:"id"`
	Location  region.Location `json:"region"`
	PrivateIP netip.Addr      `json:"private_ip"`
}

// Region resolves the peer's location to a known region, if its code is
// recognized.
func (p Peer) Region() (region.Region, bool) {
	return p.Location.Region()
}

// IsSelf checks if the peer is the current machine, as named by
// $FLY_MACHINE_ID.
func IsSelf(p Peer) bool {
	id := os.Getenv(placement.EnvMachineID)
	return id != "" && p.ID == id
}

// Source finds the peers of an app. Implementations are selected by
// strategy name through the factory registry.
type Source interface {
	// Name returns the strategy name of the source.
	Name() string

	// Peers returns the app's running peers.
	Peers(ctx context.Context) ([]Peer, error)
}

// SourceFactory creates a Source from a Config.
type SourceFactory func(cfg Config, log *logger.Logger) (Source, error)

var sourceFactories = make(map[string]SourceFactory)

// RegisterSource registers a discovery source factory for the given
// strategy name. The built-in sources register themselves; callers can add
// their own.
func RegisterSource(name string, f SourceFactory) {
	sourceFactories[name] = f
}

// Discovery finds an app's peers through a configured Source.
type Discovery struct {
	source      Source
	excludeSelf bool
	self        string
	log         *logger.Logger
}

// New creates a Discovery using the configured strategy.
func New(cfg Config, log *logger.Logger) (*Discovery, error) {
	if log == nil {
		log = logger.Nop()
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	source, err := sourceFactories[cfg.Strategy](cfg, log)
	if err != nil {
		return nil, errors.DiscoveryFailure(cfg.Strategy, err)
	}

	return &Discovery{
		source:      source,
		excludeSelf: cfg.ExcludeSelf,
		self:        os.Getenv(placement.EnvMachineID),
		log:         log.WithComponent("discovery"),
	}, nil
}

// Strategy returns the name of the active discovery source.
func (d *Discovery) Strategy() string { return d.source.Name() }

// IsSelf checks if the peer is the machine this Discovery was configured
// on. It performs no I/O.
func (d *Discovery) IsSelf(p Peer) bool {
	return d.self != "" && p.ID == d.self
}

var tracer = otel.Tracer("github.com/silverlyra/flytrap/discovery")

// Peers returns the app's running peers, in stable ID order. When the
// discovery was configured to exclude the current machine, it is dropped
// from the results.
func (d *Discovery) Peers(ctx context.Context) ([]Peer, error) {
	ctx, span := tracer.Start(ctx, "Discovery.Peers",
		trace.WithAttributes(attribute.String("strategy", d.source.Name())))
	defer span.End()

	peers, err := d.source.Peers(ctx)
	if err != nil {
		err = errors.DiscoveryFailure(d.source.Name(), err)
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		return nil, err
	}

	if d.excludeSelf && d.self != "" {
		kept := peers[:0]
		for _, p := range peers {
			if p.ID != d.self {
				kept = append(kept, p)
			}
		}
		peers = kept
	}

	sort.Slice(peers, func(i, j int) bool { return peers[i].ID < peers[j].ID })
	span.SetAttributes(attribute.Int("peers", len(peers)))

	d.log.Debug("discovered peers", map[string]interface{}{
		logger.FieldStrategy: d.source.Name(),
		logger.FieldPeers:    len(peers),
	})
	return peers, nil
}
