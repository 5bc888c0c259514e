package machines

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/blake2b"

	"github.com/silverlyra/flytrap/errors"
	"github.com/silverlyra/flytrap/logger"
	"github.com/silverlyra/flytrap/placement"
	"github.com/silverlyra/flytrap/region"
	"github.com/silverlyra/flytrap/version"
)

// maxErrorBody caps how much of an error response is kept for reporting.
const maxErrorBody = 4 << 10

// Client calls the Fly.io Machines API.
type Client struct {
	http   *http.Client
	origin *url.URL
	token  string
	log    *logger.Logger
}

// New creates a Machines API Client.
func New(cfg Config, log *logger.Logger) (*Client, error) {
	if log == nil {
		log = logger.Nop()
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	origin, err := url.Parse(cfg.Origin)
	if err != nil {
		return nil, fmt.Errorf("machines: invalid origin %q: %w", cfg.Origin, err)
	}

	return &Client{
		http:   &http.Client{Timeout: cfg.Timeout},
		origin: origin,
		token:  cfg.Token,
		log:    log.WithComponent("machines"),
	}, nil
}

// Machines lists the machines of the given app. Machines whose private
// address is missing from the response get a derived placeholder address;
// see DerivedPrivateIP.
func (c *Client) Machines(ctx context.Context, app string) ([]Machine, error) {
	var machines []Machine
	path := fmt.Sprintf("/v1/apps/%s/machines", url.PathEscape(app))
	if err := c.get(ctx, path, nil, &machines); err != nil {
		return nil, err
	}

	for i := range machines {
		if machines[i].HostStatus == "" {
			machines[i].HostStatus = HostOk
		}
		if !machines[i].PrivateIP.IsValid() {
			machines[i].PrivateIP = DerivedPrivateIP(machines[i].ID, machines[i].Location)
		}
	}
	return machines, nil
}

// Apps lists the Fly.io apps under the given organization.
func (c *Client) Apps(ctx context.Context, organization string) (OrganizationApps, error) {
	var apps OrganizationApps
	query := url.Values{"org_slug": {organization}}
	if err := c.get(ctx, "/v1/apps", query, &apps); err != nil {
		return OrganizationApps{}, err
	}
	return apps, nil
}

// Peers lists the machines of the current app, excluding the current
// machine. The app and machine are read from the runtime environment.
func (c *Client) Peers(ctx context.Context) ([]Machine, error) {
	p, err := placement.Current()
	if err != nil {
		return nil, err
	}
	if p.Machine == nil {
		return nil, errors.EnvironmentUnavailable(placement.EnvMachineID)
	}

	machines, err := c.Machines(ctx, p.App)
	if err != nil {
		return nil, err
	}

	peers := machines[:0]
	for _, m := range machines {
		if m.ID != p.Machine.ID {
			peers = append(peers, m)
		}
	}
	return peers, nil
}

var tracer = otel.Tracer("github.com/silverlyra/flytrap/machines")

// get performs an authenticated GET request and decodes the JSON response
// into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) (err error) {
	ctx, span := tracer.Start(ctx, "machines.get",
		trace.WithAttributes(attribute.String("path", path)))
	defer func() {
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			span.RecordError(err)
		}
		span.End()
	}()

	u := c.origin.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return errors.APIFailure(0, nil, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("Accept", "application/json")

	c.log.Debug("machines API request", map[string]interface{}{"path": path})

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.APIFailure(0, nil, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return errors.APIFailure(resp.StatusCode, body, nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.APIFailure(resp.StatusCode, nil,
			errors.ParseFailure("machines API response", path).WithCause(err))
	}
	return nil
}

// DerivedPrivateIP deterministically maps a machine ID and region to an
// address inside the Fly.io private network range (fdaa::/16). It stands in
// for machines the API reports without a private address, so peers remain
// distinguishable and stably ordered.
func DerivedPrivateIP(id string, location region.Location) netip.Addr {
	h, _ := blake2b.New(14, nil)
	h.Write([]byte(id))
	h.Write([]byte{0})
	h.Write([]byte(location))

	var out [16]byte
	out[0], out[1] = 0xfd, 0xaa
	h.Sum(out[:2])

	return netip.AddrFrom16(out)
}
