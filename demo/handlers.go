package demo

import (
	"fmt"
	"html/template"
	"net/http"
	"net/netip"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/silverlyra/flytrap/discovery"
	"github.com/silverlyra/flytrap/header"
	"github.com/silverlyra/flytrap/placement"
	"github.com/silverlyra/flytrap/region"
)

// placementResponse describes where this process runs and who asked.
type placementResponse struct {
	Now    time.Time  `json:"now"`
	Client netip.Addr `json:"client,omitzero"`
	placement.Placement
	Host *region.Region `json:"host,omitempty"`
	Edge *region.Region `json:"edge,omitempty"`
}

func (s *Server) placement(c *gin.Context) {
	here, err := placement.Current()
	if err != nil {
		s.fail(c, err)
		return
	}

	resp := placementResponse{
		Now:       time.Now().UTC(),
		Placement: *here,
	}
	if client, ok := header.ClientIP(c.Request.Header); ok {
		resp.Client = client
	}
	if host, ok := here.Region(); ok {
		resp.Host = &host
	}
	if edge, ok := header.Edge(c.Request.Header); ok {
		if r, ok := edge.Region(); ok {
			resp.Edge = &r
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ip(c *gin.Context) {
	client := c.ClientIP()
	if addr, ok := header.ClientIP(c.Request.Header); ok {
		client = addr.String()
	}

	edge := "an unknown region"
	if l, ok := header.Edge(c.Request.Header); ok {
		edge = l.String()
		if r, ok := l.Region(); ok {
			edge = r.Name
		}
	}

	body := fmt.Sprintf(
		`<b>Your IP:</b> <code>%s</code> <i>(via <abbr style="font-variant: small-caps;">%s</abbr>)</i>`,
		template.HTMLEscapeString(client), template.HTMLEscapeString(edge))

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
}

func (s *Server) peers(c *gin.Context) {
	if s.discovery == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "peer discovery unavailable"})
		return
	}

	peers, err := s.discovery.Peers(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"peers": peers})
}

// regions reports the regions where the app's peers run, west to east.
func (s *Server) regions(c *gin.Context) {
	if s.discovery == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "peer discovery unavailable"})
		return
	}

	peers, err := s.discovery.Peers(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"regions": peerRegions(peers)})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) fail(c *gin.Context, err error) {
	s.log.Error("request failed", map[string]interface{}{
		"path":  c.Request.URL.Path,
		"error": err.Error(),
	})
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// peerRegions collects the distinct known regions of a peer set, in
// geographic order.
func peerRegions(peers []discovery.Peer) []region.Region {
	seen := make(map[string]bool)
	regions := make([]region.Region, 0, len(peers))

	for _, p := range peers {
		r, ok := p.Region()
		if !ok || seen[r.Code] {
			continue
		}
		seen[r.Code] = true
		regions = append(regions, r)
	}

	sort.Slice(regions, func(i, j int) bool { return region.Compare(regions[i], regions[j]) < 0 })
	return regions
}
