package demo

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/silverlyra/flytrap/config"
	"github.com/silverlyra/flytrap/discovery"
	"github.com/silverlyra/flytrap/logger"
)

// Server is the demo HTTP service, backed by Gin.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	discovery  *discovery.Discovery
	log        *logger.Logger
}

// New creates the demo Server. Peer discovery is optional: off a Fly.io
// network the peer endpoints answer 503 and the rest still work.
func New(cfg config.Config, log *logger.Logger) (*Server, error) {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(Recovery(log), RequestID(), RequestLogger(log))

	s := &Server{
		httpServer: &http.Server{
			Addr:         cfg.Listen,
			Handler:      engine,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		engine: engine,
		log:    log.WithComponent("demo"),
	}

	d, err := discovery.New(cfg.Discovery, log)
	if err != nil {
		s.log.Warn("peer discovery unavailable", map[string]interface{}{
			logger.FieldError: err.Error(),
		})
	} else {
		s.discovery = d
	}

	engine.GET("/", s.placement)
	engine.GET("/ip", s.ip)
	engine.GET("/peers", s.peers)
	engine.GET("/regions", s.regions)
	engine.GET("/health", s.health)

	return s, nil
}

// Start binds the port and begins serving. It returns once the listener is
// bound; serving continues in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("demo: failed to bind %s: %w", s.httpServer.Addr, err)
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("server error", map[string]interface{}{
				logger.FieldError: err.Error(),
			})
		}
	}()

	s.log.Info("listening", map[string]interface{}{"addr": s.httpServer.Addr})
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("demo: shutdown: %w", err)
	}
	return nil
}
