package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/silverlyra/flytrap/config"
	"github.com/silverlyra/flytrap/demo"
	"github.com/silverlyra/flytrap/logger"
	"github.com/silverlyra/flytrap/telemetry"
	"github.com/silverlyra/flytrap/version"
)

const serviceName = "flytrap-demo"

func main() {
	var cfg config.Config
	if err := config.Load(serviceName, &cfg); err != nil {
		logger.NewDefault(serviceName).Error("failed to load configuration", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	cfg.ApplyDefaults()

	log := logger.New(&cfg.Log, serviceName)
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Error("failed to initialize tracing", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	srv, err := demo.New(cfg, log)
	if err != nil {
		log.Error("failed to create server", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	log.Info("starting", map[string]interface{}{"version": version.Release()})
	if err := srv.Start(ctx); err != nil {
		log.Error("failed to start server", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	<-ctx.Done()
	stop()

	shutdownCtx := context.Background()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warn("tracing shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}
