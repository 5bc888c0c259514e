package telemetry

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/silverlyra/flytrap/logger"
	"github.com/silverlyra/flytrap/placement"
	"github.com/silverlyra/flytrap/version"
)

// Config configures the OpenTelemetry tracer.
type Config struct {
	// Enabled turns span export on. When false, Init is a no-op.
	Enabled bool `mapstructure:"enabled"`

	// ServiceName names the service in exported traces.
	ServiceName string `mapstructure:"service_name"`

	// Endpoint is the OTLP HTTP endpoint host:port (e.g. "localhost:4318").
	Endpoint string `mapstructure:"endpoint"`

	// Insecure allows plain-HTTP export, for development collectors.
	Insecure bool `mapstructure:"insecure"`

	// SampleRate is the trace sampling rate (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate"`
}

// ApplyDefaults applies default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = os.Getenv(placement.EnvAppName)
	}
	if c.ServiceName == "" {
		c.ServiceName = "flytrap"
	}
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
		c.Insecure = true
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
}

// Init installs a tracer provider exporting to the configured OTLP
// endpoint, and returns a shutdown function to flush spans on exit. When
// tracing is disabled, both are no-ops.
func Init(ctx context.Context, cfg Config, log *logger.Logger) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}
	cfg.ApplyDefaults()

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating trace exporter: %w", err)
	}

	res, err := newResource(cfg.ServiceName)
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(cfg.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if log != nil {
		log.Info("tracer initialized", map[string]interface{}{
			"service":     cfg.ServiceName,
			"endpoint":    cfg.Endpoint,
			"sample_rate": cfg.SampleRate,
		})
	}

	return tp.Shutdown, nil
}

func sampler(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1.0:
		return sdktrace.AlwaysSample()
	case rate <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.TraceIDRatioBased(rate)
	}
}

// newResource describes the service, including its placement when running
// under Fly.io.
func newResource(serviceName string) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(version.Release()),
	}

	if p, err := placement.Current(); err == nil {
		attrs = append(attrs,
			attribute.String("fly.region", p.Location.String()),
			attribute.String("fly.alloc", p.Allocation),
		)
		if p.Machine != nil {
			attrs = append(attrs, attribute.String("fly.machine", p.Machine.ID))
		}
	}

	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL, attrs...),
	)
}
