// Package telemetry sets up the OpenTelemetry trace and metric providers.
//
// Spans and metrics are exported to the structured logger at debug level. When telemetry
// is disabled the providers are no-ops and nothing is recorded.
package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/dmitrymomot/accessgate/core/logger"
)

// Config controls the providers.
type Config struct {
	Enabled         bool          `env:"OTEL_ENABLED" envDefault:"false"`
	ServiceName     string        `env:"OTEL_SERVICE_NAME" envDefault:"accessgate"`
	SampleRatio     float64       `env:"OTEL_TRACES_SAMPLE_RATIO" envDefault:"1"`
	MetricsInterval time.Duration `env:"OTEL_METRICS_INTERVAL" envDefault:"1m"`
}

// Providers holds the configured providers and their shutdown hooks.
type Providers struct {
	tracer   trace.TracerProvider
	meter    metric.MeterProvider
	shutdown []func(context.Context) error
}

// Setup builds the providers described by cfg.
func Setup(cfg Config, log *slog.Logger) (*Providers, error) {
	if !cfg.Enabled {
		return &Providers{
			tracer: tracenoop.NewTracerProvider(),
			meter:  metricnoop.NewMeterProvider(),
		}, nil
	}
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.Component("telemetry"))

	res := resource.NewSchemaless(attribute.String("service.name", cfg.ServiceName))

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
		sdktrace.WithBatcher(&spanExporter{log: log}),
	)

	interval := cfg.MetricsInterval
	if interval <= 0 {
		interval = time.Minute
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(&metricExporter{log: log}, sdkmetric.WithInterval(interval))),
	)

	return &Providers{
		tracer:   tp,
		meter:    mp,
		shutdown: []func(context.Context) error{tp.Shutdown, mp.Shutdown},
	}, nil
}

// TracerProvider returns the trace provider.
func (p *Providers) TracerProvider() trace.TracerProvider { return p.tracer }

// Meter returns a meter for the named instrumentation scope.
func (p *Providers) Meter(name string) metric.Meter { return p.meter.Meter(name) }

// Shutdown flushes pending telemetry and stops the providers.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	for _, fn := range p.shutdown {
		errs = append(errs, fn(ctx))
	}
	return errors.Join(errs...)
}
