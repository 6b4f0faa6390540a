package behavior

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/dmitrymomot/accessgate/core/logger"
	"github.com/dmitrymomot/accessgate/core/mediator"
)

// PerformanceOption configures Performance.
type PerformanceOption func(*performance)

// WithHistogram records every request duration, in seconds, to h.
func WithHistogram(h metric.Float64Histogram) PerformanceOption {
	return func(p *performance) { p.histogram = h }
}

type performance struct {
	log       *slog.Logger
	threshold time.Duration
	histogram metric.Float64Histogram
}

// Performance measures how long each request takes, including failed and panicking ones.
// Every request is logged at debug level; requests slower than threshold are logged as
// warnings. A non-positive threshold disables the warning.
func Performance(log *slog.Logger, threshold time.Duration, opts ...PerformanceOption) mediator.OpenBehavior {
	p := &performance{log: log, threshold: threshold}
	if p.log == nil {
		p.log = logger.Discard()
	}
	for _, opt := range opts {
		opt(p)
	}
	return mediator.OpenBehaviorFunc(p.handle)
}

func (p *performance) handle(ctx context.Context, req mediator.Request, next mediator.NextAny) (res any, err error) {
	start := time.Now()
	returned := false
	defer func() {
		p.record(ctx, req, time.Since(start), outcomeOf(res, err, returned))
	}()

	res, err = next(ctx)
	returned = true
	return res, err
}

func (p *performance) record(ctx context.Context, req mediator.Request, elapsed time.Duration, outcome string) {
	attrs := []any{
		logger.Kind(req.Kind.String()),
		logger.Request(req.Name),
		logger.Duration(elapsed),
		logger.Result(outcome),
	}

	p.log.DebugContext(ctx, "request completed", attrs...)
	if p.threshold > 0 && elapsed > p.threshold {
		p.log.WarnContext(ctx, "slow request", append(attrs, logger.Threshold(p.threshold))...)
	}

	if p.histogram != nil {
		p.histogram.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
			attribute.String("kind", req.Kind.String()),
			attribute.String("request", req.Name),
			attribute.String("outcome", outcome),
		))
	}
}
