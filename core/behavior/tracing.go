package behavior

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/accessgate/core/mediator"
)

// TracerName is the instrumentation scope of request spans.
const TracerName = "github.com/dmitrymomot/accessgate/core/behavior"

// TracingOption configures Tracing.
type TracingOption func(*tracingConfig)

type tracingConfig struct {
	provider trace.TracerProvider
}

// WithTracerProvider uses tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) TracingOption {
	return func(c *tracingConfig) { c.provider = tp }
}

// Tracing opens a span named "<kind> <request>" around each request.
// Errors and panics are recorded and mark the span as failed; failed results
// add their error code as the result.error_code attribute.
func Tracing(opts ...TracingOption) mediator.OpenBehavior {
	cfg := &tracingConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.provider == nil {
		cfg.provider = otel.GetTracerProvider()
	}
	tracer := cfg.provider.Tracer(TracerName)

	return mediator.OpenBehaviorFunc(func(ctx context.Context, req mediator.Request, next mediator.NextAny) (res any, err error) {
		ctx, span := tracer.Start(ctx, req.Kind.String()+" "+req.Name,
			trace.WithAttributes(
				attribute.String("request.kind", req.Kind.String()),
				attribute.String("request.name", req.Name),
			),
		)
		defer span.End()

		defer func() {
			if r := recover(); r != nil {
				span.RecordError(fmt.Errorf("panic: %v", r))
				span.SetStatus(codes.Error, "panic")
				panic(r)
			}
		}()

		res, err = next(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return res, err
		}
		if e, failed := failedOutcome(res); failed {
			span.SetAttributes(attribute.String("result.error_code", e.Code))
			span.SetStatus(codes.Error, e.Code)
		}
		return res, nil
	})
}
