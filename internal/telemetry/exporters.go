package telemetry

import (
	"context"
	"log/slog"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/dmitrymomot/accessgate/core/logger"
)

// spanExporter writes one debug record per ended span.
type spanExporter struct {
	log *slog.Logger
}

func (e *spanExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		attrs := []slog.Attr{
			slog.String("span", s.Name()),
			logger.TraceID(s.SpanContext().TraceID().String()),
			logger.Duration(s.EndTime().Sub(s.StartTime())),
			slog.String("status", s.Status().Code.String()),
		}
		for _, kv := range s.Attributes() {
			attrs = append(attrs, slog.String(string(kv.Key), kv.Value.Emit()))
		}
		e.log.LogAttrs(ctx, slog.LevelDebug, "span ended", attrs...)
	}
	return nil
}

func (e *spanExporter) Shutdown(context.Context) error { return nil }

// metricExporter writes one debug record per histogram data point.
type metricExporter struct {
	log *slog.Logger
}

func (e *metricExporter) Temporality(k sdkmetric.InstrumentKind) metricdata.Temporality {
	return sdkmetric.DefaultTemporalitySelector(k)
}

func (e *metricExporter) Aggregation(k sdkmetric.InstrumentKind) sdkmetric.Aggregation {
	return sdkmetric.DefaultAggregationSelector(k)
}

func (e *metricExporter) Export(ctx context.Context, rm *metricdata.ResourceMetrics) error {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			h, ok := m.Data.(metricdata.Histogram[float64])
			if !ok {
				continue
			}
			for _, dp := range h.DataPoints {
				attrs := []slog.Attr{
					slog.String("metric", m.Name),
					logger.Count("count", int(dp.Count)),
					slog.Float64("sum", dp.Sum),
				}
				if v, ok := dp.Max.Value(); ok {
					attrs = append(attrs, slog.Float64("max", v))
				}
				for _, kv := range dp.Attributes.ToSlice() {
					attrs = append(attrs, slog.String(string(kv.Key), kv.Value.Emit()))
				}
				e.log.LogAttrs(ctx, slog.LevelDebug, "metric exported", attrs...)
			}
		}
	}
	return nil
}

func (e *metricExporter) ForceFlush(context.Context) error { return nil }

func (e *metricExporter) Shutdown(context.Context) error { return nil }
