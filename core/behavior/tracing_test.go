package behavior_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/accessgate/core/behavior"
	"github.com/dmitrymomot/accessgate/core/result"
)

func tracedPipeline(t *testing.T, fn func(context.Context, createThing) (result.Result, error)) (*tracetest.SpanRecorder, func() (result.Result, error)) {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	d := commandPipeline(t, fn, behavior.Tracing(behavior.WithTracerProvider(tp)))

	return sr, func() (result.Result, error) {
		return send(context.Background(), d, createThing{})
	}
}

func spanAttr(s sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range s.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracing(t *testing.T) {
	t.Parallel()

	t.Run("span per request", func(t *testing.T) {
		t.Parallel()

		var inner trace.SpanContext
		sr, call := tracedPipeline(t, func(ctx context.Context, _ createThing) (result.Result, error) {
			inner = trace.SpanContextFromContext(ctx)
			return result.Success(), nil
		})

		_, err := call()
		require.NoError(t, err)

		spans := sr.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, "command createThing", spans[0].Name())
		assert.Equal(t, codes.Unset, spans[0].Status().Code)
		assert.Equal(t, spans[0].SpanContext().SpanID(), inner.SpanID())

		name, ok := spanAttr(spans[0], "request.name")
		require.True(t, ok)
		assert.Equal(t, "createThing", name.AsString())
	})

	t.Run("failed result marks the span", func(t *testing.T) {
		t.Parallel()

		sr, call := tracedPipeline(t, func(context.Context, createThing) (result.Result, error) {
			return result.Failure(result.NewError("Conflict.Thing", "exists")), nil
		})

		_, err := call()
		require.NoError(t, err)

		spans := sr.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status().Code)
		code, ok := spanAttr(spans[0], "result.error_code")
		require.True(t, ok)
		assert.Equal(t, "Conflict.Thing", code.AsString())
	})

	t.Run("error is recorded and returned", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		sr, call := tracedPipeline(t, func(context.Context, createThing) (result.Result, error) {
			return result.Result{}, boom
		})

		_, err := call()
		assert.Same(t, boom, err)

		spans := sr.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status().Code)
		require.Len(t, spans[0].Events(), 1)
		assert.Equal(t, "exception", spans[0].Events()[0].Name)
	})

	t.Run("panic ends the span and keeps unwinding", func(t *testing.T) {
		t.Parallel()

		sr, call := tracedPipeline(t, func(context.Context, createThing) (result.Result, error) {
			panic("kaboom")
		})

		assert.PanicsWithValue(t, "kaboom", func() { _, _ = call() })

		spans := sr.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status().Code)
	})
}
