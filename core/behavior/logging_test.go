package behavior_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/accessgate/core/behavior"
	"github.com/dmitrymomot/accessgate/core/result"
	"github.com/dmitrymomot/accessgate/core/validator"
)

func TestLogging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler func(context.Context, createThing) (result.Result, error)
		msg     string
		level   string
	}{
		{
			name: "success",
			handler: func(context.Context, createThing) (result.Result, error) {
				return result.Success(), nil
			},
			msg:   "request completed",
			level: "INFO",
		},
		{
			name: "failed result",
			handler: func(context.Context, createThing) (result.Result, error) {
				return result.Failure(result.NewError("Conflict.Thing", "exists")), nil
			},
			msg:   "request returned failure",
			level: "WARN",
		},
		{
			name: "validation error",
			handler: func(context.Context, createThing) (result.Result, error) {
				return result.Result{}, &validator.ValidationError{Request: "createThing"}
			},
			msg:   "request rejected",
			level: "INFO",
		},
		{
			name: "unexpected error",
			handler: func(context.Context, createThing) (result.Result, error) {
				return result.Result{}, errors.New("boom")
			},
			msg:   "request failed",
			level: "ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			log, records := logCapture(t)
			d := commandPipeline(t, tt.handler, behavior.Logging(log))
			_, _ = send(context.Background(), d, createThing{})

			recs := records()
			require.NotNil(t, findRecord(recs, "request started"))
			rec := findRecord(recs, tt.msg)
			require.NotNil(t, rec)
			assert.Equal(t, tt.level, rec["level"])
			assert.Equal(t, "createThing", rec["request"])
		})
	}
}

func TestLoggingRecordsErrorCode(t *testing.T) {
	t.Parallel()

	log, records := logCapture(t)
	d := commandPipeline(t, func(context.Context, createThing) (result.Result, error) {
		return result.Failure(result.NewError("NotFound.Thing", "missing")), nil
	}, behavior.Logging(log))

	res, err := send(context.Background(), d, createThing{})
	require.NoError(t, err)
	assert.True(t, res.IsNotFound())

	rec := findRecord(records(), "request returned failure")
	require.NotNil(t, rec)
	assert.Equal(t, "NotFound.Thing", rec["error_code"])
}
