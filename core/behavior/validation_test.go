package behavior_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/accessgate/core/behavior"
	"github.com/dmitrymomot/accessgate/core/result"
	"github.com/dmitrymomot/accessgate/core/validator"
)

func TestValidation(t *testing.T) {
	t.Parallel()

	t.Run("no validators calls handler", func(t *testing.T) {
		t.Parallel()

		var called atomic.Int32
		d := commandPipeline(t, func(ctx context.Context, cmd createThing) (result.Result, error) {
			called.Add(1)
			return result.Success(), nil
		}, behavior.Validation(validator.NewRegistry()))

		res, err := send(context.Background(), d, createThing{})
		require.NoError(t, err)
		assert.True(t, res.IsSuccess())
		assert.Equal(t, int32(1), called.Load())
	})

	t.Run("failures abort before the handler", func(t *testing.T) {
		t.Parallel()

		vreg := validator.NewRegistry()
		validator.AddFunc(vreg, func(ctx context.Context, cmd createThing) ([]validator.Failure, error) {
			return validator.Apply(validator.Required("UserName", cmd.Name)), nil
		})

		var called atomic.Int32
		d := commandPipeline(t, func(ctx context.Context, cmd createThing) (result.Result, error) {
			called.Add(1)
			return result.Success(), nil
		}, behavior.Validation(vreg))

		_, err := send(context.Background(), d, createThing{})
		require.Error(t, err)

		ve := validator.ExtractValidationError(err)
		require.NotNil(t, ve)
		assert.Equal(t, "createThing", ve.Request)
		assert.Equal(t, []string{"field is required"}, ve.Fields()["UserName"])
		assert.Zero(t, called.Load())
	})

	t.Run("aggregates failures of all validators", func(t *testing.T) {
		t.Parallel()

		vreg := validator.NewRegistry()
		validator.AddFunc(vreg, func(ctx context.Context, cmd createThing) ([]validator.Failure, error) {
			return []validator.Failure{
				{Field: "Name", Message: "too short"},
				{}, // zero failures are ignored
			}, nil
		})
		validator.AddFunc(vreg, func(ctx context.Context, cmd createThing) ([]validator.Failure, error) {
			return []validator.Failure{
				{Field: "Name", Message: "already taken"},
				{Field: "Owner", Message: "field is required"},
			}, nil
		})
		validator.AddFunc(vreg, func(ctx context.Context, cmd createThing) ([]validator.Failure, error) {
			return nil, nil
		})

		d := commandPipeline(t, func(ctx context.Context, cmd createThing) (result.Result, error) {
			return result.Success(), nil
		}, behavior.Validation(vreg))

		_, err := send(context.Background(), d, createThing{Name: "x"})
		ve := validator.ExtractValidationError(err)
		require.NotNil(t, ve)
		assert.Len(t, ve.Failures, 3)
		assert.Equal(t, map[string][]string{
			"Name":  {"too short", "already taken"},
			"Owner": {"field is required"},
		}, ve.Fields())
	})

	t.Run("validators run concurrently", func(t *testing.T) {
		t.Parallel()

		var started sync.WaitGroup
		started.Add(2)
		allStarted := make(chan struct{})
		go func() {
			started.Wait()
			close(allStarted)
		}()

		wait := func(ctx context.Context, cmd createThing) ([]validator.Failure, error) {
			started.Done()
			select {
			case <-allStarted:
				return nil, nil
			case <-time.After(2 * time.Second):
				return nil, errors.New("validators did not overlap")
			}
		}

		vreg := validator.NewRegistry()
		validator.AddFunc(vreg, wait)
		validator.AddFunc(vreg, wait)

		d := commandPipeline(t, func(ctx context.Context, cmd createThing) (result.Result, error) {
			return result.Success(), nil
		}, behavior.Validation(vreg))

		res, err := send(context.Background(), d, createThing{Name: "x"})
		require.NoError(t, err)
		assert.True(t, res.IsSuccess())
	})

	t.Run("validator error propagates unchanged", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("lookup failed")
		vreg := validator.NewRegistry()
		validator.AddFunc(vreg, func(ctx context.Context, cmd createThing) ([]validator.Failure, error) {
			return nil, boom
		})

		d := commandPipeline(t, func(ctx context.Context, cmd createThing) (result.Result, error) {
			return result.Success(), nil
		}, behavior.Validation(vreg))

		_, err := send(context.Background(), d, createThing{Name: "x"})
		assert.ErrorIs(t, err, boom)
		assert.False(t, validator.IsValidationError(err))
	})

	t.Run("validators see the caller context", func(t *testing.T) {
		t.Parallel()

		type key struct{}
		vreg := validator.NewRegistry()
		validator.AddFunc(vreg, func(ctx context.Context, cmd createThing) ([]validator.Failure, error) {
			if ctx.Value(key{}) != "v" {
				return nil, errors.New("missing context value")
			}
			return nil, nil
		})

		d := commandPipeline(t, func(ctx context.Context, cmd createThing) (result.Result, error) {
			return result.Success(), nil
		}, behavior.Validation(vreg))

		_, err := send(context.WithValue(context.Background(), key{}, "v"), d, createThing{})
		assert.NoError(t, err)
	})
}
