package behavior

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/accessgate/core/mediator"
	"github.com/dmitrymomot/accessgate/core/validator"
)

// Validation runs every validator registered for the input type concurrently.
// When any of them reports a failure the handler is not called and a
// *validator.ValidationError listing all failures is returned.
// An error returned by a validator itself aborts the request unchanged.
func Validation(validators *validator.Registry) mediator.OpenBehavior {
	return mediator.OpenBehaviorFunc(func(ctx context.Context, req mediator.Request, next mediator.NextAny) (any, error) {
		fns := validators.For(req.Input)
		if len(fns) == 0 {
			return next(ctx)
		}

		results := make([][]validator.Failure, len(fns))
		g, gctx := errgroup.WithContext(ctx)
		for i, fn := range fns {
			g.Go(func() error {
				failures, err := fn(gctx, req.Input)
				if err != nil {
					return err
				}
				results[i] = failures
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		var failures []validator.Failure
		for _, fs := range results {
			for _, f := range fs {
				if !f.IsZero() {
					failures = append(failures, f)
				}
			}
		}
		if len(failures) > 0 {
			return nil, &validator.ValidationError{Request: req.Name, Failures: failures}
		}

		return next(ctx)
	})
}
