package behavior

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/accessgate/core/logger"
	"github.com/dmitrymomot/accessgate/core/mediator"
	"github.com/dmitrymomot/accessgate/core/validator"
)

// Logging logs each request. Failed results are logged at warn level with their
// error code, validation errors at info level and any other error at error level.
func Logging(log *slog.Logger) mediator.OpenBehavior {
	if log == nil {
		log = logger.Discard()
	}
	return mediator.OpenBehaviorFunc(func(ctx context.Context, req mediator.Request, next mediator.NextAny) (any, error) {
		start := time.Now()
		kind := logger.Kind(req.Kind.String())
		name := logger.Request(req.Name)

		log.DebugContext(ctx, "request started", kind, name)

		res, err := next(ctx)
		duration := logger.Duration(time.Since(start))

		if err != nil {
			if validator.IsValidationError(err) {
				log.InfoContext(ctx, "request rejected", kind, name, duration, logger.Error(err))
				return res, err
			}
			log.ErrorContext(ctx, "request failed", kind, name, duration, logger.Error(err))
			return res, err
		}

		if e, failed := failedOutcome(res); failed {
			log.WarnContext(ctx, "request returned failure", kind, name, duration, logger.ErrorCode(e.Code))
			return res, nil
		}

		log.InfoContext(ctx, "request completed", kind, name, duration)
		return res, nil
	})
}
