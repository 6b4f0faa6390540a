// Package app wires the feature handlers into the command and query pipelines.
//
// Both pipelines run the same behaviors, outermost first: logging, tracing, validation,
// performance. Validation therefore rejects a request before it is timed, and a rejected
// request is still logged and traced.
package app

import (
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/accessgate/core/behavior"
	"github.com/dmitrymomot/accessgate/core/logger"
	"github.com/dmitrymomot/accessgate/core/mediator"
	"github.com/dmitrymomot/accessgate/core/validator"
	"github.com/dmitrymomot/accessgate/internal/accessrequests"
	"github.com/dmitrymomot/accessgate/internal/activities"
	"github.com/dmitrymomot/accessgate/internal/events"
	"github.com/dmitrymomot/accessgate/internal/repository"
	"github.com/dmitrymomot/accessgate/internal/users"
)

// Repositories are the storage collaborators of every feature.
type Repositories struct {
	Users          repository.Users
	Activities     repository.Activities
	AccessRequests repository.AccessRequests
	Tx             repository.Transactor
}

func (r Repositories) validate() error {
	if r.Users == nil || r.Activities == nil || r.AccessRequests == nil || r.Tx == nil {
		return ErrMissingRepository
	}
	return nil
}

// ErrMissingRepository is returned by New when a repository is nil.
var ErrMissingRepository = errors.New("app: every repository must be set")

// App holds the sealed command and query dispatchers.
type App struct {
	Commands *mediator.Dispatcher
	Queries  *mediator.Dispatcher

	logger         *slog.Logger
	publisher      events.Publisher
	tracerProvider trace.TracerProvider
	meter          metric.Meter
	pipeline       PipelineConfig
	now            func() time.Time
}

// Option configures New.
type Option func(*App) error

// WithLogger sets the logger used by the pipeline behaviors and handlers.
func WithLogger(log *slog.Logger) Option {
	return func(a *App) error {
		if log == nil {
			return errors.New("logger cannot be nil")
		}
		a.logger = log
		return nil
	}
}

// WithPublisher sets the access-request event publisher.
func WithPublisher(p events.Publisher) Option {
	return func(a *App) error {
		if p == nil {
			return errors.New("publisher cannot be nil")
		}
		a.publisher = p
		return nil
	}
}

// WithTracerProvider sets the provider of the tracing behavior.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(a *App) error {
		if tp == nil {
			return errors.New("tracer provider cannot be nil")
		}
		a.tracerProvider = tp
		return nil
	}
}

// WithMeter sets the meter that records request durations.
func WithMeter(m metric.Meter) Option {
	return func(a *App) error {
		if m == nil {
			return errors.New("meter cannot be nil")
		}
		a.meter = m
		return nil
	}
}

// WithPipeline overrides the slow-request thresholds.
func WithPipeline(cfg PipelineConfig) Option {
	return func(a *App) error {
		a.pipeline = cfg
		return nil
	}
}

// WithClock overrides the time source of every handler.
func WithClock(now func() time.Time) Option {
	return func(a *App) error {
		if now == nil {
			return errors.New("clock cannot be nil")
		}
		a.now = now
		return nil
	}
}

// New registers every feature on fresh registries, seals them and returns the dispatchers.
func New(repos Repositories, opts ...Option) (*App, error) {
	if err := repos.validate(); err != nil {
		return nil, err
	}

	a := &App{
		logger:    logger.Discard(),
		publisher: events.Noop{},
		meter:     noop.NewMeterProvider().Meter(behavior.TracerName),
		pipeline:  DefaultPipelineConfig(),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	duration, err := a.meter.Float64Histogram("accessgate.request.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Duration of dispatched commands and queries."),
	)
	if err != nil {
		return nil, err
	}

	validators := validator.NewRegistry()
	users.RegisterValidators(validators, repos.Users)
	activities.RegisterValidators(validators, repos.Activities)
	accessrequests.RegisterValidators(validators)

	userHandlers := users.NewHandlers(repos.Users, repos.AccessRequests, repos.Tx, users.WithClock(a.now))
	activityHandlers := activities.NewHandlers(repos.Activities, repos.AccessRequests, repos.Tx, activities.WithClock(a.now))
	requestHandlers := accessrequests.NewHandlers(repos.Users, repos.Activities, repos.AccessRequests,
		accessrequests.WithClock(a.now),
		accessrequests.WithPublisher(a.publisher),
		accessrequests.WithLogger(a.logger),
	)

	commands := mediator.NewRegistry()
	queries := mediator.NewRegistry()
	if err := errors.Join(
		commands.Use(a.behaviors(validators, a.pipeline.CommandSlowThreshold, duration)...),
		queries.Use(a.behaviors(validators, a.pipeline.QuerySlowThreshold, duration)...),

		users.RegisterCommands(commands, userHandlers),
		users.RegisterQueries(queries, userHandlers),
		activities.RegisterCommands(commands, activityHandlers),
		activities.RegisterQueries(queries, activityHandlers),
		accessrequests.RegisterCommands(commands, requestHandlers),
		accessrequests.RegisterQueries(queries, requestHandlers),
	); err != nil {
		return nil, err
	}
	commands.Seal()
	queries.Seal()

	a.Commands = mediator.NewCommandDispatcher(commands, mediator.WithLogger(a.logger))
	a.Queries = mediator.NewQueryDispatcher(queries, mediator.WithLogger(a.logger))
	return a, nil
}

func (a *App) behaviors(validators *validator.Registry, threshold time.Duration, duration metric.Float64Histogram) []mediator.OpenBehavior {
	var tracing []behavior.TracingOption
	if a.tracerProvider != nil {
		tracing = append(tracing, behavior.WithTracerProvider(a.tracerProvider))
	}
	return []mediator.OpenBehavior{
		behavior.Logging(a.logger),
		behavior.Tracing(tracing...),
		behavior.Validation(validators),
		behavior.Performance(a.logger, threshold, behavior.WithHistogram(duration)),
	}
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}
