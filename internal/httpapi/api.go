// Package httpapi exposes the command and query pipelines over HTTP.
//
// Handlers only decode input and encode outcomes. The mapping at the boundary is fixed:
// validation errors become 400 problems with per-field messages, failed results go through
// response.ToProblem, and any other error or panic becomes an opaque 500 that is logged.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/accessgate/core/health"
	"github.com/dmitrymomot/accessgate/core/logger"
	"github.com/dmitrymomot/accessgate/core/mediator"
)

// DefaultBodyLimit caps JSON request bodies.
const DefaultBodyLimit int64 = 1 << 20 // 1MB

// API holds the dispatchers served by the router.
type API struct {
	commands  *mediator.Dispatcher
	queries   *mediator.Dispatcher
	log       *slog.Logger
	bodyLimit int64
	checks    []health.Check
}

// Option configures an API.
type Option func(*API)

// WithLogger sets the logger for access logs and unexpected failures.
func WithLogger(log *slog.Logger) Option {
	return func(a *API) {
		if log != nil {
			a.log = log
		}
	}
}

// WithBodyLimit overrides DefaultBodyLimit.
func WithBodyLimit(n int64) Option {
	return func(a *API) {
		if n > 0 {
			a.bodyLimit = n
		}
	}
}

// WithReadinessChecks adds dependency checks to the /ready endpoint.
func WithReadinessChecks(checks ...health.Check) Option {
	return func(a *API) { a.checks = append(a.checks, checks...) }
}

// New creates an API over the command and query dispatchers.
func New(commands, queries *mediator.Dispatcher, opts ...Option) *API {
	a := &API{
		commands:  commands,
		queries:   queries,
		log:       logger.Discard(),
		bodyLimit: DefaultBodyLimit,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Router builds the HTTP handler.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestContext)
	r.Use(securityHeaders)
	r.Use(accessLog(a.log))
	r.Use(recoverer(a.log))

	r.Get("/live", health.Liveness)
	r.Get("/ready", health.Readiness(a.log, a.checks...))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", a.listUsers)
			r.Post("/", a.createUser)
			r.Get("/{id}", a.getUser)
			r.Put("/{id}", a.updateUser)
			r.Delete("/{id}", a.deleteUser)
			r.Get("/{id}/access/{activityID}", a.verifyAccess)
		})

		r.Route("/activities", func(r chi.Router) {
			r.Get("/", a.listActivities)
			r.Post("/", a.createActivity)
			r.Get("/{id}", a.getActivity)
			r.Put("/{id}", a.updateActivity)
			r.Delete("/{id}", a.deleteActivity)
		})

		r.Route("/access-requests", func(r chi.Router) {
			r.Get("/", a.listAccessRequests)
			r.Post("/", a.createAccessRequest)
			r.Get("/{id}", a.getAccessRequest)
			r.Delete("/{id}", a.deleteAccessRequest)
			r.Post("/{id}/decision", a.decideAccessRequest)
			r.Post("/{id}/revocation", a.revokeAccessRequest)
		})
	})

	return r
}
