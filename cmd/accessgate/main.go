// Command accessgate serves the access-request API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/accessgate/core/behavior"
	"github.com/dmitrymomot/accessgate/core/config"
	"github.com/dmitrymomot/accessgate/core/health"
	"github.com/dmitrymomot/accessgate/core/logger"
	"github.com/dmitrymomot/accessgate/core/server"
	"github.com/dmitrymomot/accessgate/integration/database/pg"
	"github.com/dmitrymomot/accessgate/integration/database/redis"
	"github.com/dmitrymomot/accessgate/internal/app"
	"github.com/dmitrymomot/accessgate/internal/cache"
	"github.com/dmitrymomot/accessgate/internal/events"
	"github.com/dmitrymomot/accessgate/internal/httpapi"
	"github.com/dmitrymomot/accessgate/internal/repository"
	"github.com/dmitrymomot/accessgate/internal/repository/postgres"
	"github.com/dmitrymomot/accessgate/internal/repository/postgres/migrations"
	"github.com/dmitrymomot/accessgate/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", logger.Error(err))
		os.Exit(1)
	}
}

func run() error {
	var cfg app.Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := newLogger(cfg)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.Setup(cfg.Telemetry, log)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			log.Error("telemetry shutdown failed", logger.Error(err))
		}
	}()

	pool, err := pg.Connect(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	log.Info("postgres connected", logger.Key("db", cfg.DB.String()))

	if err := pg.Migrate(ctx, pool, cfg.DB, migrations.FS, log); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	checks := []health.Check{pg.Healthcheck(pool)}

	var activities repository.Activities = postgres.NewActivities(pool)
	if cfg.Cache.Enabled {
		cached, check, closeCache, err := activityCache(ctx, cfg, activities, log)
		if err != nil {
			return err
		}
		defer closeCache()
		activities = cached
		checks = append(checks, check)
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.NATS.Enabled() {
		nc, err := events.ConnectNATS(cfg.NATS, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := nc.Drain(); err != nil {
				log.Warn("nats drain failed", logger.Component("events"), logger.Error(err))
			}
		}()
		publisher = events.NewNATSPublisher(nc, cfg.NATS.SubjectPrefix)
		checks = append(checks, func(context.Context) error {
			if !nc.IsConnected() {
				return errors.New("nats: not connected")
			}
			return nil
		})
		log.Info("nats connected", logger.Component("events"))
	}

	a, err := app.New(app.Repositories{
		Users:          postgres.NewUsers(pool),
		Activities:     activities,
		AccessRequests: postgres.NewAccessRequests(pool),
		Tx:             postgres.NewTransactor(pool),
	},
		app.WithLogger(log),
		app.WithPublisher(publisher),
		app.WithTracerProvider(tel.TracerProvider()),
		app.WithMeter(tel.Meter(behavior.TracerName)),
		app.WithPipeline(cfg.Pipeline),
	)
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}

	api := httpapi.New(a.Commands, a.Queries,
		httpapi.WithLogger(log),
		httpapi.WithReadinessChecks(checks...),
	)

	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Run(ctx, api.Router()))
	return g.Wait()
}

func newLogger(cfg app.Config) *slog.Logger {
	var opts []logger.Option
	switch cfg.Env {
	case "production":
		opts = append(opts, logger.WithProduction(cfg.AppName))
	case "staging":
		opts = append(opts, logger.WithStaging(cfg.AppName))
	default:
		opts = append(opts, logger.WithDevelopment(cfg.AppName))
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err == nil {
		opts = append(opts, logger.WithLevel(level))
	}
	opts = append(opts, logger.WithContextExtractors(logger.RequestIDExtractor))
	return logger.New(opts...)
}

// activityCache puts a two-level cache in front of activities: ristretto in process and
// redis shared between instances.
func activityCache(ctx context.Context, cfg app.Config, next repository.Activities, log *slog.Logger) (repository.Activities, health.Check, func(), error) {
	l1, err := cache.NewRistretto(cfg.Cache.LocalMaxMem)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("local cache: %w", err)
	}

	client, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		l1.Close()
		return nil, nil, nil, fmt.Errorf("redis: %w", err)
	}

	tiered := cache.NewTiered(l1, cache.NewRedis(client, cfg.Cache.Prefix), cfg.Cache.LocalTTL)
	closeFn := func() {
		l1.Close()
		if err := client.Close(); err != nil {
			log.Warn("redis close failed", logger.Component("cache"), logger.Error(err))
		}
	}
	log.Info("activity cache enabled", logger.Component("cache"), logger.Duration(cfg.Cache.TTL))
	return repository.NewCachedActivities(next, tiered, cfg.Cache.TTL, log), redis.Healthcheck(client), closeFn, nil
}
