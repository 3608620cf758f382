// Package pg provides PostgreSQL connectivity for the catalog stores.
//
// It builds a pgx connection pool wrapped in a bun.DB, installs query hooks for
// debug logging and OpenTelemetry, classifies PostgreSQL errors and offers a
// Timestamps mixin for models.
package pg

import (
	"context"

	"github.com/avast/retry-go/v4"
	"github.com/code19m/errx"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rise-and-shine/catalog/observability/logger"
	"github.com/rise-and-shine/catalog/pg/hooks"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/extra/bunotel"
)

// NewBunDB creates a new Bun database connection with the provided configuration.
func NewBunDB(cfg Config) (*bun.DB, error) {
	pool, err := NewPool(cfg)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	bunDB := bun.NewDB(stdlib.OpenDBFromPool(pool), pgdialect.New())

	bunDB.AddQueryHook(hooks.NewDebugHook(hooks.WithEnabled(cfg.Debug)))
	bunDB.AddQueryHook(bunotel.NewQueryHook(bunotel.WithDBName(cfg.Database)))

	return bunDB, nil
}

// WaitReady pings the database until it answers or the configured attempts are exhausted.
// The delay between attempts grows exponentially starting at cfg.ReadyDelay.
func WaitReady(ctx context.Context, db *bun.DB, cfg Config) error {
	log := logger.Named("pg.ready")

	err := retry.Do(
		func() error {
			return db.PingContext(ctx)
		},
		retry.Context(ctx),
		retry.Attempts(cfg.ReadyAttempts),
		retry.Delay(cfg.ReadyDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.With("attempt", n+1, "error", err.Error()).Warn("postgres is not ready yet")
		}),
	)
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(errx.D{"attempts": cfg.ReadyAttempts}))
	}

	return nil
}
