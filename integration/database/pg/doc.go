// Package pg provides PostgreSQL connection management with migrations and health checking.
//
// It wraps the pgx driver with retry logic on connect, pool tuning from the environment
// and goose migrations read from an fs.FS (usually an embedded directory).
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, migrations.FS, log); err != nil {
//		return err
//	}
//
// # Transactions
//
// WithTx attaches a pgx.Tx to a context; repositories call Conn to pick it up so several
// repository calls can share one transaction:
//
//	err := pg.InTx(ctx, pool, func(ctx context.Context) error {
//		if _, err := requests.Update(ctx, req); err != nil {
//			return err
//		}
//		return audit.Add(ctx, entry)
//	})
//
// # Errors
//
// IsNotFoundError, IsDuplicateKeyError, IsForeignKeyViolationError and IsTxClosedError
// classify driver errors so callers can translate them into domain errors.
package pg
