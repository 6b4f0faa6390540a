package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/accessgate/integration/database/pg"
	"github.com/dmitrymomot/accessgate/internal/repository"
)

// Transactor runs functions in a pool transaction carried through the context.
type Transactor struct {
	pool *pgxpool.Pool
}

var _ repository.Transactor = (*Transactor)(nil)

// NewTransactor creates a Transactor on pool.
func NewTransactor(pool *pgxpool.Pool) *Transactor {
	return &Transactor{pool: pool}
}

func (t *Transactor) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return pg.InTx(ctx, t.pool, fn)
}
