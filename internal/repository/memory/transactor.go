package memory

import "context"

// Transactor runs fn directly; the in-memory stores have no rollback.
type Transactor struct{}

func (Transactor) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
