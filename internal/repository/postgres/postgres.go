// Package postgres implements the repositories on PostgreSQL through pgx.
//
// Every method runs on the transaction carried by the context (see pg.WithTx) when there
// is one, and on the pool otherwise.
package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/accessgate/integration/database/pg"
	"github.com/dmitrymomot/accessgate/internal/repository"
)

// table holds the queries shared by every entity table.
type table[T repository.Entity] struct {
	db      pg.DBTX
	name    string
	columns string
	scan    func(row pgx.Row) (T, error)
}

func (t table[T]) conn(ctx context.Context) pg.DBTX {
	return pg.Conn(ctx, t.db)
}

func (t table[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	return t.queryOne(ctx, fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", t.columns, t.name), id)
}

func (t table[T]) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := t.conn(ctx).QueryRow(ctx, fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)", t.name), id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s exists: %w", t.name, err)
	}
	return exists, nil
}

func (t table[T]) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := t.conn(ctx).Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", t.name), id)
	if err != nil {
		return 0, fmt.Errorf("%s delete: %w", t.name, err)
	}
	return tag.RowsAffected(), nil
}

func (t table[T]) queryOne(ctx context.Context, sql string, args ...any) (*T, error) {
	item, err := t.scan(t.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s get: %w", t.name, err)
	}
	return &item, nil
}

func (t table[T]) queryMany(ctx context.Context, sql string, args ...any) ([]T, error) {
	rows, err := t.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s list: %w", t.name, err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (T, error) {
		return t.scan(row)
	})
	if err != nil {
		return nil, fmt.Errorf("%s list: %w", t.name, err)
	}
	return items, nil
}

// write executes an INSERT or UPDATE ... RETURNING and maps constraint errors.
func (t table[T]) write(ctx context.Context, op, sql string, args ...any) (T, error) {
	item, err := t.scan(t.conn(ctx).QueryRow(ctx, sql, args...))
	switch {
	case err == nil:
		return item, nil
	case pg.IsNotFoundError(err):
		return item, fmt.Errorf("%s %s: %w", t.name, op, repository.ErrNotFound)
	case pg.IsDuplicateKeyError(err):
		return item, fmt.Errorf("%s %s: %w: %w", t.name, op, repository.ErrDuplicate, err)
	default:
		return item, fmt.Errorf("%s %s: %w", t.name, op, err)
	}
}
