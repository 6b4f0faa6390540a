package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/accessgate/integration/database/pg"
	"github.com/dmitrymomot/accessgate/internal/domain"
	"github.com/dmitrymomot/accessgate/internal/repository"
)

const activityColumns = "id, name, description, created_at"

// Activities is a PostgreSQL repository.Activities.
type Activities struct {
	table[domain.Activity]
}

var _ repository.Activities = (*Activities)(nil)

// NewActivities creates an activity repository on db.
func NewActivities(db pg.DBTX) *Activities {
	return &Activities{table[domain.Activity]{db: db, name: "activities", columns: activityColumns, scan: scanActivity}}
}

func scanActivity(row pgx.Row) (domain.Activity, error) {
	var a domain.Activity
	err := row.Scan(&a.ID, &a.Name, &a.Description, &a.CreatedAt)
	return a, err
}

func (r *Activities) GetAll(ctx context.Context) ([]domain.Activity, error) {
	return r.queryMany(ctx, "SELECT "+activityColumns+" FROM activities ORDER BY created_at, id")
}

func (r *Activities) GetByName(ctx context.Context, name string) (*domain.Activity, error) {
	return r.queryOne(ctx, "SELECT "+activityColumns+" FROM activities WHERE lower(name) = lower($1)", name)
}

func (r *Activities) Add(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return r.write(ctx, "add", fmt.Sprintf(
		"INSERT INTO activities (%s) VALUES ($1, $2, $3, $4) RETURNING %s", activityColumns, activityColumns),
		a.ID, a.Name, a.Description, a.CreatedAt)
}

func (r *Activities) Update(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return r.write(ctx, "update",
		"UPDATE activities SET name = $2, description = $3 WHERE id = $1 RETURNING "+activityColumns,
		a.ID, a.Name, a.Description)
}
