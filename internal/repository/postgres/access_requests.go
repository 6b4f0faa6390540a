package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/accessgate/integration/database/pg"
	"github.com/dmitrymomot/accessgate/internal/domain"
	"github.com/dmitrymomot/accessgate/internal/repository"
)

const accessRequestColumns = "id, user_id, activity_id, reason, status, requested_at, decided_at, decided_by"

// AccessRequests is a PostgreSQL repository.AccessRequests.
type AccessRequests struct {
	table[domain.AccessRequest]
}

var _ repository.AccessRequests = (*AccessRequests)(nil)

// NewAccessRequests creates an access request repository on db.
func NewAccessRequests(db pg.DBTX) *AccessRequests {
	return &AccessRequests{table[domain.AccessRequest]{
		db:      db,
		name:    "access_requests",
		columns: accessRequestColumns,
		scan:    scanAccessRequest,
	}}
}

func scanAccessRequest(row pgx.Row) (domain.AccessRequest, error) {
	var r domain.AccessRequest
	err := row.Scan(&r.ID, &r.UserID, &r.ActivityID, &r.Reason, &r.Status, &r.RequestedAt, &r.DecidedAt, &r.DecidedBy)
	return r, err
}

func (r *AccessRequests) GetAll(ctx context.Context) ([]domain.AccessRequest, error) {
	return r.Find(ctx, repository.AccessRequestFilter{})
}

func (r *AccessRequests) Find(ctx context.Context, f repository.AccessRequestFilter) ([]domain.AccessRequest, error) {
	var (
		where []string
		args  []any
	)
	if f.UserID != uuid.Nil {
		args = append(args, f.UserID)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if f.ActivityID != uuid.Nil {
		args = append(args, f.ActivityID)
		where = append(where, fmt.Sprintf("activity_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	sql := "SELECT " + accessRequestColumns + " FROM access_requests"
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	return r.queryMany(ctx, sql+" ORDER BY requested_at, id", args...)
}

func (r *AccessRequests) Add(ctx context.Context, ar domain.AccessRequest) (domain.AccessRequest, error) {
	return r.write(ctx, "add", fmt.Sprintf(
		"INSERT INTO access_requests (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING %s",
		accessRequestColumns, accessRequestColumns),
		ar.ID, ar.UserID, ar.ActivityID, ar.Reason, ar.Status, ar.RequestedAt, ar.DecidedAt, ar.DecidedBy)
}

func (r *AccessRequests) Update(ctx context.Context, ar domain.AccessRequest) (domain.AccessRequest, error) {
	return r.write(ctx, "update",
		"UPDATE access_requests SET reason = $2, status = $3, decided_at = $4, decided_by = $5 WHERE id = $1 RETURNING "+accessRequestColumns,
		ar.ID, ar.Reason, ar.Status, ar.DecidedAt, ar.DecidedBy)
}

func (r *AccessRequests) Transition(ctx context.Context, ar domain.AccessRequest, from domain.Status) (domain.AccessRequest, error) {
	return r.write(ctx, "transition",
		"UPDATE access_requests SET status = $2, decided_at = $3, decided_by = $4 WHERE id = $1 AND status = $5 RETURNING "+accessRequestColumns,
		ar.ID, ar.Status, ar.DecidedAt, ar.DecidedBy, from)
}
