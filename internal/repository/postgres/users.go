package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/accessgate/integration/database/pg"
	"github.com/dmitrymomot/accessgate/internal/domain"
	"github.com/dmitrymomot/accessgate/internal/repository"
)

const userColumns = "id, user_name, email, full_name, created_at"

// Users is a PostgreSQL repository.Users.
type Users struct {
	table[domain.User]
}

var _ repository.Users = (*Users)(nil)

// NewUsers creates a user repository on db.
func NewUsers(db pg.DBTX) *Users {
	return &Users{table[domain.User]{db: db, name: "users", columns: userColumns, scan: scanUser}}
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.UserName, &u.Email, &u.FullName, &u.CreatedAt)
	return u, err
}

func (r *Users) GetAll(ctx context.Context) ([]domain.User, error) {
	return r.queryMany(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at, id")
}

func (r *Users) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	return r.queryOne(ctx, "SELECT "+userColumns+" FROM users WHERE lower(user_name) = lower($1)", userName)
}

func (r *Users) Add(ctx context.Context, u domain.User) (domain.User, error) {
	return r.write(ctx, "add", fmt.Sprintf(
		"INSERT INTO users (%s) VALUES ($1, $2, $3, $4, $5) RETURNING %s", userColumns, userColumns),
		u.ID, u.UserName, u.Email, u.FullName, u.CreatedAt)
}

func (r *Users) Update(ctx context.Context, u domain.User) (domain.User, error) {
	return r.write(ctx, "update",
		"UPDATE users SET user_name = $2, email = $3, full_name = $4 WHERE id = $1 RETURNING "+userColumns,
		u.ID, u.UserName, u.Email, u.FullName)
}
