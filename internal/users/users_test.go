package users_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/accessgate/core/behavior"
	"github.com/dmitrymomot/accessgate/core/mediator"
	"github.com/dmitrymomot/accessgate/core/result"
	"github.com/dmitrymomot/accessgate/core/validator"
	"github.com/dmitrymomot/accessgate/internal/domain"
	"github.com/dmitrymomot/accessgate/internal/repository/memory"
	"github.com/dmitrymomot/accessgate/internal/users"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	users    *memory.Users
	requests *memory.AccessRequests
	commands *mediator.Dispatcher
	queries  *mediator.Dispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{users: memory.NewUsers(), requests: memory.NewAccessRequests()}
	h := users.NewHandlers(f.users, f.requests, memory.Transactor{}, users.WithClock(func() time.Time { return fixedNow }))

	vreg := validator.NewRegistry()
	users.RegisterValidators(vreg, f.users)

	cmds := mediator.NewRegistry()
	require.NoError(t, cmds.Use(behavior.Validation(vreg)))
	require.NoError(t, users.RegisterCommands(cmds, h))

	qs := mediator.NewRegistry()
	require.NoError(t, qs.Use(behavior.Validation(vreg)))
	require.NoError(t, users.RegisterQueries(qs, h))

	f.commands = mediator.NewCommandDispatcher(cmds)
	f.queries = mediator.NewQueryDispatcher(qs)
	return f
}

func (f *fixture) create(t *testing.T, cmd users.CreateUser) domain.User {
	t.Helper()
	res, err := mediator.Send[users.CreateUser, result.Of[domain.User]](context.Background(), f.commands, cmd)
	require.NoError(t, err)
	require.True(t, res.IsSuccess(), res.String())
	return res.Value()
}

func TestCreateUser(t *testing.T) {
	t.Parallel()

	t.Run("stores the user", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		u := f.create(t, users.CreateUser{UserName: "jdoe", Email: "jane@example.com", FullName: "Jane Doe"})

		assert.NotEqual(t, uuid.Nil, u.ID)
		assert.Equal(t, fixedNow, u.CreatedAt)
		exists, err := f.users.Exists(context.Background(), u.ID)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("invalid input never reaches the handler", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		_, err := mediator.Send[users.CreateUser, result.Of[domain.User]](context.Background(), f.commands,
			users.CreateUser{UserName: "", Email: "nope"})

		ve := validator.ExtractValidationError(err)
		require.NotNil(t, ve)
		assert.True(t, ve.Has("UserName"))
		assert.True(t, ve.Has("Email"))

		all, err := f.users.GetAll(context.Background())
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("user name must be unique", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.create(t, users.CreateUser{UserName: "jdoe", Email: "jane@example.com"})

		_, err := mediator.Send[users.CreateUser, result.Of[domain.User]](context.Background(), f.commands,
			users.CreateUser{UserName: "JDoe", Email: "other@example.com"})
		ve := validator.ExtractValidationError(err)
		require.NotNil(t, ve)
		assert.Equal(t, []string{"user name is already taken"}, ve.Fields()["UserName"])
	})
}

func TestUpdateUser(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	jane := f.create(t, users.CreateUser{UserName: "jdoe", Email: "jane@example.com"})
	f.create(t, users.CreateUser{UserName: "jsmith", Email: "john@example.com"})
	ctx := context.Background()

	t.Run("keeping own user name is allowed", func(t *testing.T) {
		res, err := mediator.Send[users.UpdateUser, result.Of[domain.User]](ctx, f.commands,
			users.UpdateUser{ID: jane.ID, UserName: "jdoe", Email: "jane.doe@example.com", FullName: "Jane"})
		require.NoError(t, err)
		require.True(t, res.IsSuccess())
		assert.Equal(t, "jane.doe@example.com", res.Value().Email)
		assert.Equal(t, jane.CreatedAt, res.Value().CreatedAt)
	})

	t.Run("taking another user name is rejected", func(t *testing.T) {
		_, err := mediator.Send[users.UpdateUser, result.Of[domain.User]](ctx, f.commands,
			users.UpdateUser{ID: jane.ID, UserName: "jsmith", Email: "jane@example.com"})
		assert.True(t, validator.IsValidationError(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		res, err := mediator.Send[users.UpdateUser, result.Of[domain.User]](ctx, f.commands,
			users.UpdateUser{ID: uuid.New(), UserName: "ghost", Email: "ghost@example.com"})
		require.NoError(t, err)
		assert.True(t, res.IsNotFound())
		assert.Equal(t, domain.ErrUserNotFound, res.Error())
	})
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	jane := f.create(t, users.CreateUser{UserName: "jdoe", Email: "jane@example.com"})
	_, err := f.requests.Add(ctx, domain.AccessRequest{ID: uuid.New(), UserID: jane.ID, ActivityID: uuid.New(), Status: domain.StatusPending})
	require.NoError(t, err)

	res, err := mediator.Send[users.DeleteUser, result.Result](ctx, f.commands, users.DeleteUser{ID: jane.ID})
	require.NoError(t, err)
	assert.True(t, res.IsSuccess())

	remaining, err := f.requests.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	res, err = mediator.Send[users.DeleteUser, result.Result](ctx, f.commands, users.DeleteUser{ID: jane.ID})
	require.NoError(t, err)
	assert.True(t, res.IsNotFound())
}

func TestQueries(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	jane := f.create(t, users.CreateUser{UserName: "jdoe", Email: "jane@example.com"})

	got, err := mediator.Ask[users.GetUser, result.Of[domain.User]](ctx, f.queries, users.GetUser{ID: jane.ID})
	require.NoError(t, err)
	assert.Equal(t, jane, got.Value())

	missing, err := mediator.Ask[users.GetUser, result.Of[domain.User]](ctx, f.queries, users.GetUser{ID: uuid.New()})
	require.NoError(t, err)
	assert.True(t, missing.IsNotFound())
	assert.Equal(t, "NotFound.User", missing.Error().Code)

	_, err = mediator.Ask[users.GetUser, result.Of[domain.User]](ctx, f.queries, users.GetUser{})
	assert.True(t, validator.IsValidationError(err))

	list, err := mediator.Ask[users.ListUsers, result.Of[[]domain.User]](ctx, f.queries, users.ListUsers{})
	require.NoError(t, err)
	assert.Len(t, list.Value(), 1)
}

func TestHandlerRejectsMissingValues(t *testing.T) {
	t.Parallel()

	h := users.NewHandlers(memory.NewUsers(), memory.NewAccessRequests(), memory.Transactor{})
	res, err := h.Create(context.Background(), users.CreateUser{})
	require.NoError(t, err)
	assert.Equal(t, result.ErrNullValue, res.Error())
}
