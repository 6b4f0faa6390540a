package users

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/accessgate/core/validator"
	"github.com/dmitrymomot/accessgate/internal/repository"
)

const (
	userNameMinLen = 3
	userNameMaxLen = 64
	emailMaxLen    = 254
	fullNameMaxLen = 128
)

func profileRules(userName, email, fullName string) []validator.Rule {
	return []validator.Rule{
		validator.Required("UserName", userName),
		validator.MinLen("UserName", userName, userNameMinLen),
		validator.MaxLen("UserName", userName, userNameMaxLen),
		validator.Required("Email", email),
		validator.Email("Email", email),
		validator.MaxLen("Email", email, emailMaxLen),
		validator.MaxLen("FullName", fullName, fullNameMaxLen),
	}
}

// userNameAvailable reports a failure when userName belongs to a user other than self.
func userNameAvailable(ctx context.Context, users repository.Users, userName string, self uuid.UUID) ([]validator.Failure, error) {
	if userName == "" {
		return nil, nil
	}
	existing, err := users.GetByUserName(ctx, userName)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != self {
		return []validator.Failure{{Field: "UserName", Message: "user name is already taken", Key: "validation.unique"}}, nil
	}
	return nil, nil
}

// RegisterValidators adds the validators of every user command and query.
func RegisterValidators(reg *validator.Registry, users repository.Users) {
	validator.AddFunc(reg, func(ctx context.Context, cmd CreateUser) ([]validator.Failure, error) {
		return validator.Apply(profileRules(cmd.UserName, cmd.Email, cmd.FullName)...), nil
	})
	validator.AddFunc(reg, func(ctx context.Context, cmd CreateUser) ([]validator.Failure, error) {
		return userNameAvailable(ctx, users, cmd.UserName, uuid.Nil)
	})

	validator.AddFunc(reg, func(ctx context.Context, cmd UpdateUser) ([]validator.Failure, error) {
		rules := append([]validator.Rule{validator.RequiredID("ID", cmd.ID)}, profileRules(cmd.UserName, cmd.Email, cmd.FullName)...)
		return validator.Apply(rules...), nil
	})
	validator.AddFunc(reg, func(ctx context.Context, cmd UpdateUser) ([]validator.Failure, error) {
		return userNameAvailable(ctx, users, cmd.UserName, cmd.ID)
	})

	validator.AddFunc(reg, func(ctx context.Context, cmd DeleteUser) ([]validator.Failure, error) {
		return validator.Apply(validator.RequiredID("ID", cmd.ID)), nil
	})
	validator.AddFunc(reg, func(ctx context.Context, q GetUser) ([]validator.Failure, error) {
		return validator.Apply(validator.RequiredID("ID", q.ID)), nil
	})
}
