package activities

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/accessgate/core/validator"
	"github.com/dmitrymomot/accessgate/internal/repository"
)

const (
	nameMaxLen        = 100
	descriptionMaxLen = 1000
)

func detailRules(name, description string) []validator.Rule {
	return []validator.Rule{
		validator.Required("Name", name),
		validator.MaxLen("Name", name, nameMaxLen),
		validator.MaxLen("Description", description, descriptionMaxLen),
	}
}

func nameAvailable(ctx context.Context, activities repository.Activities, name string, self uuid.UUID) ([]validator.Failure, error) {
	if name == "" {
		return nil, nil
	}
	existing, err := activities.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != self {
		return []validator.Failure{{Field: "Name", Message: "activity name is already taken", Key: "validation.unique"}}, nil
	}
	return nil, nil
}

// RegisterValidators adds the validators of every activity command and query.
func RegisterValidators(reg *validator.Registry, activities repository.Activities) {
	validator.AddFunc(reg, func(ctx context.Context, cmd CreateActivity) ([]validator.Failure, error) {
		return validator.Apply(detailRules(cmd.Name, cmd.Description)...), nil
	})
	validator.AddFunc(reg, func(ctx context.Context, cmd CreateActivity) ([]validator.Failure, error) {
		return nameAvailable(ctx, activities, cmd.Name, uuid.Nil)
	})

	validator.AddFunc(reg, func(ctx context.Context, cmd UpdateActivity) ([]validator.Failure, error) {
		rules := append([]validator.Rule{validator.RequiredID("ID", cmd.ID)}, detailRules(cmd.Name, cmd.Description)...)
		return validator.Apply(rules...), nil
	})
	validator.AddFunc(reg, func(ctx context.Context, cmd UpdateActivity) ([]validator.Failure, error) {
		return nameAvailable(ctx, activities, cmd.Name, cmd.ID)
	})

	validator.AddFunc(reg, func(ctx context.Context, cmd DeleteActivity) ([]validator.Failure, error) {
		return validator.Apply(validator.RequiredID("ID", cmd.ID)), nil
	})
	validator.AddFunc(reg, func(ctx context.Context, q GetActivity) ([]validator.Failure, error) {
		return validator.Apply(validator.RequiredID("ID", q.ID)), nil
	})
}
