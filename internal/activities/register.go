package activities

import (
	"errors"

	"github.com/dmitrymomot/accessgate/core/mediator"
)

// RegisterCommands adds the activity command handlers to reg.
func RegisterCommands(reg *mediator.Registry, h *Handlers) error {
	return errors.Join(
		mediator.RegisterFunc(reg, h.Create),
		mediator.RegisterFunc(reg, h.Update),
		mediator.RegisterFunc(reg, h.Delete),
	)
}

// RegisterQueries adds the activity query handlers to reg.
func RegisterQueries(reg *mediator.Registry, h *Handlers) error {
	return errors.Join(
		mediator.RegisterFunc(reg, h.Get),
		mediator.RegisterFunc(reg, h.List),
	)
}
