package accessrequests

import (
	"errors"

	"github.com/dmitrymomot/accessgate/core/mediator"
)

// RegisterCommands adds the access-request command handlers to reg.
func RegisterCommands(reg *mediator.Registry, h *Handlers) error {
	return errors.Join(
		mediator.RegisterFunc(reg, h.Create),
		mediator.RegisterFunc(reg, h.Decide),
		mediator.RegisterFunc(reg, h.Revoke),
		mediator.RegisterFunc(reg, h.Delete),
	)
}

// RegisterQueries adds the access-request query handlers to reg.
func RegisterQueries(reg *mediator.Registry, h *Handlers) error {
	return errors.Join(
		mediator.RegisterFunc(reg, h.Get),
		mediator.RegisterFunc(reg, h.List),
		mediator.RegisterFunc(reg, h.Verify),
	)
}
