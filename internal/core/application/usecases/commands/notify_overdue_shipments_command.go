package commands

import (
	"errors"

	"shipping/internal/pkg/guard"
)

var ErrNotifyOverdueShipmentsCommandIsNotConstructed = errors.New(
	"NotifyOverdueShipmentsCommand must be created via NewNotifyOverdueShipmentsCommand constructor",
)

// NotifyOverdueShipmentsCommand triggers a sweep over active shipments whose
// estimated delivery time has passed, notifying each client.
// This is a parameterless command run periodically by the background job.
type NotifyOverdueShipmentsCommand struct {
	guard guard.ConstructorGuard
}

// NewNotifyOverdueShipmentsCommand creates a new command to trigger the overdue sweep.
func NewNotifyOverdueShipmentsCommand() NotifyOverdueShipmentsCommand {
	return NotifyOverdueShipmentsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrNotifyOverdueShipmentsCommandIsNotConstructed if validation fails.
func (c *NotifyOverdueShipmentsCommand) Validate() error {
	return c.guard.Validate(
		ErrNotifyOverdueShipmentsCommandIsNotConstructed,
	)
}
