package commands

import (
	"errors"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/guard"
)

var (
	ErrDispatchNotificationsCommandIsNotConstructed = errors.New(
		"DispatchNotificationsCommand must be created via NewDispatchNotificationsCommand constructor",
	)
	ErrCouriersAreRequired = errors.New("at least one courier is required")
)

// DispatchNotificationsCommand fans one matched announcement out to the
// couriers the search found. Issued by the matching-results consumer.
type DispatchNotificationsCommand struct { //nolint:recvcheck //using for validation
	announcementID kernel.UUID
	courierIDs     []kernel.UUID

	guard guard.ConstructorGuard
}

// NewDispatchNotificationsCommand creates a command to notify matched couriers.
// Requires at least one courier; every identifier must be valid.
func NewDispatchNotificationsCommand(
	announcementID kernel.UUID,
	courierIDs []kernel.UUID,
) (DispatchNotificationsCommand, error) {
	cmd := DispatchNotificationsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAnnouncementID(announcementID),
		cmd.setCourierIDs(courierIDs),
	); err != nil {
		return DispatchNotificationsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchNotificationsCommandIsNotConstructed)
}

// AnnouncementID returns the matched announcement.
func (c DispatchNotificationsCommand) AnnouncementID() kernel.UUID {
	return c.announcementID
}

// CourierIDs returns the couriers to notify.
func (c DispatchNotificationsCommand) CourierIDs() []kernel.UUID {
	return c.courierIDs
}

func (c *DispatchNotificationsCommand) setAnnouncementID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.announcementID = id
	return nil
}

func (c *DispatchNotificationsCommand) setCourierIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return ErrCouriersAreRequired
	}

	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.courierIDs = ids
	return nil
}
