package commands

import (
	"errors"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/guard"
)

var ErrRegisterSubscriptionCommandIsNotConstructed = errors.New(
	"RegisterSubscriptionCommand must be created via NewRegisterSubscriptionCommand constructor",
)

// RegisterSubscriptionCommand records one courier's subscription attempt as a
// Pending subscription. Issued by the arbitration consumer, which processes
// all attempts for one announcement in partition order.
type RegisterSubscriptionCommand struct { //nolint:recvcheck //using for validation
	announcementID kernel.UUID
	courierID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewRegisterSubscriptionCommand creates a command to register a subscription attempt.
func NewRegisterSubscriptionCommand(announcementID kernel.UUID, courierID kernel.UUID) (RegisterSubscriptionCommand, error) {
	cmd := RegisterSubscriptionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAnnouncementID(announcementID),
		cmd.setCourierID(courierID),
	); err != nil {
		return RegisterSubscriptionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterSubscriptionCommand) Validate() error {
	return c.guard.Validate(ErrRegisterSubscriptionCommandIsNotConstructed)
}

// AnnouncementID returns the contested announcement.
func (c RegisterSubscriptionCommand) AnnouncementID() kernel.UUID {
	return c.announcementID
}

// CourierID returns the subscribing courier.
func (c RegisterSubscriptionCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *RegisterSubscriptionCommand) setAnnouncementID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.announcementID = id
	return nil
}

func (c *RegisterSubscriptionCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}
