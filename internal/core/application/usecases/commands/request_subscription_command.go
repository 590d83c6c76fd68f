package commands

import (
	"errors"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/guard"
)

var ErrRequestSubscriptionCommandIsNotConstructed = errors.New(
	"RequestSubscriptionCommand must be created via NewRequestSubscriptionCommand constructor",
)

// RequestSubscriptionCommand expresses a courier's wish to take an
// announcement. The request is only forwarded to the arbitration stream;
// the subscription row is created by the consumer on the other side, which
// sees all attempts for one announcement in order.
type RequestSubscriptionCommand struct { //nolint:recvcheck //using for validation
	announcementID kernel.UUID
	courierID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewRequestSubscriptionCommand creates a command to request a subscription.
func NewRequestSubscriptionCommand(announcementID kernel.UUID, courierID kernel.UUID) (RequestSubscriptionCommand, error) {
	cmd := RequestSubscriptionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAnnouncementID(announcementID),
		cmd.setCourierID(courierID),
	); err != nil {
		return RequestSubscriptionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestSubscriptionCommand) Validate() error {
	return c.guard.Validate(ErrRequestSubscriptionCommandIsNotConstructed)
}

// AnnouncementID returns the announcement the courier wants.
func (c RequestSubscriptionCommand) AnnouncementID() kernel.UUID {
	return c.announcementID
}

// CourierID returns the requesting courier.
func (c RequestSubscriptionCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *RequestSubscriptionCommand) setAnnouncementID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.announcementID = id
	return nil
}

func (c *RequestSubscriptionCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}
