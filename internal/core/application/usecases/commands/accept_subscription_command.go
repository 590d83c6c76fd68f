package commands

import (
	"errors"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/guard"
)

var ErrAcceptSubscriptionCommandIsNotConstructed = errors.New(
	"AcceptSubscriptionCommand must be created via NewAcceptSubscriptionCommand constructor",
)

// AcceptSubscriptionCommand arbitrates one pending subscription: if it wins,
// the announcement is assigned and every competing subscription is rejected.
//
// Example:
//
//	cmd, err := NewAcceptSubscriptionCommand(subscriptionID)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrAnnouncementAlreadyTaken) {
//	    // another courier won first
//	}
type AcceptSubscriptionCommand struct { //nolint:recvcheck //using for validation
	subscriptionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptSubscriptionCommand creates a command to accept a subscription.
func NewAcceptSubscriptionCommand(subscriptionID kernel.UUID) (AcceptSubscriptionCommand, error) {
	cmd := AcceptSubscriptionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setSubscriptionID(subscriptionID); err != nil {
		return AcceptSubscriptionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptSubscriptionCommand) Validate() error {
	return c.guard.Validate(ErrAcceptSubscriptionCommandIsNotConstructed)
}

// SubscriptionID returns the subscription to accept.
func (c AcceptSubscriptionCommand) SubscriptionID() kernel.UUID {
	return c.subscriptionID
}

func (c *AcceptSubscriptionCommand) setSubscriptionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.subscriptionID = id
	return nil
}
