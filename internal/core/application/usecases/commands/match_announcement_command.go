package commands

import (
	"errors"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/guard"
)

var ErrMatchAnnouncementCommandIsNotConstructed = errors.New(
	"MatchAnnouncementCommand must be created via NewMatchAnnouncementCommand constructor",
)

// MatchAnnouncementCommand requests a full expanding search for couriers able
// to serve one announcement. Issued by the announcement-published consumer
// and by the periodic rematch sweep.
//
// Example:
//
//	cmd, err := NewMatchAnnouncementCommand(announcementID)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, services.ErrNoEligibleCourier) {
//	    // nobody in range right now, retry later
//	}
type MatchAnnouncementCommand struct { //nolint:recvcheck //using for validation
	announcementID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMatchAnnouncementCommand creates a command to search couriers for an announcement.
func NewMatchAnnouncementCommand(announcementID kernel.UUID) (MatchAnnouncementCommand, error) {
	cmd := MatchAnnouncementCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setAnnouncementID(announcementID); err != nil {
		return MatchAnnouncementCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MatchAnnouncementCommand) Validate() error {
	return c.guard.Validate(ErrMatchAnnouncementCommandIsNotConstructed)
}

// AnnouncementID returns the announcement to match.
func (c MatchAnnouncementCommand) AnnouncementID() kernel.UUID {
	return c.announcementID
}

func (c *MatchAnnouncementCommand) setAnnouncementID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.announcementID = id
	return nil
}
