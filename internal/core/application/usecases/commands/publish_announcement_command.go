package commands

import (
	"errors"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/guard"
)

var ErrPublishAnnouncementCommandIsNotConstructed = errors.New(
	"PublishAnnouncementCommand must be created via NewPublishAnnouncementCommand constructor",
)

// PublishAnnouncementCommand opens a draft announcement to couriers.
// Publishing persists the status change and emits the integration event that
// starts the matching pipeline.
type PublishAnnouncementCommand struct { //nolint:recvcheck //using for validation
	announcementID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPublishAnnouncementCommand creates a command to publish an announcement.
func NewPublishAnnouncementCommand(announcementID kernel.UUID) (PublishAnnouncementCommand, error) {
	cmd := PublishAnnouncementCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setAnnouncementID(announcementID); err != nil {
		return PublishAnnouncementCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PublishAnnouncementCommand) Validate() error {
	return c.guard.Validate(ErrPublishAnnouncementCommandIsNotConstructed)
}

// AnnouncementID returns the announcement to publish.
func (c PublishAnnouncementCommand) AnnouncementID() kernel.UUID {
	return c.announcementID
}

func (c *PublishAnnouncementCommand) setAnnouncementID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.announcementID = id
	return nil
}
