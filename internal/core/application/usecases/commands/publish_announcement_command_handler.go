package commands

import (
	"context"

	"parcelmatch/internal/core/ports"
)

// PublishAnnouncementCommandHandler transitions an announcement from Draft to
// Published and emits the AnnouncementPublished event.
//
// The event is published after the commit: a consumer reacting to the event
// must be able to read the Published row. A crash between commit and publish
// leaves the announcement silent until the periodic rematch sweep picks it up.
type PublishAnnouncementCommandHandler struct {
	uowFactory AnnouncementUoWFactory
	publisher  ports.EventPublisher
}

// NewPublishAnnouncementCommandHandler creates a handler for publishing announcements.
func NewPublishAnnouncementCommandHandler(
	uowFactory AnnouncementUoWFactory,
	publisher ports.EventPublisher,
) PublishAnnouncementCommandHandler {
	return PublishAnnouncementCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle publishes the announcement.
// Returns the domain's transition error if the announcement is not in Draft.
func (h PublishAnnouncementCommandHandler) Handle(ctx context.Context, command PublishAnnouncementCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.AnnouncementRepository()

	aggregate, err := repo.Get(ctx, command.AnnouncementID())
	if err != nil {
		return err
	}

	if err = aggregate.Publish(); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return h.publisher.PublishAnnouncementPublished(ctx, aggregate)
}
