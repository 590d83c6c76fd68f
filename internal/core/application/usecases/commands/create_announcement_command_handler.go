package commands

import (
	"context"

	"parcelmatch/internal/core/domain/model/announcement"
)

// CreateAnnouncementCommandHandler persists new announcements in Draft status.
type CreateAnnouncementCommandHandler struct {
	uowFactory AnnouncementUoWFactory
}

// NewCreateAnnouncementCommandHandler creates a handler for announcement creation.
func NewCreateAnnouncementCommandHandler(uowFactory AnnouncementUoWFactory) CreateAnnouncementCommandHandler {
	return CreateAnnouncementCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the announcement aggregate, attaches the route when the
// command carries one, and persists it within a transaction.
func (h CreateAnnouncementCommandHandler) Handle(ctx context.Context, command CreateAnnouncementCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	aggregate, err := announcement.NewAnnouncement(
		command.AnnouncementID(),
		command.ClientID(),
		announcement.Packet{Description: command.Description(), WeightKg: command.WeightKg()},
		command.Amount(),
	)
	if err != nil {
		return err
	}

	if command.Pickup() != nil {
		if err = aggregate.SetRoute(*command.Pickup(), *command.Delivery()); err != nil {
			return err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.AnnouncementRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
