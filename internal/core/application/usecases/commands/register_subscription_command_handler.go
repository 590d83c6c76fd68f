package commands

import (
	"context"
	"errors"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/subscription"
	"parcelmatch/internal/pkg/errs"
)

// ErrSubscriptionAlreadyExists is returned when the (announcement, courier)
// pair already has a subscription in any status.
var ErrSubscriptionAlreadyExists = errors.New("subscription already exists")

// RegisterSubscriptionCommandHandler turns a subscription attempt into a
// Pending subscription row.
//
// The handler deduplicates by (announcement, courier) inside the transaction
// and refuses attempts against closed announcements. Both checks repeat what
// the request side already verified: the attempt travelled through the bus
// and the world may have moved on since.
type RegisterSubscriptionCommandHandler struct {
	uowFactory SubscriptionUoWFactory
}

// NewRegisterSubscriptionCommandHandler creates a handler for subscription registration.
func NewRegisterSubscriptionCommandHandler(uowFactory SubscriptionUoWFactory) RegisterSubscriptionCommandHandler {
	return RegisterSubscriptionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle registers the attempt as a Pending subscription.
// Returns ErrSubscriptionAlreadyExists for a duplicate attempt and
// ErrAnnouncementNotOpen when the announcement is no longer open; both are
// permanent outcomes the caller should not retry.
func (h RegisterSubscriptionCommandHandler) Handle(ctx context.Context, command RegisterSubscriptionCommand) error {
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

	announcementRepo := uow.AnnouncementRepository()
	subscriptionRepo := uow.SubscriptionRepository()

	aggregate, err := announcementRepo.Get(ctx, command.AnnouncementID())
	if err != nil {
		return err
	}

	if !aggregate.Status().IsOpen() {
		return ErrAnnouncementNotOpen
	}

	_, err = subscriptionRepo.GetByAnnouncementAndCourier(ctx, command.AnnouncementID(), command.CourierID())
	if err == nil {
		return ErrSubscriptionAlreadyExists
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	sub, err := subscription.NewSubscription(kernel.NewUUID(), command.AnnouncementID(), command.CourierID())
	if err != nil {
		return err
	}

	if err = subscriptionRepo.Add(ctx, sub); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
