package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"parcelmatch/internal/metrics"
	"parcelmatch/internal/pkg/errs"
)

// ErrAnnouncementAlreadyTaken is returned when another subscription already
// won arbitration for the announcement.
var ErrAnnouncementAlreadyTaken = errors.New("announcement already has an accepted subscription")

// AcceptSubscriptionCommandHandler decides arbitration for one announcement.
//
// Accepts arrive over HTTP, so nothing serializes two accepts for the same
// announcement before they reach the store. The handler re-checks everything
// under its transaction (the announcement must still be open, the subscription
// pending, no accepted sibling on record), and the database enforces the rest:
// the partial unique index over accepted subscriptions blocks a second winner
// row, and the announcement write is conditional on the stored status, so the
// losing transaction fails instead of overwriting Published -> Assigned.
type AcceptSubscriptionCommandHandler struct {
	uowFactory SubscriptionUoWFactory
	log        *slog.Logger

	conflicts prometheus.Counter
}

// NewAcceptSubscriptionCommandHandler creates a handler for subscription arbitration.
func NewAcceptSubscriptionCommandHandler(
	uowFactory SubscriptionUoWFactory,
	log *slog.Logger,
) AcceptSubscriptionCommandHandler {
	return AcceptSubscriptionCommandHandler{
		uowFactory: uowFactory,
		log:        log.With("component", "arbitration"),
		conflicts:  metrics.NewSubscriptionConflictsTotal(),
	}
}

// Collectors returns the handler's Prometheus collectors for registration.
func (h AcceptSubscriptionCommandHandler) Collectors() []prometheus.Collector {
	return []prometheus.Collector{h.conflicts}
}

// Handle accepts the subscription if it is still eligible to win.
// Returns ErrAnnouncementAlreadyTaken when arbitration already has a winner
// and ErrAnnouncementNotOpen when the announcement closed in the meantime.
func (h AcceptSubscriptionCommandHandler) Handle(ctx context.Context, command AcceptSubscriptionCommand) error {
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

	subscriptionRepo := uow.SubscriptionRepository()
	announcementRepo := uow.AnnouncementRepository()

	winner, err := subscriptionRepo.Get(ctx, command.SubscriptionID())
	if err != nil {
		return err
	}

	aggregate, err := announcementRepo.Get(ctx, winner.AnnouncementID())
	if err != nil {
		return err
	}

	if !aggregate.Status().IsOpen() {
		return ErrAnnouncementNotOpen
	}

	_, err = subscriptionRepo.GetAcceptedByAnnouncement(ctx, winner.AnnouncementID())
	if err == nil {
		h.conflicts.Inc()
		return ErrAnnouncementAlreadyTaken
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	if err = winner.Accept(); err != nil {
		return err
	}

	if err = aggregate.Assign(); err != nil {
		return err
	}

	siblings, err := subscriptionRepo.GetAllByAnnouncement(ctx, winner.AnnouncementID())
	if err != nil {
		return err
	}

	for _, sibling := range siblings {
		if sibling.ID().IsEqual(winner.ID()) || !sibling.IsPending() {
			continue
		}

		if err = sibling.Reject(); err != nil {
			return err
		}

		if err = subscriptionRepo.Update(ctx, sibling); err != nil {
			return err
		}
	}

	if err = subscriptionRepo.Update(ctx, winner); err != nil {
		return err
	}

	if err = announcementRepo.Update(ctx, aggregate); err != nil {
		if errors.Is(err, errs.ErrVersionIsInvalid) {
			h.conflicts.Inc()
			return ErrAnnouncementAlreadyTaken
		}
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.log.InfoContext(ctx, "subscription accepted",
		"subscription_id", winner.ID().String(),
		"announcement_id", winner.AnnouncementID().String(),
		"courier_id", winner.CourierID().String())

	return nil
}
