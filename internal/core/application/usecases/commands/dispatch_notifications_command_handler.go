package commands

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/notification"
	"parcelmatch/internal/core/ports"
	"parcelmatch/internal/metrics"
)

const (
	newAnnouncementTitle   = "New delivery available!"
	newAnnouncementMessage = "A new delivery matching your position is waiting for a courier."
)

// DispatchNotificationsCommandHandler persists one notification per matched
// courier and fans them out over the side channels.
//
// The durable store is the only channel that matters for correctness: the
// whole fan-out is persisted in one transaction, and only after commit are
// email, push, and the live streams tried. A side-channel failure is logged
// and counted, never propagated, so one broken SMTP server cannot poison the
// matching pipeline.
type DispatchNotificationsCommandHandler struct {
	uowFactory DispatchUoWFactory
	email      ports.EmailSender
	push       ports.PushSender
	stream     ports.StreamPusher
	log        *slog.Logger

	dispatched      prometheus.Counter
	channelFailures prometheus.Counter
}

// NewDispatchNotificationsCommandHandler creates a handler for notification dispatch.
func NewDispatchNotificationsCommandHandler(
	uowFactory DispatchUoWFactory,
	email ports.EmailSender,
	push ports.PushSender,
	stream ports.StreamPusher,
	log *slog.Logger,
) DispatchNotificationsCommandHandler {
	return DispatchNotificationsCommandHandler{
		uowFactory:      uowFactory,
		email:           email,
		push:            push,
		stream:          stream,
		log:             log.With("component", "dispatch"),
		dispatched:      metrics.NewNotificationsDispatchedTotal(),
		channelFailures: metrics.NewNotificationChannelFailuresTotal(),
	}
}

// Collectors returns the handler's Prometheus collectors for registration.
func (h DispatchNotificationsCommandHandler) Collectors() []prometheus.Collector {
	return []prometheus.Collector{h.dispatched, h.channelFailures}
}

// Handle persists and fans out notifications for every matched courier.
// Redelivery of the same matching event may produce duplicate notifications;
// consumers of the store tolerate that in exchange for at-least-once delivery.
func (h DispatchNotificationsCommandHandler) Handle(ctx context.Context, command DispatchNotificationsCommand) error {
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

	repo := uow.NotificationRepository()

	notifications := make([]*notification.Notification, 0, len(command.CourierIDs()))
	for _, courierID := range command.CourierIDs() {
		n, err := notification.NewNotification(
			kernel.NewUUID(),
			courierID,
			command.AnnouncementID(),
			notification.NewAnnouncement,
			newAnnouncementTitle,
			newAnnouncementMessage,
		)
		if err != nil {
			return err
		}

		if err = n.MarkSent(); err != nil {
			return err
		}

		if err = repo.Add(ctx, n); err != nil {
			return err
		}

		notifications = append(notifications, n)
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.dispatched.Add(float64(len(notifications)))

	for _, n := range notifications {
		h.fanOut(ctx, n)
	}

	return nil
}

func (h DispatchNotificationsCommandHandler) fanOut(ctx context.Context, n *notification.Notification) {
	if err := h.email.Send(ctx, n.CourierID(), n); err != nil {
		h.channelFailures.Inc()
		h.log.WarnContext(ctx, "email delivery failed",
			"courier_id", n.CourierID().String(), "error", err)
	}

	if err := h.push.Push(ctx, n.CourierID(), n); err != nil {
		h.channelFailures.Inc()
		h.log.WarnContext(ctx, "push delivery failed",
			"courier_id", n.CourierID().String(), "error", err)
	}

	h.stream.Push(n.CourierID(), n)
}
