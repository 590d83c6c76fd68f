package commands

import (
	"context"

	"parcelmatch/internal/core/ports"
)

// RequestSubscriptionCommandHandler validates a subscription request and
// forwards it to the arbitration stream.
//
// The announcement must still be open when the request arrives; requests for
// closed announcements are refused here so couriers get immediate feedback,
// even though the consumer re-checks under the transaction anyway.
type RequestSubscriptionCommandHandler struct {
	uowFactory AnnouncementUoWFactory
	publisher  ports.EventPublisher
}

// NewRequestSubscriptionCommandHandler creates a handler for subscription requests.
func NewRequestSubscriptionCommandHandler(
	uowFactory AnnouncementUoWFactory,
	publisher ports.EventPublisher,
) RequestSubscriptionCommandHandler {
	return RequestSubscriptionCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle checks the announcement and publishes the request to the bus.
func (h RequestSubscriptionCommandHandler) Handle(ctx context.Context, command RequestSubscriptionCommand) error {
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

	aggregate, err := uow.AnnouncementRepository().Get(ctx, command.AnnouncementID())
	if err != nil {
		return err
	}

	if !aggregate.Status().IsOpen() {
		return ErrAnnouncementNotOpen
	}

	return h.publisher.PublishSubscriptionRequested(ctx, command.AnnouncementID(), command.CourierID())
}
