package ports

import (
	"context"

	"parcelmatch/internal/core/domain/model/announcement"
	"parcelmatch/internal/core/domain/model/kernel"
)

// EventPublisher publishes integration events to the message bus.
//
// All events about one announcement are published with the announcement id
// as the message key, so they land on the same partition and are consumed
// in order by a single group member.
type EventPublisher interface {
	// PublishAnnouncementPublished announces a newly published announcement,
	// triggering the matching pipeline.
	PublishAnnouncementPublished(ctx context.Context, aggregate *announcement.Announcement) error

	// PublishCouriersMatched reports the couriers found for an announcement,
	// triggering notification dispatch.
	PublishCouriersMatched(ctx context.Context, announcementID kernel.UUID, courierIDs []kernel.UUID) error

	// PublishSubscriptionRequested forwards a courier's wish to take an
	// announcement into the arbitration stream.
	PublishSubscriptionRequested(ctx context.Context, announcementID kernel.UUID, courierID kernel.UUID) error
}
