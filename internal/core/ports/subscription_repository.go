package ports

import (
	"context"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/subscription"
)

// SubscriptionRepository defines the persistence contract for subscriptions.
// The store enforces uniqueness of the (announcement, courier) pair; Add
// must fail on a duplicate rather than silently overwrite.
type SubscriptionRepository interface {
	// Add persists a new subscription.
	// Fails if a subscription for the same (announcement, courier) pair exists.
	Add(ctx context.Context, aggregate *subscription.Subscription) error

	// Update persists changes to an existing subscription.
	Update(ctx context.Context, aggregate *subscription.Subscription) error

	// Get retrieves a subscription by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*subscription.Subscription, error)

	// GetByAnnouncementAndCourier retrieves the subscription for a given
	// (announcement, courier) pair, or errs.ObjectNotFoundError if none exists.
	// Used to deduplicate repeated subscription attempts.
	GetByAnnouncementAndCourier(ctx context.Context, announcementID kernel.UUID, courierID kernel.UUID) (*subscription.Subscription, error)

	// GetAllByAnnouncement retrieves every subscription registered against
	// an announcement, in any status.
	GetAllByAnnouncement(ctx context.Context, announcementID kernel.UUID) ([]*subscription.Subscription, error)

	// GetAcceptedByAnnouncement retrieves the accepted subscription for an
	// announcement, or errs.ObjectNotFoundError if arbitration has not
	// picked a winner yet.
	GetAcceptedByAnnouncement(ctx context.Context, announcementID kernel.UUID) (*subscription.Subscription, error)
}
