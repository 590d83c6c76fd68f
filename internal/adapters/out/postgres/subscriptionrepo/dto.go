// Package subscriptionrepo provides data transfer objects and mapping functions
// for subscription persistence. Two unique indexes are the hard backstops for
// arbitration: (announcement_id, courier_id) deduplicates attempts, and the
// partial index on announcement_id over Accepted rows makes a second winning
// subscription a constraint violation even when two transactions race past
// the in-transaction check.
package subscriptionrepo

import (
	"time"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/subscription"

	"github.com/google/uuid"
)

// SubscriptionDTO represents the database structure for persisting subscriptions.
// The where clause on idx_subscriptions_accepted matches subscription.Accepted (2).
type SubscriptionDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	AnnouncementID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_pair;uniqueIndex:idx_subscriptions_accepted,where:status = 2;index"`
	CourierID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_pair"`
	Status         int       `gorm:"type:int;not null;index"`
	CreatedAt      time.Time `gorm:"not null"`
}

// TableName specifies the database table name for subscriptions.
func (SubscriptionDTO) TableName() string {
	return "subscriptions"
}

func fromDomain(aggregate *subscription.Subscription) SubscriptionDTO {
	return SubscriptionDTO{
		ID:             aggregate.ID().Bytes(),
		AnnouncementID: aggregate.AnnouncementID().Bytes(),
		CourierID:      aggregate.CourierID().Bytes(),
		Status:         int(aggregate.Status()),
		CreatedAt:      aggregate.CreatedAt(),
	}
}

func toDomain(dto SubscriptionDTO) (*subscription.Subscription, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	announcementID, err := kernel.UUIDFromBytes(dto.AnnouncementID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	return subscription.RestoreSubscription(
		id,
		announcementID,
		courierID,
		subscription.Status(dto.Status),
		dto.CreatedAt,
	)
}
