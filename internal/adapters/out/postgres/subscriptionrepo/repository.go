package subscriptionrepo

import (
	"context"
	"errors"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/subscription"
	"parcelmatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSubscriptionRepository implements SubscriptionRepository using GORM.
type GormSubscriptionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSubscriptionRepository creates a new GORM subscription repository.
func NewGormSubscriptionRepository(db *gorm.DB, tracker aggregateTracker) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new subscription to the database.
// A duplicate (announcement, courier) pair fails on the unique index.
func (r *GormSubscriptionRepository) Add(ctx context.Context, aggregate *subscription.Subscription) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing subscription to the database.
func (r *GormSubscriptionRepository) Update(ctx context.Context, aggregate *subscription.Subscription) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a subscription by ID.
func (r *GormSubscriptionRepository) Get(ctx context.Context, id kernel.UUID) (*subscription.Subscription, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SubscriptionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("subscription", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByAnnouncementAndCourier retrieves the subscription for one
// (announcement, courier) pair.
func (r *GormSubscriptionRepository) GetByAnnouncementAndCourier(
	ctx context.Context,
	announcementID kernel.UUID,
	courierID kernel.UUID,
) (*subscription.Subscription, error) {
	if err := errors.Join(announcementID.Validate(), courierID.Validate()); err != nil {
		return nil, err
	}

	var dto SubscriptionDTO
	if err := r.db.WithContext(ctx).
		First(&dto, "announcement_id = ? AND courier_id = ?", announcementID.Bytes(), courierID.Bytes()).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("subscription", announcementID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByAnnouncement retrieves every subscription registered against an announcement.
func (r *GormSubscriptionRepository) GetAllByAnnouncement(
	ctx context.Context,
	announcementID kernel.UUID,
) ([]*subscription.Subscription, error) {
	if err := announcementID.Validate(); err != nil {
		return nil, err
	}

	var dtos []SubscriptionDTO
	if err := r.db.WithContext(ctx).
		Where("announcement_id = ?", announcementID.Bytes()).
		Order("created_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	subscriptions := make([]*subscription.Subscription, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		subscriptions = append(subscriptions, s)
	}

	return subscriptions, nil
}

// GetAcceptedByAnnouncement retrieves the accepted subscription for an announcement.
func (r *GormSubscriptionRepository) GetAcceptedByAnnouncement(
	ctx context.Context,
	announcementID kernel.UUID,
) (*subscription.Subscription, error) {
	if err := announcementID.Validate(); err != nil {
		return nil, err
	}

	var dto SubscriptionDTO
	if err := r.db.WithContext(ctx).
		First(&dto, "announcement_id = ? AND status = ?", announcementID.Bytes(), int(subscription.Accepted)).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("subscription", announcementID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
