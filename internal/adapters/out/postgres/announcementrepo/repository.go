package announcementrepo

import (
	"context"
	"errors"
	"fmt"

	"parcelmatch/internal/core/domain/model/announcement"
	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAnnouncementRepository implements AnnouncementRepository using GORM.
type GormAnnouncementRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAnnouncementRepository creates a new GORM announcement repository.
func NewGormAnnouncementRepository(db *gorm.DB, tracker aggregateTracker) *GormAnnouncementRepository {
	return &GormAnnouncementRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new announcement to the database.
func (r *GormAnnouncementRepository) Add(ctx context.Context, aggregate *announcement.Announcement) error {
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

// Update saves an existing announcement to the database.
//
// The write is conditional on the stored status still being one the aggregate's
// current status is reachable from. A concurrent transaction that already moved
// the announcement past that point leaves zero rows affected, and the caller
// gets errs.ErrVersionIsInvalid instead of silently overwriting the other
// transaction's outcome.
func (r *GormAnnouncementRepository) Update(ctx context.Context, aggregate *announcement.Announcement) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).
		Model(&AnnouncementDTO{}).
		Where("id = ? AND status IN ?", dto.ID, priorStatuses(aggregate.Status())).
		Updates(map[string]any{
			"client_id":    dto.ClientID,
			"description":  dto.Description,
			"weight_kg":    dto.WeightKg,
			"amount":       dto.Amount,
			"status":       dto.Status,
			"pickup_lat":   dto.PickupLat,
			"pickup_lon":   dto.PickupLon,
			"delivery_lat": dto.DeliveryLat,
			"delivery_lon": dto.DeliveryLon,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError(
			"announcement",
			fmt.Errorf("stored status no longer allows transition to %s", aggregate.Status()),
		)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// priorStatuses lists the stored statuses an update to the given status may
// overwrite: the status itself (no transition) plus the statuses the domain
// machine allows it to be reached from. Assigned deliberately excludes itself,
// so a lost race for the Published -> Assigned transition fails.
func priorStatuses(s announcement.Status) []int {
	switch s {
	case announcement.Published:
		return []int{int(announcement.Draft), int(announcement.Published)}
	case announcement.InNegotiation:
		return []int{int(announcement.Published), int(announcement.InNegotiation)}
	case announcement.Assigned:
		return []int{int(announcement.Published), int(announcement.InNegotiation)}
	case announcement.Cancelled:
		return []int{
			int(announcement.Draft),
			int(announcement.Published),
			int(announcement.InNegotiation),
			int(announcement.Cancelled),
		}
	case announcement.Completed:
		return []int{int(announcement.Assigned), int(announcement.Completed)}
	default:
		return []int{int(s)}
	}
}

// Get retrieves an announcement by ID.
func (r *GormAnnouncementRepository) Get(ctx context.Context, id kernel.UUID) (*announcement.Announcement, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AnnouncementDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("announcement", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllOpen retrieves all announcements still open for matching.
func (r *GormAnnouncementRepository) GetAllOpen(ctx context.Context) ([]*announcement.Announcement, error) {
	var dtos []AnnouncementDTO
	if err := r.db.WithContext(ctx).
		Where("status IN ?", []int{int(announcement.Published), int(announcement.InNegotiation)}).
		Order("created_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	announcements := make([]*announcement.Announcement, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}

	return announcements, nil
}
