// Package announcementrepo provides data transfer objects and mapping functions
// for announcement persistence. It implements the repository pattern for the
// announcement aggregate, handling conversion between domain entities and
// database representations.
package announcementrepo

import (
	"time"

	"parcelmatch/internal/core/domain/model/announcement"
	"parcelmatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AnnouncementDTO represents the database structure for persisting announcements.
// Route coordinates are nullable: an announcement may be created before the
// client geocodes its pickup and delivery addresses.
type AnnouncementDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Description string    `gorm:"type:varchar(512);not null"`
	WeightKg    float64   `gorm:"type:double precision;not null"`
	Amount      float64   `gorm:"type:double precision;not null"`
	Status      int       `gorm:"type:int;not null;index"`
	PickupLat   *float64  `gorm:"type:double precision"`
	PickupLon   *float64  `gorm:"type:double precision"`
	DeliveryLat *float64  `gorm:"type:double precision"`
	DeliveryLon *float64  `gorm:"type:double precision"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the database table name for announcements.
func (AnnouncementDTO) TableName() string {
	return "announcements"
}

func fromDomain(aggregate *announcement.Announcement) AnnouncementDTO {
	dto := AnnouncementDTO{
		ID:          aggregate.ID().Bytes(),
		ClientID:    aggregate.ClientID().Bytes(),
		Description: aggregate.Packet().Description,
		WeightKg:    aggregate.Packet().WeightKg,
		Amount:      aggregate.Amount(),
		Status:      int(aggregate.Status()),
		CreatedAt:   aggregate.CreatedAt(),
	}

	if p := aggregate.Pickup(); p != nil {
		lat, lon := p.Latitude(), p.Longitude()
		dto.PickupLat, dto.PickupLon = &lat, &lon
	}
	if d := aggregate.Delivery(); d != nil {
		lat, lon := d.Latitude(), d.Longitude()
		dto.DeliveryLat, dto.DeliveryLon = &lat, &lon
	}

	return dto
}

func toDomain(dto AnnouncementDTO) (*announcement.Announcement, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	pickup, err := pointFromColumns(dto.PickupLat, dto.PickupLon)
	if err != nil {
		return nil, err
	}

	delivery, err := pointFromColumns(dto.DeliveryLat, dto.DeliveryLon)
	if err != nil {
		return nil, err
	}

	return announcement.RestoreAnnouncement(
		id,
		clientID,
		pickup,
		delivery,
		announcement.Packet{Description: dto.Description, WeightKg: dto.WeightKg},
		dto.Amount,
		announcement.Status(dto.Status),
		dto.CreatedAt,
	)
}

func pointFromColumns(lat *float64, lon *float64) (*kernel.GeoPoint, error) {
	if lat == nil || lon == nil {
		return nil, nil
	}

	point, err := kernel.NewGeoPoint(*lat, *lon)
	if err != nil {
		return nil, err
	}
	return &point, nil
}
