// Package courierrepo provides data transfer objects and mapping functions for
// courier persistence. The relational store is the source of truth for courier
// state; the search index is a mirror maintained elsewhere.
package courierrepo

import (
	"parcelmatch/internal/core/domain/model/courier"
	"parcelmatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting couriers.
// Position columns are nullable: a courier exists before its device first
// reports a location.
type CourierDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Lat         *float64  `gorm:"type:double precision"`
	Lon         *float64  `gorm:"type:double precision"`
	IsActive    bool      `gorm:"not null"`
	IsAvailable bool      `gorm:"not null"`
}

// TableName specifies the database table name for couriers.
func (CourierDTO) TableName() string {
	return "couriers"
}

func fromDomain(aggregate *courier.Courier) CourierDTO {
	dto := CourierDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		IsActive:    aggregate.IsActive(),
		IsAvailable: aggregate.IsAvailable(),
	}

	if loc := aggregate.Location(); loc != nil {
		lat, lon := loc.Latitude(), loc.Longitude()
		dto.Lat, dto.Lon = &lat, &lon
	}

	return dto
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Lat != nil && dto.Lon != nil {
		point, pErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lon)
		if pErr != nil {
			return nil, pErr
		}
		location = &point
	}

	return courier.RestoreCourier(id, dto.Name, location, dto.IsActive, dto.IsAvailable)
}
