// Package elasticsearch implements the primary geo index on top of an
// Elasticsearch cluster. Courier documents carry the last reported position
// as a geo_point field, which makes the radius pre-filter a single
// geo_distance query.
package elasticsearch

import (
	"parcelmatch/internal/core/domain/model/courier"
	"parcelmatch/internal/core/domain/model/kernel"
)

// CourierDocument is the index representation of a courier.
type CourierDocument struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Location    *GeoPointDoc `json:"location,omitempty"`
	IsActive    bool         `json:"is_active"`
	IsAvailable bool         `json:"is_available"`
}

// GeoPointDoc is the geo_point field layout Elasticsearch expects.
type GeoPointDoc struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func documentFromDomain(aggregate *courier.Courier) CourierDocument {
	doc := CourierDocument{
		ID:          aggregate.ID().String(),
		Name:        aggregate.Name(),
		IsActive:    aggregate.IsActive(),
		IsAvailable: aggregate.IsAvailable(),
	}

	if location := aggregate.Location(); location != nil {
		doc.Location = &GeoPointDoc{
			Lat: location.Latitude(),
			Lon: location.Longitude(),
		}
	}

	return doc
}

func documentToDomain(doc CourierDocument) (*courier.Courier, error) {
	id, err := kernel.UUIDFromString(doc.ID)
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if doc.Location != nil {
		point, err := kernel.NewGeoPoint(doc.Location.Lat, doc.Location.Lon)
		if err != nil {
			return nil, err
		}
		location = &point
	}

	return courier.RestoreCourier(id, doc.Name, location, doc.IsActive, doc.IsAvailable)
}
