package ports

import (
	"context"

	"parcelmatch/internal/core/domain/model/courier"
	"parcelmatch/internal/core/domain/model/kernel"
)

// GeoIndex is the candidate source for courier matching: a geo-queryable view
// of matchable couriers. The primary implementation is backed by a search
// index; a relational fallback serves when the index is unreachable.
//
// Implementations only pre-filter by radius. The detour-ellipse check is the
// caller's job, so returning a superset of the truly eligible couriers is fine.
type GeoIndex interface {
	// FindCandidates returns matchable couriers within radiusKm of center.
	// Returned couriers may be slightly stale relative to the relational
	// store; callers must re-check matchability before acting on them.
	FindCandidates(ctx context.Context, center kernel.GeoPoint, radiusKm float64) ([]*courier.Courier, error)

	// Index writes or refreshes a courier document in the index.
	Index(ctx context.Context, courier *courier.Courier) error

	// Remove deletes a courier document from the index. Removing an absent
	// document is not an error.
	Remove(ctx context.Context, id kernel.UUID) error
}
