package ports

import (
	"context"

	"parcelmatch/internal/core/domain/model/courier"
	"parcelmatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
// The relational store is the source of truth for courier state; the search
// index mirrors it and may lag behind.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	// The courier must be valid and not already exist in the repository.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	// The courier must exist in the repository and be valid.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllMatchable retrieves all couriers that can participate in
	// matching: active, available, and with a known position. This is the
	// fallback candidate source when the search index is unreachable.
	GetAllMatchable(ctx context.Context) ([]*courier.Courier, error)
}
