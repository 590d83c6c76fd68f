// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/guard"
)

var ErrGetOpenAnnouncementsQueryIsNotConstructed = errors.New(
	"GetOpenAnnouncementsQuery must be created via NewGetOpenAnnouncementsQuery constructor",
)

// GetOpenAnnouncementsQuery retrieves every announcement still open to
// couriers, for client-facing listings.
//
// Example:
//
//	query := NewGetOpenAnnouncementsQuery()
//	handler := NewGetOpenAnnouncementsQueryHandler(db)
//
//	open, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve announcements: %w", err)
//	}
type GetOpenAnnouncementsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOpenAnnouncementsQuery creates a query to retrieve open announcements.
func NewGetOpenAnnouncementsQuery() GetOpenAnnouncementsQuery {
	return GetOpenAnnouncementsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOpenAnnouncementsQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenAnnouncementsQueryIsNotConstructed)
}

// GetOpenAnnouncementsQueryResponse represents one open announcement in the
// read model. Pickup and Delivery are nil when the client has not attached a
// route yet.
type GetOpenAnnouncementsQueryResponse struct {
	ID          kernel.UUID
	ClientID    kernel.UUID
	Description string
	WeightKg    float64
	Amount      float64
	Status      string
	Pickup      *kernel.GeoPoint
	Delivery    *kernel.GeoPoint
	CreatedAt   time.Time
}
