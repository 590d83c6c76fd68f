// Package ports defines repository and outbound interfaces for the parcel
// marketplace domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"parcelmatch/internal/core/domain/model/announcement"
	"parcelmatch/internal/core/domain/model/kernel"
)

// AnnouncementRepository defines the persistence contract for announcement
// aggregates. Provides methods for storing, retrieving, and querying
// announcements by their lifecycle status.
type AnnouncementRepository interface {
	// Add persists a new announcement aggregate to storage.
	// The announcement must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *announcement.Announcement) error

	// Update persists changes to an existing announcement aggregate.
	// The announcement must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *announcement.Announcement) error

	// Get retrieves an announcement aggregate by its unique identifier.
	// Returns the complete announcement with its current status and route.
	Get(ctx context.Context, id kernel.UUID) (*announcement.Announcement, error)

	// GetAllOpen retrieves all announcements still open for matching,
	// meaning in Published or InNegotiation status. Used by client-facing
	// listings and by the periodic rematch sweep.
	GetAllOpen(ctx context.Context) ([]*announcement.Announcement, error)
}
