package queries

import (
	"context"
	"database/sql"

	"parcelmatch/internal/core/domain/model/announcement"
	"parcelmatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOpenAnnouncementsQueryHandler retrieves open announcements straight from
// the database. Uses direct SQL for optimal read performance in the CQRS pattern.
type GetOpenAnnouncementsQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenAnnouncementsQueryHandler creates a handler for open announcement queries.
// Requires a GORM database connection for query execution.
func NewGetOpenAnnouncementsQueryHandler(db *gorm.DB) GetOpenAnnouncementsQueryHandler {
	return GetOpenAnnouncementsQueryHandler{db: db}
}

// Handle executes the query and returns open announcements, newest first.
func (h GetOpenAnnouncementsQueryHandler) Handle(
	ctx context.Context,
	query GetOpenAnnouncementsQuery,
) ([]GetOpenAnnouncementsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	announcements := make([]GetOpenAnnouncementsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			client_id,
			description,
			weight_kg,
			amount,
			status,
			pickup_lat,
			pickup_lon,
			delivery_lat,
			delivery_lon,
			created_at
		FROM announcements
		WHERE status IN (?, ?)
		ORDER BY created_at DESC
	`, int(announcement.Published), int(announcement.InNegotiation)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetOpenAnnouncementsQueryResponse
		var id, clientID uuid.UUID
		var status int
		var pickupLat, pickupLon, deliveryLat, deliveryLon sql.NullFloat64

		err = rows.Scan(
			&id,
			&clientID,
			&response.Description,
			&response.WeightKg,
			&response.Amount,
			&status,
			&pickupLat,
			&pickupLon,
			&deliveryLat,
			&deliveryLon,
			&response.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		announcementID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = announcementID

		ownerID, idErr := kernel.UUIDFromBytes(clientID[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ClientID = ownerID

		response.Status = announcement.Status(status).String()

		if pickupLat.Valid && pickupLon.Valid {
			pickup, pErr := kernel.NewGeoPoint(pickupLat.Float64, pickupLon.Float64)
			if pErr != nil {
				return nil, pErr
			}
			response.Pickup = &pickup
		}

		if deliveryLat.Valid && deliveryLon.Valid {
			delivery, dErr := kernel.NewGeoPoint(deliveryLat.Float64, deliveryLon.Float64)
			if dErr != nil {
				return nil, dErr
			}
			response.Delivery = &delivery
		}

		announcements = append(announcements, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return announcements, nil
}
