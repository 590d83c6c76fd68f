package queries

import (
	"context"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCourierNotificationsQueryHandler retrieves a courier's notifications
// straight from the database. Uses direct SQL for optimal read performance
// in the CQRS pattern.
type GetCourierNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierNotificationsQueryHandler creates a handler for notification queries.
// Requires a GORM database connection for query execution.
func NewGetCourierNotificationsQueryHandler(db *gorm.DB) GetCourierNotificationsQueryHandler {
	return GetCourierNotificationsQueryHandler{db: db}
}

// Handle executes the query and returns the courier's notifications, newest first.
func (h GetCourierNotificationsQueryHandler) Handle(
	ctx context.Context,
	query GetCourierNotificationsQuery,
) ([]GetCourierNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	notifications := make([]GetCourierNotificationsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			announcement_id,
			kind,
			title,
			message,
			status,
			created_at
		FROM notifications
		WHERE courier_id = ?
		ORDER BY created_at DESC
	`, query.CourierID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetCourierNotificationsQueryResponse
		var id, announcementID uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&announcementID,
			&response.Kind,
			&response.Title,
			&response.Message,
			&status,
			&response.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		notificationID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = notificationID

		aboutID, idErr := kernel.UUIDFromBytes(announcementID[:])
		if idErr != nil {
			return nil, idErr
		}
		response.AnnouncementID = aboutID

		response.Status = notification.Status(status).String()

		notifications = append(notifications, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}
