// Package notificationrepo provides data transfer objects and mapping functions
// for notification persistence.
package notificationrepo

import (
	"time"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for persisting notifications.
type NotificationDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID      uuid.UUID `gorm:"type:uuid;not null;index"`
	AnnouncementID uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind           string    `gorm:"type:varchar(64);not null"`
	Title          string    `gorm:"type:varchar(255);not null"`
	Message        string    `gorm:"type:varchar(1024);not null"`
	Status         int       `gorm:"type:int;not null"`
	CreatedAt      time.Time `gorm:"not null"`
}

// TableName specifies the database table name for notifications.
func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(aggregate *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:             aggregate.ID().Bytes(),
		CourierID:      aggregate.CourierID().Bytes(),
		AnnouncementID: aggregate.AnnouncementID().Bytes(),
		Kind:           string(aggregate.Kind()),
		Title:          aggregate.Title(),
		Message:        aggregate.Message(),
		Status:         int(aggregate.Status()),
		CreatedAt:      aggregate.CreatedAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	announcementID, err := kernel.UUIDFromBytes(dto.AnnouncementID[:])
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(
		id,
		courierID,
		announcementID,
		notification.Type(dto.Kind),
		dto.Title,
		dto.Message,
		notification.Status(dto.Status),
		dto.CreatedAt,
	)
}
