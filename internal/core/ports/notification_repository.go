package ports

import (
	"context"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for notifications.
type NotificationRepository interface {
	// Add persists a new notification.
	Add(ctx context.Context, aggregate *notification.Notification) error

	// Update persists changes to an existing notification.
	Update(ctx context.Context, aggregate *notification.Notification) error

	// Get retrieves a notification by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// GetAllByCourier retrieves a courier's notifications, newest first.
	GetAllByCourier(ctx context.Context, courierID kernel.UUID) ([]*notification.Notification, error)
}
