package queries

import (
	"errors"
	"time"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/guard"
)

var ErrGetCourierNotificationsQueryIsNotConstructed = errors.New(
	"GetCourierNotificationsQuery must be created via NewGetCourierNotificationsQuery constructor",
)

// GetCourierNotificationsQuery retrieves one courier's notification history,
// newest first. Backs the courier's notification feed in the mobile client.
type GetCourierNotificationsQuery struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCourierNotificationsQuery creates a query for a courier's notifications.
func NewGetCourierNotificationsQuery(courierID kernel.UUID) (GetCourierNotificationsQuery, error) {
	query := GetCourierNotificationsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setCourierID(courierID); err != nil {
		return GetCourierNotificationsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierNotificationsQueryIsNotConstructed)
}

// CourierID returns the courier whose notifications are requested.
func (q GetCourierNotificationsQuery) CourierID() kernel.UUID {
	return q.courierID
}

func (q *GetCourierNotificationsQuery) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	q.courierID = id
	return nil
}

// GetCourierNotificationsQueryResponse represents one notification in the read model.
type GetCourierNotificationsQueryResponse struct {
	ID             kernel.UUID
	AnnouncementID kernel.UUID
	Kind           string
	Title          string
	Message        string
	Status         string
	CreatedAt      time.Time
}
