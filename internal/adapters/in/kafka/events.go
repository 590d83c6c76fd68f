package kafka

import "time"

// Courier lifecycle event kinds published by the courier platform.
const (
	CourierCreated          = "created"
	CourierLocationReported = "location_reported"
)

// AnnouncementPublishedEvent signals that an announcement became open for matching.
type AnnouncementPublishedEvent struct {
	AnnouncementID string    `json:"announcement_id"`
	PublishedAt    time.Time `json:"published_at"`
}

// CouriersMatchedEvent carries the couriers a matching sweep found.
type CouriersMatchedEvent struct {
	AnnouncementID string    `json:"announcement_id"`
	CourierIDs     []string  `json:"courier_ids"`
	MatchedAt      time.Time `json:"matched_at"`
}

// SubscriptionRequestedEvent carries a courier's attempt to take an announcement.
type SubscriptionRequestedEvent struct {
	AnnouncementID string    `json:"announcement_id"`
	CourierID      string    `json:"courier_id"`
	RequestedAt    time.Time `json:"requested_at"`
}

// CourierLifecycleEvent mirrors courier platform events: registration and
// position reports. Coordinates are optional for created events.
type CourierLifecycleEvent struct {
	CourierID string   `json:"courier_id"`
	Kind      string   `json:"kind"`
	Name      string   `json:"name,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}
