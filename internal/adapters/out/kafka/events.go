// Package kafka publishes integration events to the message bus. Every
// message is keyed by the announcement id so that all events about one
// announcement serialize onto a single partition.
package kafka

import "time"

// AnnouncementPublishedEvent signals that an announcement became open for
// matching. Consumed by the matching pipeline.
type AnnouncementPublishedEvent struct {
	AnnouncementID string    `json:"announcement_id"`
	PublishedAt    time.Time `json:"published_at"`
}

// CouriersMatchedEvent carries the couriers an expansion sweep found for an
// announcement. Consumed by the notification dispatcher.
type CouriersMatchedEvent struct {
	AnnouncementID string    `json:"announcement_id"`
	CourierIDs     []string  `json:"courier_ids"`
	MatchedAt      time.Time `json:"matched_at"`
}

// SubscriptionRequestedEvent carries a courier's wish to take an announcement
// into the arbitration stream.
type SubscriptionRequestedEvent struct {
	AnnouncementID string    `json:"announcement_id"`
	CourierID      string    `json:"courier_id"`
	RequestedAt    time.Time `json:"requested_at"`
}
