package ports

import (
	"context"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/notification"
)

// EmailSender delivers a notification to a courier over email.
// Email is a best-effort side channel: failures are logged and counted but
// never fail the dispatch that triggered them.
type EmailSender interface {
	Send(ctx context.Context, courierID kernel.UUID, n *notification.Notification) error
}

// PushSender delivers a notification to a courier's device.
// Push is a best-effort side channel, same contract as EmailSender.
type PushSender interface {
	Push(ctx context.Context, courierID kernel.UUID, n *notification.Notification) error
}

// StreamPusher fans a notification out to a courier's live event streams.
// Pushing to a courier with no open stream is a no-op.
type StreamPusher interface {
	Push(courierID kernel.UUID, n *notification.Notification)
}
