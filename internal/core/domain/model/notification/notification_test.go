package notification_test

import (
	"testing"
	"time"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotification(t *testing.T) *notification.Notification {
	t.Helper()

	n, err := notification.NewNotification(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		notification.NewAnnouncement,
		"New delivery available!",
		"A delivery matches your position.",
	)
	require.NoError(t, err)
	return n
}

func TestNewNotification(t *testing.T) {
	t.Run("creates pending notification", func(t *testing.T) {
		n := newTestNotification(t)

		require.NoError(t, n.Validate())
		assert.Equal(t, notification.Pending, n.Status())
		assert.Equal(t, notification.NewAnnouncement, n.Kind())
		assert.False(t, n.CreatedAt().IsZero())
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := notification.NewNotification(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			notification.NewAnnouncement, "", "body")
		require.Error(t, err)
	})

	t.Run("rejects empty message", func(t *testing.T) {
		_, err := notification.NewNotification(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			notification.NewAnnouncement, "title", "")
		require.Error(t, err)
	})

	t.Run("rejects invalid recipient", func(t *testing.T) {
		var zero kernel.UUID
		_, err := notification.NewNotification(
			kernel.NewUUID(), zero, kernel.NewUUID(),
			notification.NewAnnouncement, "title", "body")
		require.Error(t, err)
	})
}

func TestNotification_StatusTransitions(t *testing.T) {
	t.Run("pending to sent to delivered to read", func(t *testing.T) {
		n := newTestNotification(t)

		require.NoError(t, n.MarkSent())
		assert.Equal(t, notification.Sent, n.Status())

		require.NoError(t, n.MarkDelivered())
		assert.Equal(t, notification.Delivered, n.Status())

		require.NoError(t, n.MarkRead())
		assert.Equal(t, notification.Read, n.Status())
	})

	t.Run("pending to failed", func(t *testing.T) {
		n := newTestNotification(t)

		require.NoError(t, n.MarkFailed())
		assert.Equal(t, notification.Failed, n.Status())
	})

	t.Run("failed cannot be sent", func(t *testing.T) {
		n := newTestNotification(t)

		require.NoError(t, n.MarkFailed())
		require.Error(t, n.MarkSent())
	})

	t.Run("pending cannot be delivered", func(t *testing.T) {
		n := newTestNotification(t)
		require.Error(t, n.MarkDelivered())
	})
}

func TestRestoreNotification(t *testing.T) {
	createdAt := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)

	n, err := notification.RestoreNotification(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		notification.NewAnnouncement, "title", "body",
		notification.Sent, createdAt)

	require.NoError(t, err)
	assert.Equal(t, notification.Sent, n.Status())
	assert.Equal(t, createdAt, n.CreatedAt())

	_, err = notification.RestoreNotification(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		notification.NewAnnouncement, "title", "body",
		notification.StatusUnknown, createdAt)
	require.Error(t, err)
}
