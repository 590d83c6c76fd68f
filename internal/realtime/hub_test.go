package realtime_test

import (
	"log/slog"
	"testing"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/notification"
	"parcelmatch/internal/realtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(bufferSize int) *realtime.Hub {
	return realtime.NewHub(bufferSize, slog.New(slog.DiscardHandler))
}

func newStreamNotification(t *testing.T, courierID kernel.UUID) *notification.Notification {
	t.Helper()

	n, err := notification.NewNotification(
		kernel.NewUUID(), courierID, kernel.NewUUID(),
		notification.NewAnnouncement, "title", "body")
	require.NoError(t, err)
	return n
}

func TestHub_PushReachesSubscriber(t *testing.T) {
	hub := newTestHub(0)
	defer hub.Close()

	courierID := kernel.NewUUID()

	sub, err := hub.Subscribe(courierID)
	require.NoError(t, err)
	defer sub.Cancel()

	n := newStreamNotification(t, courierID)
	hub.Push(courierID, n)

	select {
	case got := <-sub.C:
		assert.True(t, got.ID().IsEqual(n.ID()))
	default:
		t.Fatal("expected a buffered event")
	}
}

func TestHub_PushToUnknownCourierIsNoop(t *testing.T) {
	hub := newTestHub(0)
	defer hub.Close()

	hub.Push(kernel.NewUUID(), newStreamNotification(t, kernel.NewUUID()))
}

func TestHub_MultipleStreamsPerCourier(t *testing.T) {
	hub := newTestHub(0)
	defer hub.Close()

	courierID := kernel.NewUUID()

	first, err := hub.Subscribe(courierID)
	require.NoError(t, err)
	second, err := hub.Subscribe(courierID)
	require.NoError(t, err)

	hub.Push(courierID, newStreamNotification(t, courierID))

	assert.Len(t, first.C, 1)
	assert.Len(t, second.C, 1)
}

func TestHub_FullBufferDropsEvent(t *testing.T) {
	hub := newTestHub(1)
	defer hub.Close()

	courierID := kernel.NewUUID()

	sub, err := hub.Subscribe(courierID)
	require.NoError(t, err)

	hub.Push(courierID, newStreamNotification(t, courierID))
	hub.Push(courierID, newStreamNotification(t, courierID))

	// Second event is dropped, dispatch never blocks.
	assert.Len(t, sub.C, 1)
}

func TestHub_CancelClosesChannel(t *testing.T) {
	hub := newTestHub(0)
	defer hub.Close()

	courierID := kernel.NewUUID()

	sub, err := hub.Subscribe(courierID)
	require.NoError(t, err)

	sub.Cancel()
	sub.Cancel() // idempotent

	_, open := <-sub.C
	assert.False(t, open)

	// Pushing after cancel must not panic.
	hub.Push(courierID, newStreamNotification(t, courierID))
}

func TestHub_SubscribeRejectsInvalidCourier(t *testing.T) {
	hub := newTestHub(0)
	defer hub.Close()

	var zero kernel.UUID
	_, err := hub.Subscribe(zero)
	require.Error(t, err)
}

func TestHub_Close(t *testing.T) {
	hub := newTestHub(0)

	courierID := kernel.NewUUID()
	sub, err := hub.Subscribe(courierID)
	require.NoError(t, err)

	hub.Close()
	hub.Close() // idempotent

	_, open := <-sub.C
	assert.False(t, open)

	_, err = hub.Subscribe(courierID)
	require.ErrorIs(t, err, realtime.ErrHubClosed)

	// Cancel after close must not panic on the already-closed channel.
	sub.Cancel()
}
