// Package realtime fans dispatched notifications out to couriers' live event
// streams. The hub keeps one set of subscribers per courier; the HTTP layer
// turns each subscriber channel into a server-sent event stream.
package realtime

import (
	"errors"
	"log/slog"
	"sync"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/notification"
)

// DefaultBufferSize is the per-subscriber channel capacity.
const DefaultBufferSize = 16

// ErrHubClosed is returned when subscribing to a hub that has shut down.
var ErrHubClosed = errors.New("stream hub is closed")

// Subscription is one courier's live stream. Events arrives on C; Cancel
// detaches the subscription and closes C. Cancel is idempotent.
type Subscription struct {
	C      <-chan *notification.Notification
	cancel func()
}

// Cancel detaches the subscription from the hub and closes C.
func (s *Subscription) Cancel() {
	s.cancel()
}

// Hub routes notifications to open courier streams.
//
// Delivery is best-effort: a subscriber that cannot keep up has events
// dropped rather than blocking dispatch, and a courier with no open stream
// costs nothing. The durable notification store remains the source of truth.
type Hub struct {
	mu         sync.RWMutex
	streams    map[kernel.UUID]map[chan *notification.Notification]struct{}
	closed     bool
	bufferSize int
	log        *slog.Logger
}

// NewHub creates a stream hub with the given per-subscriber buffer size.
// A non-positive size falls back to DefaultBufferSize.
func NewHub(bufferSize int, log *slog.Logger) *Hub {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	return &Hub{
		streams:    make(map[kernel.UUID]map[chan *notification.Notification]struct{}),
		bufferSize: bufferSize,
		log:        log.With("component", "stream_hub"),
	}
}

// Subscribe opens a live stream for the courier. Multiple concurrent
// subscriptions per courier are allowed; each gets its own channel.
func (h *Hub) Subscribe(courierID kernel.UUID) (*Subscription, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}

	ch := make(chan *notification.Notification, h.bufferSize)
	if _, ok := h.streams[courierID]; !ok {
		h.streams[courierID] = make(map[chan *notification.Notification]struct{})
	}
	h.streams[courierID][ch] = struct{}{}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.detach(courierID, ch)
		})
	}

	return &Subscription{C: ch, cancel: cancel}, nil
}

// Push delivers a notification to every open stream of the courier.
// Streams with a full buffer are skipped.
func (h *Hub) Push(courierID kernel.UUID, n *notification.Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}

	for ch := range h.streams[courierID] {
		select {
		case ch <- n:
		default:
			h.log.Warn("stream buffer full, event dropped",
				"courier_id", courierID.String())
		}
	}
}

// Close shuts the hub down, closing every subscriber channel.
// Subsequent Subscribe calls fail with ErrHubClosed; Push becomes a no-op.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for _, subs := range h.streams {
		for ch := range subs {
			close(ch)
		}
	}
	h.streams = make(map[kernel.UUID]map[chan *notification.Notification]struct{})
}

func (h *Hub) detach(courierID kernel.UUID, ch chan *notification.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}

	subs, ok := h.streams[courierID]
	if !ok {
		return
	}

	if _, ok = subs[ch]; !ok {
		return
	}

	delete(subs, ch)
	if len(subs) == 0 {
		delete(h.streams, courierID)
	}
	close(ch)
}
