package kafka

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	ctx context.Context

	mu     sync.Mutex
	marked int
}

func (s *fakeSession) Context() context.Context { return s.ctx }

func (s *fakeSession) MarkMessage(*sarama.ConsumerMessage, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked++
}

func (s *fakeSession) MarkOffset(string, int32, int64, string)  {}
func (s *fakeSession) Commit()                                  {}
func (s *fakeSession) ResetOffset(string, int32, int64, string) {}
func (s *fakeSession) Claims() map[string][]int32               { return nil }
func (s *fakeSession) MemberID() string                         { return "" }
func (s *fakeSession) GenerationID() int32                      { return 0 }

func (s *fakeSession) MarkedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marked
}

type fakeClaim struct {
	ch chan *sarama.ConsumerMessage
}

func (c fakeClaim) Topic() string              { return "t" }
func (c fakeClaim) Partition() int32           { return 0 }
func (c fakeClaim) InitialOffset() int64       { return 0 }
func (c fakeClaim) HighWaterMarkOffset() int64 { return 0 }
func (c fakeClaim) Messages() <-chan *sarama.ConsumerMessage {
	return c.ch
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestNewConsumer_SkipsWhenNoBusConfig(t *testing.T) {
	t.Parallel()

	noop := func(context.Context, *sarama.ConsumerMessage) error { return nil }

	got, err := NewConsumer(discardLogger(), nil, "gid", "topic", noop)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = NewConsumer(discardLogger(), []string{"b:9092"}, "", "topic", noop)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = NewConsumer(discardLogger(), []string{"b:9092"}, "gid", "   ", noop)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestNewConsumer_ReturnsErrorWhenSaramaFails(t *testing.T) {
	t.Parallel()

	orig := newConsumerGroup
	t.Cleanup(func() { newConsumerGroup = orig })

	sentinel := errors.New("boom")
	newConsumerGroup = func(_ []string, _ string, _ *sarama.Config) (sarama.ConsumerGroup, error) {
		return nil, sentinel
	}

	got, err := NewConsumer(discardLogger(), []string{"b:9092"}, "gid", "topic", nil)
	require.ErrorIs(t, err, sentinel)
	require.Nil(t, got)
}

func TestConsumeClaim_Success_Marks(t *testing.T) {
	t.Parallel()

	calls := 0
	c := &Consumer{
		log: discardLogger(),
		handler: func(_ context.Context, msg *sarama.ConsumerMessage) error {
			calls++
			require.Equal(t, []byte("payload"), msg.Value)
			return nil
		},
	}
	h := &groupHandler{c: c}

	sess := &fakeSession{ctx: context.Background()}
	msgCh := make(chan *sarama.ConsumerMessage, 1)
	msgCh <- &sarama.ConsumerMessage{Value: []byte("payload")}
	close(msgCh)

	err := h.ConsumeClaim(sess, fakeClaim{ch: msgCh})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.Equal(t, 1, sess.MarkedCount())
}

func TestConsumeClaim_HandlerError_SkipsButMarks(t *testing.T) {
	t.Parallel()

	c := &Consumer{
		log: discardLogger(),
		handler: func(context.Context, *sarama.ConsumerMessage) error {
			return errors.New("boom")
		},
	}
	h := &groupHandler{c: c}

	sess := &fakeSession{ctx: context.Background()}
	msgCh := make(chan *sarama.ConsumerMessage, 2)
	msgCh <- &sarama.ConsumerMessage{Value: []byte("first")}
	msgCh <- &sarama.ConsumerMessage{Value: []byte("second")}
	close(msgCh)

	err := h.ConsumeClaim(sess, fakeClaim{ch: msgCh})
	require.NoError(t, err)
	require.Equal(t, 2, sess.MarkedCount(), "poison messages must not wedge the partition")
}

func TestConsumeClaim_SessionCancelled_LeavesMessageUnmarked(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	c := &Consumer{
		log: discardLogger(),
		handler: func(ctx context.Context, _ *sarama.ConsumerMessage) error {
			// Shutdown hits while the handler is mid-flight, e.g. waiting
			// between matching rounds.
			cancel()
			return ctx.Err()
		},
	}
	h := &groupHandler{c: c}

	sess := &fakeSession{ctx: ctx}
	msgCh := make(chan *sarama.ConsumerMessage, 2)
	msgCh <- &sarama.ConsumerMessage{Value: []byte("interrupted")}
	msgCh <- &sarama.ConsumerMessage{Value: []byte("never reached")}
	close(msgCh)

	err := h.ConsumeClaim(sess, fakeClaim{ch: msgCh})
	require.NoError(t, err)
	require.Equal(t, 0, sess.MarkedCount(),
		"a message interrupted by shutdown must be redelivered, not acknowledged")
}
