// Package kafka consumes integration events from the message bus and turns
// them into command handler calls. One consumer group per topic; partition
// assignment plus announcement-id message keys give single-writer ordering
// for each announcement's event stream.
package kafka

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/IBM/sarama"
)

// HandleFunc processes a single consumed message. A returned error means the
// message could not be handled; the consumer logs it and moves on, it never
// wedges the partition on a poison message.
type HandleFunc func(ctx context.Context, message *sarama.ConsumerMessage) error

// Consumer wraps a Sarama consumer group for one topic.
type Consumer struct {
	group   sarama.ConsumerGroup
	topic   string
	handler HandleFunc
	log     *slog.Logger
}

// seam for tests
var newConsumerGroup = sarama.NewConsumerGroup

// NewConsumer creates a consumer for one topic. Returns (nil, nil) when the
// bus is not configured, so callers can treat the consumer as optional.
func NewConsumer(log *slog.Logger, brokers []string, groupID, topic string, handler HandleFunc) (*Consumer, error) {
	if len(brokers) == 0 || strings.TrimSpace(groupID) == "" || strings.TrimSpace(topic) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	group, err := newConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:   group,
		topic:   topic,
		handler: handler,
		log:     log.With("component", "kafka_consumer", "topic", topic),
	}, nil
}

// Run consumes until the context is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	if c == nil {
		return nil
	}

	h := &groupHandler{c: c}

	for {
		if err := c.group.Consume(ctx, []string{c.topic}, h); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.ErrorContext(ctx, "consume error", "error", err)
			time.Sleep(time.Second)
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Close shuts down the consumer group.
func (c *Consumer) Close() error {
	if c == nil {
		return nil
	}
	return c.group.Close()
}

type groupHandler struct{ c *Consumer }

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim marks every handled message exactly once. Handler errors are
// logged and the message is marked anyway; redelivery semantics for transient
// failures live inside the handlers themselves. The one exception is session
// shutdown: a handler interrupted by the session context returns with its
// work unfinished, and marking then would acknowledge a message nobody
// processed. Such messages stay unmarked and are redelivered after rebalance.
func (h *groupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		err := h.c.handler(sess.Context(), msg)
		if err == nil {
			sess.MarkMessage(msg, "")
			continue
		}

		if sess.Context().Err() != nil {
			h.c.log.InfoContext(sess.Context(), "session closed during handling, leaving message for redelivery",
				"partition", msg.Partition,
				"offset", msg.Offset,
			)
			return nil
		}

		h.c.log.ErrorContext(sess.Context(), "handle failed, skipping message",
			"partition", msg.Partition,
			"offset", msg.Offset,
			"error", err,
		)
		sess.MarkMessage(msg, "")
	}
	return nil
}
