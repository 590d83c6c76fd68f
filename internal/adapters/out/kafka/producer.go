package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"parcelmatch/internal/core/domain/model/announcement"
	"parcelmatch/internal/core/domain/model/kernel"

	"github.com/IBM/sarama"
)

// Topics names the streams the producer writes to.
type Topics struct {
	AnnouncementPublished string
	MatchingResults       string
	SubscriptionAttempts  string
}

// Producer implements the EventPublisher port on a Sarama sync producer.
// The hash partitioner plus the announcement-id key gives per-announcement
// ordering without any coordination between instances.
type Producer struct {
	producer sarama.SyncProducer
	topics   Topics
}

// seam for tests
var newSyncProducer = sarama.NewSyncProducer

// NewProducer connects a sync producer to the given brokers.
func NewProducer(brokers []string, topics Topics) (*Producer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Partitioner = sarama.NewHashPartitioner
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true

	producer, err := newSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect kafka producer: %w", err)
	}

	return NewProducerFromSync(producer, topics), nil
}

// NewProducerFromSync wraps an existing sync producer. Used by tests.
func NewProducerFromSync(producer sarama.SyncProducer, topics Topics) *Producer {
	return &Producer{producer: producer, topics: topics}
}

// PublishAnnouncementPublished announces a newly published announcement.
func (p *Producer) PublishAnnouncementPublished(ctx context.Context, aggregate *announcement.Announcement) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	event := AnnouncementPublishedEvent{
		AnnouncementID: aggregate.ID().String(),
		PublishedAt:    time.Now().UTC(),
	}

	return p.send(ctx, p.topics.AnnouncementPublished, aggregate.ID(), event)
}

// PublishCouriersMatched reports the couriers found for an announcement.
func (p *Producer) PublishCouriersMatched(
	ctx context.Context,
	announcementID kernel.UUID,
	courierIDs []kernel.UUID,
) error {
	if err := announcementID.Validate(); err != nil {
		return err
	}

	ids := make([]string, 0, len(courierIDs))
	for _, id := range courierIDs {
		if err := id.Validate(); err != nil {
			return err
		}
		ids = append(ids, id.String())
	}

	event := CouriersMatchedEvent{
		AnnouncementID: announcementID.String(),
		CourierIDs:     ids,
		MatchedAt:      time.Now().UTC(),
	}

	return p.send(ctx, p.topics.MatchingResults, announcementID, event)
}

// PublishSubscriptionRequested forwards a courier's subscription attempt.
func (p *Producer) PublishSubscriptionRequested(
	ctx context.Context,
	announcementID kernel.UUID,
	courierID kernel.UUID,
) error {
	if err := announcementID.Validate(); err != nil {
		return err
	}
	if err := courierID.Validate(); err != nil {
		return err
	}

	event := SubscriptionRequestedEvent{
		AnnouncementID: announcementID.String(),
		CourierID:      courierID.String(),
		RequestedAt:    time.Now().UTC(),
	}

	return p.send(ctx, p.topics.SubscriptionAttempts, announcementID, event)
}

// Close releases the underlying producer.
func (p *Producer) Close() error {
	return p.producer.Close()
}

func (p *Producer) send(ctx context.Context, topic string, key kernel.UUID, event any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event for %s: %w", topic, err)
	}

	message := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key.String()),
		Value: sarama.ByteEncoder(payload),
	}

	if _, _, err := p.producer.SendMessage(message); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}

	return nil
}
