package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/devlink/devlink/internal/config"
)

const (
	TopicProfileEvents = "profile.events"
)

type ProfileEventType string

const (
	ProfileEventTypeUpdated ProfileEventType = "profile.updated"
	ProfileEventTypeDeleted ProfileEventType = "profile.deleted"
)

// ProfileEventPayload is emitted on every profile mutation. The worker uses
// it to invalidate cached public reads.
type ProfileEventPayload struct {
	EventType ProfileEventType `json:"event_type"`
	UserID    uuid.UUID        `json:"user_id"`
	Handle    string           `json:"handle,omitempty"`
}

type KafkaProducerClient struct {
	ProfileEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	profileWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicProfileEvents,
		Balancer: &kafka.LeastBytes{},
	}

	fmt.Println("Initialize Kafka Producers successfully.")

	return &KafkaProducerClient{
		ProfileEventsWriter: profileWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishProfileEvent(ctx context.Context, payload ProfileEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("cannot marshal profile event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(payload.UserID.String()),
		Value: value,
	}

	if err := c.ProfileEventsWriter.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("cannot publish profile event: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.ProfileEventsWriter != nil {
		c.ProfileEventsWriter.Close()
	}
	fmt.Println("Closed Kafka Producers")
}
