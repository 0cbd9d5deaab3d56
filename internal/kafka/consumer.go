package kafka

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// EventHandler processes one decoded reservation event.
type EventHandler func(ctx context.Context, event ReservationEvent) error

// Consumer reads reservation events off a topic and hands them, decoded, to
// an EventHandler. A malformed payload is logged and skipped so one bad
// message cannot wedge the whole group.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        brokers,
			GroupID:        groupID,
			Topic:          topic,
			MinBytes:       1,
			MaxBytes:       1e6,
			CommitInterval: time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

func (c *Consumer) Consume(ctx context.Context, handler EventHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		event, err := decodeEvent(msg.Value)
		if err != nil {
			log.Printf("skip malformed event at %s/%d/%d: %v", msg.Topic, msg.Partition, msg.Offset, err)
			continue
		}

		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}

func decodeEvent(value []byte) (ReservationEvent, error) {
	var event ReservationEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return ReservationEvent{}, err
	}
	return event, nil
}
