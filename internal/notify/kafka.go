package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/Dibek1910/Travel-Buddy/internal/domain"
)

// KafkaNotifier publishes lifecycle events to a Kafka topic, keyed by ride id
// so all events for one ride land on the same partition in order. A separate
// notification service consumes the topic and fans out to email/push.
type KafkaNotifier struct {
	writer *kafka.Writer
}

// NewKafkaNotifier constructs a KafkaNotifier producing to topic on brokers.
func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	})
	return &KafkaNotifier{writer: w}
}

// Notify publishes the event as a JSON message.
func (n *KafkaNotifier) Notify(ctx context.Context, event domain.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("notify.KafkaNotifier.Notify: marshal: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.RideID.String()),
		Value: value,
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("notify.KafkaNotifier.Notify: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (n *KafkaNotifier) Close() error {
	if n.writer == nil {
		return nil
	}
	return n.writer.Close()
}
