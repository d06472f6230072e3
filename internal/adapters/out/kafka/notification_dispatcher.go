// Package kafka provides the Kafka-backed implementation of the notification
// dispatcher. Client notifications are published as JSON envelopes keyed by
// shipment ID, so all notifications for one shipment land on the same
// partition in order.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"shipping/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// DefaultTopic is the topic notifications are published to when the caller
// does not configure one.
const DefaultTopic = "shipment-notifications"

// messageWriter is the subset of kafka.Writer the dispatcher relies on.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// notificationEnvelope is the wire format of a published notification.
type notificationEnvelope struct {
	ShipmentID string    `json:"shipment_id"`
	Kind       string    `json:"kind"`
	Recipient  string    `json:"recipient"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

// KafkaNotificationDispatcher implements ports.NotificationDispatcher by
// publishing notifications to a Kafka topic.
type KafkaNotificationDispatcher struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

// NewKafkaNotificationDispatcher creates a dispatcher publishing to the given
// topic on the given brokers. An empty topic falls back to DefaultTopic.
//
// The writer runs in async mode: Dispatch enqueues the message and returns
// without waiting for broker acknowledgement, so the business operation that
// produced the notification never blocks on Kafka. Delivery failures surface
// through the writer's completion callback and are logged.
func NewKafkaNotificationDispatcher(brokers []string, topic string, logger *slog.Logger) *KafkaNotificationDispatcher {
	if topic == "" {
		topic = DefaultTopic
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err == nil {
				return
			}
			for _, msg := range messages {
				logger.Error("failed to publish notification",
					slog.String("topic", msg.Topic),
					slog.String("shipment_id", string(msg.Key)),
					slog.String("error", err.Error()),
				)
			}
		},
	}

	return &KafkaNotificationDispatcher{
		writer: writer,
		topic:  topic,
		logger: logger,
	}
}

// Dispatch publishes one notification. With the async writer this only
// enqueues the message; a returned error reports an enqueue failure, while
// broker-side delivery failures are logged by the completion callback.
// Callers treat notifications as fire-and-forget either way.
func (d *KafkaNotificationDispatcher) Dispatch(ctx context.Context, notification ports.Notification) error {
	data, err := json.Marshal(notificationEnvelope{
		ShipmentID: notification.ShipmentID.String(),
		Kind:       notification.Kind,
		Recipient:  notification.Recipient,
		Message:    notification.Message,
		OccurredAt: notification.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	msg := kafka.Message{
		Topic: d.topic,
		Key:   []byte(notification.ShipmentID.String()),
		Value: data,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(notification.Kind)},
		},
	}

	if err := d.writer.WriteMessages(ctx, msg); err != nil {
		d.logger.ErrorContext(ctx, "failed to publish notification",
			slog.String("topic", d.topic),
			slog.String("kind", notification.Kind),
			slog.String("shipment_id", notification.ShipmentID.String()),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("publish notification to %s: %w", d.topic, err)
	}

	d.logger.DebugContext(ctx, "notification published",
		slog.String("topic", d.topic),
		slog.String("kind", notification.Kind),
		slog.String("shipment_id", notification.ShipmentID.String()),
	)

	return nil
}

// Close closes the underlying writer and flushes pending messages.
func (d *KafkaNotificationDispatcher) Close() error {
	return d.writer.Close()
}
