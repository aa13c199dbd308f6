package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"listingmanager/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the publisher uses
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// kafkaPublisher implements EventPublisher on a Kafka topic, keyed by device
// so events for one device stay ordered within a partition
type kafkaPublisher struct {
	writer messageWriter
	logger *slog.Logger
}

// NewKafkaPublisher creates a publisher writing to topic on brokers
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) service.EventPublisher {
	logger.Info("Kafka publisher initialized",
		slog.Any("brokers", brokers),
		slog.String("topic", topic),
	)

	return &kafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
		logger: logger,
	}
}

// PublishLifecycleEvent writes one message per event
func (p *kafkaPublisher) PublishLifecycleEvent(ctx context.Context, event *service.LifecycleEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	headers := make([]kafka.Header, 0, 4)
	for k, v := range eventAttributes(event) {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(event.DeviceID),
		Value:   value,
		Headers: headers,
		Time:    time.Now(),
	}); err != nil {
		return errors.Wrap(err, "write kafka message")
	}

	p.logger.Debug("[Kafka] Event published",
		slog.String("event_type", event.Type),
		slog.String("device_id", event.DeviceID),
	)

	return nil
}

// Close flushes pending writes and closes the writer
func (p *kafkaPublisher) Close() error {
	return errors.WithStack(p.writer.Close())
}
