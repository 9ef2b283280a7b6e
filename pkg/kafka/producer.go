package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/mes-platform/production-service/pkg/events"
)

// Producer handles publishing messages to Kafka topics
type Producer struct {
	mu      sync.Mutex
	writers map[string]*kafka.Writer
	config  *Config
}

// NewProducer creates a new Kafka producer
func NewProducer(config *Config) *Producer {
	return &Producer{
		writers: make(map[string]*kafka.Writer),
		config:  config,
	}
}

// getWriter returns a writer for the specified topic, creating one if necessary
func (p *Producer) getWriter(topic string) *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if writer, exists := p.writers[topic]; exists {
		return writer
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(p.config.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    p.config.BatchSize,
		BatchTimeout: p.config.BatchTimeout,
		RequiredAcks: kafka.RequiredAcks(p.config.RequiredAcks),
		Async:        false,
	}

	p.writers[topic] = writer
	return writer
}

// PublishEvent publishes an event envelope to the specified topic
func (p *Producer) PublishEvent(ctx context.Context, topic string, event *events.Envelope) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	writer := p.getWriter(topic)

	msg := kafka.Message{
		Key:   []byte(event.Subject),
		Value: data,
		Headers: []kafka.Header{
			{Key: "ce-specversion", Value: []byte(event.SpecVersion)},
			{Key: "ce-type", Value: []byte(event.Type)},
			{Key: "ce-source", Value: []byte(event.Source)},
			{Key: "ce-id", Value: []byte(event.ID)},
			{Key: "ce-time", Value: []byte(event.Time.Format(time.RFC3339))},
			{Key: "content-type", Value: []byte(event.DataContentType)},
		},
		Time: event.Time,
	}

	if event.CorrelationID != "" {
		msg.Headers = append(msg.Headers, kafka.Header{
			Key:   "ce-mescorrelationid",
			Value: []byte(event.CorrelationID),
		})
	}

	if event.JobID != "" {
		msg.Headers = append(msg.Headers, kafka.Header{
			Key:   "ce-mesjobid",
			Value: []byte(event.JobID),
		})
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to topic %s: %w", topic, err)
	}

	return nil
}

// Close closes all topic writers
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, writer := range p.writers {
		if err := writer.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close writer for topic %s: %w", topic, err)
		}
	}
	p.writers = make(map[string]*kafka.Writer)

	return firstErr
}
