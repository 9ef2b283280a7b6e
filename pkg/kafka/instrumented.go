package kafka

import (
	"context"
	"time"

	"github.com/mes-platform/production-service/pkg/events"
	"github.com/mes-platform/production-service/pkg/logging"
	"github.com/mes-platform/production-service/pkg/metrics"
)

// InstrumentedProducer wraps Producer with metrics and logging
type InstrumentedProducer struct {
	producer *Producer
	metrics  *metrics.Metrics
	logger   *logging.Logger
}

// NewInstrumentedProducer creates a producer that records publish metrics
func NewInstrumentedProducer(producer *Producer, m *metrics.Metrics, logger *logging.Logger) *InstrumentedProducer {
	return &InstrumentedProducer{
		producer: producer,
		metrics:  m,
		logger:   logger,
	}
}

// PublishEvent publishes an event envelope, recording duration and outcome
func (p *InstrumentedProducer) PublishEvent(ctx context.Context, topic string, event *events.Envelope) error {
	start := time.Now()
	err := p.producer.PublishEvent(ctx, topic, event)
	duration := time.Since(start)

	success := err == nil
	p.metrics.RecordKafkaPublish(topic, event.Type, success, duration)
	p.logger.KafkaPublish(ctx, topic, event.Type, success, duration)

	return err
}

// Close closes the underlying producer
func (p *InstrumentedProducer) Close() error {
	return p.producer.Close()
}
