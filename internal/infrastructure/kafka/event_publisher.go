package kafka

import (
	"context"
	"fmt"

	"github.com/mes-platform/production-service/internal/domain"
	"github.com/mes-platform/production-service/pkg/events"
	"github.com/mes-platform/production-service/pkg/kafka"
)

// EventPublisher implements domain.EventPublisher using Kafka. Run
// events go to the run topic; everything else is a job lifecycle event.
type EventPublisher struct {
	producer     *kafka.InstrumentedProducer
	eventFactory *events.Factory
}

// NewEventPublisher creates a new Kafka-based event publisher
func NewEventPublisher(producer *kafka.InstrumentedProducer, eventFactory *events.Factory) *EventPublisher {
	return &EventPublisher{
		producer:     producer,
		eventFactory: eventFactory,
	}
}

// Publish publishes a single domain event to Kafka
func (p *EventPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	envelope := p.eventFactory.New(event.EventType(), subjectFor(event), event)

	if err := p.producer.PublishEvent(ctx, topicFor(event), envelope); err != nil {
		return fmt.Errorf("failed to publish event to kafka: %w", err)
	}
	return nil
}

// PublishAll publishes multiple domain events to Kafka
func (p *EventPublisher) PublishAll(ctx context.Context, events []domain.DomainEvent) error {
	for _, event := range events {
		if err := p.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

func topicFor(event domain.DomainEvent) string {
	if _, ok := event.(*domain.RunRecordedEvent); ok {
		return kafka.Topics.RunEvents
	}
	return kafka.Topics.JobEvents
}

func subjectFor(event domain.DomainEvent) string {
	switch e := event.(type) {
	case *domain.JobCreatedEvent:
		return "job/" + e.JobID
	case *domain.JobReleasedEvent:
		return "job/" + e.JobID
	case *domain.JobStatusChangedEvent:
		return "job/" + e.JobID
	case *domain.StageAdvancedEvent:
		return "job/" + e.JobID
	case *domain.JobCompletedEvent:
		return "job/" + e.JobID
	case *domain.JobCancelledEvent:
		return "job/" + e.JobID
	case *domain.RunRecordedEvent:
		return "run/" + e.RunID
	default:
		return ""
	}
}
