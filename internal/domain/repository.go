package domain

import (
	"context"
	"time"
)

// JobRepository defines the interface for job persistence
type JobRepository interface {
	// Save persists a job (create or update)
	Save(ctx context.Context, job *Job) error

	// FindByID retrieves a job by its ID
	FindByID(ctx context.Context, jobID string) (*Job, error)

	// FindAll retrieves every job in the workspace snapshot
	FindAll(ctx context.Context) ([]*Job, error)

	// FindByStatus retrieves jobs by status
	FindByStatus(ctx context.Context, status JobStatus) ([]*Job, error)

	// FindByDateRange retrieves jobs created within a date range
	FindByDateRange(ctx context.Context, start, end time.Time) ([]*Job, error)

	// Delete removes a job
	Delete(ctx context.Context, jobID string) error

	// Count returns the number of jobs matching a status
	Count(ctx context.Context, status JobStatus) (int64, error)
}

// ProductionRunRepository persists the append-only run log
type ProductionRunRepository interface {
	// Insert appends a run fact; runs are never updated or deleted
	Insert(ctx context.Context, run *ProductionRun) error

	// FindByJob retrieves runs for a job, newest first
	FindByJob(ctx context.Context, jobID string) ([]*ProductionRun, error)

	// FindByJobAndStage retrieves runs for a job at a specific stage
	FindByJobAndStage(ctx context.Context, jobID, stageID string) ([]*ProductionRun, error)
}

// WorkflowRepository supplies the read-only workflow catalog
type WorkflowRepository interface {
	Save(ctx context.Context, workflow *Workflow) error
	FindByID(ctx context.Context, workflowID string) (*Workflow, error)
	FindAll(ctx context.Context) ([]*Workflow, error)
}

// WorkcenterRepository supplies the read-only workcenter catalog
type WorkcenterRepository interface {
	Save(ctx context.Context, workcenter *Workcenter) error
	FindAll(ctx context.Context) ([]*Workcenter, error)
}

// ResourceRepository supplies the read-only resource catalog
type ResourceRepository interface {
	Save(ctx context.Context, resource *Resource) error
	FindAll(ctx context.Context) ([]*Resource, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish publishes a domain event
	Publish(ctx context.Context, event DomainEvent) error

	// PublishAll publishes multiple domain events
	PublishAll(ctx context.Context, events []DomainEvent) error
}
