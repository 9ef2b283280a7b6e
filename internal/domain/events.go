package domain

import "time"

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
}

// JobCreatedEvent is published when a new job is created
type JobCreatedEvent struct {
	JobID      string    `json:"jobId"`
	Code       string    `json:"code"`
	WorkflowID string    `json:"workflowId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (e *JobCreatedEvent) EventType() string     { return "mes.job.created" }
func (e *JobCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

// JobReleasedEvent is published when a draft job is released to the floor
type JobReleasedEvent struct {
	JobID      string    `json:"jobId"`
	ReleasedAt time.Time `json:"releasedAt"`
}

func (e *JobReleasedEvent) EventType() string     { return "mes.job.released" }
func (e *JobReleasedEvent) OccurredAt() time.Time { return e.ReleasedAt }

// JobStatusChangedEvent is published on a general status transition
type JobStatusChangedEvent struct {
	JobID     string    `json:"jobId"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Reason    string    `json:"reason,omitempty"`
	ChangedAt time.Time `json:"changedAt"`
}

func (e *JobStatusChangedEvent) EventType() string     { return "mes.job.status-changed" }
func (e *JobStatusChangedEvent) OccurredAt() time.Time { return e.ChangedAt }

// StageAdvancedEvent is published when a job moves to its next stage
type StageAdvancedEvent struct {
	JobID       string    `json:"jobId"`
	FromStageID string    `json:"fromStageId"`
	ToStageID   string    `json:"toStageId"`
	AdvancedAt  time.Time `json:"advancedAt"`
}

func (e *StageAdvancedEvent) EventType() string     { return "mes.job.stage-advanced" }
func (e *StageAdvancedEvent) OccurredAt() time.Time { return e.AdvancedAt }

// JobCompletedEvent is published when a job finishes its last stage
type JobCompletedEvent struct {
	JobID       string    `json:"jobId"`
	StageID     string    `json:"stageId"`
	CompletedAt time.Time `json:"completedAt"`
}

func (e *JobCompletedEvent) EventType() string     { return "mes.job.completed" }
func (e *JobCompletedEvent) OccurredAt() time.Time { return e.CompletedAt }

// JobCancelledEvent is published when a job is cancelled
type JobCancelledEvent struct {
	JobID       string    `json:"jobId"`
	Reason      string    `json:"reason,omitempty"`
	CancelledAt time.Time `json:"cancelledAt"`
}

func (e *JobCancelledEvent) EventType() string     { return "mes.job.cancelled" }
func (e *JobCancelledEvent) OccurredAt() time.Time { return e.CancelledAt }

// RunRecordedEvent is published when a production run is recorded
type RunRecordedEvent struct {
	RunID      string    `json:"runId"`
	JobID      string    `json:"jobId"`
	StageID    string    `json:"stageId"`
	QtyGood    float64   `json:"qtyGood"`
	QtyScrap   float64   `json:"qtyScrap"`
	RecordedAt time.Time `json:"recordedAt"`
}

func (e *RunRecordedEvent) EventType() string     { return "mes.run.recorded" }
func (e *RunRecordedEvent) OccurredAt() time.Time { return e.RecordedAt }
