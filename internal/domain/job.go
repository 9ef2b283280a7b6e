package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JobStatus represents the lifecycle status of a production job
type JobStatus string

const (
	JobStatusDraft      JobStatus = "draft"
	JobStatusReleased   JobStatus = "released"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusBlocked    JobStatus = "blocked"
	JobStatusDone       JobStatus = "done"
	JobStatusCancelled  JobStatus = "cancelled"
)

// statusTransitions is the set of legal status changes. Done and cancelled
// are terminal and have no outgoing transitions.
var statusTransitions = map[JobStatus][]JobStatus{
	JobStatusDraft:      {JobStatusReleased, JobStatusCancelled},
	JobStatusReleased:   {JobStatusInProgress, JobStatusCancelled},
	JobStatusInProgress: {JobStatusBlocked, JobStatusDone, JobStatusCancelled},
	JobStatusBlocked:    {JobStatusInProgress, JobStatusDone, JobStatusCancelled},
	JobStatusDone:       {},
	JobStatusCancelled:  {},
}

// Customer identifies the customer a job is produced for
type Customer struct {
	CustomerID string `bson:"customerId"`
	Name       string `bson:"name"`
}

// BOMLine is one bill-of-materials entry on a job
type BOMLine struct {
	SKU         string  `bson:"sku"`
	QtyRequired float64 `bson:"qtyRequired"`
	Consumed    float64 `bson:"consumed"`
}

// OutputLine is one planned/produced output entry on a job
type OutputLine struct {
	SKU         string  `bson:"sku,omitempty"`
	QtyPlanned  float64 `bson:"qtyPlanned"`
	QtyProduced float64 `bson:"qtyProduced"`
}

// Packaging holds planned versus actual box and pallet counts
type Packaging struct {
	PlannedBoxes   int `bson:"plannedBoxes"`
	ActualBoxes    int `bson:"actualBoxes"`
	PlannedPallets int `bson:"plannedPallets"`
	ActualPallets  int `bson:"actualPallets"`
}

// StageNote is an audit note recorded when a job advances between stages
type StageNote struct {
	FromStageID string    `bson:"fromStageId"`
	ToStageID   string    `bson:"toStageId"`
	Note        string    `bson:"note"`
	At          time.Time `bson:"at"`
}

// Job is the aggregate root for the production bounded context
type Job struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty"`
	JobID                  string             `bson:"jobId"`
	Code                   string             `bson:"code"`
	SKU                    string             `bson:"sku"`
	ProductName            string             `bson:"productName"`
	Customer               Customer           `bson:"customer"`
	Priority               int                `bson:"priority"` // 1-5, 1 most urgent
	Quantity               float64            `bson:"quantity"`
	WorkflowID             string             `bson:"workflowId"`
	PlannedStageIDs        []string           `bson:"plannedStageIds,omitempty"`
	CurrentStageID         string             `bson:"currentStageId,omitempty"`
	Status                 JobStatus          `bson:"status"`
	BlockReason            string             `bson:"blockReason,omitempty"`
	RequireOutputToAdvance bool               `bson:"requireOutputToAdvance"`
	CreatedAt              time.Time          `bson:"createdAt"`
	UpdatedAt              time.Time          `bson:"updatedAt"`
	PlannedStart           FlexDate           `bson:"plannedStart,omitempty"`
	PlannedEnd             FlexDate           `bson:"plannedEnd,omitempty"`
	DueDate                FlexDate           `bson:"dueDate,omitempty"`
	QAAcceptedAt           *time.Time         `bson:"qaAcceptedAt,omitempty"`
	CustomerAcceptedAt     *time.Time         `bson:"customerAcceptedAt,omitempty"`
	BOM                    []BOMLine          `bson:"bom,omitempty"`
	Output                 []OutputLine       `bson:"output,omitempty"`
	Packaging              Packaging          `bson:"packaging"`
	Assignees              []string           `bson:"assignees,omitempty"`
	WorkcenterID           string             `bson:"workcenterId,omitempty"`
	Notes                  []StageNote        `bson:"notes,omitempty"`
	DomainEvents           []DomainEvent      `bson:"-"`
}

// NewJobParams holds the caller-supplied fields for a new job
type NewJobParams struct {
	JobID           string
	Code            string
	SKU             string
	ProductName     string
	Customer        Customer
	Priority        int
	Quantity        float64
	WorkflowID      string
	PlannedStageIDs []string
	PlannedStart    FlexDate
	PlannedEnd      FlexDate
	DueDate         FlexDate
	BOM             []BOMLine
	Assignees       []string
	WorkcenterID    string
}

// NewJob creates a new Job aggregate in draft status
func NewJob(p NewJobParams) *Job {
	now := time.Now()

	priority := p.Priority
	if priority < 1 || priority > 5 {
		priority = 3
	}

	job := &Job{
		JobID:                  p.JobID,
		Code:                   p.Code,
		SKU:                    p.SKU,
		ProductName:            p.ProductName,
		Customer:               p.Customer,
		Priority:               priority,
		Quantity:               p.Quantity,
		WorkflowID:             p.WorkflowID,
		PlannedStageIDs:        p.PlannedStageIDs,
		Status:                 JobStatusDraft,
		RequireOutputToAdvance: true,
		CreatedAt:              now,
		UpdatedAt:              now,
		PlannedStart:           p.PlannedStart,
		PlannedEnd:             p.PlannedEnd,
		DueDate:                p.DueDate,
		BOM:                    p.BOM,
		Assignees:              p.Assignees,
		WorkcenterID:           p.WorkcenterID,
		DomainEvents:           make([]DomainEvent, 0),
	}

	if len(p.PlannedStageIDs) > 0 {
		job.CurrentStageID = p.PlannedStageIDs[0]
	}

	job.AddDomainEvent(&JobCreatedEvent{
		JobID:      job.JobID,
		Code:       job.Code,
		WorkflowID: job.WorkflowID,
		CreatedAt:  now,
	})

	return job
}

// IsTerminal reports whether the job has reached a final status
func (j *Job) IsTerminal() bool {
	return j.Status == JobStatusDone || j.Status == JobStatusCancelled
}

// canTransition checks the status transition table
func canTransition(from, to JobStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Release moves a draft job to released, unblocking stage advancement
func (j *Job) Release() error {
	if j.Status != JobStatusDraft {
		return ErrInvalidTransition
	}

	now := time.Now()
	j.Status = JobStatusReleased
	j.UpdatedAt = now

	j.AddDomainEvent(&JobReleasedEvent{
		JobID:      j.JobID,
		ReleasedAt: now,
	})

	return nil
}

// SetStatus performs a general status transition. Blocking requires a
// non-empty reason; leaving blocked clears the stored reason.
func (j *Job) SetStatus(newStatus JobStatus, blockReason string) error {
	if j.IsTerminal() {
		return ErrInvalidTransition
	}

	if newStatus == JobStatusBlocked && blockReason == "" {
		return ErrBlockReasonRequired
	}

	if !canTransition(j.Status, newStatus) {
		return ErrInvalidTransition
	}

	now := time.Now()
	previous := j.Status
	j.Status = newStatus
	j.UpdatedAt = now

	if newStatus == JobStatusBlocked {
		j.BlockReason = blockReason
	} else if previous == JobStatusBlocked {
		j.BlockReason = ""
	}

	if newStatus == JobStatusCancelled {
		j.AddDomainEvent(&JobCancelledEvent{
			JobID:       j.JobID,
			Reason:      blockReason,
			CancelledAt: now,
		})
	} else {
		j.AddDomainEvent(&JobStatusChangedEvent{
			JobID:     j.JobID,
			From:      string(previous),
			To:        string(newStatus),
			Reason:    blockReason,
			ChangedAt: now,
		})
	}

	return nil
}

// outputGateSatisfied checks the output-required-to-advance gate against a
// run supplied atomically with the advance or complete request.
func (j *Job) outputGateSatisfied(run *ProductionRun) bool {
	if !j.RequireOutputToAdvance {
		return true
	}
	return run != nil && run.StageID == j.CurrentStageID && run.QtyGood > 0
}

// AdvanceStage moves the job to targetStageID. The run, when output is
// required, must be for the current stage and report good quantity; it is
// validated here but persisted by the caller.
func (j *Job) AdvanceStage(workflows []*Workflow, targetStageID, note string, run *ProductionRun) error {
	if j.Status != JobStatusReleased && j.Status != JobStatusInProgress {
		return ErrReleaseRequired
	}

	if !j.outputGateSatisfied(run) {
		return ErrOutputRequired
	}

	next, ok := NextStageID(j, workflows)
	if !ok || next != targetStageID {
		return ErrInvalidStageTransition
	}

	now := time.Now()
	from := j.CurrentStageID
	j.CurrentStageID = targetStageID
	if note != "" {
		j.Notes = append(j.Notes, StageNote{
			FromStageID: from,
			ToStageID:   targetStageID,
			Note:        note,
			At:          now,
		})
	}
	if j.Status == JobStatusReleased {
		j.Status = JobStatusInProgress
	}
	j.UpdatedAt = now

	j.AddDomainEvent(&StageAdvancedEvent{
		JobID:       j.JobID,
		FromStageID: from,
		ToStageID:   targetStageID,
		AdvancedAt:  now,
	})

	return nil
}

// Complete marks the job done. The job must sit at its last planned stage
// and satisfy the same output gate as AdvanceStage.
func (j *Job) Complete(workflows []*Workflow, run *ProductionRun) error {
	if j.IsTerminal() {
		return ErrInvalidTransition
	}
	if j.Status == JobStatusDraft {
		return ErrReleaseRequired
	}

	if !IsLastStage(j, workflows) {
		return ErrNotAtFinalStage
	}

	if !j.outputGateSatisfied(run) {
		return ErrOutputRequired
	}

	now := time.Now()
	j.Status = JobStatusDone
	j.BlockReason = ""
	j.UpdatedAt = now

	j.AddDomainEvent(&JobCompletedEvent{
		JobID:       j.JobID,
		StageID:     j.CurrentStageID,
		CompletedAt: now,
	})

	return nil
}

// AddDomainEvent appends a domain event
func (j *Job) AddDomainEvent(event DomainEvent) {
	j.DomainEvents = append(j.DomainEvents, event)
}

// GetDomainEvents returns accumulated domain events
func (j *Job) GetDomainEvents() []DomainEvent {
	return j.DomainEvents
}

// ClearDomainEvents clears accumulated domain events
func (j *Job) ClearDomainEvents() {
	j.DomainEvents = make([]DomainEvent, 0)
}
