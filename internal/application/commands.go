package application

import (
	"time"

	"github.com/mes-platform/production-service/internal/domain"
)

// CreateJobCommand represents the command to create a new job
type CreateJobCommand struct {
	Code            string
	SKU             string
	ProductName     string
	Customer        domain.Customer
	Priority        int
	Quantity        float64
	WorkflowID      string
	PlannedStageIDs []string
	PlannedStart    string
	PlannedEnd      string
	DueDate         string
	BOM             []domain.BOMLine
	Assignees       []string
	WorkcenterID    string
}

// UpdateJobCommand represents the command to update planning fields of a job
type UpdateJobCommand struct {
	JobID        string
	ProductName  *string
	Priority     *int
	Quantity     *float64
	PlannedStart *string
	PlannedEnd   *string
	DueDate      *string
	Assignees    *[]string
	WorkcenterID *string
}

// ReleaseJobCommand represents the command to release a draft job
type ReleaseJobCommand struct {
	JobID string
}

// SetJobStatusCommand represents the command to change a job's status
type SetJobStatusCommand struct {
	JobID       string
	Status      string
	BlockReason string
}

// AdvanceStageCommand represents the command to advance a job to its
// next planned stage, optionally recording stage output in the same
// operation
type AdvanceStageCommand struct {
	JobID         string
	TargetStageID string
	Note          string
	Output        *domain.RunInput
}

// CompleteJobCommand represents the command to complete a job at its
// final stage
type CompleteJobCommand struct {
	JobID  string
	Output *domain.RunInput
}

// RecordRunCommand represents the command to append a production run
type RecordRunCommand struct {
	JobID   string
	StageID string
	Input   domain.RunInput
}

// DeleteJobCommand represents the command to delete a job
type DeleteJobCommand struct {
	JobID string
}

// GetJobQuery represents the query to get a job by ID
type GetJobQuery struct {
	JobID string
}

// ListJobsQuery represents the query to list jobs with filtering and
// pagination
type ListJobsQuery struct {
	Criteria FilterCriteria
	Page     int
	PageSize int
}

// ListRunsQuery represents the query to list runs for a job
type ListRunsQuery struct {
	JobID   string
	StageID string
}

// ScheduleQuery represents the query for a calendar or gantt projection
type ScheduleQuery struct {
	Anchor      time.Time
	Granularity Granularity
	Criteria    FilterCriteria
}

// ReportQuery represents the query for one reporting aggregation
type ReportQuery struct {
	Type     ReportType
	Range    DateRange
	Criteria FilterCriteria
}
