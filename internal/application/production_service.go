package application

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mes-platform/production-service/internal/domain"
	"github.com/mes-platform/production-service/pkg/api"
	"github.com/mes-platform/production-service/pkg/errors"
	"github.com/mes-platform/production-service/pkg/logging"
	"github.com/mes-platform/production-service/pkg/metrics"
)

// ProductionApplicationService handles job-related use cases
type ProductionApplicationService struct {
	jobs        domain.JobRepository
	runs        domain.ProductionRunRepository
	workflows   domain.WorkflowRepository
	workcenters domain.WorkcenterRepository
	resources   domain.ResourceRepository
	publisher   domain.EventPublisher
	metrics     *metrics.Metrics
	logger      *logging.Logger
}

// NewProductionApplicationService creates a new ProductionApplicationService
func NewProductionApplicationService(
	jobs domain.JobRepository,
	runs domain.ProductionRunRepository,
	workflows domain.WorkflowRepository,
	workcenters domain.WorkcenterRepository,
	resources domain.ResourceRepository,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
	logger *logging.Logger,
) *ProductionApplicationService {
	return &ProductionApplicationService{
		jobs:        jobs,
		runs:        runs,
		workflows:   workflows,
		workcenters: workcenters,
		resources:   resources,
		publisher:   publisher,
		metrics:     m,
		logger:      logger,
	}
}

// CreateJob creates a new job in draft status
func (s *ProductionApplicationService) CreateJob(ctx context.Context, cmd CreateJobCommand) (*JobDTO, error) {
	if cmd.Code == "" {
		return nil, errors.ErrValidation("code is required")
	}
	if cmd.WorkflowID != "" {
		workflow, err := s.workflows.FindByID(ctx, cmd.WorkflowID)
		if err != nil {
			return nil, fmt.Errorf("failed to load workflow: %w", err)
		}
		if workflow == nil {
			return nil, errors.ErrNotFoundWithID("workflow", cmd.WorkflowID)
		}
	}

	job := domain.NewJob(domain.NewJobParams{
		JobID:           generateJobID(),
		Code:            cmd.Code,
		SKU:             cmd.SKU,
		ProductName:     cmd.ProductName,
		Customer:        cmd.Customer,
		Priority:        cmd.Priority,
		Quantity:        cmd.Quantity,
		WorkflowID:      cmd.WorkflowID,
		PlannedStageIDs: cmd.PlannedStageIDs,
		PlannedStart:    domain.FlexDate(cmd.PlannedStart),
		PlannedEnd:      domain.FlexDate(cmd.PlannedEnd),
		DueDate:         domain.FlexDate(cmd.DueDate),
		BOM:             cmd.BOM,
		Assignees:       cmd.Assignees,
		WorkcenterID:    cmd.WorkcenterID,
	})

	if err := s.saveAndPublish(ctx, job); err != nil {
		s.logger.WithError(err).Error("Failed to create job", "jobId", job.JobID)
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordJobCreated(strconv.Itoa(job.Priority))
	}
	s.logger.Info("Created job", "jobId", job.JobID, "code", job.Code)
	return ToJobDTO(job), nil
}

// GetJob retrieves a job by ID
func (s *ProductionApplicationService) GetJob(ctx context.Context, query GetJobQuery) (*JobDTO, error) {
	job, err := s.loadJob(ctx, query.JobID)
	if err != nil {
		return nil, err
	}
	return ToJobDTO(job), nil
}

// ListJobs lists jobs matching the filter criteria, paginated
func (s *ProductionApplicationService) ListJobs(ctx context.Context, query ListJobsQuery) (*api.PageResponse[JobListDTO], error) {
	all, err := s.jobs.FindAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list jobs")
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	filtered := FilterJobs(all, query.Criteria)

	page, pageSize := query.Page, query.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	start := (page - 1) * pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	response := api.NewPageResponse(ToJobListDTOs(filtered[start:end]), int64(page), int64(pageSize), int64(len(filtered)))
	return &response, nil
}

// UpdateJob updates planning fields of a job. Terminal jobs reject
// updates.
func (s *ProductionApplicationService) UpdateJob(ctx context.Context, cmd UpdateJobCommand) (*JobDTO, error) {
	job, err := s.loadJob(ctx, cmd.JobID)
	if err != nil {
		return nil, err
	}
	if job.IsTerminal() {
		return nil, errors.MapDomainError(domain.ErrInvalidTransition)
	}

	if cmd.ProductName != nil {
		job.ProductName = *cmd.ProductName
	}
	if cmd.Priority != nil && *cmd.Priority >= 1 && *cmd.Priority <= 5 {
		job.Priority = *cmd.Priority
	}
	if cmd.Quantity != nil && *cmd.Quantity >= 0 {
		job.Quantity = *cmd.Quantity
	}
	if cmd.PlannedStart != nil {
		job.PlannedStart = domain.FlexDate(*cmd.PlannedStart)
	}
	if cmd.PlannedEnd != nil {
		job.PlannedEnd = domain.FlexDate(*cmd.PlannedEnd)
	}
	if cmd.DueDate != nil {
		job.DueDate = domain.FlexDate(*cmd.DueDate)
	}
	if cmd.Assignees != nil {
		job.Assignees = *cmd.Assignees
	}
	if cmd.WorkcenterID != nil {
		job.WorkcenterID = *cmd.WorkcenterID
	}
	job.UpdatedAt = time.Now()

	if err := s.saveAndPublish(ctx, job); err != nil {
		s.logger.WithError(err).Error("Failed to update job", "jobId", cmd.JobID)
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	s.logger.Info("Updated job", "jobId", cmd.JobID)
	return ToJobDTO(job), nil
}

// DeleteJob deletes a job
func (s *ProductionApplicationService) DeleteJob(ctx context.Context, cmd DeleteJobCommand) error {
	if err := s.jobs.Delete(ctx, cmd.JobID); err != nil {
		s.logger.WithError(err).Error("Failed to delete job", "jobId", cmd.JobID)
		return fmt.Errorf("failed to delete job: %w", err)
	}
	s.logger.Info("Deleted job", "jobId", cmd.JobID)
	return nil
}

// ReleaseJob releases a draft job to production
func (s *ProductionApplicationService) ReleaseJob(ctx context.Context, cmd ReleaseJobCommand) (*JobDTO, error) {
	job, err := s.loadJob(ctx, cmd.JobID)
	if err != nil {
		return nil, err
	}

	if err := job.Release(); err != nil {
		return nil, errors.MapDomainError(err)
	}

	if err := s.saveAndPublish(ctx, job); err != nil {
		s.logger.WithError(err).Error("Failed to release job", "jobId", cmd.JobID)
		return nil, fmt.Errorf("failed to release job: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordJobReleased()
	}
	s.logger.Info("Released job", "jobId", cmd.JobID)
	return ToJobDTO(job), nil
}

// SetJobStatus changes a job's status along a legal transition
func (s *ProductionApplicationService) SetJobStatus(ctx context.Context, cmd SetJobStatusCommand) (*JobDTO, error) {
	job, err := s.loadJob(ctx, cmd.JobID)
	if err != nil {
		return nil, err
	}

	if err := job.SetStatus(domain.JobStatus(cmd.Status), cmd.BlockReason); err != nil {
		return nil, errors.MapDomainError(err)
	}

	if err := s.saveAndPublish(ctx, job); err != nil {
		s.logger.WithError(err).Error("Failed to set job status", "jobId", cmd.JobID, "status", cmd.Status)
		return nil, fmt.Errorf("failed to set job status: %w", err)
	}

	s.logger.Info("Set job status", "jobId", cmd.JobID, "status", cmd.Status)
	return ToJobDTO(job), nil
}

// AdvanceStage moves a job to its next planned stage, enforcing the
// release and output gates. When output is supplied it is recorded as a
// production run in the same operation.
func (s *ProductionApplicationService) AdvanceStage(ctx context.Context, cmd AdvanceStageCommand) (*JobDTO, error) {
	job, err := s.loadJob(ctx, cmd.JobID)
	if err != nil {
		return nil, err
	}

	workflows, err := s.workflows.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load workflows: %w", err)
	}

	run, err := s.buildRun(job, job.CurrentStageID, cmd.Output)
	if err != nil {
		return nil, err
	}

	if err := job.AdvanceStage(workflows, cmd.TargetStageID, cmd.Note, run); err != nil {
		return nil, errors.MapDomainError(err)
	}

	if run != nil {
		if err := s.insertRun(ctx, job, run); err != nil {
			return nil, err
		}
	}

	if err := s.saveAndPublish(ctx, job); err != nil {
		s.logger.WithError(err).Error("Failed to advance stage", "jobId", cmd.JobID, "targetStage", cmd.TargetStageID)
		return nil, fmt.Errorf("failed to advance stage: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordStageAdvanced(cmd.TargetStageID)
	}
	s.logger.Info("Advanced stage", "jobId", cmd.JobID, "stage", cmd.TargetStageID)
	return ToJobDTO(job), nil
}

// CompleteJob completes a job at its final planned stage
func (s *ProductionApplicationService) CompleteJob(ctx context.Context, cmd CompleteJobCommand) (*JobDTO, error) {
	job, err := s.loadJob(ctx, cmd.JobID)
	if err != nil {
		return nil, err
	}

	workflows, err := s.workflows.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load workflows: %w", err)
	}

	run, err := s.buildRun(job, job.CurrentStageID, cmd.Output)
	if err != nil {
		return nil, err
	}

	if err := job.Complete(workflows, run); err != nil {
		return nil, errors.MapDomainError(err)
	}

	if run != nil {
		if err := s.insertRun(ctx, job, run); err != nil {
			return nil, err
		}
	}

	if err := s.saveAndPublish(ctx, job); err != nil {
		s.logger.WithError(err).Error("Failed to complete job", "jobId", cmd.JobID)
		return nil, fmt.Errorf("failed to complete job: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordJobCompleted(string(job.Status))
	}
	s.logger.Info("Completed job", "jobId", cmd.JobID)
	return ToJobDTO(job), nil
}

// RecordRun appends a production run against a job and stage. The job
// itself is not mutated; the run log is append-only.
func (s *ProductionApplicationService) RecordRun(ctx context.Context, cmd RecordRunCommand) (*RunDTO, error) {
	job, err := s.loadJob(ctx, cmd.JobID)
	if err != nil {
		return nil, err
	}

	stageID := cmd.StageID
	if stageID == "" {
		stageID = job.CurrentStageID
	}

	run, err := domain.NewProductionRun(job.JobID, stageID, cmd.Input)
	if err != nil {
		return nil, errors.MapDomainError(err)
	}

	if err := s.insertRun(ctx, job, run); err != nil {
		return nil, err
	}

	s.logger.Info("Recorded run", "jobId", cmd.JobID, "runId", run.RunID, "stage", stageID)
	return ToRunDTO(run), nil
}

// ListRuns lists the production runs recorded for a job
func (s *ProductionApplicationService) ListRuns(ctx context.Context, query ListRunsQuery) ([]RunDTO, error) {
	var (
		runs []*domain.ProductionRun
		err  error
	)
	if query.StageID != "" {
		runs, err = s.runs.FindByJobAndStage(ctx, query.JobID, query.StageID)
	} else {
		runs, err = s.runs.FindByJob(ctx, query.JobID)
	}
	if err != nil {
		s.logger.WithError(err).Error("Failed to list runs", "jobId", query.JobID)
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return ToRunDTOs(runs), nil
}

// GetCalendar projects the filtered job set onto the requested window
func (s *ProductionApplicationService) GetCalendar(ctx context.Context, query ScheduleQuery) (*CalendarDTO, error) {
	if !ValidGranularity(query.Granularity) {
		return nil, errors.ErrValidation("unknown granularity: " + string(query.Granularity))
	}

	all, err := s.jobs.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load jobs: %w", err)
	}

	filtered := FilterJobs(all, query.Criteria)
	window := WindowRange(query.Anchor, query.Granularity)
	cells := ProjectCalendar(filtered, window)
	return ToCalendarDTO(query.Granularity, window, cells), nil
}

// GetGantt lays out the filtered job set as gantt rows
func (s *ProductionApplicationService) GetGantt(ctx context.Context, query ScheduleQuery) (*GanttDTO, error) {
	all, err := s.jobs.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load jobs: %w", err)
	}

	filtered := FilterJobs(all, query.Criteria)
	window := WindowRange(query.Anchor, GranularityGantt)
	rows := ProjectGantt(filtered, window)
	return ToGanttDTO(window, rows), nil
}

// GetReport runs one reporting aggregation over the filtered job set
func (s *ProductionApplicationService) GetReport(ctx context.Context, query ReportQuery) (*ReportDTO, error) {
	all, err := s.jobs.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load jobs: %w", err)
	}
	resources, err := s.resources.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load resources: %w", err)
	}
	workflows, err := s.workflows.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load workflows: %w", err)
	}

	filtered := FilterJobs(all, query.Criteria)
	rctx := ReportContext{
		Now:       time.Now(),
		Range:     query.Range,
		AllJobs:   all,
		Resources: resources,
		Workflows: workflows,
	}

	result, ok := RunReport(query.Type, filtered, rctx)
	if !ok {
		return nil, errors.ErrValidation("unknown report type: " + string(query.Type))
	}

	return &ReportDTO{Type: string(query.Type), GeneratedAt: rctx.Now, Result: result}, nil
}

// ListWorkflows lists the workflow catalog
func (s *ProductionApplicationService) ListWorkflows(ctx context.Context) ([]WorkflowDTO, error) {
	workflows, err := s.workflows.FindAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list workflows")
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}
	return ToWorkflowDTOs(workflows), nil
}

// ListWorkcenters lists the workcenter catalog
func (s *ProductionApplicationService) ListWorkcenters(ctx context.Context) ([]WorkcenterDTO, error) {
	workcenters, err := s.workcenters.FindAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list workcenters")
		return nil, fmt.Errorf("failed to list workcenters: %w", err)
	}
	return ToWorkcenterDTOs(workcenters), nil
}

// ListResources lists the resource catalog
func (s *ProductionApplicationService) ListResources(ctx context.Context) ([]ResourceDTO, error) {
	resources, err := s.resources.FindAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list resources")
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	return ToResourceDTOs(resources), nil
}

func (s *ProductionApplicationService) loadJob(ctx context.Context, jobID string) (*domain.Job, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get job", "jobId", jobID)
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return nil, errors.ErrNotFoundWithID("job", jobID)
	}
	return job, nil
}

func (s *ProductionApplicationService) buildRun(job *domain.Job, stageID string, input *domain.RunInput) (*domain.ProductionRun, error) {
	if input == nil {
		return nil, nil
	}
	run, err := domain.NewProductionRun(job.JobID, stageID, *input)
	if err != nil {
		return nil, errors.MapDomainError(err)
	}
	if input.WorkcenterID == "" {
		run.WorkcenterID = job.WorkcenterID
	}
	return run, nil
}

func (s *ProductionApplicationService) insertRun(ctx context.Context, job *domain.Job, run *domain.ProductionRun) error {
	if err := s.runs.Insert(ctx, run); err != nil {
		s.logger.WithError(err).Error("Failed to record run", "jobId", job.JobID)
		return fmt.Errorf("failed to record run: %w", err)
	}
	if s.metrics != nil {
		s.metrics.RecordRunRecorded(run.StageID)
	}
	if s.publisher != nil {
		event := &domain.RunRecordedEvent{
			RunID:      run.RunID,
			JobID:      run.JobID,
			StageID:    run.StageID,
			QtyGood:    run.QtyGood,
			QtyScrap:   run.QtyScrap,
			RecordedAt: run.Timestamp,
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.WithError(err).Warn("Failed to publish run event", "runId", run.RunID)
		}
	}
	return nil
}

func (s *ProductionApplicationService) saveAndPublish(ctx context.Context, job *domain.Job) error {
	if err := s.jobs.Save(ctx, job); err != nil {
		return err
	}
	if s.publisher != nil {
		if err := s.publisher.PublishAll(ctx, job.GetDomainEvents()); err != nil {
			s.logger.WithError(err).Warn("Failed to publish job events", "jobId", job.JobID)
		}
	}
	job.ClearDomainEvents()
	return nil
}

// generateJobID generates a unique job ID
func generateJobID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:12]
	return fmt.Sprintf("JOB-%s", suffix)
}
