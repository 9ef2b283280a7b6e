package mongodb

import (
	"context"
	"time"

	"github.com/mes-platform/production-service/internal/domain"
	"github.com/mes-platform/production-service/pkg/metrics"
)

// InstrumentedJobRepository wraps a JobRepository with operation metrics
type InstrumentedJobRepository struct {
	repo    domain.JobRepository
	metrics *metrics.Metrics
}

// NewInstrumentedJobRepository creates a repository that records operation
// durations and outcomes
func NewInstrumentedJobRepository(repo domain.JobRepository, m *metrics.Metrics) *InstrumentedJobRepository {
	return &InstrumentedJobRepository{repo: repo, metrics: m}
}

func (r *InstrumentedJobRepository) record(operation string, start time.Time, err error) {
	r.metrics.RecordMongoDBOperation("jobs", operation, err == nil, time.Since(start))
}

func (r *InstrumentedJobRepository) Save(ctx context.Context, job *domain.Job) error {
	start := time.Now()
	err := r.repo.Save(ctx, job)
	r.record("save", start, err)
	return err
}

func (r *InstrumentedJobRepository) FindByID(ctx context.Context, jobID string) (*domain.Job, error) {
	start := time.Now()
	job, err := r.repo.FindByID(ctx, jobID)
	r.record("findById", start, err)
	return job, err
}

func (r *InstrumentedJobRepository) FindAll(ctx context.Context) ([]*domain.Job, error) {
	start := time.Now()
	jobs, err := r.repo.FindAll(ctx)
	r.record("findAll", start, err)
	return jobs, err
}

func (r *InstrumentedJobRepository) FindByStatus(ctx context.Context, status domain.JobStatus) ([]*domain.Job, error) {
	start := time.Now()
	jobs, err := r.repo.FindByStatus(ctx, status)
	r.record("findByStatus", start, err)
	return jobs, err
}

func (r *InstrumentedJobRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Job, error) {
	start := time.Now()
	jobs, err := r.repo.FindByDateRange(ctx, from, to)
	r.record("findByDateRange", start, err)
	return jobs, err
}

func (r *InstrumentedJobRepository) Delete(ctx context.Context, jobID string) error {
	start := time.Now()
	err := r.repo.Delete(ctx, jobID)
	r.record("delete", start, err)
	return err
}

func (r *InstrumentedJobRepository) Count(ctx context.Context, status domain.JobStatus) (int64, error) {
	start := time.Now()
	count, err := r.repo.Count(ctx, status)
	r.record("count", start, err)
	return count, err
}
