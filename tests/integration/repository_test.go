package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mongoclient "go.mongodb.org/mongo-driver/mongo"

	"github.com/mes-platform/production-service/internal/domain"
	"github.com/mes-platform/production-service/internal/infrastructure/mongodb"
	sharedtesting "github.com/mes-platform/production-service/pkg/testing"
)

func createTestJob(jobID string, status domain.JobStatus) *domain.Job {
	job := domain.NewJob(domain.NewJobParams{
		JobID:           jobID,
		Code:            "ORD-" + jobID,
		ProductName:     "Oak Table",
		Customer:        domain.Customer{CustomerID: "CUST-1", Name: "Acme Furniture"},
		Priority:        2,
		Quantity:        10,
		WorkflowID:      "WF-001",
		PlannedStageIDs: []string{"STG-CUT", "STG-ASM", "STG-QA"},
		DueDate:         "2024-03-01",
	})
	if status != domain.JobStatusDraft {
		job.Status = status
	}
	job.ClearDomainEvents()
	return job
}

func setupTestDatabase(t *testing.T) (*mongoclient.Database, func()) {
	ctx := context.Background()

	mongoContainer, err := sharedtesting.NewMongoDBContainer(ctx)
	require.NoError(t, err)

	cleanup := func() {
		mongoContainer.Terminate(ctx)
	}

	return mongoContainer.Database("production_test"), cleanup
}

func TestJobRepository_Save(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()
	repo := mongodb.NewJobRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	t.Run("Save new job", func(t *testing.T) {
		job := createTestJob("JOB-001", domain.JobStatusDraft)

		err := repo.Save(ctx, job)
		assert.NoError(t, err)

		found, err := repo.FindByID(ctx, "JOB-001")
		assert.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "JOB-001", found.JobID)
		assert.Equal(t, domain.JobStatusDraft, found.Status)
		assert.Equal(t, "STG-CUT", found.CurrentStageID)
		assert.Equal(t, domain.FlexDate("2024-03-01"), found.DueDate)
	})

	t.Run("Update existing job", func(t *testing.T) {
		job := createTestJob("JOB-002", domain.JobStatusDraft)
		require.NoError(t, repo.Save(ctx, job))

		require.NoError(t, job.Release())
		job.ClearDomainEvents()
		require.NoError(t, repo.Save(ctx, job))

		found, err := repo.FindByID(ctx, "JOB-002")
		assert.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, domain.JobStatusReleased, found.Status)

		count, err := repo.Count(ctx, domain.JobStatusReleased)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestJobRepository_FindByID(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()
	repo := mongodb.NewJobRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	t.Run("Find existing job", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, createTestJob("JOB-001", domain.JobStatusDraft)))

		found, err := repo.FindByID(ctx, "JOB-001")
		assert.NoError(t, err)
		assert.NotNil(t, found)
	})

	t.Run("Find non-existent job", func(t *testing.T) {
		found, err := repo.FindByID(ctx, "JOB-999")
		assert.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestJobRepository_FindByStatus(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()
	repo := mongodb.NewJobRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, repo.Save(ctx, createTestJob("JOB-001", domain.JobStatusDraft)))
	require.NoError(t, repo.Save(ctx, createTestJob("JOB-002", domain.JobStatusReleased)))
	require.NoError(t, repo.Save(ctx, createTestJob("JOB-003", domain.JobStatusReleased)))

	released, err := repo.FindByStatus(ctx, domain.JobStatusReleased)
	assert.NoError(t, err)
	assert.Len(t, released, 2)

	all, err := repo.FindAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestJobRepository_Delete(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()
	repo := mongodb.NewJobRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, repo.Save(ctx, createTestJob("JOB-001", domain.JobStatusDraft)))
	require.NoError(t, repo.Delete(ctx, "JOB-001"))

	found, err := repo.FindByID(ctx, "JOB-001")
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestRunRepository(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()
	repo := mongodb.NewRunRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	run1, err := domain.NewProductionRun("JOB-001", "STG-CUT", domain.RunInput{QtyGood: 10, QtyScrap: 1, Lot: "LOT-1"})
	require.NoError(t, err)
	run2, err := domain.NewProductionRun("JOB-001", "STG-ASM", domain.RunInput{QtyGood: 8})
	require.NoError(t, err)
	run3, err := domain.NewProductionRun("JOB-002", "STG-CUT", domain.RunInput{QtyGood: 5})
	require.NoError(t, err)

	require.NoError(t, repo.Insert(ctx, run1))
	require.NoError(t, repo.Insert(ctx, run2))
	require.NoError(t, repo.Insert(ctx, run3))

	t.Run("FindByJob returns all runs for the job", func(t *testing.T) {
		runs, err := repo.FindByJob(ctx, "JOB-001")
		assert.NoError(t, err)
		assert.Len(t, runs, 2)
	})

	t.Run("FindByJobAndStage narrows to the stage", func(t *testing.T) {
		runs, err := repo.FindByJobAndStage(ctx, "JOB-001", "STG-CUT")
		assert.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, run1.RunID, runs[0].RunID)
		assert.Equal(t, 10.0, runs[0].QtyGood)
		assert.Equal(t, "LOT-1", runs[0].Lot)
	})
}

func TestWorkflowRepository(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()
	repo := mongodb.NewWorkflowRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	workflow := &domain.Workflow{
		WorkflowID: "WF-001",
		Name:       "Standard Build",
		Version:    1,
		Stages: []domain.Stage{
			{StageID: "STG-CUT", Name: "Cutting"},
			{StageID: "STG-ASM", Name: "Assembly"},
		},
	}

	require.NoError(t, repo.Save(ctx, workflow))

	found, err := repo.FindByID(ctx, "WF-001")
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Len(t, found.Stages, 2)

	all, err := repo.FindAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCatalogRepositories(t *testing.T) {
	db, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	t.Run("Workcenters", func(t *testing.T) {
		repo := mongodb.NewWorkcenterRepository(db)
		require.NoError(t, repo.Save(ctx, &domain.Workcenter{WorkcenterID: "WC-1", Name: "Cut Line", Code: "CUT"}))

		all, err := repo.FindAll(ctx)
		assert.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "WC-1", all[0].WorkcenterID)
	})

	t.Run("Resources", func(t *testing.T) {
		repo := mongodb.NewResourceRepository(db)
		require.NoError(t, repo.Save(ctx, &domain.Resource{ResourceID: "RES-1", Name: "Alice", Type: domain.ResourceTypePerson}))

		all, err := repo.FindAll(ctx)
		assert.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, domain.ResourceTypePerson, all[0].Type)
	})
}
