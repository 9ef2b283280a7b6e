package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mes-platform/production-service/internal/domain"
)

func filterFixtureJobs() []*domain.Job {
	return []*domain.Job{
		{
			JobID:          "JOB-001",
			Code:           "ORD-1001",
			ProductName:    "Oak Table",
			SKU:            "TBL-OAK",
			Customer:       domain.Customer{CustomerID: "CUST-1", Name: "Acme Furniture"},
			Status:         domain.JobStatusInProgress,
			CurrentStageID: "STG-CUT",
			WorkcenterID:   "WC-1",
			Assignees:      []string{"RES-1", "RES-2"},
			Priority:       1,
			DueDate:        "2024-02-10",
			CreatedAt:      time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC),
		},
		{
			JobID:          "JOB-002",
			Code:           "ORD-1002",
			ProductName:    "Pine Shelf",
			SKU:            "SHF-PINE",
			Customer:       domain.Customer{CustomerID: "CUST-2", Name: "Birch & Co"},
			Status:         domain.JobStatusDraft,
			CurrentStageID: "STG-CUT",
			WorkcenterID:   "WC-2",
			Assignees:      []string{"RES-3"},
			Priority:       3,
			DueDate:        "2024-03-01",
			CreatedAt:      time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC),
		},
		{
			JobID:          "JOB-003",
			Code:           "ORD-1003",
			ProductName:    "Walnut Desk",
			SKU:            "DSK-WAL",
			Customer:       domain.Customer{CustomerID: "CUST-1", Name: "Acme Furniture"},
			Status:         domain.JobStatusDone,
			CurrentStageID: "STG-QA",
			WorkcenterID:   "WC-1",
			Priority:       5,
			DueDate:        "not-a-date",
			CreatedAt:      time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
		},
	}
}

func TestFilterJobs(t *testing.T) {
	jobs := filterFixtureJobs()
	dueBefore := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		criteria FilterCriteria
		wantIDs  []string
	}{
		{
			name:     "Empty criteria returns everything",
			criteria: FilterCriteria{},
			wantIDs:  []string{"JOB-001", "JOB-002", "JOB-003"},
		},
		{
			name:     "Search matches product name case-insensitively",
			criteria: FilterCriteria{Search: "oak"},
			wantIDs:  []string{"JOB-001"},
		},
		{
			name:     "Search matches customer name",
			criteria: FilterCriteria{Search: "acme"},
			wantIDs:  []string{"JOB-001", "JOB-003"},
		},
		{
			name:     "Search matches code",
			criteria: FilterCriteria{Search: "ORD-1002"},
			wantIDs:  []string{"JOB-002"},
		},
		{
			name:     "Status filter",
			criteria: FilterCriteria{Statuses: []domain.JobStatus{domain.JobStatusDraft, domain.JobStatusDone}},
			wantIDs:  []string{"JOB-002", "JOB-003"},
		},
		{
			name:     "Stage filter",
			criteria: FilterCriteria{StageID: "STG-CUT"},
			wantIDs:  []string{"JOB-001", "JOB-002"},
		},
		{
			name:     "Workcenter filter",
			criteria: FilterCriteria{WorkcenterID: "WC-2"},
			wantIDs:  []string{"JOB-002"},
		},
		{
			name:     "Assignee filter",
			criteria: FilterCriteria{AssigneeID: "RES-2"},
			wantIDs:  []string{"JOB-001"},
		},
		{
			name:     "Customer filter",
			criteria: FilterCriteria{CustomerID: "CUST-1"},
			wantIDs:  []string{"JOB-001", "JOB-003"},
		},
		{
			name:     "Priority filter",
			criteria: FilterCriteria{Priorities: []int{1, 5}},
			wantIDs:  []string{"JOB-001", "JOB-003"},
		},
		{
			name:     "Criteria are ANDed",
			criteria: FilterCriteria{CustomerID: "CUST-1", StageID: "STG-CUT"},
			wantIDs:  []string{"JOB-001"},
		},
		{
			name:     "DueBefore excludes jobs with unparsable due dates",
			criteria: FilterCriteria{DueBefore: &dueBefore},
			wantIDs:  []string{"JOB-001"},
		},
		{
			name: "Created range is inclusive",
			criteria: FilterCriteria{CreatedRange: &DateRange{
				Start: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC),
			}},
			wantIDs: []string{"JOB-001", "JOB-002"},
		},
		{
			name:     "No match yields empty slice",
			criteria: FilterCriteria{Search: "nonexistent"},
			wantIDs:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterJobs(jobs, tt.criteria)
			gotIDs := make([]string, 0, len(got))
			for _, job := range got {
				gotIDs = append(gotIDs, job.JobID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestFilterJobsExcludesZeroCreatedAtFromDateRange(t *testing.T) {
	jobs := []*domain.Job{
		{JobID: "JOB-NO-CREATED", Status: domain.JobStatusDraft},
	}
	criteria := FilterCriteria{CreatedRange: &DateRange{
		Start: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}}

	assert.Empty(t, FilterJobs(jobs, criteria))
}

func TestFilterJobsPreservesOrder(t *testing.T) {
	jobs := filterFixtureJobs()
	got := FilterJobs(jobs, FilterCriteria{CustomerID: "CUST-1"})

	assert.Len(t, got, 2)
	assert.Equal(t, "JOB-001", got[0].JobID)
	assert.Equal(t, "JOB-003", got[1].JobID)
}
