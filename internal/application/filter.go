package application

import (
	"strings"
	"time"

	"github.com/mes-platform/production-service/internal/domain"
)

// DateRange is an inclusive calendar range
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the range, inclusive
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// IsZero reports whether the range is unset
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// FilterCriteria narrows a job collection. Absent fields mean no
// constraint; present fields are ANDed. Jobs whose relevant fields are
// missing or unparsable are excluded from criteria that depend on them.
type FilterCriteria struct {
	Search       string
	Statuses     []domain.JobStatus
	StageID      string
	WorkcenterID string
	AssigneeID   string
	CustomerID   string
	Priorities   []int
	DueBefore    *time.Time
	CreatedRange *DateRange
}

// FilterJobs applies the criteria to a job collection. The filter is pure
// and order preserving.
func FilterJobs(jobs []*domain.Job, criteria FilterCriteria) []*domain.Job {
	result := make([]*domain.Job, 0, len(jobs))
	for _, job := range jobs {
		if matchesCriteria(job, criteria) {
			result = append(result, job)
		}
	}
	return result
}

func matchesCriteria(job *domain.Job, c FilterCriteria) bool {
	if c.Search != "" && !matchesSearch(job, c.Search) {
		return false
	}

	if len(c.Statuses) > 0 && !containsStatus(c.Statuses, job.Status) {
		return false
	}

	if c.StageID != "" && job.CurrentStageID != c.StageID {
		return false
	}

	if c.WorkcenterID != "" && job.WorkcenterID != c.WorkcenterID {
		return false
	}

	if c.AssigneeID != "" && !containsString(job.Assignees, c.AssigneeID) {
		return false
	}

	if c.CustomerID != "" && job.Customer.CustomerID != c.CustomerID {
		return false
	}

	if len(c.Priorities) > 0 && !containsInt(c.Priorities, job.Priority) {
		return false
	}

	if c.DueBefore != nil {
		due, ok := job.DueDate.Time()
		if !ok || !due.Before(*c.DueBefore) {
			return false
		}
	}

	if c.CreatedRange != nil {
		if job.CreatedAt.IsZero() || !c.CreatedRange.Contains(job.CreatedAt) {
			return false
		}
	}

	return true
}

func matchesSearch(job *domain.Job, term string) bool {
	needle := strings.ToLower(term)
	for _, field := range []string{job.Code, job.ProductName, job.Customer.Name, job.SKU} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func containsStatus(statuses []domain.JobStatus, status domain.JobStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func containsInt(values []int, value int) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
