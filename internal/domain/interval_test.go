package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexDateTime(t *testing.T) {
	tests := []struct {
		name  string
		value FlexDate
		valid bool
	}{
		{name: "RFC3339", value: "2024-01-10T08:30:00Z", valid: true},
		{name: "Date only", value: "2024-01-10", valid: true},
		{name: "Empty", value: "", valid: false},
		{name: "Malformed", value: "not-a-date", valid: false},
		{name: "NaN-like", value: "NaN", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := tt.value.Time()
			assert.Equal(t, tt.valid, ok)
		})
	}
}

func TestResolveInterval(t *testing.T) {
	created := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		job         *Job
		expectOK    bool
		expectStart time.Time
		expectEnd   time.Time
	}{
		{
			name: "Planned dates win",
			job: &Job{
				PlannedStart: "2024-01-05",
				PlannedEnd:   "2024-01-15",
				DueDate:      "2024-01-20",
				CreatedAt:    created,
			},
			expectOK:    true,
			expectStart: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			expectEnd:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "Start falls back to createdAt",
			job: &Job{
				CreatedAt: created,
				DueDate:   "2024-01-20",
			},
			expectOK:    true,
			expectStart: created,
			expectEnd:   time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "Malformed plannedStart skipped",
			job: &Job{
				PlannedStart: "garbage",
				CreatedAt:    created,
				DueDate:      "2024-01-20",
			},
			expectOK:    true,
			expectStart: created,
			expectEnd:   time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "Due date only",
			job: &Job{
				DueDate: "2024-01-20",
			},
			expectOK:    true,
			expectStart: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			expectEnd:   time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Nothing resolvable",
			job:      &Job{PlannedStart: "bad", PlannedEnd: "worse", DueDate: ""},
			expectOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interval, ok := ResolveInterval(tt.job)

			assert.Equal(t, tt.expectOK, ok)
			if tt.expectOK {
				assert.Equal(t, tt.expectStart, interval.Start)
				assert.Equal(t, tt.expectEnd, interval.End)
			}
		})
	}
}

func TestEndFallsBackToStart(t *testing.T) {
	job := &Job{PlannedStart: "2024-01-05"}

	interval, ok := ResolveInterval(job)
	require.True(t, ok)
	assert.Equal(t, interval.Start, interval.End)
}

func TestOverlapsDay(t *testing.T) {
	job := &Job{PlannedStart: "2024-01-05", PlannedEnd: "2024-01-05"}

	assert.True(t, OverlapsDay(job, time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)))
	assert.False(t, OverlapsDay(job, time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)))
	assert.False(t, OverlapsDay(job, time.Date(2024, 1, 4, 23, 0, 0, 0, time.UTC)))
}

func TestOverlapsRange(t *testing.T) {
	job := &Job{PlannedStart: "2024-01-10", PlannedEnd: "2024-01-12"}

	tests := []struct {
		name       string
		rangeStart time.Time
		rangeEnd   time.Time
		expect     bool
	}{
		{"Fully inside", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), true},
		{"Touches range end", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), true},
		{"Touches range start", time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"Before range", time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), false},
		{"After range", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, Overlaps(job, tt.rangeStart, tt.rangeEnd))
		})
	}
}

func TestOverlapsUnresolvableJob(t *testing.T) {
	job := &Job{}
	assert.False(t, OverlapsDay(job, time.Now()))
}
