package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageName(t *testing.T) {
	workflows := createTestWorkflows()

	assert.Equal(t, "Assembly", StageName(workflows, "STG-ASM"))
	assert.Equal(t, "STG-UNKNOWN", StageName(workflows, "STG-UNKNOWN"))
	assert.Equal(t, "STG-ASM", StageName(nil, "STG-ASM"))
}

func TestNextStageID(t *testing.T) {
	workflows := createTestWorkflows()

	tests := []struct {
		name       string
		job        *Job
		expectNext string
		expectOK   bool
	}{
		{
			name:       "From planned stage list",
			job:        &Job{PlannedStageIDs: []string{"A", "B", "C"}, CurrentStageID: "A"},
			expectNext: "B",
			expectOK:   true,
		},
		{
			name:     "Last planned stage",
			job:      &Job{PlannedStageIDs: []string{"A", "B", "C"}, CurrentStageID: "C"},
			expectOK: false,
		},
		{
			name:     "Current stage not in planned list",
			job:      &Job{PlannedStageIDs: []string{"A", "B"}, CurrentStageID: "Z"},
			expectOK: false,
		},
		{
			name:       "Falls back to matching workflow",
			job:        &Job{WorkflowID: "WF-001", CurrentStageID: "STG-CUT"},
			expectNext: "STG-ASM",
			expectOK:   true,
		},
		{
			name:       "Falls back to first workflow when no match",
			job:        &Job{WorkflowID: "WF-MISSING", CurrentStageID: "STG-ASM"},
			expectNext: "STG-QA",
			expectOK:   true,
		},
		{
			name:     "Empty catalog",
			job:      &Job{CurrentStageID: "STG-CUT"},
			expectOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := workflows
			if tt.name == "Empty catalog" {
				catalog = nil
			}

			next, ok := NextStageID(tt.job, catalog)
			assert.Equal(t, tt.expectOK, ok)
			if tt.expectOK {
				assert.Equal(t, tt.expectNext, next)
			}
		})
	}
}

func TestIsLastStage(t *testing.T) {
	workflows := createTestWorkflows()

	tests := []struct {
		name   string
		job    *Job
		expect bool
	}{
		{name: "At last planned stage", job: &Job{PlannedStageIDs: []string{"A", "B"}, CurrentStageID: "B"}, expect: true},
		{name: "Mid sequence", job: &Job{PlannedStageIDs: []string{"A", "B"}, CurrentStageID: "A"}, expect: false},
		{name: "Stage not found", job: &Job{PlannedStageIDs: []string{"A", "B"}, CurrentStageID: "Z"}, expect: false},
		{name: "At last workflow stage", job: &Job{WorkflowID: "WF-001", CurrentStageID: "STG-QA"}, expect: true},
		{name: "No stages resolvable", job: &Job{CurrentStageID: "X"}, expect: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := workflows
			if tt.name == "No stages resolvable" {
				catalog = nil
			}
			assert.Equal(t, tt.expect, IsLastStage(tt.job, catalog))
		})
	}
}
