package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductionRun(t *testing.T) {
	tests := []struct {
		name        string
		input       RunInput
		expectError error
	}{
		{name: "Valid run", input: RunInput{QtyGood: 10, QtyScrap: 2, Lot: "LOT-7", OperatorID: "RES-001"}},
		{name: "Zero good quantity allowed", input: RunInput{QtyGood: 0}},
		{name: "Scrap defaults to zero", input: RunInput{QtyGood: 5}},
		{name: "Negative good quantity", input: RunInput{QtyGood: -1}, expectError: ErrInvalidQuantity},
		{name: "Negative scrap quantity", input: RunInput{QtyGood: 5, QtyScrap: -2}, expectError: ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run, err := NewProductionRun("JOB-001", "STG-CUT", tt.input)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, run)
			} else {
				require.NoError(t, err)
				require.NotNil(t, run)
				assert.NotEmpty(t, run.RunID)
				assert.Equal(t, "JOB-001", run.JobID)
				assert.Equal(t, "STG-CUT", run.StageID)
				assert.Equal(t, tt.input.QtyGood, run.QtyGood)
				assert.Equal(t, tt.input.QtyScrap, run.QtyScrap)
				assert.NotZero(t, run.Timestamp)
			}
		})
	}
}

func TestRunIDsAreUnique(t *testing.T) {
	a, err := NewProductionRun("JOB-001", "STG-CUT", RunInput{QtyGood: 1})
	require.NoError(t, err)
	b, err := NewProductionRun("JOB-001", "STG-CUT", RunInput{QtyGood: 1})
	require.NoError(t, err)

	assert.NotEqual(t, a.RunID, b.RunID)
}
