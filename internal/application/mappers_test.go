package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mes-platform/production-service/internal/domain"
)

func TestToJobDTOCarriesMaterialAndOutputLines(t *testing.T) {
	job := &domain.Job{
		JobID:       "JOB-001",
		Code:        "ORD-001",
		ProductName: "Oak Table",
		Status:      domain.JobStatusInProgress,
		BOM: []domain.BOMLine{
			{SKU: "OAK-PLANK", QtyRequired: 40, Consumed: 38},
		},
		Output: []domain.OutputLine{
			{SKU: "TBL-OAK", QtyPlanned: 10, QtyProduced: 9},
		},
		Packaging: domain.Packaging{PlannedBoxes: 10, ActualBoxes: 9, PlannedPallets: 2, ActualPallets: 2},
	}

	dto := ToJobDTO(job)
	require.NotNil(t, dto)

	require.Len(t, dto.BOM, 1)
	assert.Equal(t, "OAK-PLANK", dto.BOM[0].SKU)
	assert.Equal(t, float64(38), dto.BOM[0].Consumed)

	require.Len(t, dto.Output, 1)
	assert.Equal(t, "TBL-OAK", dto.Output[0].SKU)
	assert.Equal(t, float64(10), dto.Output[0].QtyPlanned)
	assert.Equal(t, float64(9), dto.Output[0].QtyProduced)

	assert.Equal(t, 2, dto.Packaging.PlannedPallets)
}

func TestToJobDTONilJob(t *testing.T) {
	assert.Nil(t, ToJobDTO(nil))
}
