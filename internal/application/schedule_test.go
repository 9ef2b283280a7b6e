package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mes-platform/production-service/internal/domain"
)

func scheduleFixtureJob(id string, start, end domain.FlexDate) *domain.Job {
	return &domain.Job{
		JobID:        id,
		Code:         "ORD-" + id,
		Status:       domain.JobStatusReleased,
		PlannedStart: start,
		PlannedEnd:   end,
	}
}

func TestWindowRange(t *testing.T) {
	anchor := time.Date(2024, 1, 17, 15, 30, 0, 0, time.UTC) // a Wednesday

	tests := []struct {
		name        string
		granularity Granularity
		wantStart   time.Time
		wantEndDay  time.Time
	}{
		{
			name:        "Day window covers the anchor day",
			granularity: GranularityDay,
			wantStart:   time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC),
			wantEndDay:  time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name:        "Week window starts Monday",
			granularity: GranularityWeek,
			wantStart:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			wantEndDay:  time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC),
		},
		{
			name:        "Month window covers the calendar month",
			granularity: GranularityMonth,
			wantStart:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEndDay:  time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:        "Gantt window spans four weeks from Monday",
			granularity: GranularityGantt,
			wantStart:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			wantEndDay:  time.Date(2024, 2, 11, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := WindowRange(anchor, tt.granularity)
			assert.Equal(t, tt.wantStart, window.Start)
			assert.Equal(t, tt.wantEndDay, domain.StartOfDay(window.End))
		})
	}
}

func TestShiftAnchor(t *testing.T) {
	anchor := time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		granularity Granularity
		direction   int
		want        time.Time
	}{
		{"Day next", GranularityDay, 1, time.Date(2024, 1, 18, 12, 0, 0, 0, time.UTC)},
		{"Day prev", GranularityDay, -1, time.Date(2024, 1, 16, 12, 0, 0, 0, time.UTC)},
		{"Week next moves seven days", GranularityWeek, 1, time.Date(2024, 1, 24, 12, 0, 0, 0, time.UTC)},
		{"Gantt prev moves seven days", GranularityGantt, -1, time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)},
		{"Month next moves one calendar month", GranularityMonth, 1, time.Date(2024, 2, 17, 12, 0, 0, 0, time.UTC)},
		{"Month prev", GranularityMonth, -1, time.Date(2023, 12, 17, 12, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShiftAnchor(anchor, tt.granularity, tt.direction))
		})
	}
}

func TestProjectCalendar(t *testing.T) {
	jobs := []*domain.Job{
		scheduleFixtureJob("J1", "2024-01-05", "2024-01-05"),
		scheduleFixtureJob("J2", "2024-01-04", "2024-01-06"),
		scheduleFixtureJob("J3", "", ""), // no resolvable interval
	}
	window := DateRange{
		Start: time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
		End:   domain.EndOfDay(time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)),
	}

	cells := ProjectCalendar(jobs, window)

	assert.Len(t, cells, 3)

	byDate := make(map[string][]string)
	for _, cell := range cells {
		ids := make([]string, 0, len(cell.Jobs))
		for _, job := range cell.Jobs {
			ids = append(ids, job.JobID)
		}
		byDate[cell.Date.Format("2006-01-02")] = ids
	}

	assert.Equal(t, []string{"J2"}, byDate["2024-01-04"])
	assert.Equal(t, []string{"J1", "J2"}, byDate["2024-01-05"])
	assert.Equal(t, []string{"J2"}, byDate["2024-01-06"])
}

func TestProjectCalendarSingleDayJobDoesNotBleed(t *testing.T) {
	jobs := []*domain.Job{scheduleFixtureJob("J1", "2024-01-05", "2024-01-05")}
	window := DateRange{
		Start: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		End:   domain.EndOfDay(time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)),
	}

	cells := ProjectCalendar(jobs, window)

	assert.Len(t, cells[0].Jobs, 1)
	assert.Empty(t, cells[1].Jobs)
}

func TestProjectGantt(t *testing.T) {
	window := DateRange{
		Start: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		End:   domain.EndOfDay(time.Date(2024, 2, 11, 0, 0, 0, 0, time.UTC)),
	}

	t.Run("Offset and duration computed from window start", func(t *testing.T) {
		jobs := []*domain.Job{scheduleFixtureJob("J1", "2024-01-17", "2024-01-20")}
		rows := ProjectGantt(jobs, window)

		assert.Len(t, rows, 1)
		assert.Equal(t, 2, rows[0].StartOffsetDays)
		assert.Equal(t, 3, rows[0].DurationDays)
	})

	t.Run("Job starting before the window clamps to offset zero", func(t *testing.T) {
		jobs := []*domain.Job{scheduleFixtureJob("J1", "2024-01-10", "2024-01-18")}
		rows := ProjectGantt(jobs, window)

		assert.Len(t, rows, 1)
		assert.Equal(t, 0, rows[0].StartOffsetDays)
	})

	t.Run("Single-day job spans at least one day", func(t *testing.T) {
		jobs := []*domain.Job{scheduleFixtureJob("J1", "2024-01-16", "2024-01-16")}
		rows := ProjectGantt(jobs, window)

		assert.Len(t, rows, 1)
		assert.Equal(t, 1, rows[0].DurationDays)
	})

	t.Run("Job outside the window is omitted", func(t *testing.T) {
		jobs := []*domain.Job{scheduleFixtureJob("J1", "2024-03-01", "2024-03-05")}
		rows := ProjectGantt(jobs, window)

		assert.Empty(t, rows)
	})

	t.Run("Job without resolvable interval is omitted", func(t *testing.T) {
		jobs := []*domain.Job{scheduleFixtureJob("J1", "", "")}
		rows := ProjectGantt(jobs, window)

		assert.Empty(t, rows)
	})
}

func TestValidGranularity(t *testing.T) {
	assert.True(t, ValidGranularity(GranularityDay))
	assert.True(t, ValidGranularity(GranularityGantt))
	assert.False(t, ValidGranularity(Granularity("hour")))
}
