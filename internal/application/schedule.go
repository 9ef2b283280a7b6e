package application

import (
	"time"

	"github.com/mes-platform/production-service/internal/domain"
)

// Granularity selects the projection window shape.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
	GranularityGantt Granularity = "gantt"
)

// ValidGranularity reports whether g names a supported projection.
func ValidGranularity(g Granularity) bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth, GranularityGantt:
		return true
	}
	return false
}

const dayKeyLayout = "2006-01-02"

// CalendarCell is one day column of a calendar projection.
type CalendarCell struct {
	Date time.Time
	Jobs []*domain.Job
}

// GanttRow positions one job inside a gantt window. Offsets and
// durations are whole days relative to the window start.
type GanttRow struct {
	Job             *domain.Job
	Start           time.Time
	End             time.Time
	StartOffsetDays int
	DurationDays    int
}

// WindowRange returns the inclusive day range covered by the given
// granularity around the anchor date. Week windows start on Monday;
// gantt windows span four weeks from the anchor's Monday.
func WindowRange(anchor time.Time, g Granularity) DateRange {
	switch g {
	case GranularityDay:
		return DateRange{Start: domain.StartOfDay(anchor), End: domain.EndOfDay(anchor)}
	case GranularityWeek:
		start := weekStart(anchor)
		return DateRange{Start: start, End: domain.EndOfDay(start.AddDate(0, 0, 6))}
	case GranularityMonth:
		first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		last := first.AddDate(0, 1, -1)
		return DateRange{Start: first, End: domain.EndOfDay(last)}
	case GranularityGantt:
		start := weekStart(anchor)
		return DateRange{Start: start, End: domain.EndOfDay(start.AddDate(0, 0, 27))}
	}
	return DateRange{Start: domain.StartOfDay(anchor), End: domain.EndOfDay(anchor)}
}

// ShiftAnchor moves the anchor one window backward or forward. Day
// windows move by one day, week and gantt windows by seven days, month
// windows by one calendar month. Direction is -1 or +1.
func ShiftAnchor(anchor time.Time, g Granularity, direction int) time.Time {
	if direction > 0 {
		direction = 1
	} else {
		direction = -1
	}
	switch g {
	case GranularityDay:
		return anchor.AddDate(0, 0, direction)
	case GranularityMonth:
		return anchor.AddDate(0, direction, 0)
	default:
		return anchor.AddDate(0, 0, 7*direction)
	}
}

// ProjectCalendar places each schedulable job on every day cell its
// resolved interval touches. Jobs without a resolvable interval are
// omitted. Cell order follows the window; job order within a cell
// follows the input order.
func ProjectCalendar(jobs []*domain.Job, window DateRange) []CalendarCell {
	cells := make([]CalendarCell, 0, 31)
	for day := domain.StartOfDay(window.Start); !day.After(window.End); day = day.AddDate(0, 0, 1) {
		cell := CalendarCell{Date: day}
		for _, job := range jobs {
			if domain.OverlapsDay(job, day) {
				cell.Jobs = append(cell.Jobs, job)
			}
		}
		cells = append(cells, cell)
	}
	return cells
}

// ProjectGantt lays out the jobs overlapping the window as offset rows.
// A job starting before the window is clamped to offset zero; every row
// spans at least one day.
func ProjectGantt(jobs []*domain.Job, window DateRange) []GanttRow {
	windowStart := domain.StartOfDay(window.Start)
	rows := make([]GanttRow, 0, len(jobs))
	for _, job := range jobs {
		if !domain.Overlaps(job, window.Start, window.End) {
			continue
		}
		interval, ok := domain.ResolveInterval(job)
		if !ok {
			continue
		}
		start := domain.StartOfDay(interval.Start)
		end := domain.StartOfDay(interval.End)
		offset := daysBetween(windowStart, start)
		if offset < 0 {
			offset = 0
		}
		duration := daysBetween(start, end)
		if duration < 1 {
			duration = 1
		}
		rows = append(rows, GanttRow{
			Job:             job,
			Start:           interval.Start,
			End:             interval.End,
			StartOffsetDays: offset,
			DurationDays:    duration,
		})
	}
	return rows
}

func weekStart(anchor time.Time) time.Time {
	day := domain.StartOfDay(anchor)
	offset := (int(day.Weekday()) + 6) % 7 // Monday-based
	return day.AddDate(0, 0, -offset)
}

func daysBetween(from, to time.Time) int {
	return int(domain.StartOfDay(to).Sub(domain.StartOfDay(from)).Hours() / 24)
}
