package domain

import "time"

// FlexDate is a date-like field supplied by external snapshots. It may be
// empty or malformed; malformed values are treated as absent.
type FlexDate string

// flexDateLayouts are tried in order when parsing a FlexDate
var flexDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Time parses the date, reporting false for empty or malformed values
func (d FlexDate) Time() (time.Time, bool) {
	if d == "" {
		return time.Time{}, false
	}
	for _, layout := range flexDateLayouts {
		if t, err := time.Parse(layout, string(d)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Interval is the effective scheduling window of a job
type Interval struct {
	Start time.Time
	End   time.Time
}

// dateStep is one accessor+validator position in a fallback chain
type dateStep func(j *Job) (time.Time, bool)

// startChain resolves the interval start: plannedStart, then createdAt,
// then dueDate, first valid wins.
var startChain = []dateStep{
	func(j *Job) (time.Time, bool) { return j.PlannedStart.Time() },
	func(j *Job) (time.Time, bool) { return j.CreatedAt, !j.CreatedAt.IsZero() },
	func(j *Job) (time.Time, bool) { return j.DueDate.Time() },
}

// endChain resolves the interval end: plannedEnd, then dueDate. The
// resolved start is the final fallback, applied in ResolveInterval.
var endChain = []dateStep{
	func(j *Job) (time.Time, bool) { return j.PlannedEnd.Time() },
	func(j *Job) (time.Time, bool) { return j.DueDate.Time() },
}

func resolveChain(j *Job, chain []dateStep) (time.Time, bool) {
	for _, step := range chain {
		if t, ok := step(j); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// ResolveInterval computes the effective [start, end] window of a job from
// its fallback chains. Jobs with no resolvable dates report false and are
// excluded from interval-based views.
func ResolveInterval(j *Job) (Interval, bool) {
	start, startOK := resolveChain(j, startChain)
	end, endOK := resolveChain(j, endChain)

	if !startOK && !endOK {
		return Interval{}, false
	}
	if !startOK {
		start = end
	}
	if !endOK {
		end = start
	}

	return Interval{Start: start, End: end}, true
}

// StartOfDay truncates t to midnight in its location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of t's calendar day
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// Overlaps reports whether the job's resolved interval intersects the
// whole-day range [rangeStart, rangeEnd]. The range bounds are normalized
// to start-of-day and end-of-day before comparison.
func Overlaps(j *Job, rangeStart, rangeEnd time.Time) bool {
	interval, ok := ResolveInterval(j)
	if !ok {
		return false
	}

	lo := StartOfDay(rangeStart)
	hi := EndOfDay(rangeEnd)

	return !interval.Start.After(hi) && !interval.End.Before(lo)
}

// OverlapsDay reports whether the job's interval touches a single calendar day
func OverlapsDay(j *Job, day time.Time) bool {
	return Overlaps(j, day, day)
}
