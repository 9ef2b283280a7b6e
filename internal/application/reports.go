package application

import (
	"math"
	"sort"
	"time"

	"github.com/mes-platform/production-service/internal/domain"
)

// ReportType names one of the supported aggregations.
type ReportType string

const (
	ReportWIPByStage          ReportType = "wip_by_stage"
	ReportThroughput          ReportType = "throughput"
	ReportOnTimeDelivery      ReportType = "on_time_delivery"
	ReportCycleTime           ReportType = "cycle_time"
	ReportBottleneck          ReportType = "bottleneck"
	ReportResourceUtilization ReportType = "resource_utilization"
	ReportMaterialUsage       ReportType = "material_usage"
	ReportOutput              ReportType = "output"
	ReportDeadlines           ReportType = "deadlines"
)

// ReportContext carries the snapshot a report runs against. AllJobs is
// the unfiltered workspace collection; the jobs argument passed to each
// report function is the filtered view. Now is injected so results are
// deterministic in tests.
type ReportContext struct {
	Now       time.Time
	Range     DateRange
	AllJobs   []*domain.Job
	Resources []*domain.Resource
	Workflows []*domain.Workflow
}

// ReportFunc is the shared shape of every aggregation so new report
// types are additive.
type ReportFunc func(jobs []*domain.Job, rctx ReportContext) any

var reportFuncs = map[ReportType]ReportFunc{
	ReportWIPByStage:          func(jobs []*domain.Job, rctx ReportContext) any { return WIPByStage(jobs, rctx) },
	ReportThroughput:          func(jobs []*domain.Job, rctx ReportContext) any { return Throughput(jobs, rctx) },
	ReportOnTimeDelivery:      func(jobs []*domain.Job, rctx ReportContext) any { return OnTimeDelivery(jobs, rctx) },
	ReportCycleTime:           func(jobs []*domain.Job, rctx ReportContext) any { return CycleTime(jobs, rctx) },
	ReportBottleneck:          func(jobs []*domain.Job, rctx ReportContext) any { return Bottleneck(jobs, rctx) },
	ReportResourceUtilization: func(jobs []*domain.Job, rctx ReportContext) any { return ResourceUtilization(jobs, rctx) },
	ReportMaterialUsage:       func(jobs []*domain.Job, rctx ReportContext) any { return MaterialUsage(jobs, rctx) },
	ReportOutput:              func(jobs []*domain.Job, rctx ReportContext) any { return OutputReportFor(jobs, rctx) },
	ReportDeadlines:           func(jobs []*domain.Job, rctx ReportContext) any { return Deadlines(jobs, rctx) },
}

// RunReport dispatches to the aggregation registered for the given
// type. The second return is false for unknown types.
func RunReport(reportType ReportType, jobs []*domain.Job, rctx ReportContext) (any, bool) {
	fn, ok := reportFuncs[reportType]
	if !ok {
		return nil, false
	}
	return fn(jobs, rctx), true
}

// ReportTypes lists the registered report types in stable order.
func ReportTypes() []ReportType {
	types := make([]ReportType, 0, len(reportFuncs))
	for t := range reportFuncs {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// StageCount is one row of the WIP and bottleneck reports.
type StageCount struct {
	StageID   string `json:"stageId"`
	StageName string `json:"stageName"`
	Count     int    `json:"count"`
}

// WIPByStageResult groups jobs by their current stage.
type WIPByStageResult struct {
	Stages    []StageCount `json:"stages"`
	TotalJobs int          `json:"totalJobs"`
}

// WIPByStage counts jobs per current stage across the whole workspace.
// It reflects current state, so it runs against the unfiltered
// collection and every job lands in exactly one bucket.
func WIPByStage(_ []*domain.Job, rctx ReportContext) WIPByStageResult {
	counts := stageCounts(rctx.AllJobs, rctx.Workflows)
	sort.Slice(counts, func(i, j int) bool { return counts[i].StageID < counts[j].StageID })
	return WIPByStageResult{Stages: counts, TotalJobs: len(rctx.AllJobs)}
}

// BottleneckRow is one ranked row of the bottleneck report.
type BottleneckRow struct {
	Rank      int    `json:"rank"`
	StageID   string `json:"stageId"`
	StageName string `json:"stageName"`
	Count     int    `json:"count"`
}

// BottleneckResult ranks stages by job count, heaviest first.
type BottleneckResult struct {
	Stages []BottleneckRow `json:"stages"`
}

// Bottleneck is the WIP grouping sorted descending by count; rank 1 is
// the stage holding the most jobs.
func Bottleneck(_ []*domain.Job, rctx ReportContext) BottleneckResult {
	counts := stageCounts(rctx.AllJobs, rctx.Workflows)
	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].StageID < counts[j].StageID
	})
	rows := make([]BottleneckRow, 0, len(counts))
	for i, c := range counts {
		rows = append(rows, BottleneckRow{Rank: i + 1, StageID: c.StageID, StageName: c.StageName, Count: c.Count})
	}
	return BottleneckResult{Stages: rows}
}

func stageCounts(jobs []*domain.Job, workflows []*domain.Workflow) []StageCount {
	byStage := make(map[string]int)
	for _, job := range jobs {
		byStage[job.CurrentStageID]++
	}
	counts := make([]StageCount, 0, len(byStage))
	for stageID, count := range byStage {
		name := domain.StageName(workflows, stageID)
		if stageID == "" {
			name = "unassigned"
		}
		counts = append(counts, StageCount{StageID: stageID, StageName: name, Count: count})
	}
	return counts
}

// DayCount is one daily bucket of the throughput report.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ThroughputResult summarizes completions per calendar day.
type ThroughputResult struct {
	Days          []DayCount `json:"days"`
	Total         int        `json:"total"`
	ActiveDays    int        `json:"activeDays"`
	AveragePerDay float64    `json:"averagePerDay"`
}

// Throughput buckets jobs completed within the range by the calendar
// day they were last updated.
func Throughput(jobs []*domain.Job, rctx ReportContext) ThroughputResult {
	byDay := make(map[string]int)
	total := 0
	for _, job := range completedInRange(jobs, rctx.Range) {
		byDay[job.UpdatedAt.Format(dayKeyLayout)]++
		total++
	}
	days := make([]DayCount, 0, len(byDay))
	for date, count := range byDay {
		days = append(days, DayCount{Date: date, Count: count})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	avg := 0.0
	if len(days) > 0 {
		avg = float64(total) / float64(len(days))
	}
	return ThroughputResult{Days: days, Total: total, ActiveDays: len(days), AveragePerDay: avg}
}

// OnTimeDeliveryResult reports the on-time share of completions.
type OnTimeDeliveryResult struct {
	Total      int     `json:"total"`
	OnTime     int     `json:"onTime"`
	Late       int     `json:"late"`
	Percentage float64 `json:"percentage"`
}

// OnTimeDelivery counts completed-in-range jobs finished on or before
// their due date. Jobs without a parseable due date count as late.
func OnTimeDelivery(jobs []*domain.Job, rctx ReportContext) OnTimeDeliveryResult {
	completed := completedInRange(jobs, rctx.Range)
	onTime := 0
	for _, job := range completed {
		due, ok := job.DueDate.Time()
		if ok && !job.UpdatedAt.After(domain.EndOfDay(due)) {
			onTime++
		}
	}
	result := OnTimeDeliveryResult{Total: len(completed), OnTime: onTime, Late: len(completed) - onTime}
	if result.Total > 0 {
		result.Percentage = float64(onTime) / float64(result.Total) * 100
	}
	return result
}

// CycleTimeResult summarizes creation-to-completion durations in days.
type CycleTimeResult struct {
	AverageDays float64 `json:"averageDays"`
	MinDays     float64 `json:"minDays"`
	MaxDays     float64 `json:"maxDays"`
	SampleSize  int     `json:"sampleSize"`
}

// CycleTime measures updatedAt minus createdAt for completed-in-range
// jobs, in fractional days.
func CycleTime(jobs []*domain.Job, rctx ReportContext) CycleTimeResult {
	completed := completedInRange(jobs, rctx.Range)
	result := CycleTimeResult{SampleSize: 0}
	sum := 0.0
	for _, job := range completed {
		if job.CreatedAt.IsZero() {
			continue
		}
		days := job.UpdatedAt.Sub(job.CreatedAt).Hours() / 24
		if result.SampleSize == 0 {
			result.MinDays, result.MaxDays = days, days
		} else {
			result.MinDays = math.Min(result.MinDays, days)
			result.MaxDays = math.Max(result.MaxDays, days)
		}
		sum += days
		result.SampleSize++
	}
	if result.SampleSize > 0 {
		result.AverageDays = sum / float64(result.SampleSize)
	}
	return result
}

// UtilizationRow reports assignment load for one resource.
type UtilizationRow struct {
	ResourceID    string  `json:"resourceId"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	AssignedCount int     `json:"assignedCount"`
	Utilization   float64 `json:"utilization"`
}

// ResourceUtilizationResult lists per-resource assignment counts.
type ResourceUtilizationResult struct {
	Resources []UtilizationRow `json:"resources"`
}

// ResourceUtilization counts, per catalog resource, the workspace jobs
// listing it as an assignee. Capacity is normalized to 1 per resource,
// a placeholder until real capacity modeling exists, so utilization is
// assignedCount as a percentage.
func ResourceUtilization(_ []*domain.Job, rctx ReportContext) ResourceUtilizationResult {
	rows := make([]UtilizationRow, 0, len(rctx.Resources))
	for _, res := range rctx.Resources {
		assigned := 0
		for _, job := range rctx.AllJobs {
			if containsString(job.Assignees, res.ResourceID) {
				assigned++
			}
		}
		rows = append(rows, UtilizationRow{
			ResourceID:    res.ResourceID,
			Name:          res.Name,
			Type:          string(res.Type),
			AssignedCount: assigned,
			Utilization:   float64(assigned) / 1 * 100,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ResourceID < rows[j].ResourceID })
	return ResourceUtilizationResult{Resources: rows}
}

// MaterialRow aggregates consumption for one SKU.
type MaterialRow struct {
	SKU         string  `json:"sku"`
	Required    float64 `json:"required"`
	Consumed    float64 `json:"consumed"`
	Variance    float64 `json:"variance"`
	VariancePct float64 `json:"variancePct"`
}

// MaterialUsageResult sums BOM requirements against consumption.
type MaterialUsageResult struct {
	Materials []MaterialRow `json:"materials"`
}

// MaterialUsage sums required and consumed quantities per distinct BOM
// SKU across the filtered jobs.
func MaterialUsage(jobs []*domain.Job, _ ReportContext) MaterialUsageResult {
	type totals struct{ required, consumed float64 }
	bySKU := make(map[string]*totals)
	order := make([]string, 0)
	for _, job := range jobs {
		for _, line := range job.BOM {
			t, ok := bySKU[line.SKU]
			if !ok {
				t = &totals{}
				bySKU[line.SKU] = t
				order = append(order, line.SKU)
			}
			t.required += line.QtyRequired
			t.consumed += line.Consumed
		}
	}
	sort.Strings(order)

	rows := make([]MaterialRow, 0, len(order))
	for _, sku := range order {
		t := bySKU[sku]
		row := MaterialRow{
			SKU:      sku,
			Required: t.required,
			Consumed: t.consumed,
			Variance: t.consumed - t.required,
		}
		if t.required != 0 {
			row.VariancePct = row.Variance / t.required * 100
		}
		rows = append(rows, row)
	}
	return MaterialUsageResult{Materials: rows}
}

// OutputBand classifies production completeness.
type OutputBand string

const (
	OutputOnTarget OutputBand = "onTarget"
	OutputUnder    OutputBand = "under"
	OutputOver     OutputBand = "over"
)

// OutputRow reports production and packaging variance for one job.
type OutputRow struct {
	JobID          string     `json:"jobId"`
	Code           string     `json:"code"`
	TotalPlanned   float64    `json:"totalPlanned"`
	TotalProduced  float64    `json:"totalProduced"`
	ProductionPct  float64    `json:"productionPct"`
	Band           OutputBand `json:"band"`
	BoxVariance    int        `json:"boxVariance"`
	PalletVariance int        `json:"palletVariance"`
}

// OutputResult lists per-job output rows with band tallies.
type OutputResult struct {
	Jobs     []OutputRow `json:"jobs"`
	OnTarget int         `json:"onTarget"`
	Under    int         `json:"under"`
	Over     int         `json:"over"`
}

// OutputReportFor computes production percentage, band, and packaging
// variances per filtered job. A job with zero planned output reads as
// zero percent, which classifies under.
func OutputReportFor(jobs []*domain.Job, _ ReportContext) OutputResult {
	result := OutputResult{Jobs: make([]OutputRow, 0, len(jobs))}
	for _, job := range jobs {
		planned, produced := 0.0, 0.0
		for _, line := range job.Output {
			planned += line.QtyPlanned
			produced += line.QtyProduced
		}
		row := OutputRow{
			JobID:          job.JobID,
			Code:           job.Code,
			TotalPlanned:   planned,
			TotalProduced:  produced,
			BoxVariance:    job.Packaging.ActualBoxes - job.Packaging.PlannedBoxes,
			PalletVariance: job.Packaging.ActualPallets - job.Packaging.PlannedPallets,
		}
		if planned > 0 {
			row.ProductionPct = produced / planned * 100
		}
		row.Band = classifyOutput(row.ProductionPct)
		switch row.Band {
		case OutputOnTarget:
			result.OnTarget++
		case OutputUnder:
			result.Under++
		case OutputOver:
			result.Over++
		}
		result.Jobs = append(result.Jobs, row)
	}
	return result
}

func classifyOutput(pct float64) OutputBand {
	switch {
	case pct < 95:
		return OutputUnder
	case pct > 105:
		return OutputOver
	default:
		return OutputOnTarget
	}
}

// DeadlineRow reports urgency for one open job.
type DeadlineRow struct {
	JobID        string           `json:"jobId"`
	Code         string           `json:"code"`
	Status       domain.JobStatus `json:"status"`
	DueDate      string           `json:"dueDate"`
	DaysUntilDue int              `json:"daysUntilDue"`
	Overdue      bool             `json:"overdue"`
}

// DeadlinesResult combines per-job urgency with workspace acceptance
// rates.
type DeadlinesResult struct {
	Jobs             []DeadlineRow `json:"jobs"`
	TotalJobs        int           `json:"totalJobs"`
	QAAccepted       int           `json:"qaAccepted"`
	QARate           float64       `json:"qaRate"`
	CustomerAccepted int           `json:"customerAccepted"`
	CustomerRate     float64       `json:"customerRate"`
}

// Deadlines lists open jobs by urgency, soonest due first, and reports
// workspace-wide QA and customer acceptance rates. Negative
// daysUntilDue means overdue.
func Deadlines(jobs []*domain.Job, rctx ReportContext) DeadlinesResult {
	rows := make([]DeadlineRow, 0, len(jobs))
	for _, job := range jobs {
		if job.Status == domain.JobStatusDone || job.Status == domain.JobStatusCancelled {
			continue
		}
		due, ok := job.DueDate.Time()
		if !ok {
			continue
		}
		days := int(math.Ceil(due.Sub(rctx.Now).Hours() / 24))
		rows = append(rows, DeadlineRow{
			JobID:        job.JobID,
			Code:         job.Code,
			Status:       job.Status,
			DueDate:      string(job.DueDate),
			DaysUntilDue: days,
			Overdue:      days < 0,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].DaysUntilDue < rows[j].DaysUntilDue })

	result := DeadlinesResult{Jobs: rows, TotalJobs: len(rctx.AllJobs)}
	for _, job := range rctx.AllJobs {
		if job.QAAcceptedAt != nil {
			result.QAAccepted++
		}
		if job.CustomerAcceptedAt != nil {
			result.CustomerAccepted++
		}
	}
	if result.TotalJobs > 0 {
		result.QARate = float64(result.QAAccepted) / float64(result.TotalJobs) * 100
		result.CustomerRate = float64(result.CustomerAccepted) / float64(result.TotalJobs) * 100
	}
	return result
}

func completedInRange(jobs []*domain.Job, r DateRange) []*domain.Job {
	completed := make([]*domain.Job, 0)
	for _, job := range jobs {
		if job.Status != domain.JobStatusDone {
			continue
		}
		if !r.IsZero() && !r.Contains(job.UpdatedAt) {
			continue
		}
		completed = append(completed, job)
	}
	return completed
}
