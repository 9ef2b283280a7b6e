package application

import "time"

// JobDTO represents a job in responses
type JobDTO struct {
	JobID                  string          `json:"jobId"`
	Code                   string          `json:"code"`
	SKU                    string          `json:"sku,omitempty"`
	ProductName            string          `json:"productName"`
	Customer               CustomerDTO     `json:"customer"`
	Priority               int             `json:"priority"`
	Quantity               float64         `json:"quantity"`
	WorkflowID             string          `json:"workflowId"`
	PlannedStageIDs        []string        `json:"plannedStageIds,omitempty"`
	CurrentStageID         string          `json:"currentStageId,omitempty"`
	Status                 string          `json:"status"`
	BlockReason            string          `json:"blockReason,omitempty"`
	RequireOutputToAdvance bool            `json:"requireOutputToAdvance"`
	PlannedStart           string          `json:"plannedStart,omitempty"`
	PlannedEnd             string          `json:"plannedEnd,omitempty"`
	DueDate                string          `json:"dueDate,omitempty"`
	QAAcceptedAt           *time.Time      `json:"qaAcceptedAt,omitempty"`
	CustomerAcceptedAt     *time.Time      `json:"customerAcceptedAt,omitempty"`
	BOM                    []BOMLineDTO    `json:"bom,omitempty"`
	Output                 []OutputLineDTO `json:"output,omitempty"`
	Packaging              PackagingDTO    `json:"packaging"`
	Assignees              []string        `json:"assignees,omitempty"`
	WorkcenterID           string          `json:"workcenterId,omitempty"`
	Notes                  []StageNoteDTO  `json:"notes,omitempty"`
	CreatedAt              time.Time       `json:"createdAt"`
	UpdatedAt              time.Time       `json:"updatedAt"`
}

// CustomerDTO represents the ordering customer
type CustomerDTO struct {
	CustomerID string `json:"customerId,omitempty"`
	Name       string `json:"name,omitempty"`
}

// BOMLineDTO represents one bill-of-materials line
type BOMLineDTO struct {
	SKU         string  `json:"sku"`
	QtyRequired float64 `json:"qtyRequired"`
	Consumed    float64 `json:"consumed"`
}

// OutputLineDTO represents one planned-versus-produced output line
type OutputLineDTO struct {
	SKU         string  `json:"sku"`
	QtyPlanned  float64 `json:"qtyPlanned"`
	QtyProduced float64 `json:"qtyProduced"`
}

// PackagingDTO represents packaging counts
type PackagingDTO struct {
	PlannedBoxes   int `json:"plannedBoxes"`
	ActualBoxes    int `json:"actualBoxes"`
	PlannedPallets int `json:"plannedPallets"`
	ActualPallets  int `json:"actualPallets"`
}

// StageNoteDTO represents one stage-transition audit note
type StageNoteDTO struct {
	FromStageID string    `json:"fromStageId,omitempty"`
	ToStageID   string    `json:"toStageId"`
	Note        string    `json:"note,omitempty"`
	At          time.Time `json:"at"`
}

// JobListDTO represents a simplified job for list operations
type JobListDTO struct {
	JobID          string    `json:"jobId"`
	Code           string    `json:"code"`
	ProductName    string    `json:"productName"`
	CustomerName   string    `json:"customerName,omitempty"`
	Priority       int       `json:"priority"`
	Status         string    `json:"status"`
	CurrentStageID string    `json:"currentStageId,omitempty"`
	DueDate        string    `json:"dueDate,omitempty"`
	WorkcenterID   string    `json:"workcenterId,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// RunDTO represents a production run in responses
type RunDTO struct {
	RunID        string    `json:"runId"`
	JobID        string    `json:"jobId"`
	StageID      string    `json:"stageId"`
	WorkcenterID string    `json:"workcenterId,omitempty"`
	QtyGood      float64   `json:"qtyGood"`
	QtyScrap     float64   `json:"qtyScrap"`
	Lot          string    `json:"lot,omitempty"`
	OperatorID   string    `json:"operatorId,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// WorkflowDTO represents a workflow definition
type WorkflowDTO struct {
	WorkflowID string     `json:"workflowId"`
	Name       string     `json:"name"`
	Version    int        `json:"version"`
	Stages     []StageDTO `json:"stages"`
}

// StageDTO represents one workflow stage
type StageDTO struct {
	StageID string `json:"stageId"`
	Name    string `json:"name"`
}

// WorkcenterDTO represents a workcenter catalog entry
type WorkcenterDTO struct {
	WorkcenterID    string  `json:"workcenterId"`
	Name            string  `json:"name"`
	Code            string  `json:"code"`
	Location        string  `json:"location,omitempty"`
	CapacityPerHour float64 `json:"capacityPerHour"`
}

// ResourceDTO represents a resource catalog entry
type ResourceDTO struct {
	ResourceID string   `json:"resourceId"`
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Skills     []string `json:"skills,omitempty"`
	HourlyCost float64  `json:"hourlyCost"`
}

// CalendarCellDTO represents one day column of a calendar projection
type CalendarCellDTO struct {
	Date string       `json:"date"`
	Jobs []JobListDTO `json:"jobs"`
}

// CalendarDTO represents a calendar projection response
type CalendarDTO struct {
	Granularity string            `json:"granularity"`
	WindowStart string            `json:"windowStart"`
	WindowEnd   string            `json:"windowEnd"`
	Cells       []CalendarCellDTO `json:"cells"`
}

// GanttRowDTO represents one positioned bar of a gantt projection
type GanttRowDTO struct {
	Job             JobListDTO `json:"job"`
	Start           string     `json:"start"`
	End             string     `json:"end"`
	StartOffsetDays int        `json:"startOffsetDays"`
	DurationDays    int        `json:"durationDays"`
}

// GanttDTO represents a gantt projection response
type GanttDTO struct {
	WindowStart string        `json:"windowStart"`
	WindowEnd   string        `json:"windowEnd"`
	Rows        []GanttRowDTO `json:"rows"`
}

// ReportDTO wraps one aggregation result
type ReportDTO struct {
	Type        string    `json:"type"`
	GeneratedAt time.Time `json:"generatedAt"`
	Result      any       `json:"result"`
}
