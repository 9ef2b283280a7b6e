package application

import "github.com/mes-platform/production-service/internal/domain"

// ToJobDTO converts a domain Job to JobDTO
func ToJobDTO(job *domain.Job) *JobDTO {
	if job == nil {
		return nil
	}

	bom := make([]BOMLineDTO, 0, len(job.BOM))
	for _, line := range job.BOM {
		bom = append(bom, BOMLineDTO{SKU: line.SKU, QtyRequired: line.QtyRequired, Consumed: line.Consumed})
	}

	output := make([]OutputLineDTO, 0, len(job.Output))
	for _, line := range job.Output {
		output = append(output, OutputLineDTO{SKU: line.SKU, QtyPlanned: line.QtyPlanned, QtyProduced: line.QtyProduced})
	}

	notes := make([]StageNoteDTO, 0, len(job.Notes))
	for _, note := range job.Notes {
		notes = append(notes, StageNoteDTO{
			FromStageID: note.FromStageID,
			ToStageID:   note.ToStageID,
			Note:        note.Note,
			At:          note.At,
		})
	}

	return &JobDTO{
		JobID:                  job.JobID,
		Code:                   job.Code,
		SKU:                    job.SKU,
		ProductName:            job.ProductName,
		Customer:               CustomerDTO{CustomerID: job.Customer.CustomerID, Name: job.Customer.Name},
		Priority:               job.Priority,
		Quantity:               job.Quantity,
		WorkflowID:             job.WorkflowID,
		PlannedStageIDs:        job.PlannedStageIDs,
		CurrentStageID:         job.CurrentStageID,
		Status:                 string(job.Status),
		BlockReason:            job.BlockReason,
		RequireOutputToAdvance: job.RequireOutputToAdvance,
		PlannedStart:           string(job.PlannedStart),
		PlannedEnd:             string(job.PlannedEnd),
		DueDate:                string(job.DueDate),
		QAAcceptedAt:           job.QAAcceptedAt,
		CustomerAcceptedAt:     job.CustomerAcceptedAt,
		BOM:                    bom,
		Output:                 output,
		Packaging: PackagingDTO{
			PlannedBoxes:   job.Packaging.PlannedBoxes,
			ActualBoxes:    job.Packaging.ActualBoxes,
			PlannedPallets: job.Packaging.PlannedPallets,
			ActualPallets:  job.Packaging.ActualPallets,
		},
		Assignees:    job.Assignees,
		WorkcenterID: job.WorkcenterID,
		Notes:        notes,
		CreatedAt:    job.CreatedAt,
		UpdatedAt:    job.UpdatedAt,
	}
}

// ToJobListDTO converts a domain Job to its list representation
func ToJobListDTO(job *domain.Job) JobListDTO {
	return JobListDTO{
		JobID:          job.JobID,
		Code:           job.Code,
		ProductName:    job.ProductName,
		CustomerName:   job.Customer.Name,
		Priority:       job.Priority,
		Status:         string(job.Status),
		CurrentStageID: job.CurrentStageID,
		DueDate:        string(job.DueDate),
		WorkcenterID:   job.WorkcenterID,
		UpdatedAt:      job.UpdatedAt,
	}
}

// ToJobListDTOs converts a job slice to list representations
func ToJobListDTOs(jobs []*domain.Job) []JobListDTO {
	dtos := make([]JobListDTO, 0, len(jobs))
	for _, job := range jobs {
		dtos = append(dtos, ToJobListDTO(job))
	}
	return dtos
}

// ToRunDTO converts a domain ProductionRun to RunDTO
func ToRunDTO(run *domain.ProductionRun) *RunDTO {
	if run == nil {
		return nil
	}
	return &RunDTO{
		RunID:        run.RunID,
		JobID:        run.JobID,
		StageID:      run.StageID,
		WorkcenterID: run.WorkcenterID,
		QtyGood:      run.QtyGood,
		QtyScrap:     run.QtyScrap,
		Lot:          run.Lot,
		OperatorID:   run.OperatorID,
		Timestamp:    run.Timestamp,
	}
}

// ToRunDTOs converts a run slice to DTOs
func ToRunDTOs(runs []*domain.ProductionRun) []RunDTO {
	dtos := make([]RunDTO, 0, len(runs))
	for _, run := range runs {
		dtos = append(dtos, *ToRunDTO(run))
	}
	return dtos
}

// ToWorkflowDTO converts a domain Workflow to WorkflowDTO
func ToWorkflowDTO(workflow *domain.Workflow) *WorkflowDTO {
	if workflow == nil {
		return nil
	}
	stages := make([]StageDTO, 0, len(workflow.Stages))
	for _, stage := range workflow.Stages {
		stages = append(stages, StageDTO{StageID: stage.StageID, Name: stage.Name})
	}
	return &WorkflowDTO{
		WorkflowID: workflow.WorkflowID,
		Name:       workflow.Name,
		Version:    workflow.Version,
		Stages:     stages,
	}
}

// ToWorkflowDTOs converts a workflow slice to DTOs
func ToWorkflowDTOs(workflows []*domain.Workflow) []WorkflowDTO {
	dtos := make([]WorkflowDTO, 0, len(workflows))
	for _, workflow := range workflows {
		dtos = append(dtos, *ToWorkflowDTO(workflow))
	}
	return dtos
}

// ToWorkcenterDTOs converts a workcenter slice to DTOs
func ToWorkcenterDTOs(workcenters []*domain.Workcenter) []WorkcenterDTO {
	dtos := make([]WorkcenterDTO, 0, len(workcenters))
	for _, wc := range workcenters {
		dtos = append(dtos, WorkcenterDTO{
			WorkcenterID:    wc.WorkcenterID,
			Name:            wc.Name,
			Code:            wc.Code,
			Location:        wc.Location,
			CapacityPerHour: wc.CapacityPerHour,
		})
	}
	return dtos
}

// ToResourceDTOs converts a resource slice to DTOs
func ToResourceDTOs(resources []*domain.Resource) []ResourceDTO {
	dtos := make([]ResourceDTO, 0, len(resources))
	for _, res := range resources {
		dtos = append(dtos, ResourceDTO{
			ResourceID: res.ResourceID,
			Name:       res.Name,
			Type:       string(res.Type),
			Skills:     res.Skills,
			HourlyCost: res.HourlyCost,
		})
	}
	return dtos
}

// ToCalendarDTO converts projection cells to the response shape
func ToCalendarDTO(granularity Granularity, window DateRange, cells []CalendarCell) *CalendarDTO {
	cellDTOs := make([]CalendarCellDTO, 0, len(cells))
	for _, cell := range cells {
		cellDTOs = append(cellDTOs, CalendarCellDTO{
			Date: cell.Date.Format(dayKeyLayout),
			Jobs: ToJobListDTOs(cell.Jobs),
		})
	}
	return &CalendarDTO{
		Granularity: string(granularity),
		WindowStart: window.Start.Format(dayKeyLayout),
		WindowEnd:   window.End.Format(dayKeyLayout),
		Cells:       cellDTOs,
	}
}

// ToGanttDTO converts gantt rows to the response shape
func ToGanttDTO(window DateRange, rows []GanttRow) *GanttDTO {
	rowDTOs := make([]GanttRowDTO, 0, len(rows))
	for _, row := range rows {
		rowDTOs = append(rowDTOs, GanttRowDTO{
			Job:             ToJobListDTO(row.Job),
			Start:           row.Start.Format(dayKeyLayout),
			End:             row.End.Format(dayKeyLayout),
			StartOffsetDays: row.StartOffsetDays,
			DurationDays:    row.DurationDays,
		})
	}
	return &GanttDTO{
		WindowStart: window.Start.Format(dayKeyLayout),
		WindowEnd:   window.End.Format(dayKeyLayout),
		Rows:        rowDTOs,
	}
}
