package main

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mes-platform/production-service/internal/application"
	"github.com/mes-platform/production-service/pkg/api"
	"github.com/mes-platform/production-service/internal/domain"
	"github.com/mes-platform/production-service/pkg/errors"
	"github.com/mes-platform/production-service/pkg/logging"
	"github.com/mes-platform/production-service/pkg/middleware"
)

const queryDateLayout = "2006-01-02"

func respondError(responder *middleware.ErrorResponder, err error) {
	if appErr, ok := errors.AsAppError(err); ok {
		responder.RespondWithAppError(appErr)
		return
	}
	responder.RespondWithError(err)
}

// parseFilterCriteria reads the shared filter query parameters. Every
// list endpoint, projection, and report accepts the same set.
func parseFilterCriteria(c *gin.Context) application.FilterCriteria {
	criteria := application.FilterCriteria{
		Search:       c.Query("search"),
		StageID:      c.Query("stageId"),
		WorkcenterID: c.Query("workcenterId"),
		AssigneeID:   c.Query("assigneeId"),
		CustomerID:   c.Query("customerId"),
	}

	if statuses := c.Query("status"); statuses != "" {
		for _, s := range strings.Split(statuses, ",") {
			criteria.Statuses = append(criteria.Statuses, domain.JobStatus(strings.TrimSpace(s)))
		}
	}

	if priorities := c.Query("priority"); priorities != "" {
		for _, p := range strings.Split(priorities, ",") {
			if v, err := strconv.Atoi(strings.TrimSpace(p)); err == nil {
				criteria.Priorities = append(criteria.Priorities, v)
			}
		}
	}

	if dueBefore := c.Query("dueBefore"); dueBefore != "" {
		if t, err := time.Parse(queryDateLayout, dueBefore); err == nil {
			criteria.DueBefore = &t
		}
	}

	from, hasFrom := parseQueryDate(c, "from")
	to, hasTo := parseQueryDate(c, "to")
	if hasFrom || hasTo {
		if !hasFrom {
			from = time.Time{}
		}
		if !hasTo {
			to = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
		} else {
			to = domain.EndOfDay(to)
		}
		criteria.CreatedRange = &application.DateRange{Start: from, End: to}
	}

	return criteria
}

func parseQueryDate(c *gin.Context, key string) (time.Time, bool) {
	value := c.Query(key)
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(queryDateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func parseDateRange(c *gin.Context) application.DateRange {
	from, hasFrom := parseQueryDate(c, "from")
	to, hasTo := parseQueryDate(c, "to")
	if !hasFrom && !hasTo {
		return application.DateRange{}
	}
	if !hasTo {
		to = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
	} else {
		to = domain.EndOfDay(to)
	}
	return application.DateRange{Start: from, End: to}
}

type jobRequest struct {
	Code            string           `json:"code" binding:"required"`
	SKU             string           `json:"sku"`
	ProductName     string           `json:"productName"`
	Customer        customerRequest  `json:"customer"`
	Priority        int              `json:"priority" binding:"omitempty,min=1,max=5"`
	Quantity        float64          `json:"quantity" binding:"omitempty,min=0"`
	WorkflowID      string           `json:"workflowId"`
	PlannedStageIDs []string         `json:"plannedStageIds"`
	PlannedStart    string           `json:"plannedStart"`
	PlannedEnd      string           `json:"plannedEnd"`
	DueDate         string           `json:"dueDate"`
	BOM             []bomLineRequest `json:"bom"`
	Assignees       []string         `json:"assignees"`
	WorkcenterID    string           `json:"workcenterId"`
}

type customerRequest struct {
	CustomerID string `json:"customerId"`
	Name       string `json:"name"`
}

type bomLineRequest struct {
	SKU         string  `json:"sku" binding:"required"`
	QtyRequired float64 `json:"qtyRequired" binding:"min=0"`
	Consumed    float64 `json:"consumed" binding:"omitempty,min=0"`
}

type runRequest struct {
	StageID      string  `json:"stageId"`
	QtyGood      float64 `json:"qtyGood"`
	QtyScrap     float64 `json:"qtyScrap"`
	WorkcenterID string  `json:"workcenterId"`
	Lot          string  `json:"lot"`
	OperatorID   string  `json:"operatorId"`
}

func (r runRequest) toInput() domain.RunInput {
	return domain.RunInput{
		QtyGood:      r.QtyGood,
		QtyScrap:     r.QtyScrap,
		WorkcenterID: r.WorkcenterID,
		Lot:          r.Lot,
		OperatorID:   r.OperatorID,
	}
}

func createJobHandler(service *application.ProductionApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req jobRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			responder.RespondBadRequest(err.Error())
			return
		}

		bom := make([]domain.BOMLine, 0, len(req.BOM))
		for _, line := range req.BOM {
			bom = append(bom, domain.BOMLine{SKU: line.SKU, QtyRequired: line.QtyRequired, Consumed: line.Consumed})
		}

		cmd := application.CreateJobCommand{
			Code:            req.Code,
			SKU:             req.SKU,
			ProductName:     req.ProductName,
			Customer:        domain.Customer{CustomerID: req.Customer.CustomerID, Name: req.Customer.Name},
			Priority:        req.Priority,
			Quantity:        req.Quantity,
			WorkflowID:      req.WorkflowID,
			PlannedStageIDs: req.PlannedStageIDs,
			PlannedStart:    req.PlannedStart,
			PlannedEnd:      req.PlannedEnd,
			DueDate:         req.DueDate,
			BOM:             bom,
			Assignees:       req.Assignees,
			WorkcenterID:    req.WorkcenterID,
		}

		job, err := service.CreateJob(c.Request.Context(), cmd)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusCreated, job)
	}
}

func listJobsHandler(service *application.ProductionApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		page := api.ParsePagination(c)

		query := application.ListJobsQuery{
			Criteria: parseFilterCriteria(c),
			Page:     int(page.Page),
			PageSize: int(page.PageSize),
		}

		jobs, err := service.ListJobs(c.Request.Context(), query)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, jobs)
	}
}

func getJobHandler(service *application.ProductionApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		job, err := service.GetJob(c.Request.Context(), application.GetJobQuery{JobID: c.Param("jobId")})
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, job)
	}
}

func updateJobHandler(service *application.ProductionApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			ProductName  *string   `json:"productName"`
			Priority     *int      `json:"priority" binding:"omitempty,min=1,max=5"`
			Quantity     *float64  `json:"quantity" binding:"omitempty,min=0"`
			PlannedStart *string   `json:"plannedStart"`
			PlannedEnd   *string   `json:"plannedEnd"`
			DueDate      *string   `json:"dueDate"`
			Assignees    *[]string `json:"assignees"`
			WorkcenterID *string   `json:"workcenterId"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			responder.RespondBadRequest(err.Error())
			return
		}

		cmd := application.UpdateJobCommand{
			JobID:        c.Param("jobId"),
			ProductName:  req.ProductName,
			Priority:     req.Priority,
			Quantity:     req.Quantity,
			PlannedStart: req.PlannedStart,
			PlannedEnd:   req.PlannedEnd,
			DueDate:      req.DueDate,
			Assignees:    req.Assignees,
			WorkcenterID: req.WorkcenterID,
		}

		job, err := service.UpdateJob(c.Request.Context(), cmd)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, job)
	}
}

func deleteJobHandler(service *application.ProductionApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		if err := service.DeleteJob(c.Request.Context(), application.DeleteJobCommand{JobID: c.Param("jobId")}); err != nil {
			respondError(responder, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func releaseJobHandler(service *application.ProductionApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		job, err := service.ReleaseJob(c.Request.Context(), application.ReleaseJobCommand{JobID: c.Param("jobId")})
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, job)
	}
}

func setJobStatusHandler(service *application.ProductionApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			Status      string `json:"status" binding:"required"`
			BlockReason string `json:"blockReason"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			responder.RespondBadRequest(err.Error())
			return
		}

		cmd := application.SetJobStatusCommand{
			JobID:       c.Param("jobId"),
			Status:      req.Status,
			BlockReason: req.BlockReason,
		}

		job, err := service.SetJobStatus(c.Request.Context(), cmd)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, job)
	}
}

func blockJobHandler(service *application.ProductionApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			Reason string `json:"reason" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			responder.RespondBadRequest(err.Error())
			return
		}

		cmd := application.SetJobStatusCommand{
			JobID:       c.Param("jobId"),
			Status:      string(domain.JobStatusBlocked),
			BlockReason: req.Reason,
		}

		job, err := service.SetJobStatus(c.Request.Context(), cmd)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, job)
	}
}

func unblockJobHandler(service *application.ProductionApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		cmd := application.SetJobStatusCommand{
			JobID:  c.Param("jobId"),
			Status: string(domain.JobStatusInProgress),
		}

		job, err := service.SetJobStatus(c.Request.Context(), cmd)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, job)
	}
}

func advanceStageHandler(service *application.ProductionApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			TargetStageID string      `json:"targetStageId" binding:"required"`
			Note          string      `json:"note"`
			Output        *runRequest `json:"output"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			responder.RespondBadRequest(err.Error())
			return
		}

		cmd := application.AdvanceStageCommand{
			JobID:         c.Param("jobId"),
			TargetStageID: req.TargetStageID,
			Note:          req.Note,
		}
		if req.Output != nil {
			input := req.Output.toInput()
			cmd.Output = &input
		}

		job, err := service.AdvanceStage(c.Request.Context(), cmd)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, job)
	}
}

func completeJobHandler(service *application.ProductionApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req struct {
			Output *runRequest `json:"output"`
		}
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				responder.RespondBadRequest(err.Error())
				return
			}
		}

		cmd := application.CompleteJobCommand{JobID: c.Param("jobId")}
		if req.Output != nil {
			input := req.Output.toInput()
			cmd.Output = &input
		}

		job, err := service.CompleteJob(c.Request.Context(), cmd)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, job)
	}
}

func recordRunHandler(service *application.ProductionApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req runRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			responder.RespondBadRequest(err.Error())
			return
		}

		cmd := application.RecordRunCommand{
			JobID:   c.Param("jobId"),
			StageID: req.StageID,
			Input:   req.toInput(),
		}

		run, err := service.RecordRun(c.Request.Context(), cmd)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusCreated, run)
	}
}

func listRunsHandler(service *application.ProductionApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		query := application.ListRunsQuery{
			JobID:   c.Param("jobId"),
			StageID: c.Query("stageId"),
		}

		runs, err := service.ListRuns(c.Request.Context(), query)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, runs)
	}
}

func calendarHandler(service *application.ProductionApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		anchor, ok := parseQueryDate(c, "anchor")
		if !ok {
			anchor = time.Now()
		}

		query := application.ScheduleQuery{
			Anchor:      anchor,
			Granularity: application.Granularity(c.DefaultQuery("granularity", "week")),
			Criteria:    parseFilterCriteria(c),
		}

		calendar, err := service.GetCalendar(c.Request.Context(), query)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, calendar)
	}
}

func ganttHandler(service *application.ProductionApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		anchor, ok := parseQueryDate(c, "anchor")
		if !ok {
			anchor = time.Now()
		}

		query := application.ScheduleQuery{
			Anchor:      anchor,
			Granularity: application.GranularityGantt,
			Criteria:    parseFilterCriteria(c),
		}

		gantt, err := service.GetGantt(c.Request.Context(), query)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, gantt)
	}
}

func listReportTypesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"types": application.ReportTypes()})
	}
}

func reportHandler(service *application.ProductionApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		query := application.ReportQuery{
			Type:     application.ReportType(c.Param("type")),
			Range:    parseDateRange(c),
			Criteria: parseFilterCriteria(c),
		}

		report, err := service.GetReport(c.Request.Context(), query)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, report)
	}
}

func listWorkflowsHandler(service *application.ProductionApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		workflows, err := service.ListWorkflows(c.Request.Context())
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, workflows)
	}
}

func listWorkcentersHandler(service *application.ProductionApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		workcenters, err := service.ListWorkcenters(c.Request.Context())
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, workcenters)
	}
}

func listResourcesHandler(service *application.ProductionApplicationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		resources, err := service.ListResources(c.Request.Context())
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, resources)
	}
}
