package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// PageRequest carries pagination query parameters for list endpoints.
type PageRequest struct {
	Page     int64 `form:"page" json:"page"`
	PageSize int64 `form:"pageSize" json:"pageSize"`
}

// PageResponse wraps a page of results with paging bookkeeping.
type PageResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int64 `json:"page"`
	PageSize   int64 `json:"pageSize"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int64 `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// NewPageResponse builds a PageResponse for one page of data.
func NewPageResponse[T any](data []T, page, pageSize, totalItems int64) PageResponse[T] {
	totalPages := (totalItems + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	return PageResponse[T]{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// ParsePagination reads page/pageSize from the request query, clamping
// out-of-range values to sane defaults.
func ParsePagination(c *gin.Context) PageRequest {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	pageSize, _ := strconv.ParseInt(c.DefaultQuery("pageSize", "50"), 10, 64)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	if pageSize > 200 {
		pageSize = 200
	}

	return PageRequest{
		Page:     page,
		PageSize: pageSize,
	}
}
