package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mes-platform/production-service/pkg/errors"
)

// APIErrorResponse represents a standardized error response
type APIErrorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"requestId,omitempty"`
	Timestamp string            `json:"timestamp"`
	Path      string            `json:"path"`
}

// ErrorHandler handles errors attached to the gin context and returns
// standardized responses.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			appErr := errors.MapDomainError(err)
			reqID := GetRequestID(c)

			logError(logger, c, appErr, reqID)

			c.JSON(appErr.HTTPStatus, APIErrorResponse{
				Code:      appErr.Code,
				Message:   appErr.Message,
				Details:   appErr.Details,
				RequestID: reqID,
				Timestamp: time.Now().UTC().Format(time.RFC3339),
				Path:      c.Request.URL.Path,
			})
		}
	}
}

// ErrorResponder provides helper methods for sending error responses
type ErrorResponder struct {
	ctx    *gin.Context
	logger *slog.Logger
}

// NewErrorResponder creates a new ErrorResponder
func NewErrorResponder(ctx *gin.Context, logger *slog.Logger) *ErrorResponder {
	return &ErrorResponder{ctx: ctx, logger: logger}
}

// RespondWithError sends an error response mapped from a domain error
func (r *ErrorResponder) RespondWithError(err error) {
	r.RespondWithAppError(errors.MapDomainError(err))
}

// RespondWithAppError sends an AppError response
func (r *ErrorResponder) RespondWithAppError(appErr *errors.AppError) {
	reqID := GetRequestID(r.ctx)

	logError(r.logger, r.ctx, appErr, reqID)

	r.ctx.JSON(appErr.HTTPStatus, APIErrorResponse{
		Code:      appErr.Code,
		Message:   appErr.Message,
		Details:   appErr.Details,
		RequestID: reqID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      r.ctx.Request.URL.Path,
	})
}

// RespondBadRequest sends a 400 response
func (r *ErrorResponder) RespondBadRequest(message string) {
	r.RespondWithAppError(errors.ErrBadRequest(message))
}

func logError(logger *slog.Logger, c *gin.Context, appErr *errors.AppError, reqID string) {
	attrs := []any{
		"code", appErr.Code,
		"message", appErr.Message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"requestId", reqID,
	}
	if appErr.Err != nil {
		attrs = append(attrs, "error", appErr.Err.Error())
	}

	if appErr.HTTPStatus >= 500 {
		logger.Error("Request failed", attrs...)
	} else {
		logger.Warn("Request failed", attrs...)
	}
}
