package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mes-platform/production-service/pkg/logging"
)

// Context keys
const (
	ContextKeyRequestID     = "requestId"
	ContextKeyCorrelationID = "correlationId"
)

// HTTP header names
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"
)

// RequestID middleware generates or propagates request IDs
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(ContextKeyRequestID, requestID)
		c.Header(HeaderRequestID, requestID)
		c.Request = c.Request.WithContext(logging.ContextWithRequestID(c.Request.Context(), requestID))

		c.Next()
	}
}

// CorrelationID middleware handles correlation ID propagation across services
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader(HeaderCorrelationID)
		if correlationID == "" {
			correlationID = uuid.New().String()
		}

		c.Set(ContextKeyCorrelationID, correlationID)
		c.Header(HeaderCorrelationID, correlationID)
		c.Request = c.Request.WithContext(logging.ContextWithCorrelationID(c.Request.Context(), correlationID))

		c.Next()
	}
}

// Logger middleware adds structured request logging with correlation context.
// Health and metrics probes are excluded.
func Logger(logger *slog.Logger) gin.HandlerFunc {
	skip := map[string]bool{
		"/health":  true,
		"/ready":   true,
		"/metrics": true,
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if skip[path] {
			c.Next()
			return
		}

		start := time.Now()
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		attrs := []any{
			"status", status,
			"method", c.Request.Method,
			"path", path,
			"latencyMs", latency.Milliseconds(),
			"clientIP", c.ClientIP(),
		}

		if id := GetRequestID(c); id != "" {
			attrs = append(attrs, "requestId", id)
		}
		if id := GetCorrelationID(c); id != "" {
			attrs = append(attrs, "correlationId", id)
		}
		if query != "" {
			attrs = append(attrs, "query", query)
		}

		switch {
		case status >= 500:
			logger.Error("HTTP request", attrs...)
		case status >= 400:
			logger.Warn("HTTP request", attrs...)
		default:
			logger.Info("HTTP request", attrs...)
		}
	}
}

// Recovery middleware handles panics and logs them properly
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered",
					"error", err,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"requestId", GetRequestID(c),
				)

				c.AbortWithStatusJSON(500, APIErrorResponse{
					Code:      "INTERNAL_ERROR",
					Message:   "An unexpected error occurred",
					RequestID: GetRequestID(c),
					Timestamp: time.Now().UTC().Format(time.RFC3339),
					Path:      c.Request.URL.Path,
				})
			}
		}()
		c.Next()
	}
}

// GetRequestID extracts the request ID from context
func GetRequestID(c *gin.Context) string {
	if val, exists := c.Get(ContextKeyRequestID); exists {
		if id, ok := val.(string); ok {
			return id
		}
	}
	return ""
}

// GetCorrelationID extracts the correlation ID from context
func GetCorrelationID(c *gin.Context) string {
	if val, exists := c.Get(ContextKeyCorrelationID); exists {
		if id, ok := val.(string); ok {
			return id
		}
	}
	return ""
}
