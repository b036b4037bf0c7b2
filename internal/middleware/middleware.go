package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"eventdesk/internal/logger"

	"github.com/gin-gonic/gin"
)

// RequestID attaches a generated request id to the response and to the
// request context, so service-layer logs pick it up via logger.WithContext.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := logger.NewRequestID()
		c.Set("request_id", reqID)
		c.Header("X-Request-ID", reqID)
		c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), reqID))
		c.Next()
	}
}

// Logger logs completed requests with structured fields
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		logFields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status_code", c.Writer.Status(),
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		if reqID, exists := c.Get("request_id"); exists {
			logFields = append(logFields, "request_id", reqID)
		}

		if c.Writer.Status() >= 500 {
			if len(c.Errors) > 0 {
				logFields = append(logFields, "error", c.Errors.String())
			}
			slog.Error("Request completed with error", logFields...)
		} else {
			slog.Info("Request completed", logFields...)
		}
	}
}

// Recovery turns panics into a 500 error page instead of a dropped connection
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		slog.Error("PANIC recovered",
			"panic", recovered,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"client_ip", c.ClientIP(),
		)

		if !c.Writer.Written() {
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{
				"Status":  http.StatusInternalServerError,
				"Message": "Something went wrong.",
			})
		}
	})
}
