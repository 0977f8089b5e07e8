// ABOUTME: Request logging middleware backed by the structured logger
// ABOUTME: Logs method, path, status, and latency after each request
package web

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harper/tubesum/internal/logger"
)

// LoggerMiddleware logs each completed request
func LoggerMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		keyvals := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			keyvals = append(keyvals, "errors", errs)
		}

		switch {
		case status >= 500:
			log.Error("request", keyvals...)
		case status >= 400:
			log.Warn("request", keyvals...)
		default:
			log.Debug("request", keyvals...)
		}
	}
}
