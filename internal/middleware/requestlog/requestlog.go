// Package requestlog provides request logging middleware
package requestlog

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/conexa-api/internal/logger"
)

// New returns a middleware function that logs request details
func New() gin.HandlerFunc {
	httpLog := logger.WithContext("component", "http")

	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		latency := time.Since(startTime)
		status := c.Writer.Status()

		logLevel := httpLog.Info
		if status >= 500 {
			logLevel = httpLog.Error
		} else if status >= 400 {
			logLevel = httpLog.Warn
		}

		logLevel("Request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", latency,
			"size", c.Writer.Size(),
			"remote_addr", c.ClientIP(),
		)
	}
}

// Recovery returns gin's recovery middleware wired to the charm logger
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Get().Error("Panic recovered", "error", recovered, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(500, gin.H{"success": false, "error": "internal server error"})
	})
}
