package middleware

import (
	"github.com/consensuslabs/reelstream/backend/internal/logger"
	"github.com/gin-gonic/gin"
)

// LoggerKey is the gin context key holding the request-scoped logger
const LoggerKey = "logger"

// GetLogger retrieves the request-scoped logger, falling back to a no-op logger
func GetLogger(c *gin.Context) logger.Logger {
	if log, exists := c.Get(LoggerKey); exists {
		if contextLogger, ok := log.(logger.Logger); ok {
			return contextLogger
		}
	}
	return logger.NewNopLogger()
}
