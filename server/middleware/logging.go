package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/authgate/logger"
)

// RequestLogger logs every completed request with method, path, status and
// latency. 5xx log at error, 4xx at warn, the rest at debug. Query strings
// and headers are not logged.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	log = log.WithComponent("http")

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		fields := logger.Fields(
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			logger.FieldStatus, status,
			logger.FieldDuration, latency.Milliseconds(),
			"client", c.ClientIP(),
		)
		if latency > 500*time.Millisecond {
			fields["slow"] = true
		}

		l := log.WithContext(c.Request.Context())
		switch {
		case status >= 500:
			l.Error("Request completed", fields)
		case status >= 400:
			l.Warn("Request completed", fields)
		default:
			l.Debug("Request completed", fields)
		}
	}
}
