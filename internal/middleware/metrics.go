package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"healthmate-server/internal/metrics"
)

// Metrics records per-request counters and latency. Unmatched routes are
// labeled with the raw path collapsed to "unmatched" to keep cardinality
// bounded.
func Metrics(m *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}
