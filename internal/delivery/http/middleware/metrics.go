package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/villagehs/village-backend/internal/metrics"
)

// Metrics records a request counter per method, route template, and status.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestsTotal.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
