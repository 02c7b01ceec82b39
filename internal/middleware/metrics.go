package middleware

import (
	"strconv"
	"time"

	"robodesk/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics 按路由模板统计，避免把id等参数作为标签
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HttpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HttpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
