package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestRecorder is the subset of the Prometheus collectors the HTTP
// layer reports to.
type RequestRecorder interface {
	RequestStarted()
	RequestFinished(method, path, status string, seconds float64)
}

// Metrics records per-route request counts and latencies. Unmatched routes
// are labelled "unmatched" to keep label cardinality bounded.
func Metrics(rec RequestRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		rec.RequestStarted()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		rec.RequestFinished(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
