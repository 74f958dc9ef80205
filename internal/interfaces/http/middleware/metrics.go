package middleware

import (
	"time"

	"github.com/Darkingtail/mall4r/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
)

// Metrics records request count, latency and in-flight requests. Requests
// are labelled with the matched route template so ids never become labels.
func Metrics(m *telemetry.Metrics, skipPaths ...string) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		m.RequestStarted()

		c.Next()

		m.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
