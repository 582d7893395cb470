package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopbot/goshop/internal/metrics"
)

// endpointLabel returns the matched route template so the endpoint label
// stays a closed set. Unmatched requests collapse into one series.
func endpointLabel(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return "unmatched"
}

// requestMetrics tracks in-flight sessions and records one request counter
// increment and one latency observation per request.
func (s *Server) requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		s.reg.AddGauge(metrics.ActiveSessionsGauge, metrics.Labels{}, 1)

		c.Next()

		endpoint := endpointLabel(c)
		s.reg.ObserveHistogram(metrics.APIRequestLatency, metrics.Labels{
			"method":   c.Request.Method,
			"endpoint": endpoint,
		}, time.Since(start).Seconds())
		s.reg.IncCounter(metrics.APIRequestsTotal, metrics.Labels{
			"method":   c.Request.Method,
			"endpoint": endpoint,
			"status":   strconv.Itoa(c.Writer.Status()),
		})
		s.reg.AddGauge(metrics.ActiveSessionsGauge, metrics.Labels{}, -1)
	}
}

// recovery converts a handler panic into a JSON 500 and records it on the
// error counter. Engine panics never reach here (the engine recovers its
// own), so this only fires for bugs in the transport layer itself.
func (s *Server) recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		s.reg.IncCounter(metrics.APIErrorsTotal, metrics.Labels{
			"endpoint":   endpointLabel(c),
			"error_type": "internal_server_error",
		})
		s.log.WithField("endpoint", endpointLabel(c)).Errorf("panic in handler: %v", err)
		c.AbortWithStatusJSON(500, gin.H{
			"success": false,
			"message": "An internal server error occurred.",
		})
	})
}

// requireAPIKey rejects requests whose X-API-Key header is missing or wrong.
// errorType distinguishes the create and patch gates on the error counter.
func (s *Server) requireAPIKey(errorType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-API-Key")
		if key == "" || key != s.cfg.APIKey {
			s.reg.IncCounter(metrics.APIErrorsTotal, metrics.Labels{
				"endpoint":   endpointLabel(c),
				"error_type": errorType,
			})
			c.AbortWithStatusJSON(401, gin.H{
				"success": false,
				"message": "Unauthorized. API key missing or invalid.",
			})
			return
		}
		c.Next()
	}
}
