package web

import (
	"strconv"
	"time"

	"bitbucket.org/crgw/travel-planner/internal/tools/metrics"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// TraceLog writes one trace line per request once every other handler finished.
func TraceLog(c *gin.Context) {
	c.Next()

	logger := c.MustGet("logger").(*zerolog.Logger)
	duration := time.Since(c.MustGet(requestStartTimeKey).(time.Time))
	code := c.Writer.Status()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}

	metrics.IncomingRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(code)).Inc()
	metrics.IncomingRequestDuration.WithLabelValues(c.Request.Method, route).Observe(duration.Seconds())

	event := logger.Info()
	if code >= 500 {
		event = logger.Error()
	}

	if sessionId := c.GetString("sessionId"); sessionId != "" {
		event = event.Str("sessionId", sessionId)
	}

	event.
		Str("label", "trace").
		Str("method", c.Request.Method).
		Str("url", c.Request.URL.Path).
		Int("code", code).
		Float64("duration", duration.Seconds()).
		Msg("")
}
