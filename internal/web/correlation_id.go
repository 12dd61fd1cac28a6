package web

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	correlationIdHeader = "x-correlation-id"
	maxCorrelationIdLen = 128
)

// CorrelationId takes the correlation id of the caller, or starts a new one, and echoes it back.
func CorrelationId(c *gin.Context) {
	correlationId := c.GetHeader(correlationIdHeader)
	if correlationId == "" || len(correlationId) > maxCorrelationIdLen {
		correlationId = uuid.New().String()
	}

	c.Set("correlationId", correlationId)
	c.Header(correlationIdHeader, correlationId)
}
