package web

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RegisterLogger sets the request logger every later handler logs with.
func RegisterLogger(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestLogger := logger.
			With().
			Str("correlationId", c.GetString("correlationId")).
			Str("route", c.FullPath()).
			Logger()

		c.Set("logger", &requestLogger)
	}
}
