package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func TapLogger(c *gin.Context) {
	logger := c.MustGet("logger").(*zerolog.Logger)

	loggerContext := logger.
		With().
		Str("operationId", uuid.New().String())

	if sessionID := c.GetString(SessionKey); sessionID != "" {
		loggerContext = loggerContext.Str("sessionId", sessionID)
	}

	requestLogger := loggerContext.Logger()

	c.Set("logger", &requestLogger)
}
