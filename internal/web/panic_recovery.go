package web

import (
	"net/http"

	"bitbucket.org/crgw/travel-planner/internal/tools/errorhandler"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const recoveredMessage = "Unknown error, panic recovered"

// PanicRecovery answers panics with a JSON 500 and writes the stack on the request logger.
func PanicRecovery(c *gin.Context) {
	writer := &recoveryWriter{
		logger: c.MustGet("logger").(*zerolog.Logger),
		url:    c.Request.URL.Path,
	}

	gin.CustomRecoveryWithWriter(writer, func(c *gin.Context, recovered any) {
		message := recoveredMessage
		if text, ok := recovered.(string); ok {
			message = text
		}

		errorhandler.HandleError(c, http.StatusInternalServerError, message, nil)
	})(c)
}

type recoveryWriter struct {
	logger *zerolog.Logger
	url    string
}

func (r *recoveryWriter) Write(p []byte) (int, error) {
	r.logger.
		Error().
		Str("label", "panic").
		Str("url", r.url).
		Msg(string(p))

	return len(p), nil
}
