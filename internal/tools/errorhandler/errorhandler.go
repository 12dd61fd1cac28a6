package errorhandler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type ErrorResponse struct {
	Message string  `json:"message"`
	Error   *string `json:"error,omitempty"`
}

// HandleError aborts the request with a JSON error body and logs it on the request logger when one is registered.
func HandleError(c *gin.Context, status int, message string, err error) {
	response := ErrorResponse{Message: message}
	if err != nil {
		e := err.Error()
		response.Error = &e
	}

	if value, ok := c.Get("logger"); ok {
		if logger, ok := value.(*zerolog.Logger); ok {
			event := logger.Warn()
			if status >= 500 {
				event = logger.Error()
			}

			event.
				Err(err).
				Int("code", status).
				Msg(message)
		}
	}

	c.AbortWithStatusJSON(status, response)
}
