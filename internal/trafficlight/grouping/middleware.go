package grouping

import (
	"bytes"
	"context"
	"net/http"

	"bitbucket.org/crgw/travel-planner/internal/tools/errorhandler"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// capturingWriter keeps a copy of the body written by the next handlers.
type capturingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

type RequestManager interface {
	HandleRequest(context.Context, func() (*Response, error)) (*Response, error)
}

type MiddlewareOptions struct {
	CreateManager func(
		redis *redis.Client,
		log *zerolog.Logger,
		cacheKey string,
	) RequestManager
	RedisClient *redis.Client
	// CacheKey names the group of identical requests, false skips grouping
	CacheKey func(c *gin.Context) (string, bool)
}

// runNext returns a requester running the rest of the chain on c and capturing its response.
func runNext(c *gin.Context) func() (*Response, error) {
	return func() (*Response, error) {
		writer := &capturingWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		return &Response{
			Code:    c.Writer.Status(),
			Body:    writer.body.String(),
			Headers: writer.Header(),
		}, c.Err()
	}
}

// replay writes a response produced by another request of the group.
func replay(c *gin.Context, response *Response) {
	for key, values := range response.Headers {
		for _, value := range values {
			c.Writer.Header().Add(key, value)
		}
	}

	c.Data(response.Code, gin.MIMEJSON, []byte(response.Body))
}

// Middleware collapses identical concurrent requests into one call of the next handlers.
// Only the request running the handlers writes on its own, the others replay its response.
func Middleware(o MiddlewareOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := c.MustGet("logger").(*zerolog.Logger)

		cacheKey, ok := o.CacheKey(c)
		if !ok {
			log.Warn().Msg("TrafficLight added to route, but the request has no grouping key")
			c.Next()
			return
		}

		manager := o.CreateManager(o.RedisClient, log, cacheKey)
		response, err := manager.HandleRequest(c.Request.Context(), runNext(c))

		defer c.Abort()

		if c.Writer.Written() {
			return
		}

		if err != nil {
			errorhandler.HandleError(c, http.StatusBadRequest, "Error requesting search", err)
			return
		}

		replay(c, response)
	}
}
