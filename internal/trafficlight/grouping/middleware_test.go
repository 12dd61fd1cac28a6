package grouping_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bitbucket.org/crgw/travel-planner/internal/trafficlight/grouping"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type groupingManagerMock struct {
	handleRequestMock func(ctx context.Context, requester func() (*grouping.Response, error)) (*grouping.Response, error)
}

func (m *groupingManagerMock) HandleRequest(ctx context.Context, requester func() (*grouping.Response, error)) (*grouping.Response, error) {
	return m.handleRequestMock(ctx, requester)
}

func cacheKey(c *gin.Context) (string, bool) {
	return "cache_key", true
}

func TestGroupingMiddleware(t *testing.T) {
	out := &bytes.Buffer{}
	log := zerolog.New(out)

	newRouter := func() *gin.Engine {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			c.Set("logger", &log)
		})

		return router
	}

	t.Run("should return the response from the next handler", func(t *testing.T) {
		redisClient, _ := redismock.NewClientMock()

		createManager := func(
			redis *redis.Client,
			log *zerolog.Logger,
			cacheKey string,
		) grouping.RequestManager {
			assert.Equal(t, "cache_key", cacheKey)

			return &groupingManagerMock{
				handleRequestMock: func(ctx context.Context, requester func() (*grouping.Response, error)) (*grouping.Response, error) {
					response, err := requester()
					assert.NoError(t, err)
					return &grouping.Response{Code: response.Code, Body: response.Body}, nil
				},
			}
		}

		response := httptest.NewRecorder()
		router := newRouter()

		handleSearch := func(c *gin.Context) {
			c.Header("Content-Type", c.ContentType())
			c.Status(http.StatusOK)
			io.Copy(c.Writer, bytes.NewReader([]byte("response from search")))
		}

		router.POST("/flights/search", grouping.Middleware(
			grouping.MiddlewareOptions{CreateManager: createManager, RedisClient: redisClient, CacheKey: cacheKey},
		), handleSearch)

		request, err := http.NewRequest(http.MethodPost, "/flights/search", bytes.NewReader([]byte("")))
		assert.NoError(t, err)

		router.ServeHTTP(response, request)

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Equal(t, "response from search", response.Body.String())
	})

	t.Run("should provide from manager and not call the next handler", func(t *testing.T) {
		redisClient, _ := redismock.NewClientMock()

		createManager := func(
			redis *redis.Client,
			log *zerolog.Logger,
			cacheKey string,
		) grouping.RequestManager {
			return &groupingManagerMock{
				handleRequestMock: func(ctx context.Context, requester func() (*grouping.Response, error)) (*grouping.Response, error) {
					return &grouping.Response{
						Code:    http.StatusOK,
						Body:    "response from cache",
						Headers: map[string][]string{"x-trafficlight-grouping-hit": {"hit"}},
					}, nil
				},
			}
		}

		response := httptest.NewRecorder()
		router := newRouter()

		router.POST("/flights/search", grouping.Middleware(
			grouping.MiddlewareOptions{CreateManager: createManager, RedisClient: redisClient, CacheKey: cacheKey},
		), func(c *gin.Context) {
			assert.Fail(t, "Should not call the search")
		})

		request, err := http.NewRequest(http.MethodPost, "/flights/search", bytes.NewReader([]byte("")))
		assert.NoError(t, err)

		router.ServeHTTP(response, request)

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Equal(t, "response from cache", response.Body.String())
		assert.Equal(t, "hit", response.Header().Get("x-trafficlight-grouping-hit"))
	})

	t.Run("should skip grouping without a key", func(t *testing.T) {
		response := httptest.NewRecorder()
		router := newRouter()

		router.POST("/flights/search", grouping.Middleware(
			grouping.MiddlewareOptions{
				CreateManager: func(redis *redis.Client, log *zerolog.Logger, cacheKey string) grouping.RequestManager {
					assert.Fail(t, "Should not group")
					return nil
				},
				CacheKey: func(c *gin.Context) (string, bool) {
					return "", false
				},
			},
		), func(c *gin.Context) {
			c.String(http.StatusOK, "direct")
		})

		request, _ := http.NewRequest(http.MethodPost, "/flights/search", nil)
		router.ServeHTTP(response, request)

		assert.Equal(t, "direct", response.Body.String())
	})

	t.Run("should answer grouping failures with an error", func(t *testing.T) {
		response := httptest.NewRecorder()
		router := newRouter()

		router.POST("/flights/search", grouping.Middleware(
			grouping.MiddlewareOptions{
				CreateManager: func(redis *redis.Client, log *zerolog.Logger, cacheKey string) grouping.RequestManager {
					return &groupingManagerMock{
						handleRequestMock: func(ctx context.Context, requester func() (*grouping.Response, error)) (*grouping.Response, error) {
							return nil, context.Canceled
						},
					}
				},
				CacheKey: cacheKey,
			},
		), func(c *gin.Context) {})

		request, _ := http.NewRequest(http.MethodPost, "/flights/search", nil)
		router.ServeHTTP(response, request)

		assert.Equal(t, http.StatusBadRequest, response.Code)
		assert.JSONEq(t, `{"message":"Error requesting search","error":"context canceled"}`, response.Body.String())
	})
}
