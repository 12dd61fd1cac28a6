package grouping

import (
	"context"
	"encoding/json"
	"time"

	"bitbucket.org/crgw/travel-planner/internal/schema"
	"bitbucket.org/crgw/travel-planner/internal/tools/converting"
	"bitbucket.org/crgw/travel-planner/internal/tools/slowlog"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	responseDuration       = 10 * time.Minute
	failedResponseDuration = 1 * time.Minute
	waitInterval           = 400 * time.Millisecond
)

type Response struct {
	Code    int
	Headers map[string][]string
	Body    string
}

type Storage interface {
	AcquireLock(ctx context.Context, cacheKey string) (bool, error)
	ReleaseLock(ctx context.Context, cacheKey string)
	StoreResponse(ctx context.Context, responseKey string, response *Response, duration time.Duration)
	FetchResponse(ctx context.Context, responseKey string) (*CachedValue, error)
}

type requestManager struct {
	groupingId string
	cache      Storage
	log        *zerolog.Logger
	slowLog    slowlog.Logger
	cacheKey   string
}

// searchResponseObject is the part of any search response deciding how long it is shared.
type searchResponseObject struct {
	Errors *schema.SupplierResponseErrors `json:"errors"`
}

func isStatusCodeAcceptable(code int) bool {
	return code >= 200 && code < 300
}

func (m *requestManager) requestAndStore(
	responseKey string,
	requester func() (*Response, error),
) (*Response, error) {
	m.slowLog.Start("grouping:requestAndStore")
	defer m.slowLog.Stop("grouping:requestAndStore")

	response, err := requester()

	if err != nil {
		m.cache.ReleaseLock(context.Background(), m.cacheKey)
		m.log.Err(err).Msg("Unable to request the search")
		return nil, err
	}

	duration := responseDuration

	var searchResponse searchResponseObject
	e := json.Unmarshal([]byte(response.Body), &searchResponse)
	if e != nil || !isStatusCodeAcceptable(response.Code) || len(converting.Unwrap(searchResponse.Errors)) != 0 {
		duration = failedResponseDuration
	}

	m.cache.StoreResponse(context.Background(), responseKey, &Response{
		Code:    response.Code,
		Body:    response.Body,
		Headers: response.Headers,
	}, duration)

	m.cache.ReleaseLock(context.Background(), m.cacheKey)

	return response, nil
}

func (m *requestManager) requestOrWait(ctx context.Context, requester func() (*Response, error)) (*Response, error) {
	responseKey := "res:" + m.cacheKey

	for {
		select {
		case <-ctx.Done():
			return nil, context.Canceled
		default:
		}

		var response *CachedValue
		var err error
		m.slowLog.Measure("grouping:fetchFromCache", func() {
			response, err = m.cache.FetchResponse(ctx, responseKey)
		})

		if err != nil {
			m.log.Err(err).
				Str("label", "cache").
				Bool("hit", false).
				Str("key", responseKey).
				Msg("Error fetching from cache")

			return requester()
		}

		if response != nil {
			m.log.Info().
				Str("label", "cache").
				Bool("hit", true).
				Str("key", m.cacheKey).
				Msg("Used cache response")

			if response.Headers == nil {
				response.Headers = make(map[string][]string)
			}

			response.Headers["x-trafficlight-grouping-hit"] = []string{"hit"}

			return &Response{
				Code:    response.Code,
				Body:    response.Body,
				Headers: response.Headers,
			}, nil
		}

		canMakeTheRequest, err := m.cache.AcquireLock(ctx, m.cacheKey)

		if err != nil || canMakeTheRequest {
			return m.requestAndStore(responseKey, requester)
		}

		select {
		case <-ctx.Done():
			return nil, context.Canceled
		case <-time.After(waitInterval):
		}
	}
}

func (m *requestManager) HandleRequest(ctx context.Context, requester func() (*Response, error)) (*Response, error) {
	m.slowLog.Start("grouping:HandleRequest")
	defer m.slowLog.Stop("grouping:HandleRequest")
	return m.requestOrWait(ctx, requester)
}

func NewRequestManager(
	redisClient *redis.Client,
	log *zerolog.Logger,
	cacheKey string,
) RequestManager {
	groupingId := uuid.New().String()
	logWithGroupingId := log.With().Str("groupingId", groupingId).Logger()
	slowLog := slowlog.CreateLogger(&logWithGroupingId)

	return &requestManager{
		groupingId: groupingId,
		cacheKey:   cacheKey,
		cache:      newStorage(redisClient, &logWithGroupingId, slowLog),
		log:     &logWithGroupingId,
		slowLog: slowLog,
	}
}
