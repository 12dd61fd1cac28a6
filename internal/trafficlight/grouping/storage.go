package grouping

import (
	"context"
	"time"

	"bitbucket.org/crgw/travel-planner/internal/tools/caching"
	"bitbucket.org/crgw/travel-planner/internal/tools/slowlog"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	lockDuration = 1 * time.Minute
	lockPrefix   = "lock:"
)

type CachedValue struct {
	Code    int                 `json:"code"`
	Headers map[string][]string `json:"headers"`
	Body    string              `json:"body"`
}

// storage shares responses between concurrent identical searches. The lock
// marks a search in flight, the response lives next to it under its own key.
type storage struct {
	redis   *redis.Client
	cache   *caching.Cacher
	log     *zerolog.Logger
	slowLog slowlog.Logger
}

func newStorage(redisClient *redis.Client, log *zerolog.Logger, slowLog slowlog.Logger) *storage {
	return &storage{
		redis:   redisClient,
		cache:   caching.NewRedisCache(redisClient),
		log:     log,
		slowLog: slowLog,
	}
}

func (s *storage) AcquireLock(ctx context.Context, cacheKey string) (bool, error) {
	return s.redis.SetNX(ctx, lockPrefix+cacheKey, "", lockDuration).Result()
}

// ReleaseLock also runs after the request context is gone.
func (s *storage) ReleaseLock(_ context.Context, cacheKey string) {
	if err := s.redis.Del(context.Background(), lockPrefix+cacheKey).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", cacheKey).Msg("Unable to release the grouping lock")
	}
}

func (s *storage) StoreResponse(ctx context.Context, responseKey string, response *Response, duration time.Duration) {
	s.slowLog.Start("grouping:store")
	defer s.slowLog.Stop("grouping:store")

	value := CachedValue{
		Code:    response.Code,
		Body:    response.Body,
		Headers: response.Headers,
	}

	if err := s.cache.Store(ctx, responseKey, value, duration); err != nil {
		s.log.Err(err).Str("key", responseKey).Msg("Unable to store the grouped response")
	}
}

// FetchResponse returns nil without error while nothing is stored yet.
func (s *storage) FetchResponse(ctx context.Context, responseKey string) (*CachedValue, error) {
	s.slowLog.Start("grouping:fetch")
	defer s.slowLog.Stop("grouping:fetch")

	var value CachedValue
	found, err := s.cache.Fetch(ctx, responseKey, &value)
	if err != nil || !found {
		return nil, err
	}

	return &value, nil
}
