package redisfactory

import (
	"fmt"
	"time"

	"bitbucket.org/crgw/travel-planner/internal/config"
	"github.com/redis/go-redis/v9"
)

// Factory owns the redis connections of the service. Traffic light grouping
// and the responses cache (auth tokens, offer registries) may share a server
// but always get their own client.
type Factory struct {
	trafficlightCache *redis.Client
	responsesCache    *redis.Client
}

func New(cfg config.Redis) (*Factory, error) {
	trafficlightCache, err := newClient(cfg.TrafficlightURI)
	if err != nil {
		return nil, fmt.Errorf("trafficlight redis: %w", err)
	}

	responsesCache, err := newClient(cfg.ResponsesCacheURI)
	if err != nil {
		return nil, fmt.Errorf("responses cache redis: %w", err)
	}

	return &Factory{
		trafficlightCache: trafficlightCache,
		responsesCache:    responsesCache,
	}, nil
}

func newClient(uri string) (*redis.Client, error) {
	opt, err := redis.ParseURL(uri)
	if err != nil {
		return nil, err
	}

	opt.DialTimeout = 4 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	return redis.NewClient(opt), nil
}

func (f *Factory) TrafficlightClient() *redis.Client {
	return f.trafficlightCache
}

func (f *Factory) ResponsesCacheClient() *redis.Client {
	return f.responsesCache
}

func (f *Factory) Close() error {
	if err := f.trafficlightCache.Close(); err != nil {
		return err
	}

	return f.responsesCache.Close()
}
