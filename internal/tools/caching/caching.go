// Package caching keeps JSON values in redis, flate compressed.
package caching

import (
	"bytes"
	"compress/flate"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrUndecodable is returned for stored values that are not compressed JSON of the expected type.
var ErrUndecodable = errors.New("cached value can not be decoded")

type Engine interface {
	Store(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Fetch returns nil without error for missing keys.
	Fetch(ctx context.Context, key string) ([]byte, error)
}

type Cacher struct {
	engine Engine
}

func NewRedisCache(redisClient *redis.Client) *Cacher {
	return &Cacher{
		engine: &redisCache{
			redis: redisClient,
		},
	}
}

func Deflate(uncompressed []byte) ([]byte, error) {
	var compressed bytes.Buffer

	writer, err := flate.NewWriter(&compressed, flate.BestSpeed)
	if err != nil {
		return nil, err
	}

	if _, err := writer.Write(uncompressed); err != nil {
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	return compressed.Bytes(), nil
}

func Inflate(compressed []byte) ([]byte, error) {
	reader := flate.NewReader(bytes.NewReader(compressed))
	defer reader.Close()

	var uncompressed bytes.Buffer
	if _, err := uncompressed.ReadFrom(reader); err != nil {
		return nil, err
	}

	return uncompressed.Bytes(), nil
}

// Store keeps value for ttl, a zero ttl never expires.
func (c *Cacher) Store(ctx context.Context, key string, value any, ttl time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	compressed, err := Deflate(encoded)
	if err != nil {
		return fmt.Errorf("failed to compress %s: %w", key, err)
	}

	return c.engine.Store(ctx, key, compressed, ttl)
}

// Fetch decodes the value of key into destination. A missing key is not an error,
// it is reported with found set to false.
func (c *Cacher) Fetch(ctx context.Context, key string, destination any) (found bool, err error) {
	value, err := c.engine.Fetch(ctx, key)
	if err != nil {
		return false, err
	}

	if value == nil {
		return false, nil
	}

	uncompressed, err := Inflate(value)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %s", ErrUndecodable, key, err)
	}

	if err := json.Unmarshal(uncompressed, destination); err != nil {
		return false, fmt.Errorf("%w: %s: %s", ErrUndecodable, key, err)
	}

	return true, nil
}
