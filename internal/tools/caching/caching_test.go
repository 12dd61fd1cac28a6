package caching_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"bitbucket.org/crgw/travel-planner/internal/tools/caching"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestCacher(t *testing.T) {
	ctx := context.Background()

	t.Run("should store compressed json", func(t *testing.T) {
		redisClient, mock := redismock.NewClientMock()
		compressed, _ := caching.Deflate([]byte(`"token"`))
		mock.ExpectSetEx("key", compressed, time.Minute).SetVal("OK")

		err := caching.NewRedisCache(redisClient).Store(ctx, "key", "token", time.Minute)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should store without expiry", func(t *testing.T) {
		redisClient, mock := redismock.NewClientMock()
		compressed, _ := caching.Deflate([]byte(`{"a":1}`))
		mock.ExpectSet("key", compressed, 0).SetVal("OK")

		err := caching.NewRedisCache(redisClient).Store(ctx, "key", map[string]int{"a": 1}, 0)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should not store unencodable values", func(t *testing.T) {
		redisClient, mock := redismock.NewClientMock()

		err := caching.NewRedisCache(redisClient).Store(ctx, "key", make(chan int), time.Minute)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should fetch", func(t *testing.T) {
		redisDown := errors.New("connection refused")

		tests := []struct {
			name          string
			prepare       func(mock redismock.ClientMock)
			expectedFound bool
			expectedValue string
			expectedErr   error
		}{
			{
				name: "hit",
				prepare: func(mock redismock.ClientMock) {
					compressed, _ := caching.Deflate([]byte(`"token"`))
					mock.ExpectGet("key").SetVal(string(compressed))
				},
				expectedFound: true,
				expectedValue: "token",
			},
			{
				name: "miss",
				prepare: func(mock redismock.ClientMock) {
					mock.ExpectGet("key").RedisNil()
				},
			},
			{
				name: "redis down",
				prepare: func(mock redismock.ClientMock) {
					mock.ExpectGet("key").SetErr(redisDown)
				},
				expectedErr: redisDown,
			},
			{
				name: "not compressed",
				prepare: func(mock redismock.ClientMock) {
					mock.ExpectGet("key").SetVal("plain")
				},
				expectedErr: caching.ErrUndecodable,
			},
			{
				name: "other type",
				prepare: func(mock redismock.ClientMock) {
					compressed, _ := caching.Deflate([]byte(`{"token":1}`))
					mock.ExpectGet("key").SetVal(string(compressed))
				},
				expectedErr: caching.ErrUndecodable,
			},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				redisClient, mock := redismock.NewClientMock()
				test.prepare(mock)

				var value string
				found, err := caching.NewRedisCache(redisClient).Fetch(ctx, "key", &value)

				if test.expectedErr != nil {
					assert.ErrorIs(t, err, test.expectedErr)
				} else {
					assert.NoError(t, err)
				}
				assert.Equal(t, test.expectedFound, found)
				assert.Equal(t, test.expectedValue, value)
			})
		}
	})

	t.Run("should round trip compression", func(t *testing.T) {
		compressed, err := caching.Deflate([]byte("hello hello hello"))
		assert.NoError(t, err)

		inflated, err := caching.Inflate(compressed)
		assert.NoError(t, err)
		assert.Equal(t, "hello hello hello", string(inflated))
	})
}
