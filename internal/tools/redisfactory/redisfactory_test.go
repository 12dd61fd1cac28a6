package redisfactory

import (
	"testing"
	"time"

	"bitbucket.org/crgw/travel-planner/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Run("should create both clients", func(t *testing.T) {
		factory, err := New(config.Redis{
			ResponsesCacheURI: "redis://localhost:6379/0",
			TrafficlightURI:   "redis://localhost:6379/1",
		})

		assert.NoError(t, err)
		assert.Equal(t, 0, factory.ResponsesCacheClient().Options().DB)
		assert.Equal(t, 1, factory.TrafficlightClient().Options().DB)
		assert.Equal(t, 3*time.Second, factory.ResponsesCacheClient().Options().ReadTimeout)
		assert.NoError(t, factory.Close())
	})

	t.Run("should reject invalid uris", func(t *testing.T) {
		tests := []struct {
			name string
			cfg  config.Redis
		}{
			{"trafficlight", config.Redis{ResponsesCacheURI: "redis://localhost:6379/0", TrafficlightURI: "http://nope"}},
			{"responses cache", config.Redis{ResponsesCacheURI: "", TrafficlightURI: "redis://localhost:6379/0"}},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				_, err := New(test.cfg)
				assert.ErrorContains(t, err, test.name)
			})
		}
	})
}
