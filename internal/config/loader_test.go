package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func requiredEnv(t *testing.T) {
	t.Setenv("AMADEUS_CLIENT_ID", "client")
	t.Setenv("AMADEUS_CLIENT_SECRET", "secret")
	t.Setenv("SESSION_SECRET", "session-secret")
}

func TestLoad(t *testing.T) {
	t.Run("should apply defaults", func(t *testing.T) {
		requiredEnv(t)

		cfg, err := Load()

		assert.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "https://test.api.amadeus.com", cfg.Amadeus.URL)
		assert.Equal(t, 8*time.Second, cfg.Amadeus.Timeout())
		assert.Equal(t, float64(10), cfg.Amadeus.RateLimit)
		assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
		assert.False(t, cfg.OpenAI.Enabled())
		assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
		assert.Equal(t, cfg.Redis.ResponsesCacheURI, cfg.Redis.TrafficlightURI)
		assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CorsOrigins)
		assert.False(t, cfg.Database.Enabled())
		assert.False(t, cfg.Production())
	})

	t.Run("should read the environment", func(t *testing.T) {
		requiredEnv(t)
		t.Setenv("ENV", "production")
		t.Setenv("AMADEUS_URL", "https://api.amadeus.com/")
		t.Setenv("AMADEUS_TIMEOUT_MS", "2500")
		t.Setenv("SESSION_TTL", "2h")
		t.Setenv("TRAFFICLIGHT_REDIS_URI", "redis://trafficlight:6379/1")
		t.Setenv("CORS_ORIGINS", "https://planner.example, ")
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("DATABASE_URL", "postgres://u:p@db/trips?sslmode=disable")

		cfg, err := Load()

		assert.NoError(t, err)
		assert.True(t, cfg.Production())
		assert.Equal(t, "https://api.amadeus.com", cfg.Amadeus.URL)
		assert.Equal(t, 2500*time.Millisecond, cfg.Amadeus.Timeout())
		assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
		assert.Equal(t, "redis://trafficlight:6379/1", cfg.Redis.TrafficlightURI)
		assert.Equal(t, []string{"https://planner.example"}, cfg.CorsOrigins)
		assert.True(t, cfg.OpenAI.Enabled())
		assert.True(t, cfg.Database.Enabled())
	})

	t.Run("should fail without credentials", func(t *testing.T) {
		t.Setenv("AMADEUS_CLIENT_ID", "")
		t.Setenv("AMADEUS_CLIENT_SECRET", "")
		t.Setenv("SESSION_SECRET", "")

		_, err := Load()

		assert.ErrorContains(t, err, "AMADEUS_CLIENT_ID")
		assert.ErrorContains(t, err, "SESSION_SECRET")
	})
}
