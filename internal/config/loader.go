package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var defaults = map[string]any{
	"env":                       "development",
	"port":                      "8080",
	"log_level":                 "info",
	"test":                      false,
	"openapi_location":          "./api/openapi.yaml",
	"cors_origins":              "http://localhost:3000,http://localhost:5173",
	"amadeus_url":               "https://test.api.amadeus.com",
	"amadeus_client_id":         "",
	"amadeus_client_secret":     "",
	"amadeus_timeout_ms":        8000,
	"amadeus_rate_limit":        10,
	"amadeus_flight_max":        10,
	"openai_api_key":            "",
	"openai_base_url":           "",
	"openai_model":              "gpt-4o",
	"openai_timeout_ms":         60000,
	"responses_cache_redis_uri": "redis://localhost:6379/0",
	"trafficlight_redis_uri":    "",
	"session_secret":            "",
	"session_ttl":               "30m",
	"database_url":              "",
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Redis.TrafficlightURI == "" {
		cfg.Redis.TrafficlightURI = cfg.Redis.ResponsesCacheURI
	}

	cfg.Amadeus.URL = strings.TrimRight(cfg.Amadeus.URL, "/")

	origins := cfg.CorsOrigins[:0]
	for _, origin := range cfg.CorsOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	cfg.CorsOrigins = origins
}

func validateConfig(cfg *Config) error {
	var errs []error

	if cfg.Amadeus.ClientID == "" || cfg.Amadeus.ClientSecret == "" {
		errs = append(errs, errors.New("AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET are required"))
	}

	if cfg.Session.Secret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required"))
	}

	if cfg.Session.TTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}

	if cfg.Redis.ResponsesCacheURI == "" {
		errs = append(errs, errors.New("RESPONSES_CACHE_REDIS_URI is required"))
	}

	if cfg.Amadeus.TimeoutMs <= 0 {
		errs = append(errs, errors.New("AMADEUS_TIMEOUT_MS must be positive"))
	}

	return errors.Join(errs...)
}
