package config

import "time"

type Config struct {
	Env             string   `mapstructure:"env"`
	Port            string   `mapstructure:"port"`
	LogLevel        string   `mapstructure:"log_level"`
	Test            bool     `mapstructure:"test"`
	OpenapiLocation string   `mapstructure:"openapi_location"`
	CorsOrigins     []string `mapstructure:"cors_origins"`

	Amadeus  Amadeus  `mapstructure:",squash"`
	OpenAI   OpenAI   `mapstructure:",squash"`
	Redis    Redis    `mapstructure:",squash"`
	Session  Session  `mapstructure:",squash"`
	Database Database `mapstructure:",squash"`
}

type Amadeus struct {
	URL          string `mapstructure:"amadeus_url"`
	ClientID     string `mapstructure:"amadeus_client_id"`
	ClientSecret string `mapstructure:"amadeus_client_secret"`
	TimeoutMs    int    `mapstructure:"amadeus_timeout_ms"`
	// requests per second, 0 disables limiting
	RateLimit float64 `mapstructure:"amadeus_rate_limit"`
	FlightMax int     `mapstructure:"amadeus_flight_max"`
}

func (a Amadeus) Timeout() time.Duration {
	return time.Duration(a.TimeoutMs) * time.Millisecond
}

type OpenAI struct {
	APIKey    string `mapstructure:"openai_api_key"`
	BaseURL   string `mapstructure:"openai_base_url"`
	Model     string `mapstructure:"openai_model"`
	TimeoutMs int    `mapstructure:"openai_timeout_ms"`
}

func (o OpenAI) Enabled() bool {
	return o.APIKey != ""
}

func (o OpenAI) Timeout() time.Duration {
	return time.Duration(o.TimeoutMs) * time.Millisecond
}

type Redis struct {
	ResponsesCacheURI string `mapstructure:"responses_cache_redis_uri"`
	TrafficlightURI   string `mapstructure:"trafficlight_redis_uri"`
}

type Session struct {
	Secret string        `mapstructure:"session_secret"`
	TTL    time.Duration `mapstructure:"session_ttl"`
}

type Database struct {
	URL string `mapstructure:"database_url"`
}

func (d Database) Enabled() bool {
	return d.URL != ""
}

func (c *Config) Production() bool {
	return c.Env == "production"
}
