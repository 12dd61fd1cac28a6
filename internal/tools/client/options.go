package client

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const DefaultTimeout = 3 * time.Second

type OptionFunc func(o *Options)

type Options struct {
	// Name of the remote service, used for logging
	name string

	// BaseURL - full URL to the service including protocol, empty keeps the library default
	baseURL string

	// Timeout - if not set, then default timeout is used
	timeout time.Duration

	transport http.RoundTripper
}

func WithName(name string) OptionFunc {
	return func(o *Options) {
		o.name = name
	}
}

func WithBaseURL(baseURL string) OptionFunc {
	return func(o *Options) {
		o.baseURL = baseURL
	}
}

func WithTimeout(timeout time.Duration) OptionFunc {
	return func(o *Options) {
		o.timeout = timeout
	}
}

func WithTransport(transport http.RoundTripper) OptionFunc {
	return func(o *Options) {
		o.transport = transport
	}
}

func NewOptions(optionFuncs ...OptionFunc) *Options {
	options := &Options{
		name: "travel-planner",
	}

	for _, optionFunc := range optionFuncs {
		optionFunc(options)
	}

	return options
}

func (o *Options) Name() string {
	return o.name
}

func (o *Options) BaseURL() string {
	return o.baseURL
}

func (o *Options) Timeout() time.Duration {
	if o.timeout != 0 {
		return o.timeout
	}
	return DefaultTimeout
}

// HTTPClient builds a client logging every call on logger.
func (o *Options) HTTPClient(logger *zerolog.Logger) *http.Client {
	return &http.Client{
		Timeout:   o.Timeout(),
		Transport: NewOutgoingLoggerRoundTripper(logger, o.name, o.transport),
	}
}
