package client

import (
	"net/http"
	"strconv"
	"time"

	"bitbucket.org/crgw/travel-planner/internal/tools/metrics"
	"github.com/rs/zerolog"
)

// OutgoingLoggerRoundTripper logs and measures every call to destination.
// Query strings are left out of the logged url.
type OutgoingLoggerRoundTripper struct {
	destination string
	logger      *zerolog.Logger
	next        http.RoundTripper
}

func NewOutgoingLoggerRoundTripper(logger *zerolog.Logger, destination string, next http.RoundTripper) *OutgoingLoggerRoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return &OutgoingLoggerRoundTripper{
		destination: destination,
		logger:      logger,
		next:        next,
	}
}

func (r *OutgoingLoggerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	startTime := time.Now()
	res, err := r.next.RoundTrip(req)
	duration := time.Since(startTime)

	code := 0
	if res != nil {
		code = res.StatusCode
	}

	metrics.OutgoingRequests.WithLabelValues(r.destination, strconv.Itoa(code)).Inc()
	metrics.OutgoingRequestDuration.WithLabelValues(r.destination).Observe(duration.Seconds())

	event := r.logger.Info()
	if err != nil || code >= 500 {
		event = r.logger.Warn().Err(err)
	}

	event.
		Str("label", "outgoing-request").
		Str("destination", r.destination).
		Str("method", req.Method).
		Str("url", req.URL.Scheme+"://"+req.URL.Host+req.URL.Path).
		Int("code", code).
		Float64("duration", duration.Seconds()).
		Msg("")

	return res, err
}
