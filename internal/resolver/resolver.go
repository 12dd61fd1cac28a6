// Package resolver turns free text place names into IATA location codes.
package resolver

import (
	"context"
	jsonEncoding "encoding/json"
	"errors"
	"fmt"
	"strings"

	"bitbucket.org/crgw/travel-planner/internal/amadeus"
	"bitbucket.org/crgw/travel-planner/internal/amadeus/json"
	"bitbucket.org/crgw/travel-planner/internal/sanitize"
	"bitbucket.org/crgw/travel-planner/internal/schema"
	"bitbucket.org/crgw/travel-planner/internal/tools/metrics"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned for empty names and lookups without a usable match.
var ErrNotFound = errors.New("location not found")

// LookupError is a failed call to the location service. It still counts as
// ErrNotFound for callers that only care whether the place was resolved.
type LookupError struct {
	Place string
	Cause error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("unable to look up %q: %s", e.Place, e.Cause)
}

func (e *LookupError) Unwrap() error {
	return e.Cause
}

func (e *LookupError) Is(target error) bool {
	return target == ErrNotFound
}

// Retryable is true: the service failed, the place may well exist.
func (e *LookupError) Retryable() bool {
	return true
}

type LocationsClient interface {
	Locations(ctx context.Context, keyword string, kind schema.LocationKind, logger *zerolog.Logger) (amadeus.Response, error)
}

// Resolution is the outcome of one lookup. Place is the sanitized name.
type Resolution struct {
	Place            string
	Code             string
	SupplierRequests schema.SupplierRequests
}

type Resolver struct {
	client LocationsClient
}

func New(client LocationsClient) *Resolver {
	return &Resolver{client: client}
}

// Resolve sanitizes place and returns the code of the first match of the given kind.
// Nothing is sent when the sanitized name is empty.
func (r *Resolver) Resolve(ctx context.Context, place string, kind schema.LocationKind, logger *zerolog.Logger) (Resolution, error) {
	resolution := Resolution{
		Place:            sanitize.Place(place),
		SupplierRequests: schema.SupplierRequests{},
	}

	if sanitize.Empty(resolution.Place) {
		metrics.Resolutions.WithLabelValues("empty").Inc()
		return resolution, fmt.Errorf("%w: no place given", ErrNotFound)
	}

	response, err := r.client.Locations(ctx, resolution.Place, kind, logger)
	resolution.SupplierRequests = response.SupplierRequests

	if err != nil {
		logger.Warn().
			Err(err).
			Str("place", resolution.Place).
			Msg("Location lookup failed")
		metrics.Resolutions.WithLabelValues("error").Inc()

		return resolution, &LookupError{Place: resolution.Place, Cause: err}
	}

	code, ok := firstCode(response.Data)
	if !ok {
		logger.Warn().
			Str("place", resolution.Place).
			Str("kind", string(kind)).
			Msg("No location matches the place")
		metrics.Resolutions.WithLabelValues("miss").Inc()

		return resolution, fmt.Errorf("%w: %q", ErrNotFound, resolution.Place)
	}

	metrics.Resolutions.WithLabelValues("hit").Inc()
	resolution.Code = code

	return resolution, nil
}

// firstCode only looks at the first location, a first match without a code is a miss.
func firstCode(data []jsonEncoding.RawMessage) (string, bool) {
	if len(data) == 0 {
		return "", false
	}

	var location json.LocationRS
	if err := jsonEncoding.Unmarshal(data[0], &location); err != nil || location.IataCode == nil {
		return "", false
	}

	code := strings.ToUpper(strings.TrimSpace(*location.IataCode))

	return code, code != ""
}

// Describe converts a resolution failure into the error reported next to the results.
func Describe(place string, err error) schema.SupplierResponseError {
	var lookupErr *LookupError
	if errors.As(err, &lookupErr) {
		return schema.NewResolutionError(fmt.Sprintf("unable to resolve location %q: %s", place, lookupErr.Cause))
	}

	return schema.NewNotFoundError(fmt.Sprintf("unable to resolve location %q", place))
}
