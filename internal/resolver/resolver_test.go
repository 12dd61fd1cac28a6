package resolver

import (
	"bytes"
	"context"
	jsonEncoding "encoding/json"
	"errors"
	"testing"

	"bitbucket.org/crgw/travel-planner/internal/amadeus"
	"bitbucket.org/crgw/travel-planner/internal/schema"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type fakeLocations struct {
	calls    []string
	kinds    []schema.LocationKind
	data     []string
	err      error
	requests schema.SupplierRequests
}

func (f *fakeLocations) Locations(ctx context.Context, keyword string, kind schema.LocationKind, logger *zerolog.Logger) (amadeus.Response, error) {
	f.calls = append(f.calls, keyword)
	f.kinds = append(f.kinds, kind)

	response := amadeus.Response{SupplierRequests: f.requests}
	if f.err != nil {
		return response, f.err
	}

	for _, element := range f.data {
		response.Data = append(response.Data, jsonEncoding.RawMessage(element))
	}

	return response, nil
}

func TestResolve(t *testing.T) {
	out := &bytes.Buffer{}
	log := zerolog.New(out)
	ctx := context.Background()

	t.Run("should not call the service for empty names", func(t *testing.T) {
		for _, place := range []string{"", "   ", `"'{}<>`, "\t< >\n"} {
			client := &fakeLocations{}

			resolution, err := New(client).Resolve(ctx, place, schema.LocationKindCity, &log)

			assert.ErrorIs(t, err, ErrNotFound)
			assert.Empty(t, client.calls)
			assert.Empty(t, resolution.Code)
		}
	})

	t.Run("should take the first match of the sanitized name", func(t *testing.T) {
		client := &fakeLocations{
			data: []string{
				`{"subType":"AIRPORT","name":"JOHN F KENNEDY INTL","iataCode":"JFK"}`,
				`{"subType":"CITY","name":"NEW YORK","iataCode":"NYC"}`,
			},
		}

		resolution, err := New(client).Resolve(ctx, `'New York"`, schema.LocationKindCityOrAirport, &log)

		assert.NoError(t, err)
		assert.Equal(t, "JFK", resolution.Code)
		assert.Equal(t, "New York", resolution.Place)
		assert.Equal(t, []string{"New York"}, client.calls)
		assert.Equal(t, []schema.LocationKind{schema.LocationKindCityOrAirport}, client.kinds)
	})

	t.Run("should treat an empty result as not found", func(t *testing.T) {
		client := &fakeLocations{data: []string{}}

		_, err := New(client).Resolve(ctx, "Atlantis", schema.LocationKindCity, &log)

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "Atlantis")

		var lookupErr *LookupError
		assert.False(t, errors.As(err, &lookupErr))
	})

	t.Run("should treat a first match without code as not found", func(t *testing.T) {
		client := &fakeLocations{
			data: []string{
				`{"subType":"CITY","name":"NOWHERE"}`,
				`{"subType":"CITY","name":"SOMEWHERE","iataCode":"SMW"}`,
			},
		}

		_, err := New(client).Resolve(ctx, "Nowhere", schema.LocationKindCity, &log)

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("should split service failures from misses", func(t *testing.T) {
		cause := schema.NewConnectionError("connection refused")
		requests := schema.SupplierRequests{{}}
		client := &fakeLocations{err: cause, requests: requests}

		resolution, err := New(client).Resolve(ctx, "Paris", schema.LocationKindCity, &log)

		var lookupErr *LookupError
		assert.True(t, errors.As(err, &lookupErr))
		assert.True(t, lookupErr.Retryable())
		assert.Equal(t, "Paris", lookupErr.Place)
		assert.ErrorIs(t, err, ErrNotFound)

		var supplierErr schema.SupplierResponseError
		assert.True(t, errors.As(err, &supplierErr))
		assert.Equal(t, schema.ConnectionError, supplierErr.Code)
		assert.Equal(t, requests, resolution.SupplierRequests)
	})
}

func TestDescribe(t *testing.T) {
	notFound := Describe("Atlantis", ErrNotFound)
	assert.Equal(t, schema.NotFoundError, notFound.Code)
	assert.Equal(t, `unable to resolve location "Atlantis"`, notFound.Message)

	failed := Describe("Paris", &LookupError{Place: "Paris", Cause: errors.New("boom")})
	assert.Equal(t, schema.ResolutionError, failed.Code)
	assert.Equal(t, `unable to resolve location "Paris": boom`, failed.Message)
}
