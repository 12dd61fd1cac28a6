package trip_test

import (
	"context"
	jsonEncoding "encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"bitbucket.org/crgw/travel-planner/internal/amadeus"
	"bitbucket.org/crgw/travel-planner/internal/amadeus/json"
	"bitbucket.org/crgw/travel-planner/internal/resolver"
	"bitbucket.org/crgw/travel-planner/internal/schema"
	"github.com/rs/zerolog"
)

var nopLogger = zerolog.Nop()

type fakeInventory struct {
	flights      func(json.FlightOffersRQ) (amadeus.Response, error)
	hotelOffers  func(json.HotelOffersRQ) (amadeus.Response, error)
	hotelsByCity func(string) (amadeus.Response, error)

	flightQueries []json.FlightOffersRQ
	hotelQueries  []json.HotelOffersRQ
	listQueries   []string
	sync.Mutex
}

func (f *fakeInventory) FlightOffers(ctx context.Context, query json.FlightOffersRQ, logger *zerolog.Logger) (amadeus.Response, error) {
	f.Lock()
	f.flightQueries = append(f.flightQueries, query)
	f.Unlock()

	if f.flights == nil {
		return amadeus.Response{}, nil
	}

	return f.flights(query)
}

func (f *fakeInventory) HotelOffers(ctx context.Context, query json.HotelOffersRQ, logger *zerolog.Logger) (amadeus.Response, error) {
	f.Lock()
	f.hotelQueries = append(f.hotelQueries, query)
	f.Unlock()

	if f.hotelOffers == nil {
		return amadeus.Response{}, nil
	}

	return f.hotelOffers(query)
}

func (f *fakeInventory) HotelsByCity(ctx context.Context, cityCode string, logger *zerolog.Logger) (amadeus.Response, error) {
	f.Lock()
	f.listQueries = append(f.listQueries, cityCode)
	f.Unlock()

	if f.hotelsByCity == nil {
		return amadeus.Response{}, nil
	}

	return f.hotelsByCity(cityCode)
}

// fakeResolver knows the places of codes, any other place is not found
type fakeResolver struct {
	codes    map[string]string
	failures map[string]error
	calls    []string
}

func (f *fakeResolver) Resolve(ctx context.Context, place string, kind schema.LocationKind, logger *zerolog.Logger) (resolver.Resolution, error) {
	f.calls = append(f.calls, place+"|"+string(kind))

	resolution := resolver.Resolution{
		Place:            strings.TrimSpace(place),
		SupplierRequests: schema.SupplierRequests{locationsRequest()},
	}

	if err, ok := f.failures[place]; ok {
		return resolution, &resolver.LookupError{Place: place, Cause: err}
	}

	code, ok := f.codes[place]
	if !ok {
		return resolution, fmt.Errorf("%w: %q", resolver.ErrNotFound, place)
	}
	resolution.Code = code

	return resolution, nil
}

func locationsRequest() schema.SupplierRequest {
	name := schema.Locations
	return schema.SupplierRequest{Name: &name}
}

type fakeBooking struct {
	offerIDs []string
	// failure rejects bookings with the message while set
	failure string
}

func (f *fakeBooking) Book(
	ctx context.Context,
	sessionID string,
	offerID string,
	traveler schema.TravelerInfo,
	payment schema.PaymentInfo,
	logger *zerolog.Logger,
) schema.BookingResponse {
	f.offerIDs = append(f.offerIDs, offerID)

	if f.failure != "" {
		return schema.BookingResponse{
			BookingResult:    schema.NewFailedBooking(f.failure),
			Errors:           &schema.SupplierResponseErrors{schema.NewConnectionError(f.failure)},
			SupplierRequests: &schema.SupplierRequests{},
		}
	}

	return schema.BookingResponse{
		BookingResult:    schema.BookingResult{Data: jsonEncoding.RawMessage(`[{"id":"BOOKING-1"}]`)},
		Errors:           &schema.SupplierResponseErrors{},
		SupplierRequests: &schema.SupplierRequests{},
	}
}

type fakePlanner struct {
	text string
	err  error
	days []int
}

func (f *fakePlanner) Generate(ctx context.Context, destination string, days int) (string, error) {
	f.days = append(f.days, days)
	return f.text, f.err
}

type fakeJournal struct {
	records []schema.BookingRecord
	err     error
}

func (f *fakeJournal) ListBySession(ctx context.Context, sessionID string) ([]schema.BookingRecord, error) {
	return f.records, f.err
}

var errServiceDown = errors.New("service down")

func raw(items ...string) []jsonEncoding.RawMessage {
	data := make([]jsonEncoding.RawMessage, 0, len(items))
	for _, item := range items {
		data = append(data, jsonEncoding.RawMessage(item))
	}

	return data
}

const flightOffer = `{
	"id": "1",
	"price": {"currency": "EUR", "grandTotal": "310.20"},
	"itineraries": [{"segments": [{
		"carrierCode": "AF",
		"number": "1680",
		"departure": {"iataCode": "LIS", "at": "2025-07-01T07:00:00"},
		"arrival": {"iataCode": "CDG", "at": "2025-07-01T10:35:00"}
	}]}]
}`

const hotelOffers = `{
	"hotel": {"hotelId": "HLPAR266", "name": "Hotel Lumiere", "cityCode": "PAR"},
	"offers": [
		{"id": "OFFER-A1", "checkInDate": "2025-07-01", "checkOutDate": "2025-07-08", "price": {"currency": "EUR", "total": "420.00"}},
		{"id": "OFFER-A2", "checkInDate": "2025-07-01", "checkOutDate": "2025-07-08", "price": {"currency": "EUR", "total": "610.00"}}
	]
}`

const otherHotelOffers = `{
	"hotel": {"hotelId": "RTPAR001", "name": "Rive Gauche", "cityCode": "PAR"},
	"offers": [{"id": "OFFER-B1", "price": {"currency": "EUR", "total": "250.00"}}]
}`
