package interfaces

import (
	"context"

	"bitbucket.org/crgw/travel-planner/internal/amadeus"
	"bitbucket.org/crgw/travel-planner/internal/amadeus/json"
	"bitbucket.org/crgw/travel-planner/internal/resolver"
	"bitbucket.org/crgw/travel-planner/internal/schema"
	"github.com/rs/zerolog"
)

type WithFlightOffers interface {
	FlightOffers(context.Context, json.FlightOffersRQ, *zerolog.Logger) (amadeus.Response, error)
}

type WithHotelOffers interface {
	HotelOffers(context.Context, json.HotelOffersRQ, *zerolog.Logger) (amadeus.Response, error)
}

type WithHotelList interface {
	HotelsByCity(context.Context, string, *zerolog.Logger) (amadeus.Response, error)
}

type Inventory interface {
	WithFlightOffers
	WithHotelOffers
	WithHotelList
}

type WithResolve interface {
	Resolve(context.Context, string, schema.LocationKind, *zerolog.Logger) (resolver.Resolution, error)
}

type WithBook interface {
	Book(ctx context.Context, sessionID string, offerID string, traveler schema.TravelerInfo, payment schema.PaymentInfo, logger *zerolog.Logger) schema.BookingResponse
}

type WithItinerary interface {
	Generate(ctx context.Context, destination string, days int) (string, error)
}

type WithBookingsJournal interface {
	ListBySession(ctx context.Context, sessionID string) ([]schema.BookingRecord, error)
}
