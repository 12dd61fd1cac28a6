package trip

import (
	"context"
	"errors"

	"bitbucket.org/crgw/travel-planner/internal/amadeus"
	"bitbucket.org/crgw/travel-planner/internal/itinerary"
	"bitbucket.org/crgw/travel-planner/internal/sanitize"
	"bitbucket.org/crgw/travel-planner/internal/schema"
	"bitbucket.org/crgw/travel-planner/internal/tools/metrics"
	"github.com/rs/zerolog"
)

// Itinerary writes a day by day itinerary for the destination.
func (s *Service) Itinerary(ctx context.Context, params schema.ItineraryRequestParams, logger *zerolog.Logger) (schema.ItineraryResponse, error) {
	if s.planner == nil {
		return schema.ItineraryResponse{}, ErrorNotImplemented
	}

	destination := sanitize.Place(params.Destination)
	if sanitize.Empty(destination) {
		return schema.ItineraryResponse{}, ErrorMissingDestination
	}

	text, err := s.planner.Generate(ctx, destination, params.Days)
	if err != nil {
		logger.Warn().Err(err).Str("destination", destination).Msg("Itinerary generation failed")
		return schema.ItineraryResponse{}, schema.NewGenerationError(err.Error())
	}

	return schema.ItineraryResponse{
		Destination: destination,
		Days:        params.Days,
		Itinerary:   text,
	}, nil
}

func (s *Service) ItineraryPDF(ctx context.Context, params schema.ItineraryRequestParams, logger *zerolog.Logger) ([]byte, error) {
	response, err := s.Itinerary(ctx, params, logger)
	if err != nil {
		return nil, err
	}

	return itinerary.RenderPDF(itinerary.Document{
		Destination: response.Destination,
		Days:        response.Days,
		Itinerary:   response.Itinerary,
		GeneratedAt: s.now(),
	})
}

// Plan generates the itinerary, then resolves the places and searches flights and
// hotels for the stay. A failed itinerary does not stop the searches, an unresolved
// place stops both of them.
func (s *Service) Plan(ctx context.Context, sessionID string, params schema.PlanRequestParams, logger *zerolog.Logger) (schema.PlanResponse, error) {
	errorsBucket := schema.NewErrorsBucket()
	requestsBucket := schema.NewSupplierRequestsBucket()

	response := schema.PlanResponse{
		FlightsStatus:    schema.SearchStatusFailed,
		Flights:          []schema.FlightRow{},
		HotelsStatus:     schema.SearchStatusFailed,
		Hotels:           []schema.HotelOfferRow{},
		Errors:           errorsBucket.Errors(),
		SupplierRequests: requestsBucket.SupplierRequests(),
	}

	days := params.TripDays()
	adults := params.Travelers()

	if !params.SkipItinerary && s.planner != nil {
		itineraryResponse, err := s.Itinerary(ctx, schema.ItineraryRequestParams{Destination: params.Destination, Days: days}, logger)
		var generationErr schema.SupplierResponseError
		if errors.As(err, &generationErr) {
			errorsBucket.AddError(generationErr)
		} else if err != nil {
			errorsBucket.AddError(schema.NewGenerationError(err.Error()))
		} else {
			response.Itinerary = &itineraryResponse.Itinerary
		}
	}

	origin, originOk := s.locate(ctx, params.Origin, params.OriginCode, schema.LocationKindCityOrAirport, &errorsBucket, &requestsBucket, logger)
	destination, destinationOk := s.locate(ctx, params.Destination, "", schema.LocationKindCity, &errorsBucket, &requestsBucket, logger)

	if !originOk || !destinationOk {
		logger.Info().Msg("Plan searches halted on unresolved places")
		metrics.Searches.WithLabelValues("plan", string(schema.SearchStatusFailed)).Inc()

		return response, nil
	}

	response.Origin = &origin
	response.Destination = &destination
	response.CityCode = &destination

	flights, flightsOk := s.flights(ctx, amadeus.FlightOffersQuery(origin, destination, params.DepartureDate, adults), &errorsBucket, &requestsBucket, logger)
	response.Flights = flights
	response.FlightsStatus = statusOf(len(flights), flightsOk)

	checkOut := schema.NewDate(params.DepartureDate.AddDate(0, 0, days))
	query := amadeus.HotelOffersByCityQuery(destination, params.DepartureDate, checkOut, adults, 1, schema.DefaultHotelFilters())

	hotels, offers, hotelsOk := s.hotelOffers(ctx, query, &errorsBucket, &requestsBucket, logger)
	response.Hotels = hotels
	response.HotelsStatus = statusOf(len(hotels), hotelsOk)

	if hotelsOk {
		if err := s.registry.Replace(ctx, sessionID, schema.HotelsByCity, offers); err != nil {
			return response, err
		}
	}

	metrics.Searches.WithLabelValues("plan", string(response.HotelsStatus)).Inc()

	return response, nil
}
