package trip

import (
	"context"
	"strconv"
	"strings"

	"bitbucket.org/crgw/travel-planner/internal/amadeus"
	"bitbucket.org/crgw/travel-planner/internal/amadeus/json"
	"bitbucket.org/crgw/travel-planner/internal/normalize"
	"bitbucket.org/crgw/travel-planner/internal/registry"
	"bitbucket.org/crgw/travel-planner/internal/resolver"
	"bitbucket.org/crgw/travel-planner/internal/sanitize"
	"bitbucket.org/crgw/travel-planner/internal/schema"
	"bitbucket.org/crgw/travel-planner/internal/tools/converting"
	"bitbucket.org/crgw/travel-planner/internal/tools/metrics"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/rs/zerolog"
)

// locate returns the explicit code when there is one and resolves the place otherwise.
func (s *Service) locate(
	ctx context.Context,
	place string,
	explicitCode string,
	kind schema.LocationKind,
	errorsBucket errorsCollector,
	requestsBucket requestsCollector,
	logger *zerolog.Logger,
) (string, bool) {
	if explicitCode = code(explicitCode); explicitCode != "" {
		return explicitCode, true
	}

	resolution, err := s.resolver.Resolve(ctx, place, kind, logger)
	requestsBucket.AddRequests(resolution.SupplierRequests)

	if err != nil {
		name := converting.ValueOr(resolution.Place, strings.TrimSpace(place))
		errorsBucket.AddError(resolver.Describe(name, err))

		return "", false
	}

	return resolution.Code, true
}

func (s *Service) flights(
	ctx context.Context,
	query json.FlightOffersRQ,
	errorsBucket errorsCollector,
	requestsBucket requestsCollector,
	logger *zerolog.Logger,
) ([]schema.FlightRow, bool) {
	response, err := s.inventory.FlightOffers(ctx, query, logger)
	requestsBucket.AddRequests(response.SupplierRequests)

	if err != nil {
		errorsBucket.AddError(supplierError(err))
		return []schema.FlightRow{}, false
	}

	rows, err := normalize.Flights(response.Data)
	if err != nil {
		logger.Warn().Err(err).Msg("Unable to normalize flight offers")
		errorsBucket.AddError(schema.NewUnexpectedShapeError(err.Error()))

		return []schema.FlightRow{}, false
	}

	return rows, true
}

func (s *Service) hotelOffers(
	ctx context.Context,
	query json.HotelOffersRQ,
	errorsBucket errorsCollector,
	requestsBucket requestsCollector,
	logger *zerolog.Logger,
) ([]schema.HotelOfferRow, *registry.Registry, bool) {
	response, err := s.inventory.HotelOffers(ctx, query, logger)
	requestsBucket.AddRequests(response.SupplierRequests)

	if err != nil {
		errorsBucket.AddError(supplierError(err))
		return []schema.HotelOfferRow{}, nil, false
	}

	rows, offers, err := normalize.HotelOffers(response.Data)
	if err != nil {
		logger.Warn().Err(err).Msg("Unable to normalize hotel offers")
		errorsBucket.AddError(schema.NewUnexpectedShapeError(err.Error()))

		return []schema.HotelOfferRow{}, nil, false
	}

	return rows, offers, true
}

// SearchFlights resolves both ends of the trip and queries flight offers between them.
// Nothing is queried unless both places resolve.
func (s *Service) SearchFlights(ctx context.Context, params schema.FlightSearchRequestParams, logger *zerolog.Logger) schema.FlightSearchResponse {
	errorsBucket := schema.NewErrorsBucket()
	requestsBucket := schema.NewSupplierRequestsBucket()

	response := schema.FlightSearchResponse{
		Flights:          []schema.FlightRow{},
		Errors:           errorsBucket.Errors(),
		SupplierRequests: requestsBucket.SupplierRequests(),
	}

	origin, originOk := s.locate(ctx, params.Origin, params.OriginCode, schema.LocationKindCityOrAirport, &errorsBucket, &requestsBucket, logger)
	destination, destinationOk := s.locate(ctx, params.Destination, params.DestinationCode, schema.LocationKindCityOrAirport, &errorsBucket, &requestsBucket, logger)

	if originOk && destinationOk {
		response.Origin = &origin
		response.Destination = &destination

		query := amadeus.FlightOffersQuery(origin, destination, params.DepartureDate, params.Adults)
		query.Max = params.Max

		response.Flights, _ = s.flights(ctx, query, &errorsBucket, &requestsBucket, logger)
	}

	response.Status = schema.SearchStatusOf(len(response.Flights), *errorsBucket.Errors())
	metrics.Searches.WithLabelValues("flights", string(response.Status)).Inc()

	return response
}

// SearchHotelsByCity queries the offers of a city and replaces the hotels-by-city
// selections of the session when the search went through.
func (s *Service) SearchHotelsByCity(
	ctx context.Context,
	sessionID string,
	params schema.HotelSearchRequestParams,
	logger *zerolog.Logger,
) (schema.HotelOffersResponse, error) {
	errorsBucket := schema.NewErrorsBucket()
	requestsBucket := schema.NewSupplierRequestsBucket()

	response := schema.HotelOffersResponse{
		Context:          schema.HotelsByCity,
		Hotels:           []schema.HotelOfferRow{},
		Errors:           errorsBucket.Errors(),
		SupplierRequests: requestsBucket.SupplierRequests(),
	}

	cityCode, ok := s.locate(ctx, params.City, params.CityCode, schema.LocationKindCity, &errorsBucket, &requestsBucket, logger)
	if ok {
		response.CityCode = &cityCode

		query := amadeus.HotelOffersByCityQuery(
			cityCode,
			params.CheckInDate,
			params.CheckOutDate,
			params.Adults,
			params.Rooms(),
			params.EffectiveFilters(),
		)

		var offers *registry.Registry
		response.Hotels, offers, ok = s.hotelOffers(ctx, query, &errorsBucket, &requestsBucket, logger)

		if ok {
			if err := s.registry.Replace(ctx, sessionID, schema.HotelsByCity, offers); err != nil {
				return response, err
			}
		}
	}

	response.Status = schema.SearchStatusOf(len(response.Hotels), *errorsBucket.Errors())
	metrics.Searches.WithLabelValues(string(schema.HotelsByCity), string(response.Status)).Inc()

	return response, nil
}

// SearchHotelsByHotelIds queries the offers of the given hotels and replaces the
// hotels-by-id selections of the session when the search went through.
func (s *Service) SearchHotelsByHotelIds(
	ctx context.Context,
	sessionID string,
	params schema.HotelOffersRequestParams,
	logger *zerolog.Logger,
) (schema.HotelOffersResponse, error) {
	errorsBucket := schema.NewErrorsBucket()
	requestsBucket := schema.NewSupplierRequestsBucket()

	response := schema.HotelOffersResponse{
		Context:          schema.HotelsByHotelIds,
		Errors:           errorsBucket.Errors(),
		SupplierRequests: requestsBucket.SupplierRequests(),
	}

	query := amadeus.HotelOffersByIdsQuery(params.HotelIds, params.CheckInDate, params.CheckOutDate, params.Adults)

	hotels, offers, ok := s.hotelOffers(ctx, query, &errorsBucket, &requestsBucket, logger)
	response.Hotels = hotels

	if ok {
		if err := s.registry.Replace(ctx, sessionID, schema.HotelsByHotelIds, offers); err != nil {
			return response, err
		}
	}

	response.Status = schema.SearchStatusOf(len(response.Hotels), *errorsBucket.Errors())
	metrics.Searches.WithLabelValues(string(schema.HotelsByHotelIds), string(response.Status)).Inc()

	return response, nil
}

// ListHotels lists the hotels of a city, without offers.
func (s *Service) ListHotels(ctx context.Context, params schema.HotelListRequestParams, logger *zerolog.Logger) schema.HotelListResponse {
	errorsBucket := schema.NewErrorsBucket()
	requestsBucket := schema.NewSupplierRequestsBucket()

	response := schema.HotelListResponse{
		Hotels:           []schema.HotelRow{},
		Errors:           errorsBucket.Errors(),
		SupplierRequests: requestsBucket.SupplierRequests(),
	}

	cityCode, ok := s.locate(ctx, params.City, params.CityCode, schema.LocationKindCity, &errorsBucket, &requestsBucket, logger)
	if ok {
		response.CityCode = &cityCode

		hotelsResponse, err := s.inventory.HotelsByCity(ctx, cityCode, logger)
		requestsBucket.AddRequests(hotelsResponse.SupplierRequests)

		if err != nil {
			errorsBucket.AddError(supplierError(err))
		} else if rows, err := normalize.HotelList(hotelsResponse.Data); err != nil {
			logger.Warn().Err(err).Msg("Unable to normalize hotel list")
			errorsBucket.AddError(schema.NewUnexpectedShapeError(err.Error()))
		} else {
			response.Hotels = rows
		}
	}

	response.Status = schema.SearchStatusOf(len(response.Hotels), *errorsBucket.Errors())
	metrics.Searches.WithLabelValues("hotel-list", string(response.Status)).Inc()

	return response
}

func groupingPlace(place string, explicitCode string) string {
	if explicitCode = code(explicitCode); explicitCode != "" {
		return explicitCode
	}

	return strings.ToLower(sanitize.Place(place))
}

func groupingDate(date openapi_types.Date) string {
	return date.Format(openapi_types.DateFormat)
}

// FlightsGroupingKey identifies identical flight searches running at the same time.
func FlightsGroupingKey(params schema.FlightSearchRequestParams) string {
	keyPieces := []string{
		"grouping",
		"flights",
		groupingPlace(params.Origin, params.OriginCode),
		groupingPlace(params.Destination, params.DestinationCode),
		groupingDate(params.DepartureDate),
		strconv.Itoa(params.Adults),
		strconv.Itoa(params.Max),
	}

	return strings.Join(keyPieces, ":")
}

func HotelListGroupingKey(params schema.HotelListRequestParams) string {
	keyPieces := []string{
		"grouping",
		"hotel-list",
		groupingPlace(params.City, params.CityCode),
	}

	return strings.Join(keyPieces, ":")
}
