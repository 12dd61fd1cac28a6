package amadeus

import (
	"strings"

	"bitbucket.org/crgw/travel-planner/internal/amadeus/json"
	"bitbucket.org/crgw/travel-planner/internal/schema"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

func code(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

func date(value openapi_types.Date) string {
	return value.Format(openapi_types.DateFormat)
}

func FlightOffersQuery(originCode string, destinationCode string, departureDate openapi_types.Date, adults int) json.FlightOffersRQ {
	return json.FlightOffersRQ{
		OriginLocationCode:      code(originCode),
		DestinationLocationCode: code(destinationCode),
		DepartureDate:           date(departureDate),
		Adults:                  adults,
	}
}

func HotelOffersByCityQuery(
	cityCode string,
	checkInDate openapi_types.Date,
	checkOutDate openapi_types.Date,
	adults int,
	roomQuantity int,
	filters schema.HotelFilters,
) json.HotelOffersRQ {
	query := json.HotelOffersRQ{
		CityCode:      code(cityCode),
		CheckInDate:   date(checkInDate),
		CheckOutDate:  date(checkOutDate),
		Adults:        adults,
		RoomQuantity:  roomQuantity,
		RadiusUnit:    filters.RadiusUnit,
		PaymentPolicy: filters.PaymentPolicy,
		IncludeClosed: filters.IncludeClosed,
		BestRateOnly:  filters.BestRateOnly,
		View:          filters.View,
		Sort:          filters.Sort,
	}

	if filters.Radius != nil {
		query.Radius = *filters.Radius
	}

	return query
}

func HotelOffersByIdsQuery(hotelIds []string, checkInDate openapi_types.Date, checkOutDate openapi_types.Date, adults int) json.HotelOffersRQ {
	ids := make([]string, 0, len(hotelIds))
	for _, id := range hotelIds {
		if id = code(id); id != "" {
			ids = append(ids, id)
		}
	}

	return json.HotelOffersRQ{
		HotelIds:     ids,
		CheckInDate:  date(checkInDate),
		CheckOutDate: date(checkOutDate),
		Adults:       adults,
	}
}
