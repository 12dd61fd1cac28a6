package schema

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// NotAvailable replaces any display value missing from an inventory payload.
const NotAvailable = "N/A"

type SearchStatus string

const (
	SearchStatusOK        SearchStatus = "OK"
	SearchStatusNoResults SearchStatus = "NO_RESULTS"
	SearchStatusFailed    SearchStatus = "FAILED"
)

// LocationKind is the subType filter of a location lookup.
type LocationKind string

const (
	LocationKindCity          LocationKind = "CITY"
	LocationKindCityOrAirport LocationKind = "CITY,AIRPORT"
)

// SearchContext names the search a hotel row index belongs to.
type SearchContext string

const (
	HotelsByCity     SearchContext = "hotels-by-city"
	HotelsByHotelIds SearchContext = "hotels-by-id"
)

func (s SearchContext) Valid() bool {
	return s == HotelsByCity || s == HotelsByHotelIds
}

func NewDate(t time.Time) openapi_types.Date {
	return openapi_types.Date{Time: t}
}

// SearchStatusOf derives the status of a search from its rows and errors.
func SearchStatusOf(rows int, errors SupplierResponseErrors) SearchStatus {
	if rows > 0 {
		return SearchStatusOK
	}

	if len(errors) > 0 {
		return SearchStatusFailed
	}

	return SearchStatusNoResults
}
