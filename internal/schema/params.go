package schema

import (
	"errors"
	"fmt"

	"bitbucket.org/crgw/travel-planner/internal/tools/converting"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	MinTripDays     = 1
	MaxTripDays     = 30
	DefaultTripDays = 7
)

var (
	ErrMissingDate  = errors.New("date is required")
	ErrDateOrdering = errors.New("checkOutDate must be after checkInDate")
)

type FlightSearchRequestParams struct {
	Origin          string             `json:"origin" binding:"required_without=OriginCode"`
	OriginCode      string             `json:"originCode,omitempty" binding:"omitempty,len=3,alpha"`
	Destination     string             `json:"destination" binding:"required_without=DestinationCode"`
	DestinationCode string             `json:"destinationCode,omitempty" binding:"omitempty,len=3,alpha"`
	DepartureDate   openapi_types.Date `json:"departureDate"`
	Adults          int                `json:"adults" binding:"required,min=1,max=9"`
	Max             int                `json:"max,omitempty" binding:"omitempty,min=1,max=250"`
}

func (p FlightSearchRequestParams) Validate() error {
	if p.DepartureDate.IsZero() {
		return fmt.Errorf("departureDate: %w", ErrMissingDate)
	}

	return nil
}

// HotelFilters are sent as a whole: a request either carries every field or none.
type HotelFilters struct {
	Radius        *int   `json:"radius" binding:"required,min=1,max=300"`
	RadiusUnit    string `json:"radiusUnit" binding:"required,oneof=KM MILE"`
	PaymentPolicy string `json:"paymentPolicy" binding:"required,oneof=NONE GUARANTEE DEPOSIT"`
	IncludeClosed *bool  `json:"includeClosed" binding:"required"`
	BestRateOnly  *bool  `json:"bestRateOnly" binding:"required"`
	View          string `json:"view" binding:"required,oneof=FULL LIGHT"`
	Sort          string `json:"sort" binding:"required,oneof=PRICE NONE"`
}

func DefaultHotelFilters() HotelFilters {
	radius := 5
	includeClosed := false
	bestRateOnly := true

	return HotelFilters{
		Radius:        &radius,
		RadiusUnit:    "KM",
		PaymentPolicy: "NONE",
		IncludeClosed: &includeClosed,
		BestRateOnly:  &bestRateOnly,
		View:          "FULL",
		Sort:          "PRICE",
	}
}

type HotelSearchRequestParams struct {
	City         string             `json:"city" binding:"required_without=CityCode"`
	CityCode     string             `json:"cityCode,omitempty" binding:"omitempty,len=3,alpha"`
	CheckInDate  openapi_types.Date `json:"checkInDate"`
	CheckOutDate openapi_types.Date `json:"checkOutDate"`
	Adults       int                `json:"adults" binding:"required,min=1,max=9"`
	RoomQuantity int                `json:"roomQuantity,omitempty" binding:"omitempty,min=1,max=9"`
	Filters      *HotelFilters      `json:"filters,omitempty"`
}

func (p HotelSearchRequestParams) Validate() error {
	return validateStay(p.CheckInDate, p.CheckOutDate)
}

// EffectiveFilters returns the caller filters or the defaults when none were sent.
func (p HotelSearchRequestParams) EffectiveFilters() HotelFilters {
	if p.Filters == nil {
		return DefaultHotelFilters()
	}

	return *p.Filters
}

func (p HotelSearchRequestParams) Rooms() int {
	return converting.ValueOr(p.RoomQuantity, 1)
}

type HotelListRequestParams struct {
	City     string `json:"city" binding:"required_without=CityCode"`
	CityCode string `json:"cityCode,omitempty" binding:"omitempty,len=3,alpha"`
}

type HotelOffersRequestParams struct {
	HotelIds     []string           `json:"hotelIds" binding:"required,min=1,max=50,dive,required"`
	CheckInDate  openapi_types.Date `json:"checkInDate"`
	CheckOutDate openapi_types.Date `json:"checkOutDate"`
	Adults       int                `json:"adults" binding:"required,min=1,max=9"`
}

func (p HotelOffersRequestParams) Validate() error {
	return validateStay(p.CheckInDate, p.CheckOutDate)
}

type TravelerInfo struct {
	Title     string `json:"title" binding:"required,oneof=MR MRS MS"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email" binding:"required"`
}

type PaymentInfo struct {
	VendorCode string `json:"vendorCode" binding:"required,oneof=VI MC AX"`
	CardNumber string `json:"cardNumber" binding:"required"`
	// YYYY-MM
	ExpiryDate string `json:"expiryDate" binding:"required"`
}

type BookingRequestParams struct {
	Context  SearchContext `json:"context" binding:"required,oneof=hotels-by-city hotels-by-id"`
	RowIndex *int          `json:"rowIndex" binding:"required,min=0"`
	Traveler TravelerInfo  `json:"traveler"`
	Payment  PaymentInfo   `json:"payment"`
}

type ItineraryRequestParams struct {
	Destination string `json:"destination" binding:"required"`
	Days        int    `json:"days" binding:"required,min=1,max=30"`
}

type PlanRequestParams struct {
	Destination   string             `json:"destination" binding:"required"`
	Origin        string             `json:"origin" binding:"required_without=OriginCode"`
	OriginCode    string             `json:"originCode,omitempty" binding:"omitempty,len=3,alpha"`
	DepartureDate openapi_types.Date `json:"departureDate"`
	Days          int                `json:"days,omitempty" binding:"omitempty,min=1,max=30"`
	Adults        int                `json:"adults,omitempty" binding:"omitempty,min=1,max=9"`
	SkipItinerary bool               `json:"skipItinerary,omitempty"`
}

func (p PlanRequestParams) Validate() error {
	if p.DepartureDate.IsZero() {
		return fmt.Errorf("departureDate: %w", ErrMissingDate)
	}

	return nil
}

func (p PlanRequestParams) TripDays() int {
	return converting.ValueOr(p.Days, DefaultTripDays)
}

func (p PlanRequestParams) Travelers() int {
	return converting.ValueOr(p.Adults, 1)
}

func validateStay(checkIn openapi_types.Date, checkOut openapi_types.Date) error {
	if checkIn.IsZero() {
		return fmt.Errorf("checkInDate: %w", ErrMissingDate)
	}

	if checkOut.IsZero() {
		return fmt.Errorf("checkOutDate: %w", ErrMissingDate)
	}

	if !checkOut.After(checkIn.Time) {
		return ErrDateOrdering
	}

	return nil
}
