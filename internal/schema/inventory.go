package schema

import (
	"encoding/json"
	"time"

	"bitbucket.org/crgw/travel-planner/internal/tools/converting"
)

// FlightRow is one segment of one itinerary of one flight offer.
type FlightRow struct {
	Airline          string `json:"airline"`
	FlightNumber     string `json:"flightNumber"`
	DepartureAirport string `json:"departureAirport"`
	DepartureTime    string `json:"departureTime"`
	ArrivalAirport   string `json:"arrivalAirport"`
	ArrivalTime      string `json:"arrivalTime"`
	TotalPrice       string `json:"totalPrice"`
	Currency         string `json:"currency"`
}

// HotelOfferRow is one offer of one hotel; RowIndex is the selection handle for booking.
type HotelOfferRow struct {
	RowIndex        int    `json:"rowIndex"`
	HotelID         string `json:"hotelId"`
	HotelName       string `json:"hotelName"`
	CityCode        string `json:"cityCode"`
	OfferID         string `json:"offerId"`
	RoomType        string `json:"roomType"`
	RoomDescription string `json:"roomDescription"`
	CheckIn         string `json:"checkIn"`
	CheckOut        string `json:"checkOut"`
	TotalPrice      string `json:"totalPrice"`
	Currency        string `json:"currency"`
}

type HotelRow struct {
	RowIndex  int    `json:"rowIndex"`
	HotelID   string `json:"hotelId"`
	Name      string `json:"name"`
	ChainCode string `json:"chainCode"`
	CityCode  string `json:"cityCode"`
	Rating    string `json:"rating"`
}

type FlightSearchResponse struct {
	Status           SearchStatus            `json:"status"`
	Origin           *string                 `json:"origin,omitempty"`
	Destination      *string                 `json:"destination,omitempty"`
	Flights          []FlightRow             `json:"flights"`
	Errors           *SupplierResponseErrors `json:"errors,omitempty"`
	SupplierRequests *SupplierRequests       `json:"supplierRequests,omitempty"`
}

type HotelOffersResponse struct {
	Status           SearchStatus            `json:"status"`
	Context          SearchContext           `json:"context"`
	CityCode         *string                 `json:"cityCode,omitempty"`
	Hotels           []HotelOfferRow         `json:"hotels"`
	Errors           *SupplierResponseErrors `json:"errors,omitempty"`
	SupplierRequests *SupplierRequests       `json:"supplierRequests,omitempty"`
}

type HotelListResponse struct {
	Status           SearchStatus            `json:"status"`
	CityCode         *string                 `json:"cityCode,omitempty"`
	Hotels           []HotelRow              `json:"hotels"`
	Errors           *SupplierResponseErrors `json:"errors,omitempty"`
	SupplierRequests *SupplierRequests       `json:"supplierRequests,omitempty"`
}

// BookingResult carries either the confirmation payload or an error message, never both.
type BookingResult struct {
	Data  json.RawMessage `json:"data,omitempty"`
	Error *string         `json:"error,omitempty"`
}

func (b BookingResult) Failed() bool {
	return b.Error != nil
}

func NewFailedBooking(message string) BookingResult {
	return BookingResult{Error: converting.PointerToValue(message)}
}

type BookingResponse struct {
	BookingResult
	Errors           *SupplierResponseErrors `json:"errors,omitempty"`
	SupplierRequests *SupplierRequests       `json:"supplierRequests,omitempty"`
}

type BookingRecord struct {
	ID           string          `json:"id"`
	SessionID    string          `json:"sessionId"`
	OfferID      string          `json:"offerId"`
	Confirmation json.RawMessage `json:"confirmation"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type BookingsResponse struct {
	Bookings []BookingRecord `json:"bookings"`
}

type ItineraryResponse struct {
	Destination string `json:"destination"`
	Days        int    `json:"days"`
	Itinerary   string `json:"itinerary"`
}

type PlanResponse struct {
	Itinerary        *string                 `json:"itinerary,omitempty"`
	Origin           *string                 `json:"origin,omitempty"`
	Destination      *string                 `json:"destination,omitempty"`
	CityCode         *string                 `json:"cityCode,omitempty"`
	FlightsStatus    SearchStatus            `json:"flightsStatus"`
	Flights          []FlightRow             `json:"flights"`
	HotelsStatus     SearchStatus            `json:"hotelsStatus"`
	Hotels           []HotelOfferRow         `json:"hotels"`
	Errors           *SupplierResponseErrors `json:"errors,omitempty"`
	SupplierRequests *SupplierRequests       `json:"supplierRequests,omitempty"`
}

type SessionResponse struct {
	SessionID string    `json:"sessionId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
