// Package normalize flattens nested inventory offers into display rows.
// Missing fields never fail a row, they are rendered as schema.NotAvailable.
package normalize

import (
	jsonEncoding "encoding/json"
	"errors"
	"fmt"

	"bitbucket.org/crgw/travel-planner/internal/registry"
	"bitbucket.org/crgw/travel-planner/internal/schema"
)

// ErrUnexpectedShape is returned when an inventory element is not a JSON object.
var ErrUnexpectedShape = errors.New("inventory element is not an object")

func unexpected(kind string, index int) error {
	return fmt.Errorf("%w: %s at position %d", ErrUnexpectedShape, kind, index)
}

// Flights emits one row per segment of every itinerary of every offer.
// All rows of an offer carry the offer total unchanged.
func Flights(offers []jsonEncoding.RawMessage) ([]schema.FlightRow, error) {
	rows := []schema.FlightRow{}

	for i, raw := range offers {
		offer, ok := object(raw)
		if !ok {
			return nil, unexpected("flight offer", i)
		}

		totalPrice := firstText(offer, []string{"price", "grandTotal"}, []string{"price", "total"})
		currency := text(offer, "price", "currency")

		for _, itinerary := range list(offer, "itineraries") {
			for _, segment := range list(itinerary, "segments") {
				rows = append(rows, schema.FlightRow{
					Airline:          text(segment, "carrierCode"),
					FlightNumber:     flightNumber(segment),
					DepartureAirport: text(segment, "departure", "iataCode"),
					DepartureTime:    text(segment, "departure", "at"),
					ArrivalAirport:   text(segment, "arrival", "iataCode"),
					ArrivalTime:      text(segment, "arrival", "at"),
					TotalPrice:       totalPrice,
					Currency:         currency,
				})
			}
		}
	}

	return rows, nil
}

func flightNumber(segment any) string {
	carrier := text(segment, "carrierCode")
	number := text(segment, "number")
	if carrier == schema.NotAvailable || number == schema.NotAvailable {
		return number
	}

	return carrier + number
}

type hotelOffers struct {
	Offers []jsonEncoding.RawMessage `json:"offers"`
}

// HotelOffers emits one row per offer of every hotel with row indexes in insertion order.
// The returned registry holds every row that carries an offer id.
func HotelOffers(hotels []jsonEncoding.RawMessage) ([]schema.HotelOfferRow, *registry.Registry, error) {
	rows := []schema.HotelOfferRow{}
	offers := registry.New()

	for i, raw := range hotels {
		hotel, ok := object(raw)
		if !ok {
			return nil, nil, unexpected("hotel offers", i)
		}

		// offers are kept raw for the registry, a mistyped list has no rows
		var nested hotelOffers
		if err := jsonEncoding.Unmarshal(raw, &nested); err != nil {
			continue
		}

		for _, rawOffer := range nested.Offers {
			offer, _ := object(rawOffer)
			rowIndex := len(rows)
			offerID := text(offer, "id")

			rows = append(rows, schema.HotelOfferRow{
				RowIndex:        rowIndex,
				HotelID:         text(hotel, "hotel", "hotelId"),
				HotelName:       text(hotel, "hotel", "name"),
				CityCode:        text(hotel, "hotel", "cityCode"),
				OfferID:         offerID,
				RoomType:        firstText(offer, []string{"room", "typeEstimated", "category"}, []string{"room", "type"}),
				RoomDescription: text(offer, "room", "description", "text"),
				CheckIn:         text(offer, "checkInDate"),
				CheckOut:        text(offer, "checkOutDate"),
				TotalPrice:      firstText(offer, []string{"price", "total"}, []string{"price", "base"}),
				Currency:        text(offer, "price", "currency"),
			})

			if offerID != schema.NotAvailable {
				offers.Put(rowIndex, offerID, rawOffer)
			}
		}
	}

	return rows, offers, nil
}

// HotelList emits one row per hotel summary.
func HotelList(hotels []jsonEncoding.RawMessage) ([]schema.HotelRow, error) {
	rows := []schema.HotelRow{}

	for i, raw := range hotels {
		hotel, ok := object(raw)
		if !ok {
			return nil, unexpected("hotel", i)
		}

		rows = append(rows, schema.HotelRow{
			RowIndex:  i,
			HotelID:   text(hotel, "hotelId"),
			Name:      text(hotel, "name"),
			ChainCode: text(hotel, "chainCode"),
			CityCode:  firstText(hotel, []string{"iataCode"}, []string{"cityCode"}, []string{"address", "cityCode"}),
			Rating:    text(hotel, "rating"),
		})
	}

	return rows, nil
}
