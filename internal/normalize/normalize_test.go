package normalize

import (
	jsonEncoding "encoding/json"
	"os"
	"testing"

	"bitbucket.org/crgw/travel-planner/internal/schema"
	"github.com/stretchr/testify/assert"
)

func TestFlights(t *testing.T) {
	t.Run("should emit one row per segment with the offer total", func(t *testing.T) {
		rows, err := Flights(fixture(t, "flight_offers.json"))

		assert.NoError(t, err)
		assert.Len(t, rows, 4)

		for _, row := range rows[:3] {
			assert.Equal(t, "1023.40", row.TotalPrice)
			assert.Equal(t, "USD", row.Currency)
		}

		assert.Equal(t, schema.FlightRow{
			Airline:          "FI",
			FlightNumber:     "FI614",
			DepartureAirport: "JFK",
			DepartureTime:    "2025-09-01T18:00:00",
			ArrivalAirport:   "KEF",
			ArrivalTime:      "2025-09-02T04:00:00",
			TotalPrice:       "1023.40",
			Currency:         "USD",
		}, rows[0])
		assert.Equal(t, "CDG", rows[2].DepartureAirport)
		assert.Equal(t, "AF6", rows[2].FlightNumber)
	})

	t.Run("should replace missing fields", func(t *testing.T) {
		rows, _ := Flights(fixture(t, "flight_offers.json"))

		assert.Equal(t, schema.FlightRow{
			Airline:          schema.NotAvailable,
			FlightNumber:     "22",
			DepartureAirport: "JFK",
			DepartureTime:    schema.NotAvailable,
			ArrivalAirport:   schema.NotAvailable,
			ArrivalTime:      "2025-09-02T08:00:00",
			TotalPrice:       "640.00",
			Currency:         schema.NotAvailable,
		}, rows[3])
	})

	t.Run("should accept empty results", func(t *testing.T) {
		rows, err := Flights([]jsonEncoding.RawMessage{})

		assert.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})

	t.Run("should reject elements that are not objects", func(t *testing.T) {
		for _, element := range []string{`"offer"`, `[1,2]`, `null`, `{broken`} {
			_, err := Flights([]jsonEncoding.RawMessage{jsonEncoding.RawMessage(`{}`), jsonEncoding.RawMessage(element)})

			assert.ErrorIs(t, err, ErrUnexpectedShape, element)
		}
	})
}

func TestHotelOffers(t *testing.T) {
	t.Run("should index rows across hotels", func(t *testing.T) {
		rows, offers, err := HotelOffers(fixture(t, "hotel_offers.json"))

		assert.NoError(t, err)
		assert.Len(t, rows, 3)
		for i, row := range rows {
			assert.Equal(t, i, row.RowIndex)
		}

		assert.Equal(t, 3, offers.Len())
		assert.Equal(t, []int{0, 1, 2}, offers.Indexes())

		entry, err := offers.Get(2)
		assert.NoError(t, err)
		assert.Equal(t, "OFFER-B2", entry.OfferID)
		assert.Equal(t, "RTPAR001", rows[2].HotelID)
	})

	t.Run("should register the complete raw offer", func(t *testing.T) {
		_, offers, _ := HotelOffers(fixture(t, "hotel_offers.json"))

		entry, _ := offers.Get(0)
		assert.JSONEq(t, `{"id": "OFFER-A1", "checkInDate": "2025-09-01", "checkOutDate": "2025-09-03", "room": {"type": "ROH", "typeEstimated": {"category": "STANDARD_ROOM"}, "description": {"text": "Standard room"}}, "price": {"currency": "EUR", "total": "420.00"}, "policies": {"paymentType": "guarantee"}}`, string(entry.Offer))

		entry, _ = offers.Get(2)
		assert.Contains(t, string(entry.Offer), `"self"`)
	})

	t.Run("should flatten offer fields", func(t *testing.T) {
		rows, _, _ := HotelOffers(fixture(t, "hotel_offers.json"))

		assert.Equal(t, schema.HotelOfferRow{
			RowIndex:        0,
			HotelID:         "HLPAR266",
			HotelName:       "Hotel Lutetia",
			CityCode:        "PAR",
			OfferID:         "OFFER-A1",
			RoomType:        "STANDARD_ROOM",
			RoomDescription: "Standard room",
			CheckIn:         "2025-09-01",
			CheckOut:        "2025-09-03",
			TotalPrice:      "420.00",
			Currency:        "EUR",
		}, rows[0])

		assert.Equal(t, "A1K", rows[1].RoomType)
		assert.Equal(t, schema.NotAvailable, rows[1].RoomDescription)
		assert.Equal(t, schema.NotAvailable, rows[2].RoomType)
		assert.Equal(t, "250.00", rows[2].TotalPrice)
	})

	t.Run("should not register rows without offer id", func(t *testing.T) {
		hotels := []jsonEncoding.RawMessage{
			jsonEncoding.RawMessage(`{"hotel":{"name":"No ids"},"offers":[{"price":{"total":"1.00"}},{"id":"X1"}]}`),
			jsonEncoding.RawMessage(`{"hotel":{"name":"No offers"}}`),
			jsonEncoding.RawMessage(`{"hotel":{"name":"Odd offers"},"offers":"none"}`),
		}

		rows, offers, err := HotelOffers(hotels)

		assert.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.Equal(t, schema.NotAvailable, rows[0].OfferID)
		assert.Equal(t, schema.NotAvailable, rows[0].HotelID)
		assert.Equal(t, []int{1}, offers.Indexes())
	})

	t.Run("should reject elements that are not objects", func(t *testing.T) {
		rows, offers, err := HotelOffers([]jsonEncoding.RawMessage{jsonEncoding.RawMessage(`42`)})

		assert.ErrorIs(t, err, ErrUnexpectedShape)
		assert.Nil(t, rows)
		assert.Nil(t, offers)
	})
}

func TestHotelList(t *testing.T) {
	var hotels []jsonEncoding.RawMessage
	body, _ := os.ReadFile("../amadeus/testdata/hotels_by_city.json")
	envelope := struct {
		Data *[]jsonEncoding.RawMessage `json:"data"`
	}{Data: &hotels}
	assert.NoError(t, jsonEncoding.Unmarshal(body, &envelope))

	rows, err := HotelList(hotels)

	assert.NoError(t, err)
	assert.Equal(t, []schema.HotelRow{
		{RowIndex: 0, HotelID: "RTPAR001", Name: "ADAGIO PARIS MONTROUGE", ChainCode: "RT", CityCode: "PAR", Rating: "4"},
		{RowIndex: 1, HotelID: "HIPAR123", Name: "HOLIDAY INN PARIS", ChainCode: "HI", CityCode: "PAR", Rating: schema.NotAvailable},
	}, rows)

	_, err = HotelList([]jsonEncoding.RawMessage{jsonEncoding.RawMessage(`"hotel"`)})
	assert.ErrorIs(t, err, ErrUnexpectedShape)
}

func TestText(t *testing.T) {
	value := map[string]any{
		"a": map[string]any{"b": "x", "n": jsonEncoding.Number("1.50"), "t": true, "s": "  "},
		"l": []any{"1"},
	}

	assert.Equal(t, "x", text(value, "a", "b"))
	assert.Equal(t, "1.50", text(value, "a", "n"))
	assert.Equal(t, "true", text(value, "a", "t"))
	assert.Equal(t, schema.NotAvailable, text(value, "a", "s"))
	assert.Equal(t, schema.NotAvailable, text(value, "a"))
	assert.Equal(t, schema.NotAvailable, text(value, "l"))
	assert.Equal(t, schema.NotAvailable, text(value, "a", "b", "c"))
	assert.Equal(t, schema.NotAvailable, text(nil, "a"))
}

func fixture(t *testing.T, name string) []jsonEncoding.RawMessage {
	body, err := os.ReadFile("./testdata/" + name)
	assert.NoError(t, err)

	var elements []jsonEncoding.RawMessage
	assert.NoError(t, jsonEncoding.Unmarshal(body, &elements))

	return elements
}
