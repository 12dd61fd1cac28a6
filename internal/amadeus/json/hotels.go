package json

// HotelOffersRQ searches either by city (with the area filters) or by hotel ids.
type HotelOffersRQ struct {
	CityCode      string   `url:"cityCode,omitempty"`
	HotelIds      []string `url:"hotelIds,comma,omitempty"`
	CheckInDate   string   `url:"checkInDate"`
	CheckOutDate  string   `url:"checkOutDate"`
	Adults        int      `url:"adults"`
	RoomQuantity  int      `url:"roomQuantity,omitempty"`
	Radius        int      `url:"radius,omitempty"`
	RadiusUnit    string   `url:"radiusUnit,omitempty"`
	PaymentPolicy string   `url:"paymentPolicy,omitempty"`
	IncludeClosed *bool    `url:"includeClosed,omitempty"`
	BestRateOnly  *bool    `url:"bestRateOnly,omitempty"`
	View          string   `url:"view,omitempty"`
	Sort          string   `url:"sort,omitempty"`
}

type HotelsByCityRQ struct {
	CityCode string `url:"cityCode"`
}
