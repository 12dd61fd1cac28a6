package json

type HotelBookingRQ struct {
	Data HotelBookingRQData `json:"data"`
}

type HotelBookingRQData struct {
	OfferId  string                  `json:"offerId"`
	Guests   []HotelBookingRQGuest   `json:"guests"`
	Payments []HotelBookingRQPayment `json:"payments"`
}

type HotelBookingRQGuest struct {
	Name    HotelBookingRQName    `json:"name"`
	Contact HotelBookingRQContact `json:"contact"`
}

type HotelBookingRQName struct {
	Title     string `json:"title"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type HotelBookingRQContact struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type HotelBookingRQPayment struct {
	Method string             `json:"method"`
	Card   HotelBookingRQCard `json:"card"`
}

type HotelBookingRQCard struct {
	VendorCode string `json:"vendorCode"`
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
}

type HotelBookingRS struct {
	Type                   string `json:"type"`
	Id                     string `json:"id"`
	ProviderConfirmationId string `json:"providerConfirmationId"`
}
