package json

type FlightOffersRQ struct {
	OriginLocationCode      string `url:"originLocationCode"`
	DestinationLocationCode string `url:"destinationLocationCode"`
	DepartureDate           string `url:"departureDate"`
	Adults                  int    `url:"adults"`
	Max                     int    `url:"max,omitempty"`
}
