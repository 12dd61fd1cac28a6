package json

type LocationsRQ struct {
	SubType string `url:"subType"`
	Keyword string `url:"keyword"`
	Limit   int    `url:"page[limit],omitempty"`
	View    string `url:"view,omitempty"`
}

type LocationAddressRS struct {
	CityName    string `json:"cityName,omitempty"`
	CityCode    string `json:"cityCode,omitempty"`
	CountryName string `json:"countryName,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
}

type LocationRS struct {
	Type     string             `json:"type"`
	SubType  string             `json:"subType"`
	Name     string             `json:"name"`
	IataCode *string            `json:"iataCode"`
	Address  *LocationAddressRS `json:"address,omitempty"`
}
