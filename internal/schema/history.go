package schema

import (
	"net/http"
	"os"
	"sync"
	"time"

	"bitbucket.org/crgw/travel-planner/internal/tools/converting"
)

type Key string

const (
	RequestingTypeKey Key = "requestingType"
)

type SupplierRequestName string

const (
	Auth         SupplierRequestName = "AUTH"
	Locations    SupplierRequestName = "LOCATIONS"
	FlightOffers SupplierRequestName = "FLIGHT_OFFERS"
	HotelOffers  SupplierRequestName = "HOTEL_OFFERS"
	HotelList    SupplierRequestName = "HOTEL_LIST"
	HotelBooking SupplierRequestName = "HOTEL_BOOKING"
	Itinerary    SupplierRequestName = "ITINERARY"
)

type RequestContent struct {
	Url     *string         `json:"url,omitempty"`
	Method  *string         `json:"method,omitempty"`
	Body    *string         `json:"body,omitempty"`
	Headers *map[string]any `json:"headers,omitempty"`
}

type ResponseContent struct {
	StatusCode *int            `json:"statusCode,omitempty"`
	Body       *string         `json:"body,omitempty"`
	Headers    *map[string]any `json:"headers,omitempty"`
}

type SupplierRequest struct {
	Name            *SupplierRequestName `json:"name,omitempty"`
	StartDateTime   *time.Time           `json:"startDateTime,omitempty"`
	Duration        *int                 `json:"duration,omitempty"`
	RequestContent  *RequestContent      `json:"requestContent,omitempty"`
	ResponseContent *ResponseContent     `json:"responseContent,omitempty"`
}

type SupplierRequests []SupplierRequest

type supplierRequestsBucket struct {
	supplierRequests SupplierRequests
	sync.Mutex
}

func NewSupplierRequestsBucket() supplierRequestsBucket {
	return supplierRequestsBucket{
		supplierRequests: SupplierRequests{},
	}
}

func (r *supplierRequestsBucket) SupplierRequests() *SupplierRequests {
	return &r.supplierRequests
}

func (r *supplierRequestsBucket) AddRequests(requests SupplierRequests) {
	r.Lock()
	r.supplierRequests = append(r.supplierRequests, requests...)
	r.Unlock()
}

func (r *supplierRequestsBucket) FinishedRequest(
	requestType SupplierRequestName,
	startTime time.Time,
	statusCode int,
	method string,
	url string,
	requestBody string,
	requestHeaders http.Header,
	responseBody string,
	responseHeaders http.Header,
) {
	headers := requestHeaders.Clone()
	for _, name := range redactedHeaders {
		if headers.Get(name) != "" {
			headers.Set(name, redacted)
		}
	}

	reqHeaders := converting.ConvertMap(headers)
	requestBody = redactBody(requestType, requestBody)
	responseBody = redactBody(requestType, responseBody)

	req := RequestContent{
		Url:     &url,
		Method:  &method,
		Body:    &requestBody,
		Headers: &reqHeaders,
	}

	historyRequest := SupplierRequest{
		Name:           &requestType,
		RequestContent: &req,
	}

	resHeaders := converting.ConvertMap(responseHeaders)

	res := ResponseContent{
		StatusCode: &statusCode,
		Headers:    &resHeaders,
		Body:       &responseBody,
	}

	historyRequest.ResponseContent = &res

	if os.Getenv("TEST") != "true" {
		duration := int(time.Since(startTime).Milliseconds())
		historyRequest.Duration = &duration
		historyRequest.StartDateTime = &startTime
	}

	r.Lock()
	r.supplierRequests = append(r.supplierRequests, historyRequest)
	r.Unlock()
}
