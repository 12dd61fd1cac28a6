// Package amadeus binds the Amadeus self-service travel API: oauth2 token,
// location lookup, flight and hotel offers, hotel list and hotel booking.
package amadeus

import (
	"context"
	jsonEncoding "encoding/json"
	"net/http"

	"bitbucket.org/crgw/travel-planner/internal/amadeus/json"
	"bitbucket.org/crgw/travel-planner/internal/config"
	"bitbucket.org/crgw/travel-planner/internal/schema"
	"bitbucket.org/crgw/travel-planner/internal/tools/caching"
	"bitbucket.org/crgw/travel-planner/internal/tools/converting"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Response holds the untouched elements of the "data" list and the request history.
type Response struct {
	Data             []jsonEncoding.RawMessage
	SupplierRequests schema.SupplierRequests
}

type Client struct {
	configuration config.Amadeus
	cache         *caching.Cacher
	httpTransport *http.Transport
	limiter       *rate.Limiter
}

func New(redisClient *redis.Client, configuration config.Amadeus) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	// improves durations a lot
	transport.DisableKeepAlives = true

	var limiter *rate.Limiter
	if configuration.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(configuration.RateLimit), int(configuration.RateLimit))
	}

	return &Client{
		configuration: configuration,
		cache:         caching.NewRedisCache(redisClient),
		httpTransport: transport,
		limiter:       limiter,
	}
}

func (c *Client) Locations(ctx context.Context, keyword string, kind schema.LocationKind, logger *zerolog.Logger) (Response, error) {
	return c.execute(ctx, apiRequest{
		name:   schema.Locations,
		method: http.MethodGet,
		path:   "/v1/reference-data/locations",
		query: json.LocationsRQ{
			SubType: string(kind),
			Keyword: keyword,
			Limit:   10,
			View:    "LIGHT",
		},
	}, logger)
}

func (c *Client) FlightOffers(ctx context.Context, query json.FlightOffersRQ, logger *zerolog.Logger) (Response, error) {
	query.Max = converting.ValueOr(query.Max, c.configuration.FlightMax)

	return c.execute(ctx, apiRequest{
		name:   schema.FlightOffers,
		method: http.MethodGet,
		path:   "/v2/shopping/flight-offers",
		query:  query,
	}, logger)
}

func (c *Client) HotelOffers(ctx context.Context, query json.HotelOffersRQ, logger *zerolog.Logger) (Response, error) {
	return c.execute(ctx, apiRequest{
		name:   schema.HotelOffers,
		method: http.MethodGet,
		path:   "/v3/shopping/hotel-offers",
		query:  query,
	}, logger)
}

func (c *Client) HotelsByCity(ctx context.Context, cityCode string, logger *zerolog.Logger) (Response, error) {
	return c.execute(ctx, apiRequest{
		name:   schema.HotelList,
		method: http.MethodGet,
		path:   "/v1/reference-data/locations/hotels/by-city",
		query:  json.HotelsByCityRQ{CityCode: cityCode},
	}, logger)
}

func (c *Client) HotelBooking(ctx context.Context, booking json.HotelBookingRQ, logger *zerolog.Logger) (Response, error) {
	return c.execute(ctx, apiRequest{
		name:   schema.HotelBooking,
		method: http.MethodPost,
		path:   "/v1/booking/hotel-bookings",
		body:   booking,
	}, logger)
}
