package trip

import (
	"errors"
	"net/http"

	"bitbucket.org/crgw/travel-planner/internal/schema"
	"bitbucket.org/crgw/travel-planner/internal/session"
	"bitbucket.org/crgw/travel-planner/internal/tools/errorhandler"
	"bitbucket.org/crgw/travel-planner/internal/tools/slowlog"
	"bitbucket.org/crgw/travel-planner/internal/trafficlight/grouping"
	tripMiddleware "bitbucket.org/crgw/travel-planner/internal/trip/middleware"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type sessions interface {
	Issue() (session.Session, error)
	Parse(string) (session.Session, error)
}

// grouped returns the traffic light middleware, or a no-op without a redis client.
func grouped(redisClient *redis.Client, cacheKey func(c *gin.Context) (string, bool)) gin.HandlerFunc {
	if redisClient == nil {
		return func(ctx *gin.Context) {}
	}

	return grouping.Middleware(grouping.MiddlewareOptions{
		CreateManager: grouping.NewRequestManager,
		RedisClient:   redisClient,
		CacheKey:      cacheKey,
	})
}

func RegisterRoutes(
	router *gin.Engine,
	service *Service,
	sessionManager sessions,
	trafficlightClient *redis.Client,
) {
	router.POST("/sessions", tripMiddleware.TapLogger, func(ctx *gin.Context) {
		issued, err := sessionManager.Issue()
		if err != nil {
			errorhandler.HandleError(ctx, http.StatusInternalServerError, "Failed starting session", err)
			return
		}

		ctx.JSON(http.StatusCreated, schema.SessionResponse{
			SessionID: issued.ID,
			Token:     issued.Token,
			ExpiresAt: issued.ExpiresAt,
		})
	})

	group := router.Group(
		"/",
		tripMiddleware.PrepareSession(sessionManager),
		tripMiddleware.TapLogger,
	)

	group.POST("/flights/search",
		tripMiddleware.PrepareParams(schema.FlightSearchRequestParams{}),
		grouped(trafficlightClient, func(ctx *gin.Context) (string, bool) {
			params, ok := ctx.MustGet(tripMiddleware.ParamsKey).(*schema.FlightSearchRequestParams)
			if !ok {
				return "", false
			}

			return FlightsGroupingKey(*params), true
		}),
		func(ctx *gin.Context) {
			logger := ctx.MustGet("logger").(*zerolog.Logger)

			slowLog := slowlog.CreateLogger(logger)
			slowLog.Start("flights:search")

			params, ok := ctx.MustGet(tripMiddleware.ParamsKey).(*schema.FlightSearchRequestParams)
			if !ok {
				errorhandler.HandleError(ctx, http.StatusInternalServerError, "Bad request params", nil)
				return
			}

			ctx.JSON(http.StatusOK, service.SearchFlights(ctx.Request.Context(), *params, logger))

			slowLog.Stop("flights:search")
		},
	)

	group.POST("/hotels/search",
		tripMiddleware.PrepareParams(schema.HotelSearchRequestParams{}),
		func(ctx *gin.Context) {
			logger := ctx.MustGet("logger").(*zerolog.Logger)

			slowLog := slowlog.CreateLogger(logger)
			slowLog.Start("hotels:search")

			params, ok := ctx.MustGet(tripMiddleware.ParamsKey).(*schema.HotelSearchRequestParams)
			if !ok {
				errorhandler.HandleError(ctx, http.StatusInternalServerError, "Bad request params", nil)
				return
			}

			response, err := service.SearchHotelsByCity(ctx.Request.Context(), ctx.GetString(tripMiddleware.SessionKey), *params, logger)
			if err != nil {
				errorhandler.HandleError(ctx, http.StatusInternalServerError, "Failed storing hotel offers", err)
				return
			}

			ctx.JSON(http.StatusOK, response)

			slowLog.Stop("hotels:search")
		},
	)

	group.POST("/hotels/offers",
		tripMiddleware.PrepareParams(schema.HotelOffersRequestParams{}),
		func(ctx *gin.Context) {
			logger := ctx.MustGet("logger").(*zerolog.Logger)

			params, ok := ctx.MustGet(tripMiddleware.ParamsKey).(*schema.HotelOffersRequestParams)
			if !ok {
				errorhandler.HandleError(ctx, http.StatusInternalServerError, "Bad request params", nil)
				return
			}

			response, err := service.SearchHotelsByHotelIds(ctx.Request.Context(), ctx.GetString(tripMiddleware.SessionKey), *params, logger)
			if err != nil {
				errorhandler.HandleError(ctx, http.StatusInternalServerError, "Failed storing hotel offers", err)
				return
			}

			ctx.JSON(http.StatusOK, response)
		},
	)

	group.POST("/hotels/list",
		tripMiddleware.PrepareParams(schema.HotelListRequestParams{}),
		grouped(trafficlightClient, func(ctx *gin.Context) (string, bool) {
			params, ok := ctx.MustGet(tripMiddleware.ParamsKey).(*schema.HotelListRequestParams)
			if !ok {
				return "", false
			}

			return HotelListGroupingKey(*params), true
		}),
		func(ctx *gin.Context) {
			logger := ctx.MustGet("logger").(*zerolog.Logger)

			params, ok := ctx.MustGet(tripMiddleware.ParamsKey).(*schema.HotelListRequestParams)
			if !ok {
				errorhandler.HandleError(ctx, http.StatusInternalServerError, "Bad request params", nil)
				return
			}

			ctx.JSON(http.StatusOK, service.ListHotels(ctx.Request.Context(), *params, logger))
		},
	)

	group.POST("/hotels/book",
		tripMiddleware.PrepareParams(schema.BookingRequestParams{}),
		func(ctx *gin.Context) {
			logger := ctx.MustGet("logger").(*zerolog.Logger)

			params, ok := ctx.MustGet(tripMiddleware.ParamsKey).(*schema.BookingRequestParams)
			if !ok {
				errorhandler.HandleError(ctx, http.StatusInternalServerError, "Bad request params", nil)
				return
			}

			response, err := service.BookHotel(ctx.Request.Context(), ctx.GetString(tripMiddleware.SessionKey), *params, logger)
			if err != nil {
				errorhandler.HandleError(ctx, http.StatusInternalServerError, "Failed requesting booking", err)
				return
			}

			ctx.JSON(http.StatusOK, response)
		},
	)

	group.GET("/bookings", func(ctx *gin.Context) {
		response, err := service.Bookings(ctx.Request.Context(), ctx.GetString(tripMiddleware.SessionKey))
		if errors.Is(err, ErrorNotImplemented) {
			errorhandler.HandleError(ctx, http.StatusBadRequest, "Bookings journal not implemented", err)
			return
		}
		if err != nil {
			errorhandler.HandleError(ctx, http.StatusInternalServerError, "Failed listing bookings", err)
			return
		}

		ctx.JSON(http.StatusOK, response)
	})

	group.POST("/itinerary",
		tripMiddleware.PrepareParams(schema.ItineraryRequestParams{}),
		func(ctx *gin.Context) {
			logger := ctx.MustGet("logger").(*zerolog.Logger)

			params, ok := ctx.MustGet(tripMiddleware.ParamsKey).(*schema.ItineraryRequestParams)
			if !ok {
				errorhandler.HandleError(ctx, http.StatusInternalServerError, "Bad request params", nil)
				return
			}

			response, err := service.Itinerary(ctx.Request.Context(), *params, logger)
			if err != nil {
				handleItineraryError(ctx, err)
				return
			}

			ctx.JSON(http.StatusOK, response)
		},
	)

	group.POST("/itinerary/pdf",
		tripMiddleware.PrepareParams(schema.ItineraryRequestParams{}),
		func(ctx *gin.Context) {
			logger := ctx.MustGet("logger").(*zerolog.Logger)

			params, ok := ctx.MustGet(tripMiddleware.ParamsKey).(*schema.ItineraryRequestParams)
			if !ok {
				errorhandler.HandleError(ctx, http.StatusInternalServerError, "Bad request params", nil)
				return
			}

			document, err := service.ItineraryPDF(ctx.Request.Context(), *params, logger)
			if err != nil {
				handleItineraryError(ctx, err)
				return
			}

			ctx.Header("Content-Disposition", `attachment; filename="itinerary.pdf"`)
			ctx.Data(http.StatusOK, "application/pdf", document)
		},
	)

	group.POST("/plan",
		tripMiddleware.PrepareParams(schema.PlanRequestParams{}),
		func(ctx *gin.Context) {
			logger := ctx.MustGet("logger").(*zerolog.Logger)

			slowLog := slowlog.CreateLogger(logger)
			slowLog.Start("plan")

			params, ok := ctx.MustGet(tripMiddleware.ParamsKey).(*schema.PlanRequestParams)
			if !ok {
				errorhandler.HandleError(ctx, http.StatusInternalServerError, "Bad request params", nil)
				return
			}

			response, err := service.Plan(ctx.Request.Context(), ctx.GetString(tripMiddleware.SessionKey), *params, logger)
			if err != nil {
				errorhandler.HandleError(ctx, http.StatusInternalServerError, "Failed storing hotel offers", err)
				return
			}

			ctx.JSON(http.StatusOK, response)

			slowLog.Stop("plan")
		},
	)
}

func handleItineraryError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrorNotImplemented):
		errorhandler.HandleError(ctx, http.StatusBadRequest, "Itinerary not implemented", err)
	case errors.Is(err, ErrorMissingDestination):
		errorhandler.HandleError(ctx, http.StatusBadRequest, "Invalid request params", err)
	default:
		errorhandler.HandleError(ctx, http.StatusBadGateway, "Failed generating itinerary", err)
	}
}
