package web

import (
	"net/http"
	"os"
	"time"

	"bitbucket.org/crgw/travel-planner/internal/config"
	"bitbucket.org/crgw/travel-planner/internal/session"
	"bitbucket.org/crgw/travel-planner/internal/trip"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type Dependencies struct {
	Service  *trip.Service
	Sessions *session.Manager
	// nil disables grouping of identical searches
	TrafficlightClient *redis.Client
}

func SetupRouter(cfg *config.Config, log *zerolog.Logger, deps Dependencies) *gin.Engine {
	startTime := time.Now()

	openApiContent, err := os.ReadFile(cfg.OpenapiLocation)
	if err != nil {
		log.Warn().
			Err(err).
			Str("location", cfg.OpenapiLocation).
			Msg("Unable to read the OpenAPI document")
	}

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.
		Use(StartRequest).
		Use(CorrelationId).
		Use(RegisterLogger(log)).
		Use(TraceLog).
		Use(PanicRecovery)

	if len(cfg.CorsOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.CorsOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:  []string{"Content-Type", "x-session-token", "x-correlation-id"},
			ExposeHeaders: []string{"Content-Disposition"},
			MaxAge:        12 * time.Hour,
		}))
	}

	router.Use(OpenapiValidator(openApiContent, log))

	router.GET("/status", func(c *gin.Context) {
		response := struct {
			Uptime float64 `json:"uptime"`
		}{
			Uptime: time.Since(startTime).Seconds(),
		}

		c.JSON(http.StatusOK, response)
	})

	router.GET("/openapi.yaml", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/yaml", openApiContent)
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	pprof.Register(router)

	trip.RegisterRoutes(
		router,
		deps.Service,
		deps.Sessions,
		deps.TrafficlightClient,
	)

	return router
}
