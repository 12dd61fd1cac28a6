//go:build !integration

package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bitbucket.org/crgw/travel-planner/internal/amadeus"
	"bitbucket.org/crgw/travel-planner/internal/booking"
	"bitbucket.org/crgw/travel-planner/internal/config"
	"bitbucket.org/crgw/travel-planner/internal/itinerary"
	"bitbucket.org/crgw/travel-planner/internal/registry"
	"bitbucket.org/crgw/travel-planner/internal/resolver"
	"bitbucket.org/crgw/travel-planner/internal/session"
	"bitbucket.org/crgw/travel-planner/internal/storage"
	"bitbucket.org/crgw/travel-planner/internal/tools/logger"
	"bitbucket.org/crgw/travel-planner/internal/tools/redisfactory"
	"bitbucket.org/crgw/travel-planner/internal/trip"
	"bitbucket.org/crgw/travel-planner/internal/trip/interfaces"
	"bitbucket.org/crgw/travel-planner/internal/web"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

func serverApp(httpServer *http.Server, logger *zerolog.Logger) int {
	shutdown := false
	done := make(chan error, 1)
	stop := make(chan os.Signal, 1)
	go func() {
		logger.
			Info().
			Msg("Listening on address " + httpServer.Addr)
		done <- httpServer.ListenAndServe()
	}()
	go func() {
		// Wait for stop
		<-stop
		shutdown = true
		logger.Info().Msg("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = httpServer.Shutdown(ctx)
	}()

	// Notify stop channel if SIGINT or SIGTERM is received
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	err := <-done
	if err != nil && !shutdown {
		logger.
			Error().
			Err(err).
			Msg("Server failed")
		return 1
	}
	return 0
}

type journal interface {
	booking.Journal
	interfaces.WithBookingsJournal
}

func openJournal(ctx context.Context, cfg config.Database) (journal, *sql.DB, error) {
	db, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	repository := storage.NewBookingsRepository(db)
	if err := repository.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}

	return repository, db, nil
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		logger.New(os.Getenv("LOG_LEVEL")).
			Error().
			Err(err).
			Msg("Unable to load the configuration")
		return 1
	}

	log := logger.New(cfg.LogLevel)

	redisFactory, err := redisfactory.New(cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("Unable to create redis clients")
		return 1
	}
	defer redisFactory.Close()

	amadeusClient := amadeus.New(redisFactory.ResponsesCacheClient(), cfg.Amadeus)

	dependencies := trip.Dependencies{
		Inventory: amadeusClient,
		Resolver:  resolver.New(amadeusClient),
		Registry:  registry.NewRedisStore(redisFactory.ResponsesCacheClient(), cfg.Session.TTL),
	}

	var bookingsJournal booking.Journal
	if cfg.Database.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		repository, db, err := openJournal(ctx, cfg.Database)
		cancel()

		if err != nil {
			log.Error().Err(err).Msg("Unable to open the bookings journal")
			return 1
		}
		defer db.Close()

		bookingsJournal = repository
		dependencies.Journal = repository
	} else {
		log.Info().Msg("DATABASE_URL not set, bookings are not journaled")
	}

	dependencies.Booking = booking.New(amadeusClient, bookingsJournal)

	if cfg.OpenAI.Enabled() {
		dependencies.Planner = itinerary.NewPlanner(cfg.OpenAI, log)
	} else {
		log.Info().Msg("OPENAI_API_KEY not set, itineraries are disabled")
	}

	appRouter := web.SetupRouter(cfg, log, web.Dependencies{
		Service:            trip.NewService(dependencies),
		Sessions:           session.NewManager(cfg.Session),
		TrafficlightClient: redisFactory.TrafficlightClient(),
	})

	var host string
	if cfg.Test {
		host = "localhost"
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", host, cfg.Port),
		Handler:           appRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return serverApp(httpServer, log)
}

func main() {
	os.Exit(run())
}
