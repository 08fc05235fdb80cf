// Package main is the entry point for the skysearch flight search service.
//
//	@title						Skysearch Flight Search API
//	@version					1.0.0
//	@description				Flight search over the Amadeus offers API with client-side style filtering, ranking, fare calendars and a recent-search log.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/flight-search/skysearch/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Import generated docs for swagger
	_ "github.com/flight-search/skysearch/docs"

	// Application layers
	flighthttp "github.com/flight-search/skysearch/internal/adapter/http"
	"github.com/flight-search/skysearch/internal/adapter/http/middleware"
	"github.com/flight-search/skysearch/internal/adapter/provider/amadeus"
	"github.com/flight-search/skysearch/internal/adapter/storage/recentsearch"
	"github.com/flight-search/skysearch/internal/config"
	"github.com/flight-search/skysearch/internal/domain"
	"github.com/flight-search/skysearch/internal/infrastructure/logger"
	"github.com/flight-search/skysearch/internal/infrastructure/timeutil"
	"github.com/flight-search/skysearch/internal/infrastructure/tracing"
	"github.com/flight-search/skysearch/internal/usecase"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Logging)

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Str("recent_search_backend", cfg.RecentSearch.Backend).
		Bool("tracing", cfg.Tracing.Enabled).
		Msg("Configuration loaded")

	tp, err := tracing.Init(cfg.Tracing)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize tracing")
	}

	store, closeStore, err := setupRecentSearchStore(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize recent-search store")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log, middleware.Config{
		CORSOrigins: cfg.Server.CORSOrigins,
		Tracer:      tp.Tracer(),
	})

	setupRoutes(e, cfg, log, tp, store)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	gracefulShutdown(e, cfg, log, tp, closeStore)
}

// setupRecentSearchStore opens the configured backend. The returned func
// releases it on shutdown.
func setupRecentSearchStore(cfg *config.Config, log *logger.Logger) (domain.RecentSearchStore, func() error, error) {
	if cfg.RecentSearch.Backend != config.BackendRedis {
		return recentsearch.NewMemoryStore(), func() error { return nil }, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.Search)
	defer cancel()

	client, err := recentsearch.NewRedisClient(ctx, recentsearch.RedisConfig{
		Addr:     cfg.RecentSearch.RedisAddr,
		Password: cfg.RecentSearch.RedisPassword,
		DB:       cfg.RecentSearch.RedisDB,
	})
	if err != nil {
		return nil, nil, err
	}

	log.Info().Str("addr", cfg.RecentSearch.RedisAddr).Msg("Connected to Redis")
	store := recentsearch.NewRedisStore(client, cfg.RecentSearch.MaxAge)
	return store, store.Close, nil
}

// setupRoutes wires the provider, use cases and handler, then registers routes.
func setupRoutes(e *echo.Echo, cfg *config.Config, log *logger.Logger, tp *tracing.Provider, store domain.RecentSearchStore) {
	loc := cfg.Location()
	clock := timeutil.NewRealClockIn(loc)
	tracer := tp.Tracer()

	provider := amadeus.NewClient(amadeus.Config{
		BaseURL:      cfg.Amadeus.BaseURL,
		ClientID:     cfg.Amadeus.ClientID,
		ClientSecret: cfg.Amadeus.ClientSecret,
		Timeout:      cfg.Amadeus.HTTPTimeout,
		Clock:        clock,
		Logger:       log,
		Tracer:       tracer,
	})

	recent := usecase.NewRecentSearchUseCase(store, clock, log, &usecase.RecentSearchConfig{
		Capacity: cfg.RecentSearch.Capacity,
		MaxAge:   cfg.RecentSearch.MaxAge,
	})

	search := usecase.NewFlightSearchUseCase(usecase.SearchDeps{
		Provider: provider,
		Recent:   recent,
		Logger:   log,
		Tracer:   tracer,
	}, &usecase.Config{
		SearchTimeout: cfg.Timeouts.Search,
		MaxResults:    cfg.Amadeus.MaxResults,
		Baseline:      domain.RankingBaseline(cfg.Ranking.Baseline),
	})

	calendarCfg := usecase.DefaultCalendarConfig()
	calendarCfg.SeriesDays = cfg.Calendar.SeriesDays
	calendarCfg.SeriesMaxRequests = cfg.Calendar.SeriesMaxRequests
	calendarCfg.GridMaxCells = cfg.Calendar.GridMaxCells
	calendarCfg.RequestTimeout = cfg.Timeouts.CalendarRequest

	calendar := usecase.NewCalendarUseCase(usecase.CalendarDeps{
		Provider:    provider,
		Clock:       clock,
		SeriesPacer: usecase.NewRatePacer(cfg.Calendar.PacingInterval, cfg.Calendar.SeriesPauseEvery, cfg.Calendar.SeriesPause),
		GridPacer:   usecase.NewRatePacer(cfg.Calendar.PacingInterval, cfg.Calendar.GridPauseEvery, cfg.Calendar.GridPause),
		Logger:      log,
		Tracer:      tracer,
	}, &calendarCfg)

	handler := flighthttp.NewFlightHandler(flighthttp.HandlerDeps{
		Search:   search,
		Calendar: calendar,
		Recent:   recent,
		Location: loc,
		Currency: cfg.Amadeus.Currency,
		Logger:   log,
	})
	flighthttp.RegisterRoutes(e, handler)

	// Swagger documentation endpoint
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, cfg *config.Config, log *logger.Logger, tp *tracing.Provider, closeStore func() error) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}
	if err := closeStore(); err != nil {
		log.Error().Err(err).Msg("Error closing recent-search store")
	}
	if err := tp.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error flushing traces")
	}

	log.Info().Msg("Server stopped")
}
