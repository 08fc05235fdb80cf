// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/flight-search/skysearch/internal/domain"
	"github.com/flight-search/skysearch/internal/infrastructure/logger"
	"github.com/flight-search/skysearch/internal/infrastructure/timeutil"
	"github.com/flight-search/skysearch/internal/infrastructure/tracing"
)

// Recent-search storage backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds all application configuration.
type Config struct {
	Server       ServerConfig
	Timeouts     TimeoutConfig
	Amadeus      AmadeusConfig
	Calendar     CalendarConfig
	Ranking      RankingConfig
	RecentSearch RecentSearchConfig
	Tracing      tracing.Config
	Logging      logger.Config
	App          AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSOrigins     []string      `env:"SERVER_CORS_ORIGINS" envDefault:"*" envSeparator:","`
}

// TimeoutConfig holds upstream deadlines.
type TimeoutConfig struct {
	// Search bounds a search or airport lookup.
	Search time.Duration `env:"TIMEOUT_SEARCH" envDefault:"15s"`

	// CalendarRequest bounds each request of a calendar build.
	CalendarRequest time.Duration `env:"TIMEOUT_CALENDAR_REQUEST" envDefault:"10s"`
}

// AmadeusConfig holds the upstream provider settings.
type AmadeusConfig struct {
	BaseURL      string        `env:"AMADEUS_BASE_URL" envDefault:"https://test.api.amadeus.com"`
	ClientID     string        `env:"AMADEUS_CLIENT_ID"`
	ClientSecret string        `env:"AMADEUS_CLIENT_SECRET"`
	HTTPTimeout  time.Duration `env:"AMADEUS_HTTP_TIMEOUT" envDefault:"10s"`
	Currency     string        `env:"AMADEUS_CURRENCY" envDefault:"USD"`
	MaxResults   int           `env:"AMADEUS_MAX_RESULTS" envDefault:"50"`
}

// CalendarConfig holds the request budgets and pacing of calendar builds.
type CalendarConfig struct {
	SeriesDays        int           `env:"CALENDAR_SERIES_DAYS" envDefault:"11"`
	SeriesMaxRequests int           `env:"CALENDAR_SERIES_MAX_REQUESTS" envDefault:"15"`
	GridMaxCells      int           `env:"CALENDAR_GRID_MAX_CELLS" envDefault:"28"`
	PacingInterval    time.Duration `env:"CALENDAR_PACING_INTERVAL" envDefault:"50ms"`
	SeriesPauseEvery  int           `env:"CALENDAR_SERIES_PAUSE_EVERY" envDefault:"3"`
	SeriesPause       time.Duration `env:"CALENDAR_SERIES_PAUSE" envDefault:"300ms"`
	GridPauseEvery    int           `env:"CALENDAR_GRID_PAUSE_EVERY" envDefault:"4"`
	GridPause         time.Duration `env:"CALENDAR_GRID_PAUSE" envDefault:"100ms"`
}

// RankingConfig holds the "best" sort settings.
type RankingConfig struct {
	Baseline string `env:"RANKING_BASELINE" envDefault:"filtered"`
}

// RecentSearchConfig holds the recent-search log settings.
type RecentSearchConfig struct {
	Backend       string        `env:"RECENT_SEARCH_BACKEND" envDefault:"memory"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	Capacity      int           `env:"RECENT_SEARCH_CAPACITY" envDefault:"5"`
	MaxAge        time.Duration `env:"RECENT_SEARCH_MAX_AGE" envDefault:"720h"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`

	// Timezone is the IANA zone calendar days are computed in; empty means
	// the process zone.
	Timezone string `env:"APP_TIMEZONE"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	positive := []struct {
		name string
		d    time.Duration
	}{
		{"SERVER_READ_TIMEOUT", cfg.Server.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", cfg.Server.WriteTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout},
		{"TIMEOUT_SEARCH", cfg.Timeouts.Search},
		{"TIMEOUT_CALENDAR_REQUEST", cfg.Timeouts.CalendarRequest},
		{"AMADEUS_HTTP_TIMEOUT", cfg.Amadeus.HTTPTimeout},
		{"RECENT_SEARCH_MAX_AGE", cfg.RecentSearch.MaxAge},
	}
	for _, p := range positive {
		if p.d <= 0 {
			return fmt.Errorf("%s must be positive", p.name)
		}
	}

	// The upstream call must finish before the whole search gives up.
	if cfg.Amadeus.HTTPTimeout > cfg.Timeouts.Search {
		return fmt.Errorf("AMADEUS_HTTP_TIMEOUT (%s) should not exceed TIMEOUT_SEARCH (%s)",
			cfg.Amadeus.HTTPTimeout, cfg.Timeouts.Search)
	}

	if cfg.Amadeus.MaxResults < 1 || cfg.Amadeus.MaxResults > 250 {
		return fmt.Errorf("AMADEUS_MAX_RESULTS must be between 1 and 250, got %d", cfg.Amadeus.MaxResults)
	}
	if len(cfg.Amadeus.Currency) != 3 {
		return fmt.Errorf("AMADEUS_CURRENCY must be a 3-letter ISO code, got %q", cfg.Amadeus.Currency)
	}
	if cfg.IsProduction() && (cfg.Amadeus.ClientID == "" || cfg.Amadeus.ClientSecret == "") {
		return fmt.Errorf("AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET are required in production")
	}

	if cfg.Calendar.SeriesDays < 1 || cfg.Calendar.SeriesMaxRequests < 1 || cfg.Calendar.GridMaxCells < 1 {
		return fmt.Errorf("calendar request budgets must be positive")
	}
	if cfg.Calendar.PacingInterval < 0 || cfg.Calendar.SeriesPause < 0 || cfg.Calendar.GridPause < 0 {
		return fmt.Errorf("calendar pacing durations must not be negative")
	}

	if !domain.RankingBaseline(cfg.Ranking.Baseline).IsValid() {
		return fmt.Errorf("RANKING_BASELINE must be one of: filtered, full; got %q", cfg.Ranking.Baseline)
	}

	switch cfg.RecentSearch.Backend {
	case BackendMemory:
	case BackendRedis:
		if cfg.RecentSearch.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis backend")
		}
	default:
		return fmt.Errorf("RECENT_SEARCH_BACKEND must be one of: memory, redis; got %q", cfg.RecentSearch.Backend)
	}
	if cfg.RecentSearch.Capacity < 1 {
		return fmt.Errorf("RECENT_SEARCH_CAPACITY must be positive, got %d", cfg.RecentSearch.Capacity)
	}

	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
		return fmt.Errorf("JAEGER_ENDPOINT is required when tracing is enabled")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	if _, err := timeutil.GetLocation(cfg.App.Timezone); err != nil {
		return fmt.Errorf("APP_TIMEZONE: %w", err)
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Location returns the configured calendar zone. Load has already
// validated it.
func (c *Config) Location() *time.Location {
	return timeutil.MustGetLocation(c.App.Timezone)
}
