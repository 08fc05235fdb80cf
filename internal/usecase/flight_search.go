package usecase

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/flight-search/skysearch/internal/domain"
	"github.com/flight-search/skysearch/internal/infrastructure/logger"
	"github.com/flight-search/skysearch/internal/infrastructure/tracing"
)

// Default search values.
const (
	DefaultSearchTimeout  = 15 * time.Second
	DefaultMaxResults     = 50
	DefaultAirportResults = 8
)

// FlightSearchUseCase defines the interface for flight search operations.
type FlightSearchUseCase interface {
	// Search validates the query and fetches offers from the provider.
	// Only validation failures are returned as errors; a provider failure
	// yields an empty result with Metadata.ProviderError set. A successful
	// search is recorded in the client's recent-search log.
	Search(ctx context.Context, clientKey string, query domain.SearchQuery, opts SearchOptions) (*domain.SearchResult, error)

	// FilterAndRank filters offers and sorts the survivors.
	FilterAndRank(offers []domain.FlightOffer, state domain.FilterState, sortBy domain.SortOption) []domain.FlightOffer

	// SearchAirports returns up to 8 airports matching keyword, without excludeCode.
	SearchAirports(ctx context.Context, keyword, excludeCode string) ([]domain.Airport, error)
}

// Config contains configuration options for the search use case.
type Config struct {
	SearchTimeout  time.Duration
	MaxResults     int
	AirportResults int
	Baseline       domain.RankingBaseline
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		SearchTimeout:  DefaultSearchTimeout,
		MaxResults:     DefaultMaxResults,
		AirportResults: DefaultAirportResults,
		Baseline:       domain.BaselineFiltered,
	}
}

// SearchDeps are the collaborators of the search use case.
type SearchDeps struct {
	Provider domain.OfferProvider
	Recent   RecentSearchUseCase
	Logger   *logger.Logger
	Tracer   trace.Tracer
}

type flightSearchUseCase struct {
	provider domain.OfferProvider
	recent   RecentSearchUseCase
	log      *logger.Logger
	tracer   trace.Tracer
	cfg      Config
}

// NewFlightSearchUseCase creates a new FlightSearchUseCase.
// If config is nil, default values are used.
func NewFlightSearchUseCase(deps SearchDeps, config *Config) FlightSearchUseCase {
	cfg := DefaultConfig()
	if config != nil {
		if config.SearchTimeout > 0 {
			cfg.SearchTimeout = config.SearchTimeout
		}
		if config.MaxResults > 0 {
			cfg.MaxResults = config.MaxResults
		}
		if config.AirportResults > 0 {
			cfg.AirportResults = config.AirportResults
		}
		if config.Baseline.IsValid() {
			cfg.Baseline = config.Baseline
		}
	}

	uc := &flightSearchUseCase{
		provider: deps.Provider,
		recent:   deps.Recent,
		log:      deps.Logger,
		tracer:   deps.Tracer,
		cfg:      cfg,
	}
	if uc.log == nil {
		uc.log = logger.Nop()
	}
	if uc.tracer == nil {
		uc.tracer = tracing.NoopTracer()
	}
	return uc
}

// Search implements FlightSearchUseCase.Search.
func (uc *flightSearchUseCase) Search(ctx context.Context, clientKey string, query domain.SearchQuery, opts SearchOptions) (*domain.SearchResult, error) {
	startTime := time.Now()

	query.SetDefaults()
	if err := query.Validate(); err != nil {
		return nil, err
	}

	req := query.ToOfferRequest(uc.cfg.MaxResults)

	ctx, span := uc.tracer.Start(ctx, "search.offers", trace.WithAttributes(
		attribute.String("search.origin", req.Origin),
		attribute.String("search.destination", req.Destination),
		attribute.String("search.departure_date", req.DepartureDate),
		attribute.String("search.return_date", req.ReturnDate),
	))
	defer span.End()

	log := uc.log.WithProvider(uc.provider.Name()).WithClientID(clientKey)

	metadata := domain.SearchMetadata{Provider: uc.provider.Name()}

	offers, err := callProvider(ctx, uc.provider, req, uc.cfg.SearchTimeout)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error().Err(err).
			Str("origin", req.Origin).
			Str("destination", req.Destination).
			Str("departure_date", req.DepartureDate).
			Msg("flight search failed")

		metadata.ProviderError = err.Error()
		metadata.RateLimited = domain.IsRateLimited(err)
		metadata.SearchTimeMs = time.Since(startTime).Milliseconds()
		return domain.NewSearchResult(nil, domain.DefaultFilterState(), BuildFacets(nil), metadata), nil
	}

	defaults := DeriveFilterDefaults(offers)
	facets := BuildFacets(offers)

	shaped := offers
	if opts.shapesResult() {
		state := defaults
		if opts.Filters != nil {
			state = *opts.Filters
		}
		shaped = uc.rank(offers, state, opts.SortBy)
	}

	if uc.recent != nil {
		uc.recent.Record(ctx, clientKey, query)
	}

	metadata.SearchTimeMs = time.Since(startTime).Milliseconds()
	span.SetAttributes(attribute.Int("search.results", len(shaped)))
	log.Info().
		Int("offers", len(offers)).
		Int("returned", len(shaped)).
		Int64("duration_ms", metadata.SearchTimeMs).
		Msg("flight search completed")

	return domain.NewSearchResult(shaped, defaults, facets, metadata), nil
}

// FilterAndRank implements FlightSearchUseCase.FilterAndRank.
func (uc *flightSearchUseCase) FilterAndRank(offers []domain.FlightOffer, state domain.FilterState, sortBy domain.SortOption) []domain.FlightOffer {
	return uc.rank(offers, state, sortBy)
}

func (uc *flightSearchUseCase) rank(offers []domain.FlightOffer, state domain.FilterState, sortBy domain.SortOption) []domain.FlightOffer {
	if sortBy == "" {
		return ApplyFilters(offers, state)
	}
	return FilterAndRank(offers, state, sortBy, uc.cfg.Baseline)
}

// SearchAirports implements FlightSearchUseCase.SearchAirports.
func (uc *flightSearchUseCase) SearchAirports(ctx context.Context, keyword, excludeCode string) ([]domain.Airport, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, domain.NewValidationError("keyword", "keyword is required")
	}

	ctx, span := uc.tracer.Start(ctx, "search.airports", trace.WithAttributes(
		attribute.String("airports.keyword", keyword),
	))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.SearchTimeout)
	defer cancel()

	airports, err := uc.provider.SearchAirports(ctx, keyword)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		uc.log.WithProvider(uc.provider.Name()).Error().Err(err).Str("keyword", keyword).Msg("airport search failed")
		return nil, err
	}

	excludeCode = strings.ToUpper(strings.TrimSpace(excludeCode))
	result := make([]domain.Airport, 0, uc.cfg.AirportResults)
	for _, a := range airports {
		if len(result) == uc.cfg.AirportResults {
			break
		}
		if excludeCode != "" && a.IATACode == excludeCode {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

// Ensure flightSearchUseCase implements FlightSearchUseCase at compile time.
var _ FlightSearchUseCase = (*flightSearchUseCase)(nil)
