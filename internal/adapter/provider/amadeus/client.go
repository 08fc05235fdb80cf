// Package amadeus implements domain.OfferProvider against the Amadeus
// Self-Service flight offers and airport reference APIs.
package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/flight-search/skysearch/internal/domain"
	"github.com/flight-search/skysearch/internal/infrastructure/logger"
	"github.com/flight-search/skysearch/internal/infrastructure/retry"
	"github.com/flight-search/skysearch/internal/infrastructure/timeutil"
	"github.com/flight-search/skysearch/internal/infrastructure/tracing"
)

const (
	// ProviderName is the unique identifier for this provider.
	ProviderName = "amadeus"

	// DefaultBaseURL is the Amadeus test environment.
	DefaultBaseURL = "https://test.api.amadeus.com"

	// DefaultTimeout bounds a single HTTP round trip.
	DefaultTimeout = 10 * time.Second

	// DefaultCurrency is sent when the request carries none.
	DefaultCurrency = "USD"

	// MaxOffers is the upper bound the API accepts for "max".
	MaxOffers = 250

	offersPath    = "/v2/shopping/flight-offers"
	locationsPath = "/v1/reference-data/locations"
	acceptHeader  = "application/vnd.amadeus+json"
)

// Config holds the client configuration.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string

	// Timeout is used when HTTPClient is nil.
	Timeout time.Duration

	// HTTPClient is optional.
	HTTPClient *http.Client

	Clock      timeutil.Clock
	TokenRetry *retry.Config
	Logger     *logger.Logger
	Tracer     trace.Tracer
}

// Client is the Amadeus provider.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     *TokenSource
	log        *logger.Logger
	tracer     trace.Tracer
}

// NewClient creates a Client. The token source shares the HTTP client.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithProvider(ProviderName)

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = tracing.NoopTracer()
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		tokens: NewTokenSource(TokenConfig{
			BaseURL:      baseURL,
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			HTTPClient:   httpClient,
			Clock:        cfg.Clock,
			Retry:        cfg.TokenRetry,
			Logger:       log,
		}),
		log:    log,
		tracer: tracer,
	}
}

// Name returns the provider identifier.
func (c *Client) Name() string {
	return ProviderName
}

// SearchOffers fetches and normalizes the offers for one route and date.
func (c *Client) SearchOffers(ctx context.Context, req domain.OfferRequest) ([]domain.FlightOffer, error) {
	ctx, span := c.tracer.Start(ctx, "amadeus.search_offers", trace.WithAttributes(
		attribute.String("flight.origin", req.Origin),
		attribute.String("flight.destination", req.Destination),
		attribute.String("flight.departure_date", req.DepartureDate),
		attribute.String("flight.return_date", req.ReturnDate),
	))
	defer span.End()

	var body offersResponse
	if err := c.get(ctx, offersPath, offerParams(req), &body); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var carriers map[string]string
	if body.Dictionaries != nil {
		carriers = body.Dictionaries.Carriers
	}

	offers := make([]domain.FlightOffer, 0, len(body.Data))
	for _, raw := range body.Data {
		offer, faults := Normalize(raw, carriers)
		for _, f := range faults {
			c.log.Warn().Err(f).Str("offer_id", raw.ID).Msg("data quality fault")
		}
		offers = append(offers, offer)
	}

	span.SetAttributes(attribute.Int("flight.offers", len(offers)))
	c.log.Debug().
		Str("origin", req.Origin).
		Str("destination", req.Destination).
		Str("departure_date", req.DepartureDate).
		Int("offers", len(offers)).
		Msg("flight offers fetched")

	return offers, nil
}

// SearchAirports looks up airports by keyword.
func (c *Client) SearchAirports(ctx context.Context, keyword string) ([]domain.Airport, error) {
	ctx, span := c.tracer.Start(ctx, "amadeus.search_airports", trace.WithAttributes(
		attribute.String("airport.keyword", keyword),
	))
	defer span.End()

	params := url.Values{}
	params.Set("subType", "AIRPORT")
	params.Set("keyword", keyword)

	var body locationsResponse
	if err := c.get(ctx, locationsPath, params, &body); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	airports := make([]domain.Airport, 0, len(body.Data))
	for _, loc := range body.Data {
		airports = append(airports, NormalizeAirport(loc))
	}
	return airports, nil
}

// offerParams maps the request onto the query string.
// Optional parameters are only sent when set.
func offerParams(req domain.OfferRequest) url.Values {
	currency := req.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	params := url.Values{}
	params.Set("originLocationCode", req.Origin)
	params.Set("destinationLocationCode", req.Destination)
	params.Set("departureDate", req.DepartureDate)
	params.Set("adults", strconv.Itoa(max(req.Adults, 1)))
	params.Set("currencyCode", currency)

	if req.MaxResults > 0 {
		params.Set("max", strconv.Itoa(min(req.MaxResults, MaxOffers)))
	}
	if req.ReturnDate != "" {
		params.Set("returnDate", req.ReturnDate)
	}
	if req.Children > 0 {
		params.Set("children", strconv.Itoa(req.Children))
	}
	if req.Infants > 0 {
		params.Set("infants", strconv.Itoa(req.Infants))
	}
	if req.CabinClass != "" {
		params.Set("travelClass", string(req.CabinClass))
	}
	return params
}

// get performs an authenticated GET and decodes the JSON body into out.
// A 401 drops the cached token and is retried once with a fresh one.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	for attempt := 0; ; attempt++ {
		err := c.doGet(ctx, path, params, out)

		var pe *domain.ProviderError
		if attempt == 0 && errors.As(err, &pe) && pe.Status == http.StatusUnauthorized {
			c.log.Info().Msg("access token rejected, refreshing")
			c.tokens.Invalidate()
			continue
		}
		return err
	}
}

func (c *Client) doGet(ctx context.Context, path string, params url.Values, out interface{}) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", acceptHeader)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return domain.NewProviderTimeoutError(ProviderName)
		}
		return domain.NewProviderTransportError(ProviderName, err)
	}
	defer resp.Body.Close()

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewProviderTransportError(ProviderName, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// parseError builds a ProviderError from a non-2xx response, preferring
// the API's own error detail over the status text.
func parseError(resp *http.Response) *domain.ProviderError {
	message := http.StatusText(resp.StatusCode)

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body errorResponse
	if json.Unmarshal(raw, &body) == nil {
		switch {
		case len(body.Errors) > 0 && body.Errors[0].Detail != "":
			message = body.Errors[0].Detail
		case len(body.Errors) > 0 && body.Errors[0].Title != "":
			message = body.Errors[0].Title
		case body.ErrorDescription != "":
			message = body.ErrorDescription
		case body.Error != "":
			message = body.Error
		}
	}

	return domain.NewProviderError(ProviderName, resp.StatusCode, message)
}

var _ domain.OfferProvider = (*Client)(nil)
