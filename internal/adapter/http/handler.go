// Package http provides the HTTP handler layer for the flight search API.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/flight-search/skysearch/internal/adapter/http/response"
	"github.com/flight-search/skysearch/internal/domain"
	"github.com/flight-search/skysearch/internal/infrastructure/logger"
	"github.com/flight-search/skysearch/internal/usecase"
)

// HeaderClientID identifies the browser session owning the recent-search
// log and the calendar builds. Requests without it fall back to the client IP.
const HeaderClientID = "X-Client-ID"

// HandlerDeps are the collaborators of FlightHandler.
type HandlerDeps struct {
	Search   usecase.FlightSearchUseCase
	Calendar usecase.CalendarUseCase
	Recent   usecase.RecentSearchUseCase

	// Location is the zone request dates are interpreted in
	Location *time.Location

	// Currency is used when a request names none
	Currency string

	Logger *logger.Logger
}

// FlightHandler handles HTTP requests for flight-related endpoints.
type FlightHandler struct {
	search   usecase.FlightSearchUseCase
	calendar usecase.CalendarUseCase
	recent   usecase.RecentSearchUseCase
	loc      *time.Location
	currency string
	log      *logger.Logger
}

// NewFlightHandler creates a new FlightHandler with the given use cases.
func NewFlightHandler(deps HandlerDeps) *FlightHandler {
	h := &FlightHandler{
		search:   deps.Search,
		calendar: deps.Calendar,
		recent:   deps.Recent,
		loc:      deps.Location,
		currency: deps.Currency,
		log:      deps.Logger,
	}
	if h.loc == nil {
		h.loc = time.Local
	}
	if h.log == nil {
		h.log = logger.Nop()
	}
	return h
}

// Health handles GET /health
// Simple health check endpoint.
//
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Router /health [get]
func (h *FlightHandler) Health(c echo.Context) error {
	return response.Health(c)
}

// SearchFlights handles POST /api/v1/flights/search
//
// @Summary Search for flights
// @Description Fetch offers for a route and date, with optional filters and sort
// @Tags flights
// @Accept json
// @Produce json
// @Param X-Client-ID header string false "Client session identifier"
// @Param request body SearchFlightsRequest true "Search query"
// @Success 200 {object} SwaggerSearchResult
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 504 {object} response.ErrorDetail "Gateway timeout"
// @Router /api/v1/flights/search [post]
func (h *FlightHandler) SearchFlights(c echo.Context) error {
	var req SearchFlightsRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	query := ToDomainQuery(&req.QueryDTO, h.loc, h.currency)
	result, err := h.search.Search(c.Request().Context(), clientKey(c), query, ToSearchOptions(&req))
	if err != nil {
		return h.handleError(c, err)
	}

	return response.SearchResults(c, result)
}

// FilterFlights handles POST /api/v1/flights/filter
//
// @Summary Filter and sort offers
// @Description Re-apply filters and sort to offers from an earlier search without calling the provider
// @Tags flights
// @Accept json
// @Produce json
// @Param request body FilterFlightsRequest true "Offers with filters"
// @Success 200 {object} response.OffersResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Router /api/v1/flights/filter [post]
func (h *FlightHandler) FilterFlights(c echo.Context) error {
	var req FilterFlightsRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	var state domain.FilterState
	if filters := ToDomainFilters(req.Filters); filters != nil {
		state = *filters
	} else {
		state = usecase.DeriveFilterDefaults(req.Offers)
	}

	return response.Offers(c, h.search.FilterAndRank(req.Offers, state, ToDomainSortOption(req.SortBy)))
}

// PriceSeries handles POST /api/v1/flights/price-series
//
// @Summary Cheapest fare per departure date
// @Description Build the price series around the selected departure date. With offers and filters, each point shows the cheapest offer still passing the filters.
// @Tags calendar
// @Accept json
// @Produce json
// @Param X-Client-ID header string false "Client session identifier"
// @Param request body PriceSeriesRequest true "Series query"
// @Success 200 {object} domain.PriceSeries
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 409 {object} response.ErrorDetail "Superseded by a newer request"
// @Failure 502 {object} response.ErrorDetail "Provider error"
// @Router /api/v1/flights/price-series [post]
func (h *FlightHandler) PriceSeries(c echo.Context) error {
	var req PriceSeriesRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	query := ToDomainQuery(&req.QueryDTO, h.loc, h.currency)
	series, err := h.calendar.BuildPriceSeries(c.Request().Context(), clientKey(c), query, usecase.SeriesOptions{
		TripDurationDays: req.TripDurationDays,
	})
	if err != nil {
		return h.handleError(c, err)
	}

	if filters := ToDomainFilters(req.Filters); filters != nil && len(req.Offers) > 0 {
		filtered := h.search.FilterAndRank(req.Offers, *filters, "")
		series = usecase.OverlayFiltered(series, req.Offers, filtered)
	}

	return response.OK(c, series)
}

// PriceGrid handles POST /api/v1/flights/price-grid
//
// @Summary Cheapest fare per departure and return date
// @Description Build the visible window of the round-trip price grid
// @Tags calendar
// @Accept json
// @Produce json
// @Param X-Client-ID header string false "Client session identifier"
// @Param request body PriceGridRequest true "Grid query"
// @Success 200 {object} domain.PriceGrid
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 409 {object} response.ErrorDetail "Superseded by a newer request"
// @Failure 502 {object} response.ErrorDetail "Provider error"
// @Router /api/v1/flights/price-grid [post]
func (h *FlightHandler) PriceGrid(c echo.Context) error {
	var req PriceGridRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	query := ToDomainQuery(&req.QueryDTO, h.loc, h.currency)
	grid, err := h.calendar.BuildPriceGrid(c.Request().Context(), clientKey(c), query, usecase.GridOptions{
		ColOffset: req.ColOffset,
		RowOffset: req.RowOffset,
	})
	if err != nil {
		return h.handleError(c, err)
	}

	return response.OK(c, grid)
}

// SearchAirports handles GET /api/v1/airports/search
//
// @Summary Airport lookup
// @Tags airports
// @Produce json
// @Param keyword query string true "Name, city or code fragment"
// @Param exclude query string false "IATA code to leave out"
// @Success 200 {object} response.AirportsResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 502 {object} response.ErrorDetail "Provider error"
// @Router /api/v1/airports/search [get]
func (h *FlightHandler) SearchAirports(c echo.Context) error {
	airports, err := h.search.SearchAirports(c.Request().Context(), c.QueryParam("keyword"), c.QueryParam("exclude"))
	if err != nil {
		return h.handleError(c, err)
	}
	return response.Airports(c, airports)
}

// ListRecentSearches handles GET /api/v1/recent-searches
//
// @Summary Recent searches of the client
// @Tags recent-searches
// @Produce json
// @Param X-Client-ID header string false "Client session identifier"
// @Success 200 {object} response.RecentSearchesResponse
// @Router /api/v1/recent-searches [get]
func (h *FlightHandler) ListRecentSearches(c echo.Context) error {
	return response.RecentSearches(c, h.recent.List(c.Request().Context(), clientKey(c)))
}

// ClearRecentSearches handles DELETE /api/v1/recent-searches
//
// @Summary Clear the recent searches of the client
// @Tags recent-searches
// @Param X-Client-ID header string false "Client session identifier"
// @Success 204
// @Router /api/v1/recent-searches [delete]
func (h *FlightHandler) ClearRecentSearches(c echo.Context) error {
	h.recent.Clear(c.Request().Context(), clientKey(c))
	return response.NoContent(c)
}

func clientKey(c echo.Context) string {
	if id := c.Request().Header.Get(HeaderClientID); id != "" {
		return id
	}
	return c.RealIP()
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *FlightHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	var fieldErr *domain.ValidationError
	if errors.As(err, &fieldErr) {
		return response.ValidationError(c, map[string]string{fieldErr.Field: fieldErr.Message})
	}

	// Fallback for non-structured validation errors
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to appropriate HTTP responses.
func (h *FlightHandler) handleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return h.handleValidationError(c, err)
	case domain.IsBuildSuperseded(err):
		return response.Conflict(c)
	case domain.IsRateLimited(err):
		return response.RateLimited(c)
	case domain.IsProviderTimeout(err), errors.Is(err, context.DeadlineExceeded):
		return response.GatewayTimeout(c)
	case errors.Is(err, context.Canceled):
		return response.RequestCancelled(c)
	}

	if pe, ok := domain.AsProviderError(err); ok {
		return response.BadGateway(c, pe.Message)
	}

	logger.FromContext(c.Request().Context(), h.log).Error().Err(err).Msg("unhandled request error")
	return response.InternalServerError(c)
}
