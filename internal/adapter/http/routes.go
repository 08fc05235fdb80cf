// Package http provides the HTTP handler layer for the flight search API.
package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all flight search API routes.
// It creates a versioned API group and attaches the handler methods.
func RegisterRoutes(e *echo.Echo, h *FlightHandler) {
	RegisterRoutesWithMiddleware(e, h)
}

// RegisterRoutesWithMiddleware registers routes with middleware applied to
// the versioned API group only.
func RegisterRoutesWithMiddleware(e *echo.Echo, h *FlightHandler, middleware ...echo.MiddlewareFunc) {
	// Health check endpoint (no version prefix, no middleware)
	e.GET("/health", h.Health)

	api := e.Group("/api/v1", middleware...)

	flights := api.Group("/flights")
	flights.POST("/search", h.SearchFlights)
	flights.POST("/filter", h.FilterFlights)
	flights.POST("/price-series", h.PriceSeries)
	flights.POST("/price-grid", h.PriceGrid)

	api.GET("/airports/search", h.SearchAirports)

	recent := api.Group("/recent-searches")
	recent.GET("", h.ListRecentSearches)
	recent.DELETE("", h.ClearRecentSearches)
}
