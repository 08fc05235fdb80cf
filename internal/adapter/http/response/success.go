// Package response provides standardized HTTP response builders for the flight search API.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flight-search/skysearch/internal/domain"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// AirportsResponse wraps an airport lookup result.
type AirportsResponse struct {
	Airports []domain.Airport `json:"airports"`
}

// OffersResponse wraps a re-filtered offer list.
type OffersResponse struct {
	Offers       []domain.FlightOffer `json:"offers"`
	TotalResults int                  `json:"totalResults"`
}

// RecentSearchesResponse wraps the recent-search log.
type RecentSearchesResponse struct {
	Searches []domain.RecentSearch `json:"searches"`
}

// Health writes a health check response.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status: "ok",
	})
}

// SearchResults writes a 200 OK response with search results.
func SearchResults(c echo.Context, result *domain.SearchResult) error {
	return c.JSON(http.StatusOK, result)
}

// Offers writes a filtered offer list.
func Offers(c echo.Context, offers []domain.FlightOffer) error {
	if offers == nil {
		offers = []domain.FlightOffer{}
	}
	return c.JSON(http.StatusOK, &OffersResponse{Offers: offers, TotalResults: len(offers)})
}

// Airports writes an airport lookup result.
func Airports(c echo.Context, airports []domain.Airport) error {
	if airports == nil {
		airports = []domain.Airport{}
	}
	return c.JSON(http.StatusOK, &AirportsResponse{Airports: airports})
}

// RecentSearches writes the recent-search log.
func RecentSearches(c echo.Context, searches []domain.RecentSearch) error {
	if searches == nil {
		searches = []domain.RecentSearch{}
	}
	return c.JSON(http.StatusOK, &RecentSearchesResponse{Searches: searches})
}
