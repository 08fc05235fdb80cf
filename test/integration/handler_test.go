package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/skysearch/internal/adapter/http/response"
	"github.com/flight-search/skysearch/internal/domain"
	"github.com/flight-search/skysearch/test/testutil"
)

const searchPath = "/api/v1/flights/search"

func TestIntegration_Health(t *testing.T) {
	ts, _ := NewAmadeusServer(t)

	resp := ts.Get("/health", "")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"ok"}`, string(resp.Body))
	assert.NotEmpty(t, resp.Headers.Get("X-Request-ID"))
}

func TestIntegration_Search_NormalizesFixture(t *testing.T) {
	ts, fake := NewAmadeusServer(t)

	resp := ts.Post(searchPath, "client-a", QueryBody(DepartureDate, ""))
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))

	result := resp.SearchResult(t)
	assert.Equal(t, []string{"1", "2", "3", "4"}, testutil.OfferIDs(result.Offers), "no sort keeps upstream order")
	assert.Equal(t, 4, result.Metadata.TotalResults)
	assert.Equal(t, "amadeus", result.Metadata.Provider)
	assert.Empty(t, result.Metadata.ProviderError)

	first := result.Offers[0]
	assert.Equal(t, 289.40, first.Price.Amount)
	assert.Equal(t, "289.40", first.Price.GrandTotal)
	require.NotNil(t, first.Baggage)
	assert.Equal(t, 1, first.Baggage.Checked.Quantity)
	assert.False(t, first.Baggage.CarryOn.Estimated)

	weightOnly := result.Offers[2]
	require.NotNil(t, weightOnly.Baggage)
	assert.Equal(t, 1, weightOnly.Baggage.Checked.Quantity)
	assert.True(t, weightOnly.Baggage.CarryOn.Estimated)

	b6 := weightOnly.Itineraries[0].Segments[0]
	assert.Equal(t, "Airbus A321neo", b6.AircraftName)
	assert.Equal(t, domain.Amenities{WiFi: true, Power: true, Estimated: true}, b6.Amenities)

	assert.Equal(t, []string{"AA", "B6", "DL", "UA"}, result.Facets.Airlines)
	assert.Equal(t, []string{"ATL", "ORD"}, result.Facets.ConnectingAirports)
	assert.Equal(t, 199.0, result.Facets.MinPrice)
	assert.Equal(t, 349.00, result.Facets.MaxPrice)
	assert.Equal(t, 380, result.Facets.MinDuration)
	assert.Equal(t, 520, result.Facets.MaxDuration)

	assert.Equal(t, domain.PriceRange{199, 349}, result.Defaults.PriceRange)
	assert.Equal(t, 520, result.Defaults.Duration)
	assert.True(t, result.Defaults.ExcludeConnectingAirports)

	query := fake.LastOfferQuery()
	assert.Equal(t, "JFK", query.Get("originLocationCode"))
	assert.Equal(t, "LAX", query.Get("destinationLocationCode"))
	assert.Equal(t, DepartureDate, query.Get("departureDate"))
	assert.Empty(t, query.Get("returnDate"))
	assert.Equal(t, "USD", query.Get("currencyCode"))
	assert.Equal(t, "50", query.Get("max"))
	assert.Equal(t, 1, fake.TokenCalls())
}

func TestIntegration_Search_Sorting(t *testing.T) {
	tests := []struct {
		sortBy   string
		expected []string
	}{
		{sortBy: "price", expected: []string{"2", "4", "1", "3"}},
		{sortBy: "duration", expected: []string{"3", "1", "2", "4"}},
		{sortBy: "departure", expected: []string{"2", "4", "1", "3"}},
		{sortBy: "best", expected: []string{"2", "1", "4", "3"}},
	}

	ts, _ := NewAmadeusServer(t)
	for _, tt := range tests {
		t.Run(tt.sortBy, func(t *testing.T) {
			resp := ts.Post(searchPath, "client-sort", With(QueryBody(DepartureDate, ""), map[string]interface{}{
				"sortBy": tt.sortBy,
			}))
			require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))

			result := resp.SearchResult(t)
			assert.Equal(t, tt.expected, testutil.OfferIDs(result.Offers))
		})
	}
}

func TestIntegration_Search_Filters(t *testing.T) {
	tests := []struct {
		name     string
		filters  map[string]interface{}
		expected []string
	}{
		{
			name:     "nonstop only",
			filters:  map[string]interface{}{"stops": []int{0}},
			expected: []string{"1", "3"},
		},
		{
			name:     "one stop",
			filters:  map[string]interface{}{"stops": []int{1}},
			expected: []string{"2", "4"},
		},
		{
			name:     "avoid ORD connection",
			filters:  map[string]interface{}{"connectingAirports": []string{"ORD"}},
			expected: []string{"1", "2", "3"},
		},
		{
			name:     "require ATL connection keeps nonstops",
			filters:  map[string]interface{}{"connectingAirports": []string{"ATL"}, "excludeConnectingAirports": false},
			expected: []string{"1", "2", "3"},
		},
		{
			name:     "airline",
			filters:  map[string]interface{}{"airlines": []string{"UA", "B6"}},
			expected: []string{"3", "4"},
		},
		{
			name:     "price ceiling",
			filters:  map[string]interface{}{"priceRange": []float64{0, 250}},
			expected: []string{"2", "4"},
		},
		{
			name:     "checked bag",
			filters:  map[string]interface{}{"bags": map[string]interface{}{"checked": 1}},
			expected: []string{"1", "3", "4"},
		},
		{
			name:     "morning departures",
			filters:  map[string]interface{}{"departureTimeRange": []float64{7, 12}},
			expected: []string{"1", "4"},
		},
		{
			name:     "duration ceiling",
			filters:  map[string]interface{}{"duration": 400},
			expected: []string{"1", "3"},
		},
		{
			name:     "no filters passes everything",
			filters:  map[string]interface{}{},
			expected: []string{"1", "2", "3", "4"},
		},
	}

	ts, _ := NewAmadeusServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.Post(searchPath, "client-filter", With(QueryBody(DepartureDate, ""), map[string]interface{}{
				"filters": tt.filters,
			}))
			require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))

			result := resp.SearchResult(t)
			assert.Equal(t, tt.expected, testutil.OfferIDs(result.Offers))
			assert.Len(t, result.Facets.Airlines, 4, "facets come from the full set")
		})
	}
}

func TestIntegration_FilterEndpoint_ReusesSearchOffers(t *testing.T) {
	ts, fake := NewAmadeusServer(t)

	search := ts.Post(searchPath, "client-b", QueryBody(DepartureDate, ""))
	require.Equal(t, http.StatusOK, search.Code)
	offers := search.SearchResult(t).Offers
	calls := fake.OfferCalls()

	resp := ts.Post("/api/v1/flights/filter", "client-b", map[string]interface{}{
		"offers":  offers,
		"filters": map[string]interface{}{"stops": []int{1}},
		"sortBy":  "price",
	})
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))

	var body response.OffersResponse
	resp.Decode(t, &body)
	assert.Equal(t, []string{"2", "4"}, testutil.OfferIDs(body.Offers))
	assert.Equal(t, 2, body.TotalResults)
	assert.Equal(t, calls, fake.OfferCalls(), "filtering never calls the provider")

	resp = ts.Post("/api/v1/flights/filter", "client-b", map[string]interface{}{"offers": offers})
	require.Equal(t, http.StatusOK, resp.Code)
	resp.Decode(t, &body)
	assert.Len(t, body.Offers, 4, "derived defaults are the identity")
}

func TestIntegration_Search_RoundTripSendsReturnDate(t *testing.T) {
	ts, fake := NewAmadeusServer(t)

	resp := ts.Post(searchPath, "client-c", With(QueryBody(DepartureDate, ReturnDate), map[string]interface{}{
		"cabinClass": "business",
		"passengers": map[string]int{"adults": 2, "children": 1},
	}))
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))

	query := fake.LastOfferQuery()
	assert.Equal(t, ReturnDate, query.Get("returnDate"))
	assert.Equal(t, "BUSINESS", query.Get("travelClass"))
	assert.Equal(t, "2", query.Get("adults"))
	assert.Equal(t, "1", query.Get("children"))
}

func TestIntegration_Search_UpstreamFailureDegrades(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		rateLimited bool
	}{
		{name: "server error", status: http.StatusInternalServerError},
		{name: "rate limited", status: http.StatusTooManyRequests, rateLimited: true},
		{name: "bad request", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, fake := NewAmadeusServer(t)
			fake.FailOffers(tt.status)

			resp := ts.Post(searchPath, "client-d", QueryBody(DepartureDate, ""))
			require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))

			result := resp.SearchResult(t)
			assert.Empty(t, result.Offers)
			assert.NotNil(t, result.Offers)
			assert.Equal(t, 0, result.Metadata.TotalResults)
			assert.NotEmpty(t, result.Metadata.ProviderError)
			assert.Equal(t, tt.rateLimited, result.Metadata.RateLimited)
			assert.Equal(t, domain.DefaultFilterState(), result.Defaults)

			recent := ts.Get("/api/v1/recent-searches", "client-d")
			assert.JSONEq(t, `{"searches":[]}`, string(recent.Body), "failed searches are not recorded")
		})
	}
}

func TestIntegration_Search_Validation(t *testing.T) {
	tests := []struct {
		name  string
		body  map[string]interface{}
		field string
	}{
		{
			name:  "missing origin",
			body:  With(QueryBody(DepartureDate, ""), map[string]interface{}{"origin": map[string]string{}}),
			field: "origin",
		},
		{
			name:  "same origin and destination",
			body:  With(QueryBody(DepartureDate, ""), map[string]interface{}{"destination": map[string]string{"iataCode": "JFK"}}),
			field: "destination",
		},
		{
			name:  "return before departure",
			body:  QueryBody(DepartureDate, "2026-11-19"),
			field: "returnDate",
		},
		{
			name:  "bad date",
			body:  QueryBody("20-11-2026", ""),
			field: "departureDate",
		},
		{
			name:  "no adults",
			body:  With(QueryBody(DepartureDate, ""), map[string]interface{}{"passengers": map[string]int{"adults": 0}}),
			field: "passengers.adults",
		},
		{
			name:  "unknown sort",
			body:  With(QueryBody(DepartureDate, ""), map[string]interface{}{"sortBy": "cheapest"}),
			field: "sortBy",
		},
	}

	ts, fake := NewAmadeusServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.Post(searchPath, "client-e", tt.body)
			require.Equal(t, http.StatusBadRequest, resp.Code, string(resp.Body))

			detail := resp.Error(t)
			assert.Equal(t, response.CodeValidationError, detail.Code)
			assert.Contains(t, detail.Details, tt.field)
		})
	}
	assert.Zero(t, fake.OfferCalls())
}

func TestIntegration_Search_MalformedBody(t *testing.T) {
	ts, _ := NewAmadeusServer(t)

	resp := ts.Do(Request{Method: http.MethodPost, Path: searchPath, Body: []int{1, 2}})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, response.CodeInvalidRequest, resp.Error(t).Code)
}

func TestIntegration_RecentSearches(t *testing.T) {
	ts, _ := NewAmadeusServer(t)

	for _, dep := range []string{"2026-11-20", "2026-11-21", "2026-11-20"} {
		resp := ts.Post(searchPath, "client-f", QueryBody(dep, ""))
		require.Equal(t, http.StatusOK, resp.Code)
	}
	require.Equal(t, http.StatusOK, ts.Post(searchPath, "client-g", QueryBody("2026-11-22", "")).Code)

	var list response.RecentSearchesResponse
	ts.Get("/api/v1/recent-searches", "client-f").Decode(t, &list)
	require.Len(t, list.Searches, 2, "repeated queries are deduplicated")
	assert.Equal(t, "2026-11-20", list.Searches[0].DepartureDate, "newest first")
	assert.Equal(t, "2026-11-21", list.Searches[1].DepartureDate)
	assert.Equal(t, "JFK", list.Searches[0].Origin.IATACode)
	assert.Equal(t, "New York", list.Searches[0].Origin.CityName)
	assert.Equal(t, domain.TripOneWay, list.Searches[0].TripType)

	resp := ts.Do(Request{Method: http.MethodDelete, Path: "/api/v1/recent-searches", ClientID: "client-f"})
	assert.Equal(t, http.StatusNoContent, resp.Code)

	assert.JSONEq(t, `{"searches":[]}`, string(ts.Get("/api/v1/recent-searches", "client-f").Body))

	ts.Get("/api/v1/recent-searches", "client-g").Decode(t, &list)
	assert.Len(t, list.Searches, 1, "other clients are untouched")
}

func TestIntegration_RecentSearches_Capacity(t *testing.T) {
	ts, _ := NewAmadeusServer(t)

	for i := 0; i < 7; i++ {
		dep := testutil.AddDays(t, DepartureDate, i)
		require.Equal(t, http.StatusOK, ts.Post(searchPath, "client-h", QueryBody(dep, "")).Code)
	}

	var list response.RecentSearchesResponse
	ts.Get("/api/v1/recent-searches", "client-h").Decode(t, &list)
	require.Len(t, list.Searches, 5)
	assert.Equal(t, testutil.AddDays(t, DepartureDate, 6), list.Searches[0].DepartureDate)
	assert.Equal(t, testutil.AddDays(t, DepartureDate, 2), list.Searches[4].DepartureDate)
}

func TestIntegration_SearchAirports(t *testing.T) {
	ts, _ := NewAmadeusServer(t)

	resp := ts.Get("/api/v1/airports/search?keyword=new&exclude=jfk", "")
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))

	var body response.AirportsResponse
	resp.Decode(t, &body)
	codes := make([]string, len(body.Airports))
	for i, a := range body.Airports {
		codes[i] = a.IATACode
	}
	assert.Equal(t, []string{"LGA", "EWR"}, codes)
	assert.Equal(t, "NEWARK", body.Airports[1].CityName)
	assert.Equal(t, "US", body.Airports[1].CountryCode)
}

func TestIntegration_SearchAirports_MissingKeyword(t *testing.T) {
	ts, _ := NewAmadeusServer(t)

	resp := ts.Get("/api/v1/airports/search?keyword=%20", "")

	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, response.CodeValidationError, resp.Error(t).Code)
}

func TestIntegration_SearchAirports_UpstreamError(t *testing.T) {
	ts, fake := NewAmadeusServer(t)
	fake.Server.Close()

	resp := ts.Get("/api/v1/airports/search?keyword=new", "")

	assert.Equal(t, http.StatusBadGateway, resp.Code)
	assert.Equal(t, response.CodeProviderError, resp.Error(t).Code)
}

func TestIntegration_PriceSeries_ThroughAmadeus(t *testing.T) {
	ts, fake := NewAmadeusServer(t)

	resp := ts.Post("/api/v1/flights/price-series", "client-i", QueryBody(DepartureDate, ReturnDate))
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))

	var series domain.PriceSeries
	resp.Decode(t, &series)
	require.Len(t, series.Points, 11)
	assert.Equal(t, "2026-11-15", series.Points[0].Date)
	assert.Equal(t, "2026-11-22", series.Points[0].ReturnDate)
	assert.True(t, series.Points[5].Selected)
	assert.Equal(t, 7, series.TripDurationDays)
	assert.Equal(t, 11, series.RequestsIssued)
	assert.Equal(t, 11, fake.OfferCalls())
	assert.Equal(t, 199.10, series.LowestPrice)
	assert.Equal(t, 11, series.Stats.Available)

	query := fake.LastOfferQuery()
	assert.Equal(t, "1", query.Get("max"))
	assert.Equal(t, "2026-11-25", query.Get("departureDate"))
	assert.Equal(t, "2026-12-02", query.Get("returnDate"))
}

func TestIntegration_PriceSeries_OverlaysActiveFilters(t *testing.T) {
	ts, _ := NewAmadeusServer(t)

	search := ts.Post(searchPath, "client-o", QueryBody(DepartureDate, "")).SearchResult(t)
	require.Len(t, search.Offers, 4)

	resp := ts.Post("/api/v1/flights/price-series", "client-o", With(QueryBody(DepartureDate, ""), map[string]interface{}{
		"offers":  search.Offers,
		"filters": map[string]interface{}{"stops": []int{0}},
	}))
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))

	var series domain.PriceSeries
	resp.Decode(t, &series)
	require.Len(t, series.Points, 11)
	assert.True(t, series.Filtered)

	selected := series.Points[5]
	assert.Equal(t, DepartureDate, selected.Date)
	assert.False(t, selected.FilteredOut)
	assert.Equal(t, 289.40, selected.Price, "cheapest nonstop")
	assert.Equal(t, 199.10, selected.OriginalPrice)
	assert.True(t, selected.Lowest)

	for i, p := range series.Points {
		if i == 5 {
			continue
		}
		assert.True(t, p.FilteredOut, p.Date)
		assert.Equal(t, 199.10, p.OriginalPrice, p.Date)
	}
	assert.Equal(t, domain.SeriesStats{Min: 289.40, Max: 289.40, Avg: 289.40, Available: 1}, series.Stats)
}

func TestIntegration_PriceSeries_InvalidOverlayFilters(t *testing.T) {
	ts, fake := NewAmadeusServer(t)

	resp := ts.Post("/api/v1/flights/price-series", "client-v", With(QueryBody(DepartureDate, ""), map[string]interface{}{
		"filters": map[string]interface{}{"priceRange": []float64{500, 100}},
	}))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, 0, fake.OfferCalls())
}

func TestIntegration_PriceSeries_RateLimited(t *testing.T) {
	ts, fake := NewAmadeusServer(t)
	fake.FailOffers(http.StatusTooManyRequests)

	resp := ts.Post("/api/v1/flights/price-series", "client-j", QueryBody(DepartureDate, ""))
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))

	var series domain.PriceSeries
	resp.Decode(t, &series)
	assert.True(t, series.RateLimited)
	assert.Equal(t, 1, series.RequestsIssued, "the first 429 stops the build")
	assert.Equal(t, 1, fake.OfferCalls())
	assert.Len(t, series.Points, 11)
	for _, p := range series.Points {
		assert.False(t, p.Available)
	}
}

func TestIntegration_PriceGrid_ThroughAmadeus(t *testing.T) {
	ts, fake := NewAmadeusServer(t)

	resp := ts.Post("/api/v1/flights/price-grid", "client-k", QueryBody(DepartureDate, ReturnDate))
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))

	var grid domain.PriceGrid
	resp.Decode(t, &grid)
	require.Len(t, grid.DepartureDates, 7)
	require.Len(t, grid.ReturnDates, 7)
	assert.Equal(t, "2026-11-17", grid.DepartureDates[0])
	assert.Equal(t, "2026-11-18", grid.ReturnDates[0])
	assert.Equal(t, 14, grid.TotalColumns)
	assert.Equal(t, 28, grid.RequestsIssued, "the cell budget caps upstream calls")
	assert.Equal(t, 28, fake.OfferCalls())

	cell, ok := grid.Cell("2026-11-23", "2026-11-18")
	require.True(t, ok)
	assert.False(t, cell.Available, "return before departure is never priced")

	cell, ok = grid.Cell("2026-11-17", "2026-11-18")
	require.True(t, ok)
	assert.True(t, cell.Available)
	assert.Equal(t, 199.10, cell.Price)
	assert.Equal(t, 1, cell.TripDurationDays)
}

func TestIntegration_PriceGrid_RequiresValidQuery(t *testing.T) {
	ts, fake := NewAmadeusServer(t)

	resp := ts.Post("/api/v1/flights/price-grid", "client-l", QueryBody("", ReturnDate))

	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Error(t).Details, "departureDate")
	assert.Zero(t, fake.OfferCalls())
}
