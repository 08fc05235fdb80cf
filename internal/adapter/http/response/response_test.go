package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/skysearch/internal/domain"
)

func setupEcho() (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return e, c, rec
}

func TestHealth(t *testing.T) {
	_, c, rec := setupEcho()

	err := Health(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var result HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "ok", result.Status)
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name            string
		write           func(c echo.Context) error
		expectedStatus  int
		expectedCode    string
		expectedMessage string
	}{
		{
			name:            "bad request",
			write:           func(c echo.Context) error { return BadRequest(c, "Invalid input") },
			expectedStatus:  http.StatusBadRequest,
			expectedCode:    CodeInvalidRequest,
			expectedMessage: "Invalid input",
		},
		{
			name:            "invalid request body",
			write:           InvalidRequestBody,
			expectedStatus:  http.StatusBadRequest,
			expectedCode:    CodeInvalidRequest,
			expectedMessage: MsgInvalidRequestBody,
		},
		{
			name:            "validation message",
			write:           func(c echo.Context) error { return ValidationErrorWithMessage(c, "keyword is required") },
			expectedStatus:  http.StatusBadRequest,
			expectedCode:    CodeValidationError,
			expectedMessage: "keyword is required",
		},
		{
			name:            "conflict",
			write:           Conflict,
			expectedStatus:  http.StatusConflict,
			expectedCode:    CodeSuperseded,
			expectedMessage: MsgSuperseded,
		},
		{
			name:            "rate limited",
			write:           RateLimited,
			expectedStatus:  http.StatusTooManyRequests,
			expectedCode:    CodeRateLimited,
			expectedMessage: MsgRateLimited,
		},
		{
			name:            "bad gateway with upstream message",
			write:           func(c echo.Context) error { return BadGateway(c, "INVALID DATE") },
			expectedStatus:  http.StatusBadGateway,
			expectedCode:    CodeProviderError,
			expectedMessage: "INVALID DATE",
		},
		{
			name:            "bad gateway without message",
			write:           func(c echo.Context) error { return BadGateway(c, "") },
			expectedStatus:  http.StatusBadGateway,
			expectedCode:    CodeProviderError,
			expectedMessage: MsgProviderError,
		},
		{
			name:            "gateway timeout",
			write:           GatewayTimeout,
			expectedStatus:  http.StatusGatewayTimeout,
			expectedCode:    CodeTimeout,
			expectedMessage: MsgTimeout,
		},
		{
			name:            "request cancelled",
			write:           RequestCancelled,
			expectedStatus:  http.StatusGatewayTimeout,
			expectedCode:    CodeTimeout,
			expectedMessage: MsgRequestCancelled,
		},
		{
			name:            "internal error",
			write:           InternalServerError,
			expectedStatus:  http.StatusInternalServerError,
			expectedCode:    CodeInternalError,
			expectedMessage: MsgInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c, rec := setupEcho()

			require.NoError(t, tt.write(c))
			assert.Equal(t, tt.expectedStatus, rec.Code)

			var result ErrorDetail
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
			assert.Equal(t, tt.expectedCode, result.Code)
			assert.Equal(t, tt.expectedMessage, result.Message)
			assert.Empty(t, result.Details)
		})
	}
}

func TestValidationError(t *testing.T) {
	_, c, rec := setupEcho()

	details := map[string]string{
		"origin":            "origin is required",
		"passengers.adults": "adults must be at least 1",
	}
	err := ValidationError(c, details)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var result ErrorDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, CodeValidationError, result.Code)
	assert.Equal(t, MsgValidationFailed, result.Message)
	assert.Equal(t, details, result.Details)
}

func TestSearchResults(t *testing.T) {
	_, c, rec := setupEcho()

	result := domain.NewSearchResult(
		[]domain.FlightOffer{{ID: "1", Price: domain.Price{Currency: "USD", Amount: 99.5}}},
		domain.DefaultFilterState(),
		domain.Facets{Airlines: []string{"AA"}},
		domain.SearchMetadata{Provider: "amadeus", SearchTimeMs: 42},
	)

	require.NoError(t, SearchResults(c, result))
	assert.Equal(t, http.StatusOK, rec.Code)

	var decoded domain.SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	require.Len(t, decoded.Offers, 1)
	assert.Equal(t, 1, decoded.Metadata.TotalResults)
	assert.Equal(t, []string{"AA"}, decoded.Facets.Airlines)
}

func TestCollections_NeverNull(t *testing.T) {
	tests := []struct {
		name     string
		write    func(c echo.Context) error
		expected string
	}{
		{
			name:     "offers",
			write:    func(c echo.Context) error { return Offers(c, nil) },
			expected: `{"offers":[],"totalResults":0}`,
		},
		{
			name:     "airports",
			write:    func(c echo.Context) error { return Airports(c, nil) },
			expected: `{"airports":[]}`,
		},
		{
			name:     "recent searches",
			write:    func(c echo.Context) error { return RecentSearches(c, nil) },
			expected: `{"searches":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c, rec := setupEcho()

			require.NoError(t, tt.write(c))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.expected, rec.Body.String())
		})
	}
}

func TestAirports(t *testing.T) {
	_, c, rec := setupEcho()

	require.NoError(t, Airports(c, []domain.Airport{{IATACode: "CDG", Name: "Charles de Gaulle", CityName: "Paris", CountryCode: "FR"}}))

	var body AirportsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Airports, 1)
	assert.Equal(t, "Paris", body.Airports[0].CityName)
}

func TestOK(t *testing.T) {
	_, c, rec := setupEcho()

	require.NoError(t, OK(c, map[string]int{"count": 3}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":3}`, rec.Body.String())
}

func TestNoContent(t *testing.T) {
	_, c, rec := setupEcho()

	require.NoError(t, NoContent(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
