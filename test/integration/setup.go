// Package integration provides helpers and integration tests for the flight search system.
// Integration tests verify that components work together correctly: the echo
// handlers and middleware, the use cases, the recent-search store and the
// Amadeus client talking to a fake upstream.
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	httpAdapter "github.com/flight-search/skysearch/internal/adapter/http"
	"github.com/flight-search/skysearch/internal/adapter/http/middleware"
	"github.com/flight-search/skysearch/internal/adapter/http/response"
	"github.com/flight-search/skysearch/internal/adapter/provider/amadeus"
	"github.com/flight-search/skysearch/internal/adapter/storage/recentsearch"
	"github.com/flight-search/skysearch/internal/domain"
	"github.com/flight-search/skysearch/internal/infrastructure/logger"
	"github.com/flight-search/skysearch/internal/infrastructure/retry"
	"github.com/flight-search/skysearch/internal/infrastructure/timeutil"
	"github.com/flight-search/skysearch/internal/usecase"
	"github.com/flight-search/skysearch/test/testutil"
)

// Fixture dates. The fixture offers fly JFK-LAX on DepartureDate.
const (
	Today         = "2026-11-10"
	DepartureDate = "2026-11-20"
	ReturnDate    = "2026-11-27"

	fakeToken = "integration-token"
)

var fastRetry = &retry.Config{
	MaxAttempts:  2,
	InitialDelay: time.Millisecond,
	MaxDelay:     2 * time.Millisecond,
	Multiplier:   2,
}

// FakeAmadeus serves the token, flight-offers and locations endpoints.
type FakeAmadeus struct {
	Server *httptest.Server

	offers      []byte
	offerStatus atomic.Int32
	offerCalls  atomic.Int32
	tokenCalls  atomic.Int32

	mu        sync.Mutex
	lastQuery url.Values
	locations []amadeus.Location
}

// NewFakeAmadeus starts a fake upstream serving the offers fixture.
func NewFakeAmadeus(t *testing.T) *FakeAmadeus {
	t.Helper()

	f := &FakeAmadeus{
		offers: testutil.LoadTestJSON(t, "amadeus_flight_offers.json"),
		locations: []amadeus.Location{
			{Type: "location", SubType: "AIRPORT", Name: "JOHN F KENNEDY INTL", IATACode: "JFK", Address: &amadeus.Address{CityName: "NEW YORK", CountryCode: "US"}},
			{Type: "location", SubType: "AIRPORT", Name: "LAGUARDIA", IATACode: "LGA", Address: &amadeus.Address{CityName: "NEW YORK", CountryCode: "US"}},
			{Type: "location", SubType: "AIRPORT", Name: "NEWARK LIBERTY INTL", IATACode: "EWR", Address: &amadeus.Address{CityName: "NEWARK", CountryCode: "US"}},
		},
	}
	f.Server = httptest.NewServer(f)
	t.Cleanup(f.Server.Close)
	return f
}

// FailOffers makes the offers endpoint answer with status until reset with 0.
func (f *FakeAmadeus) FailOffers(status int) {
	f.offerStatus.Store(int32(status))
}

// OfferCalls returns the number of flight-offers requests served.
func (f *FakeAmadeus) OfferCalls() int {
	return int(f.offerCalls.Load())
}

// TokenCalls returns the number of token requests served.
func (f *FakeAmadeus) TokenCalls() int {
	return int(f.tokenCalls.Load())
}

// LastOfferQuery returns the query string of the latest flight-offers request.
func (f *FakeAmadeus) LastOfferQuery() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastQuery
}

func (f *FakeAmadeus) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == amadeus.TokenPath {
		f.tokenCalls.Add(1)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"access_token": fakeToken,
			"token_type":   "Bearer",
			"expires_in":   1799,
		})
		return
	}

	if r.Header.Get("Authorization") != "Bearer "+fakeToken {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"errors": []map[string]interface{}{{"status": 401, "code": 38190, "title": "Invalid access token"}},
		})
		return
	}

	switch r.URL.Path {
	case "/v2/shopping/flight-offers":
		f.offerCalls.Add(1)
		f.mu.Lock()
		f.lastQuery = r.URL.Query()
		f.mu.Unlock()

		if status := int(f.offerStatus.Load()); status != 0 {
			writeJSON(w, status, map[string]interface{}{
				"errors": []map[string]interface{}{{"status": status, "code": 141, "title": http.StatusText(status), "detail": fmt.Sprintf("upstream answered %d", status)}},
			})
			return
		}
		w.Header().Set("Content-Type", "application/vnd.amadeus+json")
		_, _ = w.Write(f.offers)

	case "/v1/reference-data/locations":
		keyword := strings.ToUpper(r.URL.Query().Get("keyword"))
		data := make([]amadeus.Location, 0, len(f.locations))
		for _, loc := range f.locations {
			if strings.Contains(loc.Name, keyword) || strings.Contains(loc.Address.CityName, keyword) || loc.IATACode == keyword {
				data = append(data, loc)
			}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": data})

	default:
		http.NotFound(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// TestServer wraps an Echo instance wired like cmd/server and provides
// helper methods for integration testing.
type TestServer struct {
	Echo     *echo.Echo
	Clock    *timeutil.MockClock
	Provider domain.OfferProvider
	Search   usecase.FlightSearchUseCase
	Calendar usecase.CalendarUseCase
	Recent   usecase.RecentSearchUseCase
}

// ServerOption customizes NewTestServer.
type ServerOption func(*serverOptions)

type serverOptions struct {
	store    domain.RecentSearchStore
	calendar *usecase.CalendarConfig
	search   *usecase.Config
}

// WithStore replaces the in-memory recent-search store.
func WithStore(store domain.RecentSearchStore) ServerOption {
	return func(o *serverOptions) { o.store = store }
}

// WithCalendarConfig overrides the calendar configuration.
func WithCalendarConfig(cfg usecase.CalendarConfig) ServerOption {
	return func(o *serverOptions) { o.calendar = &cfg }
}

// WithSearchConfig overrides the search configuration.
func WithSearchConfig(cfg usecase.Config) ServerOption {
	return func(o *serverOptions) { o.search = &cfg }
}

// NewTestServer builds the full stack over provider. The clock is frozen at
// Today in UTC and the calendar is not paced.
func NewTestServer(t *testing.T, provider domain.OfferProvider, opts ...ServerOption) *TestServer {
	t.Helper()

	o := serverOptions{store: recentsearch.NewMemoryStore()}
	for _, opt := range opts {
		opt(&o)
	}

	log := logger.Nop()
	clock := timeutil.NewMockClock(testutil.MustParseTime(t, Today+"T09:00:00Z"))

	recent := usecase.NewRecentSearchUseCase(o.store, clock, log, nil)
	search := usecase.NewFlightSearchUseCase(usecase.SearchDeps{
		Provider: provider,
		Recent:   recent,
		Logger:   log,
	}, o.search)
	calendar := usecase.NewCalendarUseCase(usecase.CalendarDeps{
		Provider:    provider,
		Clock:       clock,
		SeriesPacer: usecase.NoopPacer{},
		GridPacer:   usecase.NoopPacer{},
		Logger:      log,
	}, o.calendar)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	middleware.Setup(e, log, middleware.Config{})

	handler := httpAdapter.NewFlightHandler(httpAdapter.HandlerDeps{
		Search:   search,
		Calendar: calendar,
		Recent:   recent,
		Location: time.UTC,
		Currency: "USD",
		Logger:   log,
	})
	httpAdapter.RegisterRoutes(e, handler)

	return &TestServer{
		Echo:     e,
		Clock:    clock,
		Provider: provider,
		Search:   search,
		Calendar: calendar,
		Recent:   recent,
	}
}

// NewAmadeusServer builds the full stack over the Amadeus client pointed at a
// fake upstream.
func NewAmadeusServer(t *testing.T, opts ...ServerOption) (*TestServer, *FakeAmadeus) {
	t.Helper()

	fake := NewFakeAmadeus(t)
	client := amadeus.NewClient(amadeus.Config{
		BaseURL:      fake.Server.URL,
		ClientID:     "integration-id",
		ClientSecret: "integration-secret",
		Timeout:      5 * time.Second,
		TokenRetry:   fastRetry,
		Logger:       logger.Nop(),
	})
	return NewTestServer(t, client, opts...), fake
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method   string
	Path     string
	Body     interface{}
	ClientID string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	if req.Body != nil {
		bodyBytes, _ := json.Marshal(req.Body)
		bodyReader = bytes.NewReader(bodyBytes)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)
	if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if req.ClientID != "" {
		httpReq.Header.Set(httpAdapter.HeaderClientID, req.ClientID)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// Post sends a JSON body as clientID.
func (ts *TestServer) Post(path, clientID string, body interface{}) Response {
	return ts.Do(Request{Method: http.MethodPost, Path: path, Body: body, ClientID: clientID})
}

// Get sends a GET as clientID.
func (ts *TestServer) Get(path, clientID string) Response {
	return ts.Do(Request{Method: http.MethodGet, Path: path, ClientID: clientID})
}

// Decode unmarshals the response body into out.
func (r Response) Decode(t *testing.T, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(r.Body, out); err != nil {
		t.Fatalf("decode response %d %s: %v", r.Code, string(r.Body), err)
	}
}

// SearchResult decodes a search response.
func (r Response) SearchResult(t *testing.T) domain.SearchResult {
	t.Helper()
	var result domain.SearchResult
	r.Decode(t, &result)
	return result
}

// Error decodes an error response.
func (r Response) Error(t *testing.T) response.ErrorDetail {
	t.Helper()
	var detail response.ErrorDetail
	r.Decode(t, &detail)
	return detail
}

// QueryBody returns a valid JFK-LAX query body. An empty returnDate makes it one-way.
func QueryBody(departureDate, returnDate string) map[string]interface{} {
	body := map[string]interface{}{
		"origin":        map[string]string{"iataCode": "JFK", "cityName": "New York"},
		"destination":   map[string]string{"iataCode": "LAX", "cityName": "Los Angeles"},
		"departureDate": departureDate,
		"passengers":    map[string]int{"adults": 1},
	}
	if returnDate != "" {
		body["returnDate"] = returnDate
	}
	return body
}

// With returns a copy of body with the extra keys set.
func With(body map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(body)+len(extra))
	for k, v := range body {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
