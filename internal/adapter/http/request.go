// Package http provides the HTTP handler layer for the flight search API.
// It handles request parsing, validation, and response formatting.
package http

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/flight-search/skysearch/internal/domain"
)

// MaxPassengers is the largest traveller count a single query may carry.
const MaxPassengers = 9

// AirportDTO is an airport as returned by the airport search endpoint.
// Only IATACode is required; the other fields are echoed into the
// recent-search log.
type AirportDTO struct {
	IATACode    string `json:"iataCode" example:"JFK"`
	Name        string `json:"name,omitempty" example:"John F Kennedy Intl"`
	CityName    string `json:"cityName,omitempty" example:"New York"`
	CountryCode string `json:"countryCode,omitempty" example:"US"`
}

// PassengersDTO is the traveller mix.
type PassengersDTO struct {
	Adults   int `json:"adults" example:"1"`
	Children int `json:"children" example:"0"`
	Infants  int `json:"infants" example:"0"`
}

// QueryDTO holds the route, dates and travellers shared by the search and
// calendar endpoints.
type QueryDTO struct {
	Origin        AirportDTO    `json:"origin"`
	Destination   AirportDTO    `json:"destination"`
	DepartureDate string        `json:"departureDate" example:"2026-11-20"`
	ReturnDate    string        `json:"returnDate,omitempty" example:"2026-11-27"`
	TripType      string        `json:"tripType,omitempty" example:"round-trip"`
	Passengers    PassengersDTO `json:"passengers"`
	CabinClass    string        `json:"cabinClass,omitempty" example:"ECONOMY"`
	Currency      string        `json:"currency,omitempty" example:"USD"`
}

// SearchFlightsRequest represents the request body for flight search.
type SearchFlightsRequest struct {
	QueryDTO

	// Filters is applied to the response when present
	Filters *FilterDTO `json:"filters,omitempty"`

	// SortBy is one of best, price, duration, departure; empty keeps upstream order
	SortBy string `json:"sortBy,omitempty" example:"best"`
}

// FilterFlightsRequest re-filters offers the client already holds.
type FilterFlightsRequest struct {
	Offers  []domain.FlightOffer `json:"offers"`
	Filters *FilterDTO           `json:"filters,omitempty"`
	SortBy  string               `json:"sortBy,omitempty" example:"price"`
}

// PriceSeriesRequest asks for the cheapest fare around the departure date.
type PriceSeriesRequest struct {
	QueryDTO

	// TripDurationDays overrides the round-trip length (1..30)
	TripDurationDays int `json:"tripDurationDays,omitempty" example:"7"`

	// Offers and Filters overlay the client's active filters on the series.
	// Offers are the unfiltered results of the current search.
	Offers  []domain.FlightOffer `json:"offers,omitempty"`
	Filters *FilterDTO           `json:"filters,omitempty"`
}

// PriceGridRequest asks for a departure × return price window.
type PriceGridRequest struct {
	QueryDTO

	ColOffset int `json:"colOffset" example:"0"`
	RowOffset int `json:"rowOffset" example:"0"`
}

// FilterDTO mirrors domain.FilterState. Absent fields do not filter.
// Example: {"stops": [0, 1], "priceRange": [0, 450], "departureTimeRange": [6, 12.5]}
type FilterDTO struct {
	Stops                     []int         `json:"stops,omitempty" example:"0,1"`
	PriceRange                *[2]float64   `json:"priceRange,omitempty"`
	Airlines                  []string      `json:"airlines,omitempty" example:"AA,DL"`
	DepartureTimeRange        *[2]float64   `json:"departureTimeRange,omitempty"`
	ArrivalTimeRange          *[2]float64   `json:"arrivalTimeRange,omitempty"`
	Duration                  int           `json:"duration,omitempty" example:"600"`
	Bags                      *BagFilterDTO `json:"bags,omitempty"`
	ConnectingAirports        []string      `json:"connectingAirports,omitempty" example:"ORD"`
	ExcludeConnectingAirports *bool         `json:"excludeConnectingAirports,omitempty"`
}

// BagFilterDTO holds the baggage requirements.
type BagFilterDTO struct {
	CarryOn bool `json:"carryOn"`
	Checked int  `json:"checked" example:"1"`
}

// Validation regex patterns.
var (
	airportCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
	airlineCodePattern = regexp.MustCompile(`^[A-Z0-9]{2,3}$`)
	currencyPattern    = regexp.MustCompile(`^[A-Z]{3}$`)
	datePattern        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// Unwrap lets errors.Is match domain.ErrInvalidRequest.
func (v *ValidationErrors) Unwrap() error {
	return domain.ErrInvalidRequest
}

func validationResult(errs *ValidationErrors) error {
	if errs.HasErrors() {
		return errs
	}
	return nil
}

// Validate validates the search request and returns any validation errors.
func (r *SearchFlightsRequest) Validate() error {
	errs := &ValidationErrors{}
	r.QueryDTO.validate(errs)
	validateSortBy(r.SortBy, errs)
	if r.Filters != nil {
		r.Filters.validate(errs)
	}
	return validationResult(errs)
}

// Validate validates the filter request.
func (r *FilterFlightsRequest) Validate() error {
	errs := &ValidationErrors{}
	if r.Offers == nil {
		errs.Add("offers", "offers is required")
	}
	validateSortBy(r.SortBy, errs)
	if r.Filters != nil {
		r.Filters.validate(errs)
	}
	return validationResult(errs)
}

// Validate validates the price series request.
func (r *PriceSeriesRequest) Validate() error {
	errs := &ValidationErrors{}
	r.QueryDTO.validate(errs)
	if r.TripDurationDays < 0 || r.TripDurationDays > 30 {
		errs.Add("tripDurationDays", "tripDurationDays must be between 1 and 30")
	}
	if r.Filters != nil {
		r.Filters.validate(errs)
	}
	return validationResult(errs)
}

// Validate validates the price grid request.
func (r *PriceGridRequest) Validate() error {
	errs := &ValidationErrors{}
	r.QueryDTO.validate(errs)
	if r.ColOffset < 0 {
		errs.Add("colOffset", "colOffset must be a non-negative number")
	}
	if r.RowOffset < 0 {
		errs.Add("rowOffset", "rowOffset must be a non-negative number")
	}
	return validationResult(errs)
}

func (q *QueryDTO) validate(errs *ValidationErrors) {
	q.validateAirport("origin", &q.Origin, errs)
	q.validateAirport("destination", &q.Destination, errs)

	if q.Origin.IATACode != "" && q.Origin.IATACode == q.Destination.IATACode {
		errs.Add("destination", "origin and destination must be different")
	}

	dep, depOK := validateDate("departureDate", q.DepartureDate, true, errs)
	ret, retOK := validateDate("returnDate", q.ReturnDate, false, errs)
	if depOK && retOK && ret.Before(dep) {
		errs.Add("returnDate", "returnDate cannot be before departureDate")
	}

	if q.TripType != "" && !domain.TripType(q.TripType).IsValid() {
		errs.Add("tripType", "tripType must be one of: one-way, round-trip")
	}

	q.validatePassengers(errs)

	q.CabinClass = strings.ToUpper(q.CabinClass)
	if q.CabinClass != "" && !domain.CabinClass(q.CabinClass).IsValid() {
		errs.Add("cabinClass", "cabinClass must be one of: ECONOMY, PREMIUM_ECONOMY, BUSINESS, FIRST")
	}

	q.Currency = strings.ToUpper(q.Currency)
	if q.Currency != "" && !currencyPattern.MatchString(q.Currency) {
		errs.Add("currency", "currency must be a 3-letter ISO code")
	}
}

func (q *QueryDTO) validateAirport(field string, a *AirportDTO, errs *ValidationErrors) {
	if a.IATACode == "" {
		errs.Add(field, field+" is required")
		return
	}

	code := strings.ToUpper(strings.TrimSpace(a.IATACode))
	if !airportCodePattern.MatchString(code) {
		errs.Add(field, field+" must be a valid 3-letter IATA airport code")
		return
	}
	a.IATACode = code
}

// validateDate returns the parsed date when the field is present and valid.
func validateDate(field, value string, required bool, errs *ValidationErrors) (time.Time, bool) {
	if value == "" {
		if required {
			errs.Add(field, field+" is required")
		}
		return time.Time{}, false
	}

	if !datePattern.MatchString(value) {
		errs.Add(field, field+" must be in YYYY-MM-DD format")
		return time.Time{}, false
	}

	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		errs.Add(field, field+" is not a valid date")
		return time.Time{}, false
	}
	return t, true
}

func (q *QueryDTO) validatePassengers(errs *ValidationErrors) {
	p := q.Passengers
	if p.Adults < 1 {
		errs.Add("passengers.adults", "adults must be at least 1")
	}
	if p.Children < 0 {
		errs.Add("passengers.children", "children must be a non-negative number")
	}
	if p.Infants < 0 {
		errs.Add("passengers.infants", "infants must be a non-negative number")
	}
	if p.Infants > p.Adults && p.Adults >= 1 {
		errs.Add("passengers.infants", "each infant must travel with an adult")
	}
	if p.Adults+p.Children > MaxPassengers {
		errs.Add("passengers", fmt.Sprintf("passengers cannot exceed %d", MaxPassengers))
	}
}

func validateSortBy(sortBy string, errs *ValidationErrors) {
	if sortBy != "" && !domain.SortOption(strings.ToLower(sortBy)).IsValid() {
		errs.Add("sortBy", "sortBy must be one of: best, price, duration, departure")
	}
}

func (f *FilterDTO) validate(errs *ValidationErrors) {
	for i, s := range f.Stops {
		if s < domain.StopsNonstop || s > domain.StopsTwoOrMore {
			errs.Add(fmt.Sprintf("filters.stops[%d]", i), "stops must be 0, 1 or 2 (two or more)")
		}
	}

	if f.PriceRange != nil {
		lo, hi := f.PriceRange[0], f.PriceRange[1]
		if lo < 0 || hi < 0 {
			errs.Add("filters.priceRange", "priceRange bounds must be non-negative")
		} else if hi > 0 && lo > hi {
			errs.Add("filters.priceRange", "priceRange minimum must not exceed the maximum")
		}
	}

	for i, airline := range f.Airlines {
		normalized := strings.ToUpper(airline)
		if !airlineCodePattern.MatchString(normalized) {
			errs.Add(fmt.Sprintf("filters.airlines[%d]", i), "airline code must be 2 or 3 characters")
		}
		f.Airlines[i] = normalized
	}

	validateHourRange("filters.departureTimeRange", f.DepartureTimeRange, errs)
	validateHourRange("filters.arrivalTimeRange", f.ArrivalTimeRange, errs)

	if f.Duration < 0 {
		errs.Add("filters.duration", "duration must be a non-negative number of minutes")
	}

	if f.Bags != nil && f.Bags.Checked < 0 {
		errs.Add("filters.bags.checked", "checked must be a non-negative number")
	}

	for i, code := range f.ConnectingAirports {
		normalized := strings.ToUpper(code)
		if !airportCodePattern.MatchString(normalized) {
			errs.Add(fmt.Sprintf("filters.connectingAirports[%d]", i), "connecting airport must be a valid 3-letter IATA airport code")
		}
		f.ConnectingAirports[i] = normalized
	}
}

func validateHourRange(field string, r *[2]float64, errs *ValidationErrors) {
	if r == nil {
		return
	}
	if r[0] < 0 || r[1] > 24 {
		errs.Add(field, "hours must be within 0 and 24")
		return
	}
	if r[0] > r[1] {
		errs.Add(field, "start must not be after end")
	}
}
