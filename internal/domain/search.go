package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the calendar date format used on every boundary (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// TripType distinguishes one-way from round-trip searches.
type TripType string

// Supported trip types.
const (
	TripOneWay    TripType = "one-way"
	TripRoundTrip TripType = "round-trip"
)

// IsValid checks if the trip type is a known value.
func (t TripType) IsValid() bool {
	return t == TripOneWay || t == TripRoundTrip
}

// CabinClass is the fare category requested from the provider.
type CabinClass string

// Supported cabin classes, spelled the way the provider expects them.
const (
	CabinEconomy        CabinClass = "ECONOMY"
	CabinPremiumEconomy CabinClass = "PREMIUM_ECONOMY"
	CabinBusiness       CabinClass = "BUSINESS"
	CabinFirst          CabinClass = "FIRST"
)

// IsValid checks if the cabin class is a known value.
func (c CabinClass) IsValid() bool {
	switch c {
	case CabinEconomy, CabinPremiumEconomy, CabinBusiness, CabinFirst:
		return true
	default:
		return false
	}
}

// Passengers is the traveller mix of a query.
type Passengers struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

// SearchQuery is a route/date/passenger query as entered by the user.
// Dates are local calendar days (midnight in the process location); a zero
// ReturnDate means no return.
type SearchQuery struct {
	Origin        Airport
	Destination   Airport
	DepartureDate time.Time
	ReturnDate    time.Time
	TripType      TripType
	Passengers    Passengers
	CabinClass    CabinClass
	Currency      string
}

// airportCodeRegex matches valid IATA airport codes (3 uppercase letters).
var airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// Validate checks the fields the provider cannot do without.
// It returns a *ValidationError, which matches ErrInvalidRequest.
func (q *SearchQuery) Validate() error {
	if q.Origin.IATACode == "" {
		return NewValidationError("origin", "origin is required")
	}
	if !airportCodeRegex.MatchString(q.Origin.IATACode) {
		return NewValidationError("origin", fmt.Sprintf("origin must be a valid 3-letter IATA code, got %q", q.Origin.IATACode))
	}

	if q.Destination.IATACode == "" {
		return NewValidationError("destination", "destination is required")
	}
	if !airportCodeRegex.MatchString(q.Destination.IATACode) {
		return NewValidationError("destination", fmt.Sprintf("destination must be a valid 3-letter IATA code, got %q", q.Destination.IATACode))
	}

	if q.DepartureDate.IsZero() {
		return NewValidationError("departureDate", "departureDate is required")
	}

	// Zero adults is indistinguishable from an absent value
	if q.Passengers.Adults < 1 {
		return NewValidationError("passengers.adults", "adults is required")
	}

	if q.IsRoundTrip() && !q.ReturnDate.IsZero() && q.ReturnDate.Before(q.DepartureDate) {
		return NewValidationError("returnDate", "returnDate cannot be before departureDate")
	}

	return nil
}

// SetDefaults applies default values to empty optional fields.
func (q *SearchQuery) SetDefaults() {
	q.Origin.IATACode = strings.ToUpper(q.Origin.IATACode)
	q.Destination.IATACode = strings.ToUpper(q.Destination.IATACode)
	if q.TripType == "" {
		if q.ReturnDate.IsZero() {
			q.TripType = TripOneWay
		} else {
			q.TripType = TripRoundTrip
		}
	}
	if q.CabinClass == "" {
		q.CabinClass = CabinEconomy
	}
}

// IsRoundTrip reports whether the query asks for a return leg.
func (q *SearchQuery) IsRoundTrip() bool {
	return q.TripType == TripRoundTrip
}

// ToOfferRequest builds the provider request for this query.
// The return date is only sent for round trips.
func (q *SearchQuery) ToOfferRequest(maxResults int) OfferRequest {
	req := OfferRequest{
		Origin:        q.Origin.IATACode,
		Destination:   q.Destination.IATACode,
		DepartureDate: q.DepartureDate.Format(DateLayout),
		Adults:        q.Passengers.Adults,
		Children:      q.Passengers.Children,
		Infants:       q.Passengers.Infants,
		CabinClass:    q.CabinClass,
		Currency:      q.Currency,
		MaxResults:    maxResults,
	}
	if q.IsRoundTrip() && !q.ReturnDate.IsZero() {
		req.ReturnDate = q.ReturnDate.Format(DateLayout)
	}
	return req
}

// OfferRequest is the provider-facing search request.
// Dates are YYYY-MM-DD strings; an empty ReturnDate means one-way.
type OfferRequest struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
	Children      int
	Infants       int
	CabinClass    CabinClass
	Currency      string
	MaxResults    int
}
