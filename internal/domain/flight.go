// Package domain contains the core business entities and rules for the flight search system.
// These entities are provider-agnostic and form the foundation upon which all other components are built.
package domain

// Airport is an immutable reference value returned by airport lookup
// or restored from a recent search.
type Airport struct {
	// IATACode is the 3-letter uppercase airport code (e.g., "JFK")
	IATACode string `json:"iataCode"`

	// Name is the airport name (e.g., "John F Kennedy Intl")
	Name string `json:"name"`

	// CityName is the served city (e.g., "New York")
	CityName string `json:"cityName"`

	// CountryCode is the ISO 3166 country code (e.g., "US")
	CountryCode string `json:"countryCode"`
}

// FlightOffer is one priced, bookable itinerary combination returned by the provider.
// Itineraries holds exactly one entry for one-way offers and two (outbound, return)
// for round trips.
type FlightOffer struct {
	// ID is the provider-assigned offer identifier
	ID string `json:"id"`

	// Source is the provider distribution channel (e.g., "GDS")
	Source string `json:"source"`

	// Price contains the decimal strings as reported plus the parsed comparable amount
	Price Price `json:"price"`

	// Itineraries is [outbound] or [outbound, return]
	Itineraries []Itinerary `json:"itineraries"`

	// ValidatingAirlineCodes lists the ticketing carriers
	ValidatingAirlineCodes []string `json:"validatingAirlineCodes"`

	// NumberOfBookableSeats is nil when the provider does not report it
	NumberOfBookableSeats *int `json:"numberOfBookableSeats,omitempty"`

	// InstantTicketingRequired is true when the fare must be ticketed immediately
	InstantTicketingRequired bool `json:"instantTicketingRequired"`

	// Baggage is nil when the provider carries no fare detail to derive it from
	Baggage *BaggageInfo `json:"baggageInfo,omitempty"`
}

// Price holds the upstream decimal strings and the single parsed amount
// used for every comparison.
type Price struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	Base       string `json:"base"`
	GrandTotal string `json:"grandTotal"`

	// Amount is GrandTotal parsed once at the normalizer boundary,
	// rounded to currency minor units.
	Amount float64 `json:"amount"`
}

// Itinerary is one direction of travel.
type Itinerary struct {
	// Duration is the total elapsed time including layovers (ISO-8601, e.g. "PT7H25M")
	Duration string `json:"duration"`

	// Segments are the flown legs in chronological order
	Segments []Segment `json:"segments"`
}

// Outbound returns the first itinerary of the offer.
func (o FlightOffer) Outbound() (Itinerary, bool) {
	if len(o.Itineraries) == 0 {
		return Itinerary{}, false
	}
	return o.Itineraries[0], true
}

// IsRoundTrip reports whether the offer has a return itinerary.
func (o FlightOffer) IsRoundTrip() bool {
	return len(o.Itineraries) == 2
}

// Segment is a single flown leg between two airports on one aircraft.
type Segment struct {
	Departure     SegmentEndpoint `json:"departure"`
	Arrival       SegmentEndpoint `json:"arrival"`
	CarrierCode   string          `json:"carrierCode"`
	CarrierName   string          `json:"carrierName,omitempty"`
	Number        string          `json:"number"`
	AircraftCode  string          `json:"aircraftCode"`
	AircraftName  string          `json:"aircraftName,omitempty"`
	Amenities     Amenities       `json:"amenities"`
	Duration      string          `json:"duration"`
	NumberOfStops int             `json:"numberOfStops"`
}

// Amenities are the on-board services of a segment.
type Amenities struct {
	WiFi          bool `json:"wifi"`
	Power         bool `json:"power"`
	Entertainment bool `json:"entertainment"`

	// Estimated is true when derived from the aircraft type
	Estimated bool `json:"estimated"`
}

// SegmentEndpoint is the departure or arrival side of a segment.
type SegmentEndpoint struct {
	IATACode string        `json:"iataCode"`
	Terminal string        `json:"terminal,omitempty"`
	At       LocalDateTime `json:"at"`
}

// BaggageInfo is a best-effort view of the bag allowance.
// Upstream rarely reports cabin bags, so CarryOn is usually an estimate.
type BaggageInfo struct {
	CarryOn CarryOnAllowance `json:"carryOn"`
	Checked CheckedAllowance `json:"checked"`
}

// CarryOnAllowance describes the cabin bag allowance.
type CarryOnAllowance struct {
	Included bool `json:"included"`
	Quantity int  `json:"quantity"`

	// Estimated is true when the allowance was assumed rather than reported
	Estimated bool `json:"estimated"`
}

// CheckedAllowance describes the checked bag allowance.
type CheckedAllowance struct {
	Included bool   `json:"included"`
	Quantity int    `json:"quantity"`
	Weight   string `json:"weight,omitempty"`
}
