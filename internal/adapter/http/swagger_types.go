// Package http provides swagger type definitions for API documentation.
// These types mirror domain types but are defined here to help swag generate proper documentation.
package http

// SwaggerSearchResult represents the search API response for swagger documentation.
// @Description Flight offers with derived filter defaults and facets
type SwaggerSearchResult struct {
	// Offers are in upstream order unless a sort was requested
	Offers []SwaggerFlightOffer `json:"offers"`

	// Defaults is the filter state that lets every offer through
	Defaults SwaggerFilterState `json:"defaults"`

	Facets SwaggerFacets `json:"facets"`

	Metadata SwaggerSearchMetadata `json:"metadata"`
}

// SwaggerSearchMetadata contains metadata about the search execution.
// @Description Metadata about the search execution
type SwaggerSearchMetadata struct {
	Provider     string `json:"provider" example:"amadeus"`
	TotalResults int    `json:"totalResults" example:"42"`
	SearchTimeMs int64  `json:"searchTimeMs" example:"830"`

	// ProviderError is set when the upstream failed and Offers is empty
	ProviderError string `json:"providerError,omitempty" example:""`
	RateLimited   bool   `json:"rateLimited,omitempty" example:"false"`
}

// SwaggerFlightOffer represents a single normalized offer.
// @Description Priced itinerary set from the flight provider
type SwaggerFlightOffer struct {
	ID                     string             `json:"id" example:"1"`
	Source                 string             `json:"source" example:"GDS"`
	Price                  SwaggerPrice       `json:"price"`
	Itineraries            []SwaggerItinerary `json:"itineraries"`
	ValidatingAirlineCodes []string           `json:"validatingAirlineCodes" example:"AA"`
	NumberOfBookableSeats  *int               `json:"numberOfBookableSeats,omitempty" example:"9"`
	Baggage                *SwaggerBaggage    `json:"baggageInfo,omitempty"`
}

// SwaggerPrice contains pricing information.
// @Description Price information
type SwaggerPrice struct {
	Currency   string  `json:"currency" example:"USD"`
	GrandTotal string  `json:"grandTotal" example:"245.60"`
	Amount     float64 `json:"amount" example:"245.6"`
}

// SwaggerItinerary is one direction of travel.
// @Description Outbound or return leg
type SwaggerItinerary struct {
	// Duration is an ISO-8601 duration
	Duration string           `json:"duration" example:"PT5H35M"`
	Segments []SwaggerSegment `json:"segments"`
}

// SwaggerSegment is one flight of an itinerary.
// @Description Single flight segment
type SwaggerSegment struct {
	Departure    SwaggerEndpoint  `json:"departure"`
	Arrival      SwaggerEndpoint  `json:"arrival"`
	CarrierCode  string           `json:"carrierCode" example:"AA"`
	CarrierName  string           `json:"carrierName,omitempty" example:"AMERICAN AIRLINES"`
	Number       string           `json:"number" example:"100"`
	AircraftCode string           `json:"aircraftCode" example:"321"`
	AircraftName string           `json:"aircraftName,omitempty" example:"Airbus A321"`
	Amenities    SwaggerAmenities `json:"amenities"`
	Duration     string           `json:"duration" example:"PT5H35M"`
}

// SwaggerAmenities are the estimated on-board services.
// @Description Amenities guessed from the aircraft type
type SwaggerAmenities struct {
	WiFi          bool `json:"wifi" example:"true"`
	Power         bool `json:"power" example:"true"`
	Entertainment bool `json:"entertainment" example:"false"`
	Estimated     bool `json:"estimated" example:"true"`
}

// SwaggerEndpoint is a departure or arrival point.
// @Description Airport and local wall-clock time
type SwaggerEndpoint struct {
	IATACode string `json:"iataCode" example:"JFK"`
	Terminal string `json:"terminal,omitempty" example:"8"`

	// At is the local time at the airport, without offset
	At string `json:"at" example:"2026-11-20T08:00:00"`
}

// SwaggerBaggage contains baggage allowance information.
// @Description Baggage allowance information
type SwaggerBaggage struct {
	CarryOn struct {
		Included  bool `json:"included" example:"true"`
		Quantity  int  `json:"quantity" example:"1"`
		Estimated bool `json:"estimated" example:"true"`
	} `json:"carryOn"`
	Checked struct {
		Included bool   `json:"included" example:"true"`
		Quantity int    `json:"quantity" example:"1"`
		Weight   string `json:"weight,omitempty" example:"23kg"`
	} `json:"checked"`
}

// SwaggerFilterState mirrors the filter controls.
// @Description Filter state
type SwaggerFilterState struct {
	Stops                     []int        `json:"stops" example:"0,1"`
	PriceRange                []float64    `json:"priceRange" example:"120,980"`
	Airlines                  []string     `json:"airlines" example:"AA,DL"`
	DepartureTimeRange        []float64    `json:"departureTimeRange" example:"0,24"`
	ArrivalTimeRange          []float64    `json:"arrivalTimeRange" example:"0,24"`
	Duration                  int          `json:"duration" example:"720"`
	Bags                      BagFilterDTO `json:"bags"`
	ConnectingAirports        []string     `json:"connectingAirports"`
	ExcludeConnectingAirports bool         `json:"excludeConnectingAirports" example:"true"`
}

// SwaggerFacets lists the distinct filterable values.
// @Description Filter facets
type SwaggerFacets struct {
	Airlines           []string `json:"airlines" example:"AA,B6,DL"`
	ConnectingAirports []string `json:"connectingAirports" example:"ORD"`
	MinPrice           float64  `json:"minPrice" example:"120"`
	MaxPrice           float64  `json:"maxPrice" example:"980"`
	MinDuration        int      `json:"minDuration" example:"330"`
	MaxDuration        int      `json:"maxDuration" example:"720"`
}
