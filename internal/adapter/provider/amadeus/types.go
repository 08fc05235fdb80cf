package amadeus

// Offer is one flight offer as returned by GET /v2/shopping/flight-offers.
type Offer struct {
	ID                       string            `json:"id"`
	Source                   string            `json:"source"`
	InstantTicketingRequired bool              `json:"instantTicketingRequired"`
	NumberOfBookableSeats    *int              `json:"numberOfBookableSeats,omitempty"`
	Itineraries              []Itinerary       `json:"itineraries"`
	Price                    OfferPrice        `json:"price"`
	ValidatingAirlineCodes   []string          `json:"validatingAirlineCodes,omitempty"`
	ValidatingAirlineCode    string            `json:"validatingAirlineCode,omitempty"`
	TravelerPricings         []TravelerPricing `json:"travelerPricings,omitempty"`
}

// OfferPrice carries the decimal strings exactly as reported.
type OfferPrice struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	Base       string `json:"base"`
	GrandTotal string `json:"grandTotal"`
}

// Itinerary is one direction of the offer.
type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

// Segment is one flown leg.
type Segment struct {
	Departure     Endpoint   `json:"departure"`
	Arrival       Endpoint   `json:"arrival"`
	CarrierCode   string     `json:"carrierCode"`
	Number        string     `json:"number"`
	Aircraft      Aircraft   `json:"aircraft"`
	Operating     *Operating `json:"operating,omitempty"`
	Duration      string     `json:"duration"`
	ID            string     `json:"id"`
	NumberOfStops int        `json:"numberOfStops"`
}

// Endpoint is a segment departure or arrival.
type Endpoint struct {
	IATACode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

// Aircraft identifies the equipment.
type Aircraft struct {
	Code string `json:"code"`
}

// Operating is the carrier actually flying a codeshare segment.
type Operating struct {
	CarrierCode string `json:"carrierCode"`
	CarrierName string `json:"carrierName,omitempty"`
}

// TravelerPricing is the per-traveler fare breakdown.
type TravelerPricing struct {
	TravelerID           string       `json:"travelerId"`
	FareOption           string       `json:"fareOption"`
	TravelerType         string       `json:"travelerType"`
	FareDetailsBySegment []FareDetail `json:"fareDetailsBySegment"`
}

// FareDetail is the fare of one segment for one traveler.
type FareDetail struct {
	SegmentID           string        `json:"segmentId"`
	Cabin               string        `json:"cabin"`
	Class               string        `json:"class"`
	BrandedFare         string        `json:"brandedFare,omitempty"`
	IncludedCheckedBags *BagAllowance `json:"includedCheckedBags,omitempty"`
	IncludedCabinBags   *BagAllowance `json:"includedCabinBags,omitempty"`
}

// BagAllowance is reported either as a piece count or as a weight.
type BagAllowance struct {
	Quantity   *int   `json:"quantity,omitempty"`
	Weight     *int   `json:"weight,omitempty"`
	WeightUnit string `json:"weightUnit,omitempty"`
}

// Dictionaries holds the lookup tables sent next to the offers.
type Dictionaries struct {
	Carriers map[string]string `json:"carriers,omitempty"`
}

type offersResponse struct {
	Data         []Offer       `json:"data"`
	Dictionaries *Dictionaries `json:"dictionaries,omitempty"`
}

// Location is one record of GET /v1/reference-data/locations.
type Location struct {
	Type     string   `json:"type"`
	SubType  string   `json:"subType"`
	Name     string   `json:"name"`
	IATACode string   `json:"iataCode"`
	Address  *Address `json:"address,omitempty"`
}

// Address is the location address block.
type Address struct {
	CityName    string `json:"cityName"`
	CountryCode string `json:"countryCode"`
}

type locationsResponse struct {
	Data []Location `json:"data"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type errorResponse struct {
	Errors []apiError `json:"errors"`

	// The token endpoint answers with OAuth-style fields instead.
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

type apiError struct {
	Status int    `json:"status"`
	Code   int    `json:"code"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}
