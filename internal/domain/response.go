package domain

// SearchResult is the outcome of a primary search.
// A provider failure yields an empty Offers slice and a populated
// Metadata.ProviderError instead of an error.
type SearchResult struct {
	// Offers are in upstream order
	Offers []FlightOffer `json:"offers"`

	// Defaults is the filter state derived from Offers
	Defaults FilterState `json:"defaults"`

	// Facets lists the values the filters can be built from
	Facets Facets `json:"facets"`

	// Metadata contains information about the search execution
	Metadata SearchMetadata `json:"metadata"`
}

// Facets are the distinct filterable values present in a result set.
type Facets struct {
	// Airlines are the sorted carrier codes appearing on any segment
	Airlines []string `json:"airlines"`

	// ConnectingAirports are the sorted intermediate airports of any offer
	ConnectingAirports []string `json:"connectingAirports"`

	// MinPrice and MaxPrice are the floor/ceil price bounds
	MinPrice float64 `json:"minPrice"`
	MaxPrice float64 `json:"maxPrice"`

	// MinDuration and MaxDuration are outbound duration bounds in minutes
	MinDuration int `json:"minDuration"`
	MaxDuration int `json:"maxDuration"`
}

// SearchMetadata contains metadata about the search execution.
type SearchMetadata struct {
	// Provider is the name of the upstream that served the search
	Provider string `json:"provider"`

	// TotalResults is the number of offers returned
	TotalResults int `json:"totalResults"`

	// SearchTimeMs is the total search duration in milliseconds
	SearchTimeMs int64 `json:"searchTimeMs"`

	// ProviderError is the logged upstream failure, empty on success
	ProviderError string `json:"providerError,omitempty"`

	// RateLimited is true when the upstream throttled the search
	RateLimited bool `json:"rateLimited,omitempty"`
}

// NewSearchResult creates a SearchResult, never returning a nil offer slice.
func NewSearchResult(offers []FlightOffer, defaults FilterState, facets Facets, metadata SearchMetadata) *SearchResult {
	if offers == nil {
		offers = []FlightOffer{}
	}
	metadata.TotalResults = len(offers)

	return &SearchResult{
		Offers:   offers,
		Defaults: defaults,
		Facets:   facets,
		Metadata: metadata,
	}
}

// IsDegraded reports whether the provider failed for this search.
func (r *SearchResult) IsDegraded() bool {
	return r.Metadata.ProviderError != ""
}
