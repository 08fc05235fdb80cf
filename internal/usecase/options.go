// Package usecase contains the business logic of the flight search service:
// metric extraction, the filter pipeline, ranking, the primary search, the
// price calendar aggregator and the recent-search log.
package usecase

import "github.com/flight-search/skysearch/internal/domain"

// SearchOptions contains optional parameters for a flight search.
type SearchOptions struct {
	// Filters, when set, are applied to the returned offers.
	// Defaults and facets are always derived from the full result set.
	Filters *domain.FilterState

	// SortBy specifies how to sort the returned offers. Empty keeps the
	// upstream order.
	SortBy domain.SortOption
}

// DefaultSearchOptions returns SearchOptions that leave the offers as the
// provider returned them.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{}
}

// shapesResult reports whether the offers need filtering or sorting.
func (o SearchOptions) shapesResult() bool {
	return o.Filters != nil || o.SortBy != ""
}
