package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchResult(t *testing.T) {
	tests := []struct {
		name      string
		offers    []FlightOffer
		metadata  SearchMetadata
		wantCount int
		degraded  bool
	}{
		{
			name:      "nil offers become empty slice",
			offers:    nil,
			wantCount: 0,
		},
		{
			name:      "total results follows offers",
			offers:    []FlightOffer{{ID: "1"}, {ID: "2"}},
			metadata:  SearchMetadata{TotalResults: 99},
			wantCount: 2,
		},
		{
			name:      "provider failure is degraded",
			metadata:  SearchMetadata{ProviderError: "provider amadeus: status 500"},
			wantCount: 0,
			degraded:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewSearchResult(tt.offers, DefaultFilterState(), Facets{}, tt.metadata)

			require.NotNil(t, result.Offers)
			assert.Len(t, result.Offers, tt.wantCount)
			assert.Equal(t, tt.wantCount, result.Metadata.TotalResults)
			assert.Equal(t, tt.degraded, result.IsDegraded())
		})
	}
}

func TestPriceGrid_Cell(t *testing.T) {
	grid := &PriceGrid{
		DepartureDates: []string{"2026-03-10", "2026-03-11"},
		ReturnDates:    []string{"2026-03-12"},
		Cells: [][]GridCell{{
			{DepartureDate: "2026-03-10", ReturnDate: "2026-03-12", Price: 320, Available: true},
			{DepartureDate: "2026-03-11", ReturnDate: "2026-03-12", Price: 280, Available: true},
		}},
	}

	cell, ok := grid.Cell("2026-03-11", "2026-03-12")
	require.True(t, ok)
	assert.Equal(t, 280.0, cell.Price)

	_, ok = grid.Cell("2026-03-09", "2026-03-12")
	assert.False(t, ok)
}

func TestRecentSearchID(t *testing.T) {
	assert.Equal(t, "JFK-LHR-2026-03-10--one-way", RecentSearchID("JFK", "LHR", "2026-03-10", "", TripOneWay))
	assert.Equal(t, "JFK-LHR-2026-03-10-2026-03-17-round-trip", RecentSearchID("JFK", "LHR", "2026-03-10", "2026-03-17", TripRoundTrip))
}
