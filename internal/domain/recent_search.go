package domain

import (
	"context"
	"fmt"
)

// RecentSearchStorageKey is the well-known key the log is persisted under.
// Stores scope it per client as "<key>:<clientID>".
const RecentSearchStorageKey = "skysearch_recent_searches"

// RecentSearch is one persisted log entry.
// Dates are local calendar days formatted as YYYY-MM-DD.
type RecentSearch struct {
	ID            string     `json:"id"`
	Origin        Airport    `json:"origin"`
	Destination   Airport    `json:"destination"`
	DepartureDate string     `json:"departureDate"`
	ReturnDate    string     `json:"returnDate,omitempty"`
	TripType      TripType   `json:"tripType"`
	Passengers    Passengers `json:"passengers"`

	// Timestamp is the insertion time in epoch milliseconds
	Timestamp int64 `json:"timestamp"`
}

// RecentSearchID builds the dedup key of an entry.
func RecentSearchID(origin, destination, departureDate, returnDate string, tripType TripType) string {
	return fmt.Sprintf("%s-%s-%s-%s-%s", origin, destination, departureDate, returnDate, tripType)
}

// RecentSearchStore persists the raw log array for a client.
// It holds no policy; capacity, dedup and expiry belong to the caller.
type RecentSearchStore interface {
	// Load returns the stored entries, or an empty slice when none exist.
	Load(ctx context.Context, clientID string) ([]RecentSearch, error)

	// Save replaces the stored entries.
	Save(ctx context.Context, clientID string, entries []RecentSearch) error

	// Delete removes every entry for the client.
	Delete(ctx context.Context, clientID string) error
}
