package domain

// SortOption defines the available sorting options for flight results.
type SortOption string

// Available sort options.
const (
	// SortByBestValue sorts by the weighted price/duration score (default)
	SortByBestValue SortOption = "best"

	// SortByPrice sorts by price ascending (cheapest first)
	SortByPrice SortOption = "price"

	// SortByDuration sorts by outbound duration ascending (shortest first)
	SortByDuration SortOption = "duration"

	// SortByDeparture sorts by outbound departure time ascending (earliest first)
	SortByDeparture SortOption = "departure"
)

// IsValid checks if the sort option is a valid value.
func (s SortOption) IsValid() bool {
	switch s {
	case SortByBestValue, SortByPrice, SortByDuration, SortByDeparture:
		return true
	default:
		return false
	}
}

// ParseSortOption converts a string to a SortOption.
// Returns SortByBestValue if the string is empty or invalid.
func ParseSortOption(s string) SortOption {
	option := SortOption(s)
	if option.IsValid() {
		return option
	}
	return SortByBestValue
}

// RankingBaseline selects which offer set the "best" score normalizes against.
type RankingBaseline string

const (
	// BaselineFiltered normalizes over the set being sorted (default).
	BaselineFiltered RankingBaseline = "filtered"

	// BaselineFull normalizes over the unfiltered result set, which keeps the
	// relative order of surviving offers stable as filters change.
	BaselineFull RankingBaseline = "full"
)

// IsValid checks if the baseline is a known value.
func (b RankingBaseline) IsValid() bool {
	return b == BaselineFiltered || b == BaselineFull
}

// Stop filter values. StopsTwoOrMore matches any itinerary with two or more stops.
const (
	StopsNonstop   = 0
	StopsOne       = 1
	StopsTwoOrMore = 2
)

// Default bounds used when a result set is empty.
const (
	DefaultMaxPrice           = 5000
	DefaultMaxDurationMinutes = 2880
)

// HourRange is an inclusive [from, to] window of fractional hours in 0..24.
// The zero value and the full [0, 24] window are both unset.
type HourRange [2]float64

// FullDay is the no-op hour window.
var FullDay = HourRange{0, 24}

// IsUnset reports whether the window filters nothing.
func (r HourRange) IsUnset() bool {
	if r[0] == 0 && r[1] == 0 {
		return true
	}
	return r[0] <= 0 && r[1] >= 24
}

// Contains reports whether the fractional hour falls inside the window.
func (r HourRange) Contains(hour float64) bool {
	return hour >= r[0] && hour <= r[1]
}

// PriceRange is an inclusive [min, max] amount window.
// A non-positive max leaves the upper side open.
type PriceRange [2]float64

// IsUnset reports whether the range filters nothing.
func (r PriceRange) IsUnset() bool {
	return r[0] <= 0 && r[1] <= 0
}

// Contains reports whether the amount falls inside the range.
func (r PriceRange) Contains(amount float64) bool {
	if amount < r[0] {
		return false
	}
	if r[1] > 0 && amount > r[1] {
		return false
	}
	return true
}

// BagFilter holds the baggage requirements.
type BagFilter struct {
	// CarryOn requires an included cabin bag when true
	CarryOn bool `json:"carryOn"`

	// Checked is the minimum number of included checked bags, 0 = unset
	Checked int `json:"checked"`
}

// FilterState is a snapshot of the user's filter selection.
// Every field at its zero value is a pass-through.
type FilterState struct {
	// Stops lists the accepted outbound stop counts; 2 means two or more
	Stops []int `json:"stops"`

	// PriceRange bounds Price.Amount inclusively
	PriceRange PriceRange `json:"priceRange"`

	// Airlines accepts an offer if any segment carries one of these codes
	Airlines []string `json:"airlines"`

	// DepartureTimeRange applies to the first outbound segment departure
	DepartureTimeRange HourRange `json:"departureTimeRange"`

	// ArrivalTimeRange applies to the last outbound segment arrival
	ArrivalTimeRange HourRange `json:"arrivalTimeRange"`

	// Duration is the outbound duration ceiling in minutes, 0 = unset
	Duration int `json:"duration"`

	// Bags holds the baggage requirements
	Bags BagFilter `json:"bags"`

	// ConnectingAirports is the set of airports to avoid or to require
	ConnectingAirports []string `json:"connectingAirports"`

	// ExcludeConnectingAirports selects avoid (true) or require (false) semantics
	ExcludeConnectingAirports bool `json:"excludeConnectingAirports"`
}

// DefaultFilterState returns a state that passes every offer.
func DefaultFilterState() FilterState {
	return FilterState{
		Stops:                     []int{},
		Airlines:                  []string{},
		DepartureTimeRange:        FullDay,
		ArrivalTimeRange:          FullDay,
		ConnectingAirports:        []string{},
		ExcludeConnectingAirports: true,
	}
}

// IsDefault reports whether no predicate in the state is active.
func (f FilterState) IsDefault() bool {
	return len(f.Stops) == 0 &&
		f.PriceRange.IsUnset() &&
		len(f.Airlines) == 0 &&
		f.DepartureTimeRange.IsUnset() &&
		f.ArrivalTimeRange.IsUnset() &&
		f.Duration <= 0 &&
		!f.Bags.CarryOn &&
		f.Bags.Checked <= 0 &&
		len(f.ConnectingAirports) == 0
}
