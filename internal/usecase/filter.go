package usecase

import "github.com/flight-search/skysearch/internal/domain"

// ApplyFilters returns the offers that pass every active predicate of state.
//
// Behavior:
//   - Predicates are conjunctive and each one is a pass-through at its unset value
//   - Cheap scalar checks run before set lookups and segment walks
//   - Does NOT mutate the offers or the state
//   - Returns a new slice (never the input) so callers may reorder it freely
func ApplyFilters(offers []domain.FlightOffer, state domain.FilterState) []domain.FlightOffer {
	p := newFilterPlan(state)

	result := make([]domain.FlightOffer, 0, len(offers))
	for _, o := range offers {
		if p.passes(o) {
			result = append(result, o)
		}
	}
	return result
}

// filterPlan is a FilterState with its lookup sets prebuilt.
type filterPlan struct {
	state        domain.FilterState
	stops        map[int]struct{}
	twoOrMore    bool
	airlines     map[string]struct{}
	connecting   map[string]struct{}
	depActive    bool
	arrActive    bool
	priceActive  bool
	durationMax  int
	carryOn      bool
	checkedBags  int
	excludeConns bool
}

func newFilterPlan(state domain.FilterState) filterPlan {
	p := filterPlan{
		state:        state,
		depActive:    !state.DepartureTimeRange.IsUnset(),
		arrActive:    !state.ArrivalTimeRange.IsUnset(),
		priceActive:  !state.PriceRange.IsUnset(),
		durationMax:  state.Duration,
		carryOn:      state.Bags.CarryOn,
		checkedBags:  state.Bags.Checked,
		excludeConns: state.ExcludeConnectingAirports,
	}

	if len(state.Stops) > 0 {
		p.stops = make(map[int]struct{}, len(state.Stops))
		for _, s := range state.Stops {
			if s >= domain.StopsTwoOrMore {
				p.twoOrMore = true
				continue
			}
			p.stops[s] = struct{}{}
		}
	}
	if len(state.Airlines) > 0 {
		p.airlines = buildSet(state.Airlines)
	}
	if len(state.ConnectingAirports) > 0 {
		p.connecting = buildSet(state.ConnectingAirports)
	}
	return p
}

// passes checks every active predicate, cheapest first.
func (p filterPlan) passes(o domain.FlightOffer) bool {
	if p.priceActive && !p.state.PriceRange.Contains(o.Price.Amount) {
		return false
	}

	if p.stops != nil || p.twoOrMore {
		if !p.matchesStops(OutboundStops(o)) {
			return false
		}
	}

	// Carry-on requires an explicit included allowance; missing baggage info fails.
	if p.carryOn && (o.Baggage == nil || !o.Baggage.CarryOn.Included) {
		return false
	}

	// Missing baggage info counts as zero checked bags.
	if p.checkedBags > 0 {
		checked := 0
		if o.Baggage != nil {
			checked = o.Baggage.Checked.Quantity
		}
		if checked < p.checkedBags {
			return false
		}
	}

	if p.durationMax > 0 && OutboundDurationMinutes(o) > p.durationMax {
		return false
	}

	if p.depActive {
		at, ok := FirstDeparture(o)
		if !ok || !p.state.DepartureTimeRange.Contains(DepartureHourFraction(at)) {
			return false
		}
	}

	if p.arrActive {
		at, ok := LastArrival(o)
		if !ok || !p.state.ArrivalTimeRange.Contains(DepartureHourFraction(at)) {
			return false
		}
	}

	if p.airlines != nil && !p.matchesAirlines(o) {
		return false
	}

	if p.connecting != nil && !p.matchesConnections(o) {
		return false
	}

	return true
}

func (p filterPlan) matchesStops(stops int) bool {
	if p.twoOrMore && stops >= domain.StopsTwoOrMore {
		return true
	}
	_, ok := p.stops[stops]
	return ok
}

// matchesAirlines passes if any segment of any itinerary carries a requested code.
func (p filterPlan) matchesAirlines(o domain.FlightOffer) bool {
	for _, it := range o.Itineraries {
		for _, seg := range it.Segments {
			if _, ok := p.airlines[seg.CarrierCode]; ok {
				return true
			}
		}
	}
	return false
}

// matchesConnections applies avoid or require semantics. Nonstop offers
// always pass.
func (p filterPlan) matchesConnections(o domain.FlightOffer) bool {
	conns := ConnectingAirports(o)
	if len(conns) == 0 {
		return true
	}

	hasSelected := false
	for _, code := range conns {
		if _, ok := p.connecting[code]; ok {
			hasSelected = true
			break
		}
	}

	if p.excludeConns {
		return !hasSelected
	}
	return hasSelected
}

// DeriveFilterDefaults returns the filter state a fresh result set starts
// with: price and duration bounds taken from the offers and every other
// predicate unset. Applying it to the same offers is the identity.
func DeriveFilterDefaults(offers []domain.FlightOffer) domain.FilterState {
	state := domain.DefaultFilterState()

	minPrice, maxPrice := PriceBounds(offers)
	state.PriceRange = domain.PriceRange{minPrice, maxPrice}

	_, maxDuration := DurationBounds(offers)
	state.Duration = maxDuration

	return state
}

// BuildFacets collects the values the filter controls are built from.
func BuildFacets(offers []domain.FlightOffer) domain.Facets {
	minPrice, maxPrice := PriceBounds(offers)
	minDuration, maxDuration := DurationBounds(offers)

	return domain.Facets{
		Airlines:           UniqueAirlines(offers),
		ConnectingAirports: UniqueConnectingAirports(offers),
		MinPrice:           minPrice,
		MaxPrice:           maxPrice,
		MinDuration:        minDuration,
		MaxDuration:        maxDuration,
	}
}

// buildSet creates an O(1) lookup set from a list of codes.
func buildSet(codes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}
