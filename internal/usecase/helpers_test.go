package usecase

import (
	"fmt"

	"github.com/flight-search/skysearch/internal/domain"
)

// seg creates a segment between two airports. Times use the upstream layout.
func seg(from, to, carrier, dep, arr string) domain.Segment {
	return domain.Segment{
		Departure:   domain.SegmentEndpoint{IATACode: from, At: domain.MustParseLocalDateTime(dep)},
		Arrival:     domain.SegmentEndpoint{IATACode: to, At: domain.MustParseLocalDateTime(arr)},
		CarrierCode: carrier,
		Number:      "100",
	}
}

// createTestOffer creates a one-way offer with the given outbound segments.
func createTestOffer(id string, amount float64, duration string, segments ...domain.Segment) domain.FlightOffer {
	if len(segments) == 0 {
		segments = []domain.Segment{seg("JFK", "LAX", "AA", "2026-11-20T08:00:00", "2026-11-20T11:00:00")}
	}
	total := fmt.Sprintf("%.2f", amount)
	return domain.FlightOffer{
		ID:     id,
		Source: "GDS",
		Price: domain.Price{
			Currency:   "USD",
			Total:      total,
			Base:       total,
			GrandTotal: total,
			Amount:     amount,
		},
		Itineraries:            []domain.Itinerary{{Duration: duration, Segments: segments}},
		ValidatingAirlineCodes: []string{segments[0].CarrierCode},
	}
}

// withReturn appends a return itinerary to the offer.
func withReturn(o domain.FlightOffer, duration string, segments ...domain.Segment) domain.FlightOffer {
	o.Itineraries = append(o.Itineraries, domain.Itinerary{Duration: duration, Segments: segments})
	return o
}

// withBaggage sets the bag allowance of the offer.
func withBaggage(o domain.FlightOffer, carryOn bool, checked int) domain.FlightOffer {
	o.Baggage = &domain.BaggageInfo{
		CarryOn: domain.CarryOnAllowance{Included: carryOn, Quantity: boolToInt(carryOn)},
		Checked: domain.CheckedAllowance{Included: checked > 0, Quantity: checked},
	}
	return o
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// createTestOffers returns a mixed set: nonstop, one stop via ORD, two stops
// via DEN and PHX, and a one stop UA offer via ORD with baggage.
func createTestOffers() []domain.FlightOffer {
	return []domain.FlightOffer{
		withBaggage(createTestOffer("1", 320.50, "PT6H",
			seg("JFK", "LAX", "AA", "2026-11-20T08:00:00", "2026-11-20T11:00:00"),
		), true, 1),
		createTestOffer("2", 210.00, "PT8H30M",
			seg("JFK", "ORD", "DL", "2026-11-20T06:15:00", "2026-11-20T08:00:00"),
			seg("ORD", "LAX", "DL", "2026-11-20T10:00:00", "2026-11-20T12:45:00"),
		),
		createTestOffer("3", 150.25, "PT11H",
			seg("JFK", "DEN", "B6", "2026-11-20T14:00:00", "2026-11-20T16:30:00"),
			seg("DEN", "PHX", "B6", "2026-11-20T18:00:00", "2026-11-20T19:30:00"),
			seg("PHX", "LAX", "B6", "2026-11-20T21:00:00", "2026-11-20T22:00:00"),
		),
		withBaggage(createTestOffer("4", 480.99, "PT7H15M",
			seg("JFK", "ORD", "UA", "2026-11-20T19:45:00", "2026-11-20T21:30:00"),
			seg("ORD", "LAX", "AA", "2026-11-20T22:30:00", "2026-11-21T00:00:00"),
		), false, 2),
	}
}

func offerIDs(offers []domain.FlightOffer) []string {
	ids := make([]string, len(offers))
	for i, o := range offers {
		ids[i] = o.ID
	}
	return ids
}
