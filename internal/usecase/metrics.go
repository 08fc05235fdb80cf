package usecase

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/flight-search/skysearch/internal/domain"
)

// isoDurationRegex matches the ISO-8601 duration subset the provider emits:
// PT#H#M with an optional day part and an ignored seconds part.
var isoDurationRegex = regexp.MustCompile(`^P(?:(\d+)D)?T(?:(\d+)H)?(?:(\d+)M)?(?:\d+(?:\.\d+)?S)?$`)

// StopsCount returns the number of intermediate stops of an itinerary.
// An empty itinerary has zero stops.
func StopsCount(it domain.Itinerary) int {
	if len(it.Segments) == 0 {
		return 0
	}
	return len(it.Segments) - 1
}

// OutboundStops returns the stop count of the offer's outbound itinerary.
func OutboundStops(offer domain.FlightOffer) int {
	it, _ := offer.Outbound()
	return StopsCount(it)
}

// DurationMinutes parses an ISO-8601 duration into whole minutes.
// A missing hour or minute part counts as zero; malformed input yields 0.
func DurationMinutes(iso string) int {
	m := isoDurationRegex.FindStringSubmatch(iso)
	if m == nil {
		return 0
	}
	return atoiOrZero(m[1])*24*60 + atoiOrZero(m[2])*60 + atoiOrZero(m[3])
}

// OutboundDurationMinutes returns the outbound itinerary duration in minutes.
func OutboundDurationMinutes(offer domain.FlightOffer) int {
	it, ok := offer.Outbound()
	if !ok {
		return 0
	}
	return DurationMinutes(it.Duration)
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// DepartureHourFraction returns the wall clock hour with sub-hour precision,
// e.g. 14:30 is 14.5.
func DepartureHourFraction(t domain.LocalDateTime) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60
}

// FirstDeparture returns the departure time of the first outbound segment.
func FirstDeparture(offer domain.FlightOffer) (domain.LocalDateTime, bool) {
	it, ok := offer.Outbound()
	if !ok || len(it.Segments) == 0 {
		return domain.LocalDateTime{}, false
	}
	return it.Segments[0].Departure.At, true
}

// LastArrival returns the arrival time of the last outbound segment.
func LastArrival(offer domain.FlightOffer) (domain.LocalDateTime, bool) {
	it, ok := offer.Outbound()
	if !ok || len(it.Segments) == 0 {
		return domain.LocalDateTime{}, false
	}
	return it.Segments[len(it.Segments)-1].Arrival.At, true
}

// ConnectingAirports returns the sorted set of intermediate airports across
// every itinerary of the offer. The first departure and the last arrival of
// each itinerary are not connections.
func ConnectingAirports(offer domain.FlightOffer) []string {
	set := make(map[string]struct{})
	addConnections(offer, set)
	return sortedKeys(set)
}

func addConnections(offer domain.FlightOffer, set map[string]struct{}) {
	for _, it := range offer.Itineraries {
		last := len(it.Segments) - 1
		for i, seg := range it.Segments {
			if i > 0 {
				set[seg.Departure.IATACode] = struct{}{}
			}
			if i < last {
				set[seg.Arrival.IATACode] = struct{}{}
			}
		}
	}
}

// Layover is a whole hours/minutes wall clock gap between two segments.
type Layover struct {
	Hours   int
	Minutes int
}

// TotalMinutes returns the layover length in minutes.
func (l Layover) TotalMinutes() int {
	return l.Hours*60 + l.Minutes
}

// String formats the layover as "1h 5m", "45m" or "2h".
func (l Layover) String() string {
	return FormatDuration(l.TotalMinutes())
}

// LayoverDuration returns the gap between an arrival and the next departure,
// floor-divided into whole hours and minutes. A negative gap is a data
// quality fault: the zero Layover is returned with a *domain.DataQualityFault.
func LayoverDuration(prevArrival, nextDeparture domain.LocalDateTime) (Layover, error) {
	delta := nextDeparture.Sub(prevArrival.Time)
	if delta < 0 {
		return Layover{}, domain.NewDataQualityFault(
			"layover",
			delta.String(),
			fmt.Sprintf("departure %s precedes arrival %s", nextDeparture, prevArrival),
		)
	}

	totalMinutes := int(delta / time.Minute)
	return Layover{Hours: totalMinutes / 60, Minutes: totalMinutes % 60}, nil
}

// FormatDuration renders minutes as "5h 30m", "45m" or "2h".
func FormatDuration(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// UniqueAirlines returns the sorted carrier codes that appear on any segment.
func UniqueAirlines(offers []domain.FlightOffer) []string {
	set := make(map[string]struct{})
	for _, o := range offers {
		for _, it := range o.Itineraries {
			for _, seg := range it.Segments {
				set[seg.CarrierCode] = struct{}{}
			}
		}
	}
	return sortedKeys(set)
}

// UniqueConnectingAirports returns the sorted connections across all offers.
func UniqueConnectingAirports(offers []domain.FlightOffer) []string {
	set := make(map[string]struct{})
	for _, o := range offers {
		addConnections(o, set)
	}
	return sortedKeys(set)
}

// PriceBounds returns [floor(min), ceil(max)] of the offer amounts,
// or [0, DefaultMaxPrice] for an empty set.
func PriceBounds(offers []domain.FlightOffer) (float64, float64) {
	if len(offers) == 0 {
		return 0, domain.DefaultMaxPrice
	}
	min, max := findPriceRange(offers)
	return math.Floor(min), math.Ceil(max)
}

// DurationBounds returns the min and max outbound duration in minutes,
// or [0, DefaultMaxDurationMinutes] for an empty set.
func DurationBounds(offers []domain.FlightOffer) (int, int) {
	if len(offers) == 0 {
		return 0, domain.DefaultMaxDurationMinutes
	}
	return findDurationRange(offers)
}

// findPriceRange finds the minimum and maximum amount across all offers.
func findPriceRange(offers []domain.FlightOffer) (min, max float64) {
	if len(offers) == 0 {
		return 0, 0
	}

	min, max = math.MaxFloat64, -math.MaxFloat64
	for _, o := range offers {
		if o.Price.Amount < min {
			min = o.Price.Amount
		}
		if o.Price.Amount > max {
			max = o.Price.Amount
		}
	}
	return min, max
}

// findDurationRange finds the minimum and maximum outbound duration in minutes.
func findDurationRange(offers []domain.FlightOffer) (min, max int) {
	if len(offers) == 0 {
		return 0, 0
	}

	min, max = math.MaxInt, math.MinInt
	for _, o := range offers {
		d := OutboundDurationMinutes(o)
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
