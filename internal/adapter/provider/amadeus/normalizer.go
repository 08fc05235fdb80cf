package amadeus

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/flight-search/skysearch/internal/domain"
)

// CheckedBagWeightKg is the assumed weight of one checked piece.
const CheckedBagWeightKg = 23

// Normalize converts a provider offer into the domain model.
// It never fails: malformed fields fall back to zero values and are reported
// as data-quality faults for the caller to log.
func Normalize(raw Offer, carriers map[string]string) (domain.FlightOffer, []error) {
	var faults []error

	amount, err := ParseMoney(raw.Price.GrandTotal)
	if err != nil {
		faults = append(faults, err)
	}

	offer := domain.FlightOffer{
		ID:     raw.ID,
		Source: raw.Source,
		Price: domain.Price{
			Currency:   raw.Price.Currency,
			Total:      raw.Price.Total,
			Base:       raw.Price.Base,
			GrandTotal: raw.Price.GrandTotal,
			Amount:     amount,
		},
		Itineraries:              make([]domain.Itinerary, 0, len(raw.Itineraries)),
		ValidatingAirlineCodes:   validatingCodes(raw),
		NumberOfBookableSeats:    raw.NumberOfBookableSeats,
		InstantTicketingRequired: raw.InstantTicketingRequired,
		Baggage:                  extractBaggage(raw.TravelerPricings),
	}
	if offer.Source == "" {
		offer.Source = "GDS"
	}

	for _, it := range raw.Itineraries {
		segments := make([]domain.Segment, 0, len(it.Segments))
		for _, s := range it.Segments {
			seg, segFaults := normalizeSegment(s, carriers)
			faults = append(faults, segFaults...)
			segments = append(segments, seg)
		}
		offer.Itineraries = append(offer.Itineraries, domain.Itinerary{
			Duration: it.Duration,
			Segments: segments,
		})
	}

	return offer, faults
}

func normalizeSegment(s Segment, carriers map[string]string) (domain.Segment, []error) {
	var faults []error

	dep, err := parseAt("segment.departure.at", s.Departure.At)
	if err != nil {
		faults = append(faults, err)
	}
	arr, err := parseAt("segment.arrival.at", s.Arrival.At)
	if err != nil {
		faults = append(faults, err)
	}

	carrier, name := s.CarrierCode, ""
	if s.Operating != nil && s.Operating.CarrierCode != "" {
		carrier = s.Operating.CarrierCode
		name = s.Operating.CarrierName
	}
	if name == "" {
		name = carriers[carrier]
	}

	return domain.Segment{
		Departure: domain.SegmentEndpoint{
			IATACode: s.Departure.IATACode,
			Terminal: s.Departure.Terminal,
			At:       dep,
		},
		Arrival: domain.SegmentEndpoint{
			IATACode: s.Arrival.IATACode,
			Terminal: s.Arrival.Terminal,
			At:       arr,
		},
		CarrierCode:   carrier,
		CarrierName:   name,
		Number:        s.Number,
		AircraftCode:  s.Aircraft.Code,
		AircraftName:  AircraftName(s.Aircraft.Code),
		Amenities:     EstimatedAmenities(s.Aircraft.Code),
		Duration:      s.Duration,
		NumberOfStops: s.NumberOfStops,
	}, faults
}

func parseAt(field, value string) (domain.LocalDateTime, error) {
	t, err := domain.ParseLocalDateTime(value)
	if err != nil {
		return domain.LocalDateTime{}, domain.NewDataQualityFault(field, value, "unparseable timestamp")
	}
	return t, nil
}

func validatingCodes(raw Offer) []string {
	if len(raw.ValidatingAirlineCodes) > 0 {
		return raw.ValidatingAirlineCodes
	}
	if raw.ValidatingAirlineCode != "" {
		return []string{raw.ValidatingAirlineCode}
	}
	return []string{}
}

// ParseMoney parses a decimal amount string and rounds it to two decimals.
// Unparseable input yields 0 and a data-quality fault.
func ParseMoney(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, domain.NewDataQualityFault("price.grandTotal", s, "not a decimal amount")
	}
	return math.Round(v*100) / 100, nil
}

// extractBaggage derives the allowance from the first traveler's fare
// details. Cabin bags are rarely reported, so an included carry-on is
// assumed and flagged as estimated.
func extractBaggage(pricings []TravelerPricing) *domain.BaggageInfo {
	if len(pricings) == 0 || len(pricings[0].FareDetailsBySegment) == 0 {
		return nil
	}

	info := &domain.BaggageInfo{
		CarryOn: domain.CarryOnAllowance{Included: true, Quantity: 1, Estimated: true},
	}

	cabinReported := false
	cabinQuantity := 0
	for _, fd := range pricings[0].FareDetailsBySegment {
		if n, ok := pieces(fd.IncludedCheckedBags); ok && n > info.Checked.Quantity {
			info.Checked.Quantity = n
		}
		if n, ok := pieces(fd.IncludedCabinBags); ok {
			if !cabinReported || n < cabinQuantity {
				cabinQuantity = n
			}
			cabinReported = true
		}
	}

	if cabinReported {
		info.CarryOn = domain.CarryOnAllowance{
			Included: cabinQuantity > 0,
			Quantity: cabinQuantity,
		}
	}

	if info.Checked.Quantity > 0 {
		info.Checked.Included = true
		info.Checked.Weight = fmt.Sprintf("%dkg", info.Checked.Quantity*CheckedBagWeightKg)
	}
	return info
}

// pieces returns the piece count of an allowance. A weight-only allowance
// counts as one bag.
func pieces(a *BagAllowance) (int, bool) {
	if a == nil {
		return 0, false
	}
	if a.Quantity != nil {
		return *a.Quantity, true
	}
	if a.Weight != nil && *a.Weight > 0 {
		return 1, true
	}
	return 0, true
}

// NormalizeAirport converts a location record into an airport.
func NormalizeAirport(loc Location) domain.Airport {
	airport := domain.Airport{
		IATACode: loc.IATACode,
		Name:     loc.Name,
		CityName: loc.Name,
	}
	if loc.Address != nil {
		if loc.Address.CityName != "" {
			airport.CityName = loc.Address.CityName
		}
		airport.CountryCode = loc.Address.CountryCode
	}
	return airport
}
