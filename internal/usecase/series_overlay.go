package usecase

import (
	"github.com/flight-search/skysearch/internal/domain"
)

// OverlayFiltered returns a copy of series that reflects the offers still
// visible under the client's filters. all is the unfiltered result of the
// current search and filtered the subset that survived.
//
// Each point's price becomes the cheapest surviving offer departing on that
// date, keeping the unfiltered price in OriginalPrice. Points without a
// surviving offer are marked FilteredOut and leave the stats. When nothing
// was filtered away the series is returned unchanged.
func OverlayFiltered(series *domain.PriceSeries, all, filtered []domain.FlightOffer) *domain.PriceSeries {
	if series == nil {
		return nil
	}

	out := *series
	out.Points = make([]domain.SeriesPoint, len(series.Points))
	copy(out.Points, series.Points)

	if len(all) == 0 || len(filtered) == len(all) {
		return &out
	}

	cheapest := cheapestByDepartureDate(filtered)
	for i := range out.Points {
		p := &out.Points[i]
		p.OriginalPrice = p.Price
		price, ok := cheapest[p.Date]
		if !ok {
			p.FilteredOut = true
			continue
		}
		p.FilteredOut = false
		p.Price = price
	}

	out.Filtered = true
	summarizeSeries(&out)
	return &out
}

// cheapestByDepartureDate maps the outbound departure date (YYYY-MM-DD) to the
// lowest offer amount on that date.
func cheapestByDepartureDate(offers []domain.FlightOffer) map[string]float64 {
	cheapest := make(map[string]float64)
	for _, o := range offers {
		dep, ok := FirstDeparture(o)
		if !ok {
			continue
		}
		date := dep.Format(domain.DateLayout)
		if price, seen := cheapest[date]; !seen || o.Price.Amount < price {
			cheapest[date] = o.Price.Amount
		}
	}
	return cheapest
}
