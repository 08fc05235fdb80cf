package usecase

import (
	"sort"

	"github.com/flight-search/skysearch/internal/domain"
)

// Ranking weights of the "best" score. They sum to 1.0.
const (
	weightPrice    = 0.6
	weightDuration = 0.4
)

// RankOptions tunes the "best" strategy.
type RankOptions struct {
	// Baseline selects the set min/max are taken from.
	Baseline domain.RankingBaseline

	// Reference is the unfiltered result set, used with BaselineFull.
	// When empty the set being sorted is used.
	Reference []domain.FlightOffer
}

// scoreBounds is the min/max of price and outbound duration of a set.
type scoreBounds struct {
	minPrice, priceSpread       float64
	minDuration, durationSpread float64
}

func newScoreBounds(offers []domain.FlightOffer) scoreBounds {
	minPrice, maxPrice := findPriceRange(offers)
	minDuration, maxDuration := findDurationRange(offers)
	return scoreBounds{
		minPrice:       minPrice,
		priceSpread:    spreadOrOne(maxPrice - minPrice),
		minDuration:    float64(minDuration),
		durationSpread: spreadOrOne(float64(maxDuration - minDuration)),
	}
}

// spreadOrOne keeps a zero spread from dividing by zero.
func spreadOrOne(spread float64) float64 {
	if spread == 0 {
		return 1
	}
	return spread
}

func (b scoreBounds) score(o domain.FlightOffer) float64 {
	normPrice := (o.Price.Amount - b.minPrice) / b.priceSpread
	normDuration := (float64(OutboundDurationMinutes(o)) - b.minDuration) / b.durationSpread
	return weightPrice*normPrice + weightDuration*normDuration
}

func baselineFor(offers []domain.FlightOffer, opts RankOptions) []domain.FlightOffer {
	if opts.Baseline == domain.BaselineFull && len(opts.Reference) > 0 {
		return opts.Reference
	}
	return offers
}

// BestScores returns the "best" score of each offer, index-aligned with offers.
//
//	Score = 0.6 × NormalizedPrice + 0.4 × NormalizedDuration
//
// Normalized values are (x - min) / (max - min), with a zero spread treated as 1.
// Lower is better. Scores depend on the baseline set and must be recomputed
// whenever it changes.
func BestScores(offers []domain.FlightOffer, opts RankOptions) []float64 {
	if len(offers) == 0 {
		return []float64{}
	}

	bounds := newScoreBounds(baselineFor(offers, opts))
	scores := make([]float64, len(offers))
	for i, o := range offers {
		scores[i] = bounds.score(o)
	}
	return scores
}

// SortOffers sorts offers according to the given strategy.
// Uses stable sorting so equal keys keep their upstream order.
//
// Sort options:
//   - SortByBestValue (default): ascending by BestScores
//   - SortByPrice: ascending by Price.Amount
//   - SortByDuration: ascending by outbound duration
//   - SortByDeparture: ascending by first outbound departure
//
// Does NOT mutate the input slice.
func SortOffers(offers []domain.FlightOffer, sortBy domain.SortOption, opts RankOptions) []domain.FlightOffer {
	result := make([]domain.FlightOffer, len(offers))
	copy(result, offers)

	if len(result) <= 1 {
		return result
	}

	if !sortBy.IsValid() {
		sortBy = domain.SortByBestValue
	}

	switch sortBy {
	case domain.SortByBestValue:
		bounds := newScoreBounds(baselineFor(offers, opts))
		keys := make([]float64, len(result))
		for i, o := range result {
			keys[i] = bounds.score(o)
		}
		sortByKeys(result, keys)
	case domain.SortByPrice:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price.Amount < result[j].Price.Amount
		})
	case domain.SortByDuration:
		keys := make([]float64, len(result))
		for i, o := range result {
			keys[i] = float64(OutboundDurationMinutes(o))
		}
		sortByKeys(result, keys)
	case domain.SortByDeparture:
		sort.SliceStable(result, func(i, j int) bool {
			a, _ := FirstDeparture(result[i])
			b, _ := FirstDeparture(result[j])
			return a.Before(b.Time)
		})
	}

	return result
}

// sortByKeys stably sorts offers by precomputed ascending keys.
func sortByKeys(offers []domain.FlightOffer, keys []float64) {
	sort.Stable(keyedOffers{offers: offers, keys: keys})
}

type keyedOffers struct {
	offers []domain.FlightOffer
	keys   []float64
}

func (k keyedOffers) Len() int           { return len(k.offers) }
func (k keyedOffers) Less(i, j int) bool { return k.keys[i] < k.keys[j] }
func (k keyedOffers) Swap(i, j int) {
	k.offers[i], k.offers[j] = k.offers[j], k.offers[i]
	k.keys[i], k.keys[j] = k.keys[j], k.keys[i]
}

// FilterAndRank applies the filters and then sorts the survivors.
// With BaselineFull the "best" score normalizes over the unfiltered offers.
func FilterAndRank(offers []domain.FlightOffer, state domain.FilterState, sortBy domain.SortOption, baseline domain.RankingBaseline) []domain.FlightOffer {
	filtered := ApplyFilters(offers, state)
	return SortOffers(filtered, sortBy, RankOptions{Baseline: baseline, Reference: offers})
}
