package usecase

import (
	"fmt"
	"testing"
	"time"

	"github.com/flight-search/skysearch/internal/domain"
)

// benchmarkOffers builds n offers alternating nonstop and one stop via ORD.
func benchmarkOffers(n int) []domain.FlightOffer {
	base := time.Date(2026, 11, 20, 5, 0, 0, 0, time.UTC)
	carriers := []string{"AA", "DL", "UA", "B6"}

	offers := make([]domain.FlightOffer, n)
	for i := 0; i < n; i++ {
		dep := base.Add(time.Duration(i*10) * time.Minute)
		carrier := carriers[i%len(carriers)]
		layout := domain.LocalDateTimeLayout

		var segments []domain.Segment
		if i%2 == 0 {
			segments = []domain.Segment{
				seg("JFK", "LAX", carrier, dep.Format(layout), dep.Add(6*time.Hour).Format(layout)),
			}
		} else {
			segments = []domain.Segment{
				seg("JFK", "ORD", carrier, dep.Format(layout), dep.Add(2*time.Hour).Format(layout)),
				seg("ORD", "LAX", carrier, dep.Add(3*time.Hour).Format(layout), dep.Add(7*time.Hour).Format(layout)),
			}
		}

		o := createTestOffer(fmt.Sprintf("bench-%d", i), float64(150+i%400), fmt.Sprintf("PT%dH%dM", 5+i%4, i%60), segments...)
		offers[i] = withBaggage(o, i%3 == 0, i%3)
	}
	return offers
}

func BenchmarkApplyFilters(b *testing.B) {
	offers := benchmarkOffers(250)

	b.Run("default_state", func(b *testing.B) {
		state := DeriveFilterDefaults(offers)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			ApplyFilters(offers, state)
		}
	})

	b.Run("price_and_stops", func(b *testing.B) {
		state := domain.DefaultFilterState()
		state.PriceRange = domain.PriceRange{200, 400}
		state.Stops = []int{domain.StopsNonstop}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			ApplyFilters(offers, state)
		}
	})

	b.Run("all_predicates", func(b *testing.B) {
		state := domain.DefaultFilterState()
		state.PriceRange = domain.PriceRange{150, 500}
		state.Stops = []int{domain.StopsNonstop, domain.StopsOne}
		state.Airlines = []string{"AA", "UA"}
		state.DepartureTimeRange = domain.HourRange{6, 20}
		state.Duration = 600
		state.Bags.Checked = 1
		state.ConnectingAirports = []string{"DEN"}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			ApplyFilters(offers, state)
		}
	})
}

func BenchmarkFilterAndRank(b *testing.B) {
	offers := benchmarkOffers(250)
	state := domain.DefaultFilterState()
	state.Stops = []int{domain.StopsNonstop, domain.StopsOne}

	for _, sortBy := range []domain.SortOption{domain.SortByBestValue, domain.SortByPrice, domain.SortByDeparture} {
		b.Run(string(sortBy), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				FilterAndRank(offers, state, sortBy, domain.BaselineFiltered)
			}
		})
	}
}
