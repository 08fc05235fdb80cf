// Package http provides the HTTP handler layer for the flight search API.
package http

import (
	"strings"
	"time"

	"github.com/flight-search/skysearch/internal/domain"
	"github.com/flight-search/skysearch/internal/infrastructure/timeutil"
	"github.com/flight-search/skysearch/internal/usecase"
)

// ToDomainQuery converts a validated QueryDTO to a domain.SearchQuery.
// Dates become midnight in loc; an empty currency falls back to defaultCurrency.
func ToDomainQuery(dto *QueryDTO, loc *time.Location, defaultCurrency string) domain.SearchQuery {
	q := domain.SearchQuery{
		Origin:      toDomainAirport(dto.Origin),
		Destination: toDomainAirport(dto.Destination),
		TripType:    domain.TripType(dto.TripType),
		Passengers: domain.Passengers{
			Adults:   dto.Passengers.Adults,
			Children: dto.Passengers.Children,
			Infants:  dto.Passengers.Infants,
		},
		CabinClass: domain.CabinClass(dto.CabinClass),
		Currency:   dto.Currency,
	}
	if q.Currency == "" {
		q.Currency = defaultCurrency
	}

	if dep, err := timeutil.ParseLocalDate(dto.DepartureDate, loc); err == nil {
		q.DepartureDate = dep
	}
	if dto.ReturnDate != "" {
		if ret, err := timeutil.ParseLocalDate(dto.ReturnDate, loc); err == nil {
			q.ReturnDate = ret
		}
	}

	q.SetDefaults()
	return q
}

func toDomainAirport(dto AirportDTO) domain.Airport {
	return domain.Airport{
		IATACode:    strings.ToUpper(dto.IATACode),
		Name:        dto.Name,
		CityName:    dto.CityName,
		CountryCode: dto.CountryCode,
	}
}

// ToDomainFilters converts a FilterDTO to a domain.FilterState.
// A nil DTO yields nil so the caller can pick its own defaults.
func ToDomainFilters(dto *FilterDTO) *domain.FilterState {
	if dto == nil {
		return nil
	}

	state := domain.DefaultFilterState()
	if dto.Stops != nil {
		state.Stops = dto.Stops
	}
	if dto.PriceRange != nil {
		state.PriceRange = domain.PriceRange(*dto.PriceRange)
	}
	if dto.Airlines != nil {
		state.Airlines = dto.Airlines
	}
	if dto.DepartureTimeRange != nil {
		state.DepartureTimeRange = domain.HourRange(*dto.DepartureTimeRange)
	}
	if dto.ArrivalTimeRange != nil {
		state.ArrivalTimeRange = domain.HourRange(*dto.ArrivalTimeRange)
	}
	state.Duration = dto.Duration
	if dto.Bags != nil {
		state.Bags = domain.BagFilter{CarryOn: dto.Bags.CarryOn, Checked: dto.Bags.Checked}
	}
	if dto.ConnectingAirports != nil {
		state.ConnectingAirports = dto.ConnectingAirports
	}
	if dto.ExcludeConnectingAirports != nil {
		state.ExcludeConnectingAirports = *dto.ExcludeConnectingAirports
	}
	return &state
}

// ToDomainSortOption converts a sort string to domain.SortOption.
// Empty input stays empty so the upstream order is kept.
func ToDomainSortOption(sortBy string) domain.SortOption {
	switch strings.ToLower(sortBy) {
	case "":
		return ""
	case "best", "best_value":
		return domain.SortByBestValue
	default:
		return domain.ParseSortOption(strings.ToLower(sortBy))
	}
}

// ToSearchOptions converts request fields to usecase.SearchOptions.
func ToSearchOptions(req *SearchFlightsRequest) usecase.SearchOptions {
	return usecase.SearchOptions{
		Filters: ToDomainFilters(req.Filters),
		SortBy:  ToDomainSortOption(req.SortBy),
	}
}
