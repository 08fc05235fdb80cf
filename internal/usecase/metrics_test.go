package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/skysearch/internal/domain"
)

func TestDurationMinutes(t *testing.T) {
	tests := []struct {
		name string
		iso  string
		want int
	}{
		{name: "hours and minutes", iso: "PT7H25M", want: 445},
		{name: "hours only", iso: "PT5H", want: 300},
		{name: "minutes only", iso: "PT45M", want: 45},
		{name: "with days", iso: "P1DT2H", want: 1560},
		{name: "seconds ignored", iso: "PT1H30M15S", want: 90},
		{name: "empty", iso: "", want: 0},
		{name: "malformed", iso: "7h25m", want: 0},
		{name: "bare designator", iso: "PT", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DurationMinutes(tt.iso))
		})
	}
}

func TestStopsCount(t *testing.T) {
	offers := createTestOffers()

	tests := []struct {
		name  string
		offer domain.FlightOffer
		want  int
	}{
		{name: "nonstop", offer: offers[0], want: 0},
		{name: "one stop", offer: offers[1], want: 1},
		{name: "two stops", offer: offers[2], want: 2},
		{name: "no itineraries", offer: domain.FlightOffer{}, want: 0},
		{name: "empty itinerary", offer: domain.FlightOffer{Itineraries: []domain.Itinerary{{}}}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OutboundStops(tt.offer)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
		})
	}
}

func TestOutboundStops_IgnoresReturn(t *testing.T) {
	o := withReturn(createTestOffer("rt", 200, "PT5H"), "PT9H",
		seg("LAX", "DEN", "AA", "2026-11-27T08:00:00", "2026-11-27T11:00:00"),
		seg("DEN", "JFK", "AA", "2026-11-27T12:00:00", "2026-11-27T18:00:00"),
	)

	assert.Equal(t, 0, OutboundStops(o))
	assert.Equal(t, 300, OutboundDurationMinutes(o))
}

func TestDepartureHourFraction(t *testing.T) {
	assert.InDelta(t, 14.5, DepartureHourFraction(domain.MustParseLocalDateTime("2026-11-20T14:30:00")), 1e-9)
	assert.InDelta(t, 0.0, DepartureHourFraction(domain.MustParseLocalDateTime("2026-11-20T00:00:00")), 1e-9)
	assert.InDelta(t, 23.75, DepartureHourFraction(domain.MustParseLocalDateTime("2026-11-20T23:45:00")), 1e-9)
}

func TestFirstDepartureAndLastArrival(t *testing.T) {
	o := createTestOffers()[1]

	dep, ok := FirstDeparture(o)
	require.True(t, ok)
	assert.Equal(t, "2026-11-20T06:15:00", dep.String())

	arr, ok := LastArrival(o)
	require.True(t, ok)
	assert.Equal(t, "2026-11-20T12:45:00", arr.String())

	_, ok = FirstDeparture(domain.FlightOffer{})
	assert.False(t, ok)
	_, ok = LastArrival(domain.FlightOffer{})
	assert.False(t, ok)
}

func TestConnectingAirports(t *testing.T) {
	offers := createTestOffers()

	assert.Empty(t, ConnectingAirports(offers[0]))
	assert.Equal(t, []string{"ORD"}, ConnectingAirports(offers[1]))
	assert.Equal(t, []string{"DEN", "PHX"}, ConnectingAirports(offers[2]))

	rt := withReturn(offers[1], "PT6H",
		seg("LAX", "SLC", "DL", "2026-11-27T08:00:00", "2026-11-27T10:00:00"),
		seg("SLC", "JFK", "DL", "2026-11-27T11:00:00", "2026-11-27T17:00:00"),
	)
	assert.Equal(t, []string{"ORD", "SLC"}, ConnectingAirports(rt))
}

func TestLayoverDuration(t *testing.T) {
	tests := []struct {
		name    string
		arrival string
		depart  string
		want    Layover
		text    string
		wantErr bool
	}{
		{name: "hours and minutes", arrival: "2026-11-20T08:00:00", depart: "2026-11-20T09:05:00", want: Layover{Hours: 1, Minutes: 5}, text: "1h 5m"},
		{name: "minutes only", arrival: "2026-11-20T08:00:00", depart: "2026-11-20T08:45:00", want: Layover{Minutes: 45}, text: "45m"},
		{name: "whole hours", arrival: "2026-11-20T22:00:00", depart: "2026-11-21T00:00:00", want: Layover{Hours: 2}, text: "2h"},
		{name: "zero gap", arrival: "2026-11-20T08:00:00", depart: "2026-11-20T08:00:00", want: Layover{}, text: "0m"},
		{name: "seconds floored", arrival: "2026-11-20T08:00:00", depart: "2026-11-20T08:10:59", want: Layover{Minutes: 10}, text: "10m"},
		{name: "negative gap", arrival: "2026-11-20T10:00:00", depart: "2026-11-20T09:00:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LayoverDuration(
				domain.MustParseLocalDateTime(tt.arrival),
				domain.MustParseLocalDateTime(tt.depart),
			)

			if tt.wantErr {
				require.Error(t, err)
				_, ok := domain.AsDataQualityFault(err)
				assert.True(t, ok)
				assert.Equal(t, Layover{}, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.text, got.String())
		})
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "5h 30m", FormatDuration(330))
	assert.Equal(t, "45m", FormatDuration(45))
	assert.Equal(t, "2h", FormatDuration(120))
	assert.Equal(t, "0m", FormatDuration(0))
}

func TestUniqueAirlines(t *testing.T) {
	assert.Equal(t, []string{"AA", "B6", "DL", "UA"}, UniqueAirlines(createTestOffers()))
	assert.Empty(t, UniqueAirlines(nil))
}

func TestUniqueConnectingAirports(t *testing.T) {
	assert.Equal(t, []string{"DEN", "ORD", "PHX"}, UniqueConnectingAirports(createTestOffers()))
}

func TestPriceBounds(t *testing.T) {
	min, max := PriceBounds(createTestOffers())
	assert.Equal(t, 150.0, min)
	assert.Equal(t, 481.0, max)

	min, max = PriceBounds(nil)
	assert.Equal(t, 0.0, min)
	assert.Equal(t, float64(domain.DefaultMaxPrice), max)
}

func TestPriceBounds_RoundsOutward(t *testing.T) {
	tests := []struct {
		name    string
		amounts []float64
		wantMin float64
		wantMax float64
	}{
		{name: "fractional bounds widen", amounts: []float64{199.10, 349.00, 229.75}, wantMin: 199, wantMax: 349},
		{name: "max rounds up", amounts: []float64{120.99, 180.01}, wantMin: 120, wantMax: 181},
		{name: "whole amounts unchanged", amounts: []float64{100, 200}, wantMin: 100, wantMax: 200},
		{name: "single offer", amounts: []float64{99.5}, wantMin: 99, wantMax: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offers := make([]domain.FlightOffer, len(tt.amounts))
			for i, amount := range tt.amounts {
				offers[i] = domain.FlightOffer{Price: domain.Price{Amount: amount}}
			}
			min, max := PriceBounds(offers)
			assert.Equal(t, tt.wantMin, min)
			assert.Equal(t, tt.wantMax, max)
		})
	}
}

func TestDurationBounds(t *testing.T) {
	min, max := DurationBounds(createTestOffers())
	assert.Equal(t, 360, min)
	assert.Equal(t, 660, max)

	min, max = DurationBounds(nil)
	assert.Equal(t, 0, min)
	assert.Equal(t, domain.DefaultMaxDurationMinutes, max)
}
