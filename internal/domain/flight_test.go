package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlightOffer_Outbound(t *testing.T) {
	tests := []struct {
		name          string
		offer         FlightOffer
		wantOK        bool
		wantRoundTrip bool
	}{
		{name: "no itineraries", offer: FlightOffer{}, wantOK: false},
		{name: "one way", offer: FlightOffer{Itineraries: []Itinerary{{Duration: "PT5H"}}}, wantOK: true},
		{
			name:          "round trip",
			offer:         FlightOffer{Itineraries: []Itinerary{{Duration: "PT5H"}, {Duration: "PT6H"}}},
			wantOK:        true,
			wantRoundTrip: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, ok := tt.offer.Outbound()
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, "PT5H", it.Duration)
			}
			assert.Equal(t, tt.wantRoundTrip, tt.offer.IsRoundTrip())
		})
	}
}

func TestParseLocalDateTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "upstream layout",
			input: "2026-03-10T08:45:00",
			want:  time.Date(2026, 3, 10, 8, 45, 0, 0, time.UTC),
		},
		{
			name:  "offset dropped keeping wall clock",
			input: "2026-03-10T23:30:00+07:00",
			want:  time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC),
		},
		{
			name:  "minute precision",
			input: "2026-03-10T06:05",
			want:  time.Date(2026, 3, 10, 6, 5, 0, 0, time.UTC),
		},
		{name: "garbage", input: "tomorrow morning", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLocalDateTime(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Time), "got %s", got)
		})
	}
}

func TestLocalDateTime_JSON(t *testing.T) {
	ep := SegmentEndpoint{IATACode: "JFK", At: MustParseLocalDateTime("2026-03-10T08:45:00")}

	data, err := json.Marshal(ep)
	require.NoError(t, err)
	assert.JSONEq(t, `{"iataCode":"JFK","at":"2026-03-10T08:45:00"}`, string(data))

	var decoded SegmentEndpoint
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ep.At.String(), decoded.At.String())

	var empty SegmentEndpoint
	require.NoError(t, json.Unmarshal([]byte(`{"iataCode":"LHR","at":""}`), &empty))
	assert.True(t, empty.At.IsZero())
	assert.Equal(t, "", empty.At.String())
}

func TestMustParseLocalDateTime_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParseLocalDateTime("nope") })
}
