package amadeus

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/skysearch/internal/domain"
)

func intPtr(n int) *int { return &n }

const sampleOfferJSON = `{
  "id": "1",
  "source": "GDS",
  "instantTicketingRequired": false,
  "numberOfBookableSeats": 4,
  "itineraries": [{
    "duration": "PT8H30M",
    "segments": [
      {
        "departure": {"iataCode": "JFK", "terminal": "4", "at": "2026-11-20T06:15:00"},
        "arrival": {"iataCode": "ORD", "at": "2026-11-20T08:05:00"},
        "carrierCode": "DL", "number": "1102", "aircraft": {"code": "321"},
        "duration": "PT2H50M", "id": "1", "numberOfStops": 0
      },
      {
        "departure": {"iataCode": "ORD", "at": "2026-11-20T09:40:00"},
        "arrival": {"iataCode": "LAX", "terminal": "2", "at": "2026-11-20T12:45:00"},
        "carrierCode": "DL", "number": "877", "aircraft": {"code": "739"},
        "operating": {"carrierCode": "AS"},
        "duration": "PT5H05M", "id": "2", "numberOfStops": 0
      }
    ]
  }],
  "price": {"currency": "USD", "total": "210.00", "base": "180.00", "grandTotal": "210.00"},
  "validatingAirlineCodes": ["DL"],
  "travelerPricings": [{
    "travelerId": "1", "fareOption": "STANDARD", "travelerType": "ADULT",
    "fareDetailsBySegment": [
      {"segmentId": "1", "cabin": "ECONOMY", "class": "T", "includedCheckedBags": {"quantity": 1}},
      {"segmentId": "2", "cabin": "ECONOMY", "class": "T", "includedCheckedBags": {"quantity": 2}}
    ]
  }]
}`

func TestNormalize_FullOffer(t *testing.T) {
	var raw Offer
	require.NoError(t, json.Unmarshal([]byte(sampleOfferJSON), &raw))

	offer, faults := Normalize(raw, map[string]string{"AS": "ALASKA AIRLINES", "DL": "DELTA AIR LINES"})
	require.Empty(t, faults)

	assert.Equal(t, "1", offer.ID)
	assert.Equal(t, 210.0, offer.Price.Amount)
	assert.Equal(t, "210.00", offer.Price.GrandTotal)
	assert.Equal(t, []string{"DL"}, offer.ValidatingAirlineCodes)
	require.NotNil(t, offer.NumberOfBookableSeats)
	assert.Equal(t, 4, *offer.NumberOfBookableSeats)

	require.Len(t, offer.Itineraries, 1)
	segs := offer.Itineraries[0].Segments
	require.Len(t, segs, 2)

	assert.Equal(t, "DL", segs[0].CarrierCode)
	assert.Equal(t, "DELTA AIR LINES", segs[0].CarrierName)
	assert.Equal(t, "321", segs[0].AircraftCode)
	assert.Equal(t, "Airbus A321", segs[0].AircraftName)
	assert.Equal(t, domain.Amenities{WiFi: true, Power: true, Estimated: true}, segs[0].Amenities)
	assert.Equal(t, "Boeing 737-900", segs[1].AircraftName)
	assert.Equal(t, domain.Amenities{Estimated: true}, segs[1].Amenities)
	assert.Equal(t, "4", segs[0].Departure.Terminal)
	assert.Equal(t, domain.MustParseLocalDateTime("2026-11-20T06:15:00"), segs[0].Departure.At)

	assert.Equal(t, "AS", segs[1].CarrierCode, "operating carrier wins")
	assert.Equal(t, "ALASKA AIRLINES", segs[1].CarrierName)

	require.NotNil(t, offer.Baggage)
	assert.Equal(t, domain.CarryOnAllowance{Included: true, Quantity: 1, Estimated: true}, offer.Baggage.CarryOn)
	assert.Equal(t, domain.CheckedAllowance{Included: true, Quantity: 2, Weight: "46kg"}, offer.Baggage.Checked)
}

func TestNormalize_Fallbacks(t *testing.T) {
	raw := Offer{
		ID:                    "9",
		ValidatingAirlineCode: "UA",
		Price:                 OfferPrice{Currency: "USD", GrandTotal: "abc"},
		Itineraries: []Itinerary{{
			Duration: "PT3H",
			Segments: []Segment{{
				Departure:   Endpoint{IATACode: "SFO", At: "not-a-time"},
				Arrival:     Endpoint{IATACode: "SEA", At: "2026-11-20T11:00:00"},
				CarrierCode: "UA",
			}},
		}},
	}

	offer, faults := Normalize(raw, nil)

	assert.Equal(t, "GDS", offer.Source)
	assert.Equal(t, []string{"UA"}, offer.ValidatingAirlineCodes)
	assert.Zero(t, offer.Price.Amount)
	assert.True(t, offer.Itineraries[0].Segments[0].Departure.At.IsZero())
	assert.Nil(t, offer.Baggage)

	require.Len(t, faults, 2)
	fields := make([]string, 0, len(faults))
	for _, f := range faults {
		dq, ok := domain.AsDataQualityFault(f)
		require.True(t, ok)
		fields = append(fields, dq.Field)
	}
	assert.ElementsMatch(t, []string{"price.grandTotal", "segment.departure.at"}, fields)
}

func TestAircraftName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{code: "77W", want: "Boeing 777-300ER"},
		{code: "32N", want: "Airbus A320neo"},
		{code: "E75", want: "Embraer E175"},
		{code: "DH4", want: "Dash 8-400"},
		{code: "32B", want: "32B"},
		{code: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, AircraftName(tt.code))
		})
	}
}

func TestEstimatedAmenities(t *testing.T) {
	tests := []struct {
		name string
		code string
		want domain.Amenities
	}{
		{name: "wide body", code: "789", want: domain.Amenities{WiFi: true, Power: true, Entertainment: true, Estimated: true}},
		{name: "wide body airbus", code: "35K", want: domain.Amenities{WiFi: true, Power: true, Entertainment: true, Estimated: true}},
		{name: "modern narrow body", code: "7M8", want: domain.Amenities{WiFi: true, Power: true, Estimated: true}},
		{name: "older narrow body", code: "738", want: domain.Amenities{Estimated: true}},
		{name: "regional", code: "CR9", want: domain.Amenities{Estimated: true}},
		{name: "unknown", code: "XYZ", want: domain.Amenities{Estimated: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimatedAmenities(tt.code))
		})
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "320.50", want: 320.5},
		{in: "150.256", want: 150.26},
		{in: " 99 ", want: 99},
		{in: "0.00", want: 0},
		{in: "", wantErr: true},
		{in: "1,200.00", wantErr: true},
		{in: "NaN", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMoney(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Zero(t, got)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestExtractBaggage(t *testing.T) {
	tests := []struct {
		name     string
		pricings []TravelerPricing
		want     *domain.BaggageInfo
	}{
		{
			name: "no traveler pricing",
			want: nil,
		},
		{
			name:     "no fare details",
			pricings: []TravelerPricing{{TravelerID: "1"}},
			want:     nil,
		},
		{
			name: "no checked allowance",
			pricings: []TravelerPricing{{FareDetailsBySegment: []FareDetail{
				{SegmentID: "1"},
			}}},
			want: &domain.BaggageInfo{
				CarryOn: domain.CarryOnAllowance{Included: true, Quantity: 1, Estimated: true},
			},
		},
		{
			name: "weight-only allowance counts as one bag",
			pricings: []TravelerPricing{{FareDetailsBySegment: []FareDetail{
				{IncludedCheckedBags: &BagAllowance{Weight: intPtr(30), WeightUnit: "KG"}},
			}}},
			want: &domain.BaggageInfo{
				CarryOn: domain.CarryOnAllowance{Included: true, Quantity: 1, Estimated: true},
				Checked: domain.CheckedAllowance{Included: true, Quantity: 1, Weight: "23kg"},
			},
		},
		{
			name: "reported cabin bags are not estimated",
			pricings: []TravelerPricing{{FareDetailsBySegment: []FareDetail{
				{IncludedCabinBags: &BagAllowance{Quantity: intPtr(0)}},
				{IncludedCabinBags: &BagAllowance{Quantity: intPtr(1)}},
			}}},
			want: &domain.BaggageInfo{
				CarryOn: domain.CarryOnAllowance{Included: false, Quantity: 0},
			},
		},
		{
			name: "only the first traveler is read",
			pricings: []TravelerPricing{
				{FareDetailsBySegment: []FareDetail{{IncludedCheckedBags: &BagAllowance{Quantity: intPtr(1)}}}},
				{FareDetailsBySegment: []FareDetail{{IncludedCheckedBags: &BagAllowance{Quantity: intPtr(3)}}}},
			},
			want: &domain.BaggageInfo{
				CarryOn: domain.CarryOnAllowance{Included: true, Quantity: 1, Estimated: true},
				Checked: domain.CheckedAllowance{Included: true, Quantity: 1, Weight: "23kg"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractBaggage(tt.pricings))
		})
	}
}

func TestNormalizeAirport(t *testing.T) {
	tests := []struct {
		name string
		loc  Location
		want domain.Airport
	}{
		{
			name: "with address",
			loc: Location{IATACode: "LHR", Name: "HEATHROW", Address: &Address{CityName: "LONDON", CountryCode: "GB"}},
			want: domain.Airport{IATACode: "LHR", Name: "HEATHROW", CityName: "LONDON", CountryCode: "GB"},
		},
		{
			name: "city falls back to name",
			loc:  Location{IATACode: "XYZ", Name: "REMOTE FIELD"},
			want: domain.Airport{IATACode: "XYZ", Name: "REMOTE FIELD", CityName: "REMOTE FIELD"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeAirport(tt.loc))
		})
	}
}
