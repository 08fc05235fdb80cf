package amadeus

import "github.com/flight-search/skysearch/internal/domain"

// aircraftNames maps IATA equipment codes to display names.
var aircraftNames = map[string]string{
	// Boeing
	"737": "Boeing 737",
	"738": "Boeing 737-800",
	"73H": "Boeing 737-800",
	"739": "Boeing 737-900",
	"7M8": "Boeing 737 MAX 8",
	"7M9": "Boeing 737 MAX 9",
	"744": "Boeing 747-400",
	"748": "Boeing 747-8",
	"757": "Boeing 757",
	"752": "Boeing 757-200",
	"753": "Boeing 757-300",
	"763": "Boeing 767-300",
	"764": "Boeing 767-400",
	"772": "Boeing 777-200",
	"773": "Boeing 777-300",
	"77W": "Boeing 777-300ER",
	"787": "Boeing 787 Dreamliner",
	"788": "Boeing 787-8",
	"789": "Boeing 787-9",
	"78X": "Boeing 787-10",

	// Airbus
	"319": "Airbus A319",
	"320": "Airbus A320",
	"32N": "Airbus A320neo",
	"321": "Airbus A321",
	"32Q": "Airbus A321neo",
	"332": "Airbus A330-200",
	"333": "Airbus A330-300",
	"338": "Airbus A330-800neo",
	"339": "Airbus A330-900neo",
	"342": "Airbus A340-200",
	"343": "Airbus A340-300",
	"346": "Airbus A340-600",
	"351": "Airbus A350-900",
	"359": "Airbus A350-900",
	"35K": "Airbus A350-1000",
	"380": "Airbus A380",
	"388": "Airbus A380-800",

	// Regional
	"E70": "Embraer E170",
	"E75": "Embraer E175",
	"E7W": "Embraer E175",
	"E90": "Embraer E190",
	"E95": "Embraer E195",
	"E9W": "Embraer E195",
	"CR2": "Bombardier CRJ-200",
	"CR7": "Bombardier CRJ-700",
	"CR9": "Bombardier CRJ-900",
	"CRJ": "Bombardier CRJ",
	"AT7": "ATR 72",
	"ATR": "ATR",
	"DH4": "Dash 8-400",
}

// Equipment classes used for amenity estimates.
var (
	wideBodyAircraft = setOf(
		"744", "748", "763", "764", "772", "773", "77W", "787", "788", "789", "78X",
		"332", "333", "338", "339", "342", "343", "346", "351", "359", "35K", "380", "388",
	)
	modernNarrowBodyAircraft = setOf("7M8", "7M9", "32N", "32Q", "321")
)

// AircraftName returns the display name for an equipment code, or the code
// itself when unknown.
func AircraftName(code string) string {
	if name, ok := aircraftNames[code]; ok {
		return name
	}
	return code
}

// EstimatedAmenities guesses on-board amenities from the equipment class.
// Upstream does not report amenities, so the result is always Estimated.
func EstimatedAmenities(code string) domain.Amenities {
	switch {
	case wideBodyAircraft[code]:
		return domain.Amenities{WiFi: true, Power: true, Entertainment: true, Estimated: true}
	case modernNarrowBodyAircraft[code]:
		return domain.Amenities{WiFi: true, Power: true, Estimated: true}
	default:
		return domain.Amenities{Estimated: true}
	}
}

func setOf(codes ...string) map[string]bool {
	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		set[c] = true
	}
	return set
}
