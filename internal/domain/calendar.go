package domain

// SeriesPoint is the cheapest fare for one departure date of a price series.
type SeriesPoint struct {
	// Date is the departure date (YYYY-MM-DD)
	Date string `json:"date"`

	// ReturnDate is the paired return date for round trips
	ReturnDate string `json:"returnDate,omitempty"`

	// Price is the cheapest observed amount, 0 when unavailable
	Price float64 `json:"price"`

	// Available is false until a fetch for this date succeeds with at least one offer
	Available bool `json:"available"`

	// TripDurationDays is the round-trip length applied to this point, 0 for one-way
	TripDurationDays int `json:"tripDurationDays"`

	// Selected marks the user's currently selected departure date
	Selected bool `json:"selected"`

	// Lowest marks the cheapest available point(s)
	Lowest bool `json:"lowest"`

	// Weekend is true for Saturday and Sunday departures
	Weekend bool `json:"weekend"`

	// FilteredOut is set by a filter overlay when no offer on this date
	// survives the active filters
	FilteredOut bool `json:"filteredOut,omitempty"`

	// OriginalPrice is the unfiltered cheapest fare once an overlay replaced Price
	OriginalPrice float64 `json:"originalPrice,omitempty"`
}

// SeriesStats summarizes the available points of a series.
type SeriesStats struct {
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Avg       float64 `json:"avg"`
	Available int     `json:"available"`
}

// PriceSeries is the single-axis price view around a departure date.
type PriceSeries struct {
	// Points are in ascending date order
	Points []SeriesPoint `json:"points"`

	// TripDurationDays is the trip length used for every round-trip point
	TripDurationDays int `json:"tripDurationDays"`

	LowestPrice  float64     `json:"lowestPrice"`
	HighestPrice float64     `json:"highestPrice"`
	Stats        SeriesStats `json:"stats"`

	// RequestsIssued counts upstream calls made during the build
	RequestsIssued int `json:"requestsIssued"`

	// RateLimited is true when the provider throttled the build
	RateLimited bool `json:"rateLimited"`

	// Filtered is true when the points reflect the client's active filters
	Filtered bool `json:"filtered"`
}

// GridCell is the cheapest fare for one departure/return pair.
type GridCell struct {
	DepartureDate    string  `json:"departureDate"`
	ReturnDate       string  `json:"returnDate"`
	Price            float64 `json:"price"`
	Available        bool    `json:"available"`
	TripDurationDays int     `json:"tripDurationDays"`
	Selected         bool    `json:"selected"`
	Lowest           bool    `json:"lowest"`
}

// PriceGrid is the departure × return price matrix.
// Cells[r][c] pairs ReturnDates[r] with DepartureDates[c]; both axes cover the
// visible window only.
type PriceGrid struct {
	DepartureDates []string     `json:"departureDates"`
	ReturnDates    []string     `json:"returnDates"`
	Cells          [][]GridCell `json:"cells"`

	// ColOffset and RowOffset locate the window within the full date range
	ColOffset int `json:"colOffset"`
	RowOffset int `json:"rowOffset"`

	// TotalColumns and TotalRows are the sizes of the full scrollable range
	TotalColumns int `json:"totalColumns"`
	TotalRows    int `json:"totalRows"`

	LowestPrice    float64 `json:"lowestPrice"`
	HighestPrice   float64 `json:"highestPrice"`
	RequestsIssued int     `json:"requestsIssued"`
	RateLimited    bool    `json:"rateLimited"`
}

// Cell returns the cell for a departure/return date pair.
func (g *PriceGrid) Cell(departureDate, returnDate string) (GridCell, bool) {
	col := indexOf(g.DepartureDates, departureDate)
	row := indexOf(g.ReturnDates, returnDate)
	if col < 0 || row < 0 || row >= len(g.Cells) || col >= len(g.Cells[row]) {
		return GridCell{}, false
	}
	return g.Cells[row][col], true
}

func indexOf(values []string, v string) int {
	for i, s := range values {
		if s == v {
			return i
		}
	}
	return -1
}
