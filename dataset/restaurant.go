// Package dataset loads the restaurant source into an immutable Table.
//
// Loading parses the comma-delimited source, adds the derived columns
// (country name, price tier, color name), normalizes headers, drops every
// row with a missing value and keeps only the first listed cuisine. The
// resulting Table is read through engine.RecordView; nothing mutates it
// afterwards.
package dataset

import (
	"strconv"
	"strings"

	"github.com/spektr-org/fomezero/lookup"
	"github.com/spektr-org/fomezero/schema"
)

// Restaurant is one complete row of the loaded table.
type Restaurant struct {
	ID                string  `json:"restaurant_id"`
	Name              string  `json:"restaurant_name"`
	CountryCode       int     `json:"country_code"`
	CountryName       string  `json:"country_name"`
	City              string  `json:"city"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	Cuisine           string  `json:"cuisines"`
	AverageCostForTwo float64 `json:"average_cost_for_two"`
	PriceRange        int     `json:"price_range"`
	PriceTier         string  `json:"price_tier"`
	AggregateRating   float64 `json:"aggregate_rating"`
	Votes             int     `json:"votes"`
	RatingColor       string  `json:"rating_color"`
	ColorName         string  `json:"color_name"`
	HasOnlineDelivery bool    `json:"has_online_delivery"`
	IsDeliveringNow   bool    `json:"is_delivering_now"`

	// every column of the table, aligned with Table.Columns
	cells []string
}

// Cell returns the value of column i as it appears in the cleaned table.
func (r Restaurant) Cell(i int) string {
	if i < 0 || i >= len(r.cells) {
		return ""
	}
	return r.cells[i]
}

// PrimaryCuisine keeps the text before the first comma. Values without a
// comma pass through unchanged; no whitespace is trimmed.
func PrimaryCuisine(cuisines string) string {
	first, _, _ := strings.Cut(cuisines, ",")
	return first
}

// naTokens are the cell values read as missing, matching the usual
// dataframe defaults.
var naTokens = map[string]bool{
	"":         true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"-1.#IND":  true,
	"-1.#QNAN": true,
	"-NaN":     true,
	"-nan":     true,
	"1.#IND":   true,
	"1.#QNAN":  true,
	"<NA>":     true,
	"N/A":      true,
	"NA":       true,
	"NULL":     true,
	"NaN":      true,
	"None":     true,
	"n/a":      true,
	"nan":      true,
	"null":     true,
}

// IsMissing reports whether a raw cell counts as a missing value.
func IsMissing(cell string) bool {
	return naTokens[strings.TrimSpace(cell)]
}

// columnIndex maps a normalized field to its column position.
type columnIndex map[schema.Field]int

// parseRestaurant builds a Restaurant from a complete row. It reports false
// when a typed field does not parse or falls outside its domain; such a row
// is treated like one with a missing value.
func parseRestaurant(cells []string, idx columnIndex) (Restaurant, bool) {
	cell := func(f schema.Field) string { return strings.TrimSpace(cells[idx[f]]) }

	r := Restaurant{
		ID:          cell(schema.FieldRestaurantID),
		Name:        cells[idx[schema.FieldRestaurantName]],
		City:        cells[idx[schema.FieldCity]],
		Cuisine:     PrimaryCuisine(cells[idx[schema.FieldCuisines]]),
		RatingColor: cell(schema.FieldRatingColor),
		cells:       cells,
	}

	var err error
	if r.CountryCode, err = strconv.Atoi(cell(schema.FieldCountryCode)); err != nil {
		return Restaurant{}, false
	}
	if r.Latitude, err = strconv.ParseFloat(cell(schema.FieldLatitude), 64); err != nil {
		return Restaurant{}, false
	}
	if r.Longitude, err = strconv.ParseFloat(cell(schema.FieldLongitude), 64); err != nil {
		return Restaurant{}, false
	}
	if r.AverageCostForTwo, err = strconv.ParseFloat(cell(schema.FieldAverageCostForTwo), 64); err != nil || r.AverageCostForTwo < 0 {
		return Restaurant{}, false
	}
	if r.PriceRange, err = parseWhole(cell(schema.FieldPriceRange)); err != nil {
		return Restaurant{}, false
	}
	if r.AggregateRating, err = strconv.ParseFloat(cell(schema.FieldAggregateRating), 64); err != nil ||
		r.AggregateRating < 0 || r.AggregateRating > 5 {
		return Restaurant{}, false
	}
	if r.Votes, err = parseWhole(cell(schema.FieldVotes)); err != nil || r.Votes < 0 {
		return Restaurant{}, false
	}
	if r.HasOnlineDelivery, err = strconv.ParseBool(cell(schema.FieldHasOnlineDelivery)); err != nil {
		return Restaurant{}, false
	}
	if r.IsDeliveringNow, err = strconv.ParseBool(cell(schema.FieldIsDeliveringNow)); err != nil {
		return Restaurant{}, false
	}

	r.CountryName = lookup.CountryName(r.CountryCode)
	r.PriceTier = lookup.PriceTier(r.PriceRange)
	r.ColorName = lookup.ColorName(r.RatingColor)
	return r, true
}

// parseWhole accepts "3" and "3.0".
func parseWhole(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, strconv.ErrSyntax
	}
	return int(f), nil
}

func boolMeasure(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
