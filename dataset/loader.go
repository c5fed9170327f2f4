package dataset

import (
	"fmt"
	"io"
	"os"

	"github.com/spektr-org/fomezero/helpers"
	"github.com/spektr-org/fomezero/schema"
)

// ============================================================================
// LOADER — source file → cleaned Table
// ============================================================================
// Steps, in order:
//   1. parse header + rows
//   2. normalize headers (derived columns included)
//   3. drop rows with any missing or unparseable value, keeping order
//   4. derive country name, price tier and color name from the parsed row
//   5. keep the first listed cuisine
// ============================================================================

// MalformedSourceError reports a source that cannot be loaded at all.
type MalformedSourceError struct {
	Source string
	Reason string
	Err    error
}

func (e *MalformedSourceError) Error() string {
	msg := fmt.Sprintf("malformed source %s: %s", e.Source, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedSourceError) Unwrap() error { return e.Err }

// LoadFile loads the source at path.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &MalformedSourceError{Source: path, Reason: "cannot open source", Err: err}
	}
	defer f.Close()

	return load(f, path)
}

// Load loads a source from r.
func Load(r io.Reader) (*Table, error) {
	return load(r, "<reader>")
}

func load(r io.Reader, source string) (*Table, error) {
	headers, rows, err := helpers.ReadCSV(r)
	if err != nil {
		return nil, &MalformedSourceError{Source: source, Reason: "cannot parse CSV", Err: err}
	}

	raw := make([]string, 0, len(headers)+3)
	raw = append(raw, headers...)
	raw = append(raw, schema.HeaderCountryName, schema.HeaderPriceTier, schema.HeaderColorName)

	columns, err := schema.NormalizeHeaders(raw)
	if err != nil {
		return nil, &MalformedSourceError{Source: source, Reason: "invalid header", Err: err}
	}

	idx := make(columnIndex, len(columns))
	for i, c := range columns {
		idx[c] = i
	}
	for _, f := range schema.RequiredSourceFields() {
		if _, ok := idx[f]; !ok {
			return nil, &MalformedSourceError{Source: source, Reason: fmt.Sprintf("missing required column %q", f)}
		}
	}

	width := len(headers)
	cuisineCol := idx[schema.FieldCuisines]

	restaurants := make([]Restaurant, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(columns))
		copy(cells, row)
		if len(row) < width || hasMissing(cells[:width]) {
			continue
		}
		rec, ok := parseRestaurant(cells, idx)
		if !ok {
			continue
		}

		// derived cells mirror the parsed row
		cells[cuisineCol] = rec.Cuisine
		cells[width] = rec.CountryName
		cells[width+1] = rec.PriceTier
		cells[width+2] = rec.ColorName
		restaurants = append(restaurants, rec)
	}

	return newTable(source, columns, restaurants, len(rows)), nil
}

func hasMissing(cells []string) bool {
	for _, c := range cells {
		if IsMissing(c) {
			return true
		}
	}
	return false
}
