package helpers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ============================================================================
// CSV HELPER — Raw comma-delimited reading and writing
// ============================================================================
// Reads a header row plus data rows as plain strings. Interpretation of the
// cells (types, missing values, derived columns) belongs to the dataset
// package; this file only knows about the wire format.
// ============================================================================

// ErrNoHeader is returned when the source has no header row.
var ErrNoHeader = errors.New("no header row")

// RowError reports a data row that cannot be aligned with the header.
type RowError struct {
	Line  int // 1-based line in the source
	Cells int
	Want  int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %d cells for %d columns", e.Line, e.Cells, e.Want)
}

// ReadCSV reads the header row and every data row. Rows shorter than the
// header are returned as is so the caller can treat the absent cells as
// missing; rows longer than the header and quoting errors fail the read.
func ReadCSV(r io.Reader) (headers []string, rows [][]string, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = false

	headers, err = reader.Read()
	if err == io.EOF {
		return nil, nil, ErrNoHeader
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if len(row) > len(headers) {
			line, _ := reader.FieldPos(0)
			return nil, nil, &RowError{Line: line, Cells: len(row), Want: len(headers)}
		}
		rows = append(rows, row)
	}

	return headers, rows, nil
}

// WriteCSV writes a header row followed by rows, comma-delimited.
func WriteCSV(w io.Writer, headers []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return nil
}
