package engine

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
)

// ============================================================================
// TEXT BUILDER — Plain-text renderings for terminals
// ============================================================================
// Tables are aligned with tabwriter; charts become horizontal bars scaled to
// the widest value.
// ============================================================================

// WriteTable prints columns and rows aligned, headers uppercased.
// Nothing is printed when there are no columns.
func WriteTable(w io.Writer, columns []string, rows [][]string) error {
	if len(columns) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = strings.ToUpper(c)
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// WriteTableData prints a TableData with its title and summary.
func WriteTableData(w io.Writer, t *TableData) error {
	if t == nil {
		return nil
	}
	if t.Title != "" {
		fmt.Fprintf(w, "%s\n", t.Title)
	}

	labels := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		labels[i] = c.Label
	}
	if err := WriteTable(w, labels, t.Rows); err != nil {
		return err
	}

	if t.Summary != nil {
		parts := make([]string, 0, len(t.Summary.Values))
		for _, c := range t.Columns {
			if v, ok := t.Summary.Values[c.Key]; ok {
				parts = append(parts, fmt.Sprintf("%s %s", c.Label, v))
			}
		}
		fmt.Fprintf(w, "%s: %s\n", t.Summary.Label, strings.Join(parts, ", "))
	}
	return nil
}

// WriteChart prints each point of the first series as a bar of at most
// width cells.
func WriteChart(w io.Writer, c *ChartConfig, width int) error {
	if c == nil {
		return nil
	}
	if width < 10 {
		width = 10
	}
	fmt.Fprintf(w, "%s\n", c.Title)
	if len(c.Series) == 0 || len(c.Series[0].Data) == 0 {
		_, err := fmt.Fprintln(w, "  (no data)")
		return err
	}

	points := c.Series[0].Data
	labelWidth := 0
	peak := 0.0
	for _, p := range points {
		labelWidth = max(labelWidth, len([]rune(p.Label)))
		peak = math.Max(peak, p.Value)
	}

	for _, p := range points {
		bar := 0
		if peak > 0 {
			bar = int(math.Round(p.Value / peak * float64(width)))
		}
		pad := strings.Repeat(" ", labelWidth-len([]rune(p.Label)))
		if _, err := fmt.Fprintf(w, "  %s%s  %s %s\n", p.Label, pad, strings.Repeat("█", bar), FormatValue(p.Value)); err != nil {
			return err
		}
	}
	return nil
}
