package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/spektr-org/fomezero/engine"
	"github.com/spektr-org/fomezero/helpers"
	"github.com/spektr-org/fomezero/views"
)

// Output formats.
const (
	formatJSON   = "json"
	formatPretty = "pretty"
	formatText   = "text"
	formatCSV    = "csv"
)

const defaultWidth = 80

func validateFormat(format string, allowed ...string) error {
	for _, f := range allowed {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("unsupported format %q: use one of %v", format, allowed)
}

// openOutput returns stdout, or a created file when path is set.
func openOutput(stdout io.Writer, path string) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, f.Close, nil
}

// chartWidth sizes bars to the terminal, leaving room for labels.
func chartWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth / 2
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth / 2
	}
	return width / 2
}

func writeJSON(w io.Writer, v interface{}, format string) error {
	var out []byte
	var err error
	if format == formatPretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// writePageText renders a page for a terminal.
func writePageText(w io.Writer, page *views.Page, width int) error {
	fmt.Fprintf(w, "%s: %s restaurants\n", page.Title, engine.FormatInt(page.RowCount))
	for _, warn := range page.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}

	if len(page.Metrics) > 0 {
		fmt.Fprintln(w)
		rows := make([][]string, len(page.Metrics))
		for i, m := range page.Metrics {
			rows[i] = []string{m.Label, engine.FormatValue(m.Value)}
		}
		if err := engine.WriteTable(w, []string{"Metric", "Value"}, rows); err != nil {
			return err
		}
	}
	for _, c := range page.Charts {
		fmt.Fprintln(w)
		if err := engine.WriteChart(w, c, width); err != nil {
			return err
		}
	}
	for _, t := range page.Tables {
		fmt.Fprintln(w)
		if err := engine.WriteTableData(w, t); err != nil {
			return err
		}
	}
	return nil
}

// writePageCSV writes every chart and table of a page as CSV blocks
// separated by blank lines, ready for a spreadsheet.
func writePageCSV(w io.Writer, page *views.Page) error {
	first := true
	block := func(headers []string, rows [][]string) error {
		if !first {
			fmt.Fprintln(w)
		}
		first = false
		return helpers.WriteCSV(w, headers, rows)
	}

	if len(page.Metrics) > 0 {
		rows := make([][]string, len(page.Metrics))
		for i, m := range page.Metrics {
			rows[i] = []string{m.Label, fmtNum(m.Value)}
		}
		if err := block([]string{"Metric", "Value"}, rows); err != nil {
			return err
		}
	}
	for _, c := range page.Charts {
		rows := [][]string{}
		if len(c.Series) > 0 {
			for _, p := range c.Series[0].Data {
				rows = append(rows, []string{p.Label, fmtNum(p.Value)})
			}
		}
		if err := block([]string{c.XAxis, c.YAxis}, rows); err != nil {
			return err
		}
	}
	for _, t := range page.Tables {
		headers := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			headers[i] = c.Label
		}
		if err := block(headers, t.Rows); err != nil {
			return err
		}
	}
	return nil
}

// fmtNum writes whole numbers without decimals and the rest with two,
// without thousands separators.
func fmtNum(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
