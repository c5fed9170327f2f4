package engine

import (
	"fmt"
	"strings"
)

// ============================================================================
// TABLE BUILDER — Produces TableData from metric tables
// ============================================================================
// Column labels come from the caller's label map, falling back to the
// capitalized key. Numbers are formatted with FormatValue.
// ============================================================================

// Labels maps column keys to display labels.
type Labels map[string]string

func (l Labels) For(key string) string {
	if label, ok := l[key]; ok {
		return label
	}
	return LabelForDimension(key)
}

// BuildMetricTable renders one grouped metric as a two-column table.
// Additive metrics (row counts and sums) carry a total.
func BuildMetricTable(title string, t MetricTable, labels Labels) *TableData {
	columns := []Column{
		{Key: t.GroupBy, Label: labels.For(t.GroupBy), Type: "text", Align: "left"},
		{Key: t.Metric, Label: labels.For(t.Metric), Type: "number", Align: "right"},
	}

	rows := make([][]string, 0, len(t.Groups))
	var total float64
	for _, g := range t.Groups {
		rows = append(rows, []string{g.Key, FormatValue(g.Value)})
		total += g.Value
	}

	table := &TableData{Title: title, Columns: columns, Rows: rows}
	if isAdditive(t.Metric) {
		table.Summary = &Summary{
			Label:  fmt.Sprintf("Total (%d groups)", len(t.Groups)),
			Values: map[string]string{t.Metric: FormatValue(total)},
		}
	}
	return table
}

// BuildJoinedTable renders a Join result, one column per metric.
func BuildJoinedTable(title string, j JoinedTable, labels Labels) *TableData {
	columns := make([]Column, 0, len(j.Metrics)+1)
	columns = append(columns, Column{Key: j.GroupBy, Label: labels.For(j.GroupBy), Type: "text", Align: "left"})
	for _, m := range j.Metrics {
		columns = append(columns, Column{Key: m, Label: labels.For(m), Type: "number", Align: "right"})
	}

	rows := make([][]string, 0, len(j.Rows))
	for _, r := range j.Rows {
		row := make([]string, 0, len(columns))
		row = append(row, r.Key)
		for _, v := range r.Values {
			row = append(row, FormatValue(v))
		}
		rows = append(rows, row)
	}

	return &TableData{Title: title, Columns: columns, Rows: rows}
}

// BuildRankedTable renders RankWithin output.
func BuildRankedTable(title string, ranked []Ranked, outer, inner, measure string, labels Labels) *TableData {
	columns := []Column{
		{Key: outer, Label: labels.For(outer), Type: "text", Align: "left"},
		{Key: inner, Label: labels.For(inner), Type: "text", Align: "left"},
		{Key: measure, Label: labels.For(measure), Type: "number", Align: "right"},
	}

	rows := make([][]string, 0, len(ranked))
	for _, r := range ranked {
		rows = append(rows, []string{r.Outer, r.Inner, FormatValue(RoundTo2(r.Value))})
	}

	return &TableData{Title: title, Columns: columns, Rows: rows}
}

func isAdditive(metric string) bool {
	return metric == "rows" || strings.HasPrefix(metric, "sum_")
}
