package engine

// ============================================================================
// CHART BUILDER — Produces ChartConfig from a MetricTable
// ============================================================================
// One series per chart, one point per group, values rounded to 2 decimals.
// An empty table still produces a chart with an empty series.
// ============================================================================

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// BuildChart produces a ChartConfig from an aggregated table.
func BuildChart(title string, t MetricTable, opts ...Option) *ChartConfig {
	cfg := applyOptions(opts)

	chart := &ChartConfig{
		ChartType:  cfg.ChartType,
		Title:      title,
		XAxis:      cfg.XAxis,
		YAxis:      cfg.YAxis,
		ShowLegend: cfg.ShowLegend,
		ShowGrid:   cfg.ChartType != "pie",
	}
	if chart.XAxis == "" {
		chart.XAxis = LabelForDimension(t.GroupBy)
	}
	if chart.YAxis == "" {
		chart.YAxis = LabelForDimension(t.Metric)
	}

	seriesName := cfg.SeriesName
	if seriesName == "" {
		seriesName = chart.YAxis
	}
	chart.Series = buildSingleSeries(t.Groups, seriesName)

	// pie slices are colored per point, other charts per series
	if chart.ChartType == "pie" {
		chart.Colors = assignColors(cfg.Palette, len(t.Groups))
	} else {
		chart.Colors = assignColors(cfg.Palette, len(chart.Series))
	}
	return chart
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

func buildSingleSeries(groups []Group, seriesName string) []ChartSeries {
	if seriesName == "" {
		seriesName = "Value"
	}

	points := make([]ChartPoint, 0, len(groups))
	for _, g := range groups {
		points = append(points, ChartPoint{
			Label: g.Key,
			Value: RoundTo2(g.Value),
		})
	}

	return []ChartSeries{{
		Name: seriesName,
		Data: points,
	}}
}

func assignColors(palette []string, count int) []string {
	if len(palette) == 0 {
		palette = defaultColors
	}
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = palette[i%len(palette)]
	}
	return colors
}
