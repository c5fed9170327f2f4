package engine

// ============================================================================
// BUILDER OPTIONS — Functional options for BuildChart()
// ============================================================================

// Option configures chart building via functional options pattern.
type Option func(*config)

type config struct {
	ChartType  string
	XAxis      string
	YAxis      string
	SeriesName string
	Palette    []string
	ShowLegend bool
}

// WithChartType sets the chart type ("bar", "pie", "line").
func WithChartType(chartType string) Option {
	return func(c *config) {
		c.ChartType = chartType
	}
}

// WithAxes sets the axis labels.
func WithAxes(x, y string) Option {
	return func(c *config) {
		c.XAxis = x
		c.YAxis = y
	}
}

// WithSeriesName names the single data series.
func WithSeriesName(name string) Option {
	return func(c *config) {
		c.SeriesName = name
	}
}

// WithPalette overrides the default colors.
func WithPalette(colors ...string) Option {
	return func(c *config) {
		if len(colors) > 0 {
			c.Palette = colors
		}
	}
}

// WithLegend toggles the legend.
func WithLegend(show bool) Option {
	return func(c *config) {
		c.ShowLegend = show
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		ChartType: "bar",
		Palette:   defaultColors,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
