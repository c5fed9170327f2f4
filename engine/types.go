package engine

// ============================================================================
// ENGINE TYPES — Filter and aggregation over restaurant views
// ============================================================================
// Record/RecordView give row access, Group/MetricTable carry grouped
// results, and ChartConfig/TableData/MapPoint are the render-ready shapes
// handed to whatever draws the page.
// ============================================================================

// ============================================================================
// RECORD — Generic data row
// ============================================================================

// Record is a single data row with string dimensions and numeric measures.
// Used for ad-hoc views; loaded tables read typed structs through a
// DomainAdapter instead.
type Record struct {
	Dimensions map[string]string  `json:"dimensions"`
	Measures   map[string]float64 `json:"measures"`
}

// Filters define which records to include.
// Keys are dimension names. Values are allowed values.
// OR within a dimension, AND across dimensions. Empty = all.
type Filters struct {
	Dimensions map[string][]string `json:"dimensions"`
}

// IsEmpty returns true if no filters are set.
func (f Filters) IsEmpty() bool {
	for _, vals := range f.Dimensions {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// ============================================================================
// GROUP — Intermediate computation result
// ============================================================================

// Group is one bucket of a grouped aggregation.
type Group struct {
	Key   string     `json:"key"`
	Value float64    `json:"value"`
	Count int        `json:"count"`
	View  RecordView `json:"-"` // rows in this group (zero-copy)
}

// MetricTable is one aggregate computed per group: the result of
// CountDistinct, CountRows, Sum, Mean or DerivedRatio.
type MetricTable struct {
	GroupBy string  `json:"groupBy"`
	Metric  string  `json:"metric"`
	Groups  []Group `json:"groups"`
}

// Len returns the number of groups.
func (t MetricTable) Len() int { return len(t.Groups) }

// Value returns the metric for a group key.
func (t MetricTable) Value(key string) (float64, bool) {
	for _, g := range t.Groups {
		if g.Key == key {
			return g.Value, true
		}
	}
	return 0, false
}

// Keys returns the group keys in table order.
func (t MetricTable) Keys() []string {
	keys := make([]string, len(t.Groups))
	for i, g := range t.Groups {
		keys[i] = g.Key
	}
	return keys
}

// As returns a copy of the table under another metric name.
func (t MetricTable) As(metric string) MetricTable {
	t.Metric = metric
	return t
}

// JoinedTable is the wide result of Join: one row per group key present in
// every input, one value column per input metric.
type JoinedTable struct {
	GroupBy string      `json:"groupBy"`
	Metrics []string    `json:"metrics"`
	Rows    []JoinedRow `json:"rows"`
}

// JoinedRow is one group of a JoinedTable. Values align with Metrics.
type JoinedRow struct {
	Key    string    `json:"key"`
	Values []float64 `json:"values"`
}

// Ranked is the chosen inner group for one outer group (RankWithin).
type Ranked struct {
	Outer string  `json:"outer"`
	Inner string  `json:"inner"`
	Value float64 `json:"value"`
}

// ============================================================================
// METRIC — Scalar headline value
// ============================================================================

// Metric is a single headline number of a page.
type Metric struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint represents a single data point.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// ============================================================================
// MAP TYPES
// ============================================================================

// MapPoint is one restaurant marker.
type MapPoint struct {
	RestaurantName  string  `json:"restaurant_name"`
	City            string  `json:"city"`
	CountryName     string  `json:"country_name"`
	AggregateRating float64 `json:"aggregate_rating"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
}
