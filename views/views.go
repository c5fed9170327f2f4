// Package views declares the dashboard pages as configuration over the
// shared filter and aggregation stages.
package views

import (
	"fmt"

	"github.com/spektr-org/fomezero/engine"
)

// Filter controls a view can accept besides countries and rating.
const (
	FilterCountries = "countries"
	FilterRating    = "rating"
	FilterCities    = "cities"
	FilterCuisines  = "cuisines"
)

// NoMatchesWarning is added to pages built from an empty filter result.
const NoMatchesWarning = "no restaurants match the selected filters"

// Page is the render-ready output of one view.
type Page struct {
	View     string                `json:"view"`
	Title    string                `json:"title"`
	RowCount int                   `json:"rowCount"`
	Metrics  []engine.Metric       `json:"metrics"`
	Charts   []*engine.ChartConfig `json:"charts"`
	Tables   []*engine.TableData   `json:"tables"`
	Points   []engine.MapPoint     `json:"points,omitempty"`
	Warnings []string              `json:"warnings,omitempty"`
}

// Section is one grouped metric shown as a chart, or as a table when
// Chart is empty.
type Section struct {
	Title  string
	Metric engine.MetricSpec
	// "bar" or "pie"; empty renders a table
	Chart string
	// chart palette; nil uses the default colors
	Colors []string
	// optional row predicate applied before the metric
	Where func(v engine.RecordView, i int) bool
}

// Ranking is a best/worst inner group per outer group table.
type Ranking struct {
	Title   string
	Outer   string
	Inner   string
	Measure string
	Desc    bool
}

// Summary joins several grouped metrics into one wide table.
type Summary struct {
	Title   string
	Metrics []engine.MetricSpec
}

// View is a page: which filters it takes and which numbers it shows.
type View struct {
	Name    string   `json:"name"`
	Title   string   `json:"title"`
	Filters []string `json:"filters"`
	Map     bool     `json:"map"`

	Scalars  []engine.ScalarSpec `json:"-"`
	Rankings []Ranking           `json:"-"`
	Sections []Section           `json:"-"`
	Summary  *Summary            `json:"-"`
}

// Accepts reports whether the view takes the given filter control.
func (v View) Accepts(filter string) bool {
	for _, f := range v.Filters {
		if f == filter {
			return true
		}
	}
	return false
}

// Build computes the page over an already filtered view.
func (v View) Build(rows engine.RecordView) (*Page, error) {
	page := &Page{
		View:     v.Name,
		Title:    v.Title,
		RowCount: rows.Len(),
		Metrics:  make([]engine.Metric, 0, len(v.Scalars)),
		Charts:   []*engine.ChartConfig{},
		Tables:   []*engine.TableData{},
	}
	if rows.Len() == 0 {
		page.Warnings = append(page.Warnings, NoMatchesWarning)
	}

	for _, s := range v.Scalars {
		m, err := engine.Scalar(rows, s)
		if err != nil {
			return nil, fmt.Errorf("view %s: %w", v.Name, err)
		}
		page.Metrics = append(page.Metrics, m)
	}

	for _, r := range v.Rankings {
		ranked := engine.RankWithin(rows, r.Outer, r.Inner, r.Measure, r.Desc)
		page.Tables = append(page.Tables, engine.BuildRankedTable(r.Title, ranked, r.Outer, r.Inner, r.Measure, labels))
	}

	for _, s := range v.Sections {
		subset := rows
		if s.Where != nil {
			subset = engine.Where(rows, s.Where)
		}
		t, err := engine.Execute(subset, s.Metric)
		if err != nil {
			return nil, fmt.Errorf("view %s: %w", v.Name, err)
		}
		if s.Chart == "" {
			page.Tables = append(page.Tables, engine.BuildMetricTable(s.Title, t, labels))
			continue
		}
		page.Charts = append(page.Charts, engine.BuildChart(s.Title, t,
			engine.WithChartType(s.Chart),
			engine.WithAxes(labels.For(t.GroupBy), labels.For(t.Metric)),
			engine.WithSeriesName(labels.For(t.Metric)),
			engine.WithPalette(s.Colors...),
			engine.WithLegend(s.Chart == "pie"),
		))
	}

	if v.Summary != nil {
		tables := make([]engine.MetricTable, 0, len(v.Summary.Metrics))
		for _, spec := range v.Summary.Metrics {
			t, err := engine.Execute(rows, spec)
			if err != nil {
				return nil, fmt.Errorf("view %s summary: %w", v.Name, err)
			}
			tables = append(tables, t)
		}
		page.Tables = append(page.Tables, engine.BuildJoinedTable(v.Summary.Title, engine.Join(tables...), labels))
	}

	if v.Map {
		page.Points = engine.BuildMapPoints(rows)
	}
	return page, nil
}
