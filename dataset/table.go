package dataset

import (
	"github.com/spektr-org/fomezero/engine"
	"github.com/spektr-org/fomezero/schema"
)

// Table is the cleaned, immutable restaurant table.
type Table struct {
	Source string

	columns    []schema.Field
	rows       []Restaurant
	sourceRows int
	view       engine.RecordView
}

func newTable(source string, columns []schema.Field, rows []Restaurant, sourceRows int) *Table {
	t := &Table{
		Source:     source,
		columns:    columns,
		rows:       rows,
		sourceRows: sourceRows,
	}
	t.view = bindView(columns, rows)
	return t
}

// Len returns the number of complete rows.
func (t *Table) Len() int { return len(t.rows) }

// Rows returns a copy of the loaded rows in source order.
func (t *Table) Rows() []Restaurant {
	out := make([]Restaurant, len(t.rows))
	copy(out, t.rows)
	return out
}

// Columns returns the normalized column names, derived columns last.
func (t *Table) Columns() []schema.Field {
	out := make([]schema.Field, len(t.columns))
	copy(out, t.columns)
	return out
}

// SourceRows returns the number of data rows in the source.
func (t *Table) SourceRows() int { return t.sourceRows }

// DroppedRows returns the number of rows removed for missing values.
func (t *Table) DroppedRows() int { return t.sourceRows - len(t.rows) }

// View returns the table as an engine.RecordView. Every column is a
// dimension holding its cleaned cell; numeric fields are also measures.
func (t *Table) View() engine.RecordView { return t.view }

// Options returns the selectable filter values of the whole table.
func (t *Table) Options() Options { return OptionsOf(t.view) }

// Options lists distinct filter values in first-seen order.
type Options struct {
	Countries []string `json:"countries"`
	Cities    []string `json:"cities"`
	Cuisines  []string `json:"cuisines"`
}

// OptionsOf collects the filter values present in view.
func OptionsOf(view engine.RecordView) Options {
	return Options{
		Countries: nonNil(engine.UniqueValues(view, schema.FieldCountryName.String())),
		Cities:    nonNil(engine.UniqueValues(view, schema.FieldCity.String())),
		Cuisines:  nonNil(engine.UniqueValues(view, schema.FieldCuisines.String())),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// bindView registers one dimension per column and typed measures.
func bindView(columns []schema.Field, rows []Restaurant) engine.RecordView {
	adapter := engine.NewDomainAdapter[Restaurant]()
	for i, c := range columns {
		adapter.Dimension(c.String(), func(r Restaurant) string { return r.Cell(i) })
	}

	adapter.
		Measure(schema.FieldAggregateRating.String(), func(r Restaurant) float64 { return r.AggregateRating }).
		Measure(schema.FieldAverageCostForTwo.String(), func(r Restaurant) float64 { return r.AverageCostForTwo }).
		Measure(schema.FieldVotes.String(), func(r Restaurant) float64 { return float64(r.Votes) }).
		Measure(schema.FieldLatitude.String(), func(r Restaurant) float64 { return r.Latitude }).
		Measure(schema.FieldLongitude.String(), func(r Restaurant) float64 { return r.Longitude }).
		Measure(schema.FieldHasOnlineDelivery.String(), func(r Restaurant) float64 { return boolMeasure(r.HasOnlineDelivery) }).
		Measure(schema.FieldIsDeliveringNow.String(), func(r Restaurant) float64 { return boolMeasure(r.IsDeliveringNow) })

	return adapter.Bind(rows)
}
