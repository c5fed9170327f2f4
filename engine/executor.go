package engine

import (
	"strings"
)

// ============================================================================
// EXECUTOR — Declarative metric dispatch
// ============================================================================
// Pages describe their numbers as MetricSpec/ScalarSpec values; Execute and
// Scalar dispatch them to the aggregators. Unknown aggregations are a
// ValidationError, never a silent default.
// ============================================================================

// Grouped aggregations.
const (
	AggCountDistinct = "count_distinct"
	AggCountRows     = "count_rows"
	AggSum           = "sum"
	AggMean          = "mean"
	AggRatio         = "ratio"
)

// MetricSpec describes one grouped metric.
type MetricSpec struct {
	Key         string `json:"key"`               // metric name in the result; defaults to the aggregator's
	Aggregation string `json:"aggregation"`       // one of the Agg* constants
	GroupBy     string `json:"groupBy"`           // dimension key
	Field       string `json:"field,omitempty"`   // measure, or dimension for count_distinct
	IDField     string `json:"idField,omitempty"` // ratio denominator (distinct count)
	Top         int    `json:"top,omitempty"`     // keep the N largest groups; 0 = all
	Descending  bool   `json:"descending,omitempty"`
}

// With Top and Descending unset, groups come back ascending by key.
// Descending with Top 0 keeps every group, largest first.

// Execute computes spec over view.
func Execute(view RecordView, spec MetricSpec) (MetricTable, error) {
	if spec.GroupBy == "" {
		return MetricTable{}, ErrValidation("metric %q has no group-by dimension", spec.Key)
	}

	var t MetricTable
	switch strings.ToLower(spec.Aggregation) {
	case AggCountDistinct:
		if spec.Field == "" {
			return MetricTable{}, ErrValidation("metric %q: count_distinct needs a field", spec.Key)
		}
		t = CountDistinct(view, spec.GroupBy, spec.Field)
	case AggCountRows:
		t = CountRows(view, spec.GroupBy)
	case AggSum:
		t = Sum(view, spec.GroupBy, spec.Field)
	case AggMean:
		t = Mean(view, spec.GroupBy, spec.Field)
	case AggRatio:
		if spec.IDField == "" {
			return MetricTable{}, ErrValidation("metric %q: ratio needs an id field", spec.Key)
		}
		t = DerivedRatio(view, spec.GroupBy, spec.Field, spec.IDField)
	default:
		return MetricTable{}, ErrValidation("metric %q: unknown aggregation %q", spec.Key, spec.Aggregation)
	}

	if spec.Key != "" {
		t = t.As(spec.Key)
	}
	if spec.Top > 0 || spec.Descending {
		t = TopN(t, spec.Top)
	}
	return t, nil
}

// Scalar aggregations.
const (
	ScalarNunique = "nunique"
	ScalarRows    = "rows"
	ScalarSum     = "sum"
	ScalarMean    = "mean"
	ScalarMax     = "max"
	ScalarMin     = "min"
)

// ScalarSpec describes one headline number.
type ScalarSpec struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Aggregation string `json:"aggregation"` // one of the Scalar* constants
	Field       string `json:"field,omitempty"`
}

// Scalar computes spec over view. Means are rounded to 2 decimals.
func Scalar(view RecordView, spec ScalarSpec) (Metric, error) {
	m := Metric{Key: spec.Key, Label: spec.Label}

	switch strings.ToLower(spec.Aggregation) {
	case ScalarNunique:
		m.Value = float64(Nunique(view, spec.Field))
	case ScalarRows:
		m.Value = float64(view.Len())
	case ScalarSum:
		m.Value = SumMeasure(view, spec.Field)
	case ScalarMean:
		m.Value = RoundTo2(AvgMeasure(view, spec.Field))
	case ScalarMax:
		m.Value = MaxMeasure(view, spec.Field)
	case ScalarMin:
		m.Value = MinMeasure(view, spec.Field)
	default:
		return Metric{}, ErrValidation("scalar %q: unknown aggregation %q", spec.Key, spec.Aggregation)
	}
	return m, nil
}
