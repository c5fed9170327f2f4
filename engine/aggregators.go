package engine

import (
	"math"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// ============================================================================
// AGGREGATORS — Grouping, Aggregation, and Sorting via RecordView
// ============================================================================
// All functions operate on RecordView and are pure: nothing is cached
// between calls. Grouping produces SubViews (index lists into parent view).
// Groups come out ascending by key; TopN then orders by value.
// ============================================================================

// ============================================================================
// GROUPING
// ============================================================================

// GroupBy buckets the rows of view by a dimension, ascending by key.
func GroupBy(view RecordView, dimension string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := view.Dimension(i, dimension)
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}
	sort.Strings(order)

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		idx := grouped[key]
		groups = append(groups, Group{
			Key:   key,
			Count: len(idx),
			View:  newSubView(view, idx),
		})
	}
	return groups
}

// aggregate computes fn over each group of view.
func aggregate(view RecordView, groupBy, metric string, fn func(RecordView) float64) MetricTable {
	groups := GroupBy(view, groupBy)
	for i := range groups {
		groups[i].Value = fn(groups[i].View)
	}
	return MetricTable{GroupBy: groupBy, Metric: metric, Groups: groups}
}

// ============================================================================
// GROUPED METRICS
// ============================================================================

// CountDistinct counts distinct values of field per group.
func CountDistinct(view RecordView, groupBy, field string) MetricTable {
	return aggregate(view, groupBy, "distinct_"+field, func(v RecordView) float64 {
		return float64(Nunique(v, field))
	})
}

// CountRows counts rows per group.
func CountRows(view RecordView, groupBy string) MetricTable {
	return aggregate(view, groupBy, "rows", func(v RecordView) float64 {
		return float64(v.Len())
	})
}

// Sum totals a measure per group.
func Sum(view RecordView, groupBy, measure string) MetricTable {
	return aggregate(view, groupBy, "sum_"+measure, func(v RecordView) float64 {
		return SumMeasure(v, measure)
	})
}

// Mean averages a measure per group, rounded to 2 decimals.
func Mean(view RecordView, groupBy, measure string) MetricTable {
	return aggregate(view, groupBy, "mean_"+measure, func(v RecordView) float64 {
		return RoundTo2(AvgMeasure(v, measure))
	})
}

// DerivedRatio divides the group total of measure by the group's distinct
// count of idField, rounded to 2 decimals.
func DerivedRatio(view RecordView, groupBy, measure, idField string) MetricTable {
	return aggregate(view, groupBy, "ratio_"+measure, func(v RecordView) float64 {
		n := Nunique(v, idField)
		if n == 0 {
			return 0
		}
		return RoundTo2(SumMeasure(v, measure) / float64(n))
	})
}

// ============================================================================
// RANKING & JOINING
// ============================================================================

// TopN returns the n groups with the largest values, largest first. Ties
// keep their incoming order. n <= 0 keeps every group. The input table is
// not modified.
func TopN(t MetricTable, n int) MetricTable {
	groups := make([]Group, len(t.Groups))
	copy(groups, t.Groups)
	sortByValueDesc(groups)

	if n > 0 && len(groups) > n {
		groups = groups[:n]
	}
	t.Groups = groups
	return t
}

// Join merges metric tables on their group key. Only keys present in every
// table survive; rows follow the order of the first table.
func Join(tables ...MetricTable) JoinedTable {
	if len(tables) == 0 {
		return JoinedTable{}
	}

	joined := JoinedTable{
		GroupBy: tables[0].GroupBy,
		Metrics: make([]string, len(tables)),
	}
	lookups := make([]map[string]float64, len(tables))
	for i, t := range tables {
		joined.Metrics[i] = t.Metric
		lookups[i] = make(map[string]float64, len(t.Groups))
		for _, g := range t.Groups {
			lookups[i][g.Key] = g.Value
		}
	}

	for _, g := range tables[0].Groups {
		values := make([]float64, len(tables))
		complete := true
		for i, lookup := range lookups {
			v, ok := lookup[g.Key]
			if !ok {
				complete = false
				break
			}
			values[i] = v
		}
		if complete {
			joined.Rows = append(joined.Rows, JoinedRow{Key: g.Key, Values: values})
		}
	}
	return joined
}

// RankWithin averages measure per (outer, inner) pair and picks, for each
// outer group, the inner group with the highest (desc) or lowest mean.
// Ties go to the inner key that sorts first. Results are ascending by outer.
func RankWithin(view RecordView, outer, inner, measure string, desc bool) []Ranked {
	outerGroups := GroupBy(view, outer)
	ranked := make([]Ranked, 0, len(outerGroups))

	for _, og := range outerGroups {
		var best Ranked
		found := false
		for _, ig := range GroupBy(og.View, inner) {
			mean := AvgMeasure(ig.View, measure)
			better := !found ||
				(desc && mean > best.Value) ||
				(!desc && mean < best.Value)
			if better {
				best = Ranked{Outer: og.Key, Inner: ig.Key, Value: mean}
				found = true
			}
		}
		if found {
			ranked = append(ranked, best)
		}
	}
	return ranked
}

// ============================================================================
// SCALARS
// ============================================================================

// Nunique counts distinct non-empty values of a dimension.
func Nunique(view RecordView, dimension string) int {
	return len(UniqueValues(view, dimension))
}

// SumMeasure sums a named measure across a view.
func SumMeasure(view RecordView, measure string) float64 {
	var total float64
	for i := 0; i < view.Len(); i++ {
		total += view.Measure(i, measure)
	}
	return total
}

// AvgMeasure computes average of a named measure. Zero for an empty view.
func AvgMeasure(view RecordView, measure string) float64 {
	n := view.Len()
	if n == 0 {
		return 0
	}
	return SumMeasure(view, measure) / float64(n)
}

// MaxMeasure returns the largest value of a named measure.
func MaxMeasure(view RecordView, measure string) float64 {
	n := view.Len()
	if n == 0 {
		return 0
	}
	m := math.Inf(-1)
	for i := 0; i < n; i++ {
		if v := view.Measure(i, measure); v > m {
			m = v
		}
	}
	return m
}

// MinMeasure returns the smallest value of a named measure.
func MinMeasure(view RecordView, measure string) float64 {
	n := view.Len()
	if n == 0 {
		return 0
	}
	m := math.Inf(1)
	for i := 0; i < n; i++ {
		if v := view.Measure(i, measure); v < m {
			m = v
		}
	}
	return m
}

// ============================================================================
// SORTING
// ============================================================================

// sortByValueDesc sorts groups in place, largest value first. Equal groups
// keep their incoming order.
func sortByValueDesc(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value > groups[j].Value })
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	return humanize.Comma(int64(n))
}

// FormatValue prints whole numbers with thousands separators and
// everything else with two decimals.
func FormatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return FormatInt(int(v))
	}
	return humanize.CommafWithDigits(RoundTo2(v), 2)
}

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// UniqueValues returns distinct non-empty values for a dimension, in
// first-seen order.
func UniqueValues(view RecordView, dimension string) []string {
	seen := make(map[string]bool)
	var result []string
	for i := 0; i < view.Len(); i++ {
		val := view.Dimension(i, dimension)
		if val != "" && !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result
}

// LabelForDimension returns a capitalized label for a dimension key.
// "country_name" → "Country name"
func LabelForDimension(dimension string) string {
	if len(dimension) == 0 {
		return ""
	}
	s := strings.ReplaceAll(dimension, "_", " ")
	return strings.ToUpper(s[:1]) + s[1:]
}
