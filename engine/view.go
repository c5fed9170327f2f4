package engine

import "sort"

// ============================================================================
// RECORD VIEW — Row access shared by filters, aggregators and builders
// ============================================================================
// A loaded restaurant table is read through RecordView and never copied:
// filtering produces a SubView of row positions, grouping produces one
// SubView per key.
//
//	SliceView      []Record, used by fixtures and ad-hoc data
//	DomainView[T]  typed rows read through registered accessors
//	SubView        row positions into a parent view
// ============================================================================

// RecordView provides indexed access to a table of rows.
// Out-of-range indices and unknown keys read as "" and 0.
type RecordView interface {
	Len() int
	Dimension(index int, key string) string
	Measure(index int, key string) float64
	DimensionKeys() []string
	MeasureKeys() []string
}

// ============================================================================
// SLICE VIEW
// ============================================================================

// SliceView serves a []Record. Its keys are the union of the record keys,
// sorted.
type SliceView struct {
	records []Record
	dimKeys []string
	mesKeys []string
}

// NewSliceView creates a RecordView over records.
func NewSliceView(records []Record) RecordView {
	dims := make(map[string]struct{})
	mes := make(map[string]struct{})
	for _, r := range records {
		for k := range r.Dimensions {
			dims[k] = struct{}{}
		}
		for k := range r.Measures {
			mes[k] = struct{}{}
		}
	}
	return &SliceView{records: records, dimKeys: sortedKeys(dims), mesKeys: sortedKeys(mes)}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (v *SliceView) Len() int { return len(v.records) }

func (v *SliceView) Dimension(i int, key string) string {
	if !inRange(i, len(v.records)) {
		return ""
	}
	return v.records[i].Dimensions[key]
}

func (v *SliceView) Measure(i int, key string) float64 {
	if !inRange(i, len(v.records)) {
		return 0
	}
	return v.records[i].Measures[key]
}

func (v *SliceView) DimensionKeys() []string { return v.dimKeys }
func (v *SliceView) MeasureKeys() []string   { return v.mesKeys }

func inRange(i, n int) bool { return i >= 0 && i < n }

// ============================================================================
// SUB VIEW
// ============================================================================

// SubView selects rows of a parent view by position.
type SubView struct {
	parent RecordView
	rows   []int
}

func newSubView(parent RecordView, rows []int) RecordView {
	return &SubView{parent: parent, rows: rows}
}

// Empty returns a view with the parent's keys and no rows.
func Empty(parent RecordView) RecordView {
	return newSubView(parent, nil)
}

func (v *SubView) Len() int { return len(v.rows) }

func (v *SubView) Dimension(i int, key string) string {
	if !inRange(i, len(v.rows)) {
		return ""
	}
	return v.parent.Dimension(v.rows[i], key)
}

func (v *SubView) Measure(i int, key string) float64 {
	if !inRange(i, len(v.rows)) {
		return 0
	}
	return v.parent.Measure(v.rows[i], key)
}

func (v *SubView) DimensionKeys() []string { return v.parent.DimensionKeys() }
func (v *SubView) MeasureKeys() []string   { return v.parent.MeasureKeys() }

// ============================================================================
// DOMAIN ADAPTER
// ============================================================================
//
//	adapter := engine.NewDomainAdapter[Restaurant]().
//	    Dimension("city", func(r Restaurant) string { return r.City }).
//	    Measure("aggregate_rating", func(r Restaurant) float64 { return r.AggregateRating })
//
//	view := adapter.Bind(restaurants)
//	filtered := engine.Filter(view, criteria)
//
// ============================================================================

// DomainAdapter declares how typed rows expose dimensions and measures.
// Keys keep registration order; registering a key twice replaces its
// accessor.
type DomainAdapter[T any] struct {
	accessors[T]
}

type accessors[T any] struct {
	dims    map[string]func(T) string
	meas    map[string]func(T) float64
	dimKeys []string
	mesKeys []string
}

// NewDomainAdapter creates an adapter for rows of type T.
func NewDomainAdapter[T any]() *DomainAdapter[T] {
	return &DomainAdapter[T]{accessors[T]{
		dims: make(map[string]func(T) string),
		meas: make(map[string]func(T) float64),
	}}
}

// Dimension registers a string accessor under key.
func (a *DomainAdapter[T]) Dimension(key string, fn func(T) string) *DomainAdapter[T] {
	if _, ok := a.dims[key]; !ok {
		a.dimKeys = append(a.dimKeys, key)
	}
	a.dims[key] = fn
	return a
}

// Measure registers a numeric accessor under key.
func (a *DomainAdapter[T]) Measure(key string, fn func(T) float64) *DomainAdapter[T] {
	if _, ok := a.meas[key]; !ok {
		a.mesKeys = append(a.mesKeys, key)
	}
	a.meas[key] = fn
	return a
}

// Bind returns a view over rows. The rows are referenced, not copied.
func (a *DomainAdapter[T]) Bind(rows []T) RecordView {
	return &DomainView[T]{rows: rows, accessors: a.accessors}
}

// DomainView reads typed rows through the accessors of its adapter.
type DomainView[T any] struct {
	rows []T
	accessors[T]
}

func (v *DomainView[T]) Len() int { return len(v.rows) }

func (v *DomainView[T]) Dimension(i int, key string) string {
	fn, ok := v.dims[key]
	if !ok || !inRange(i, len(v.rows)) {
		return ""
	}
	return fn(v.rows[i])
}

func (v *DomainView[T]) Measure(i int, key string) float64 {
	fn, ok := v.meas[key]
	if !ok || !inRange(i, len(v.rows)) {
		return 0
	}
	return fn(v.rows[i])
}

func (v *DomainView[T]) DimensionKeys() []string { return v.dimKeys }
func (v *DomainView[T]) MeasureKeys() []string   { return v.mesKeys }
