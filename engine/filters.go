package engine

import (
	"github.com/spektr-org/fomezero/schema"
)

// ============================================================================
// FILTERS — Criteria and dimension-based filtering via RecordView
// ============================================================================
// Every filter returns a SubView, an index list into the parent.
// The input view is never modified.
// ============================================================================

// Rating bounds of the dataset.
const (
	MinRating = 0.0
	MaxRating = 5.0
)

// RatingRange is an inclusive range on aggregate_rating.
type RatingRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// FullRange selects every rating.
func FullRange() RatingRange {
	return RatingRange{Low: MinRating, High: MaxRating}
}

// Clamp forces both bounds into [0, 5].
func (r RatingRange) Clamp() RatingRange {
	return RatingRange{Low: clamp(r.Low), High: clamp(r.High)}
}

// Validate rejects inverted ranges.
func (r RatingRange) Validate() error {
	if r.Low > r.High {
		return ErrValidation("rating range is inverted: %.1f > %.1f", r.Low, r.High)
	}
	return nil
}

// Contains reports whether rating falls within the range, bounds included.
func (r RatingRange) Contains(rating float64) bool {
	return rating >= r.Low && rating <= r.High
}

func clamp(v float64) float64 {
	if v < MinRating {
		return MinRating
	}
	if v > MaxRating {
		return MaxRating
	}
	return v
}

// Criteria is the user's filter selection.
//
// Countries is mandatory: an empty list keeps no rows. Cities and Cuisines
// are optional: nil leaves the dimension unconstrained, a non-nil empty list
// keeps no rows.
type Criteria struct {
	Countries []string    `json:"countries"`
	Rating    RatingRange `json:"rating"`
	Cities    []string    `json:"cities,omitempty"`
	Cuisines  []string    `json:"cuisines,omitempty"`
}

// DefaultCriteria selects every given country across the full rating range.
func DefaultCriteria(countries []string) Criteria {
	return Criteria{
		Countries: countries,
		Rating:    FullRange(),
	}
}

// Validate checks the criteria after clamping.
func (c Criteria) Validate() error {
	return c.Rating.Clamp().Validate()
}

// Filter returns the rows matching every constraint of c. Membership tests
// are exact string matches; rating bounds are clamped and inclusive.
func Filter(view RecordView, c Criteria) RecordView {
	if len(c.Countries) == 0 {
		return Empty(view)
	}
	if c.Cities != nil && len(c.Cities) == 0 {
		return Empty(view)
	}
	if c.Cuisines != nil && len(c.Cuisines) == 0 {
		return Empty(view)
	}

	filters := Filters{Dimensions: map[string][]string{
		schema.FieldCountryName.String(): c.Countries,
	}}
	if c.Cities != nil {
		filters.Dimensions[schema.FieldCity.String()] = c.Cities
	}
	if c.Cuisines != nil {
		filters.Dimensions[schema.FieldCuisines.String()] = c.Cuisines
	}

	rating := c.Rating.Clamp()
	key := schema.FieldAggregateRating.String()
	return Where(ApplyFilters(view, filters), func(v RecordView, i int) bool {
		return rating.Contains(v.Measure(i, key))
	})
}

// ApplyFilters returns a view of records matching all dimension filters.
// Dimensions are AND-combined; values within a dimension are OR-combined.
// Empty filter = no restriction (returns original view).
func ApplyFilters(view RecordView, filters Filters) RecordView {
	if filters.IsEmpty() {
		return view
	}

	sets := make(map[string]map[string]bool)
	for dim, allowed := range filters.Dimensions {
		if len(allowed) > 0 {
			sets[dim] = toSet(allowed)
		}
	}

	// Single pass: a record passes if it matches every dimension filter
	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		pass := true
		for dim, set := range sets {
			if !set[view.Dimension(i, dim)] {
				pass = false
				break
			}
		}
		if pass {
			indices = append(indices, i)
		}
	}

	return newSubView(view, indices)
}

// Where returns the rows for which keep returns true, in view order.
func Where(view RecordView, keep func(v RecordView, i int) bool) RecordView {
	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if keep(view, i) {
			indices = append(indices, i)
		}
	}
	return newSubView(view, indices)
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
