package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupBy_AscendingKeys(t *testing.T) {
	t.Parallel()

	groups := GroupBy(restaurants(), "country_name")
	require.Len(t, groups, 3)
	assert.Equal(t, "Brazil", groups[0].Key)
	assert.Equal(t, "England", groups[1].Key)
	assert.Equal(t, "India", groups[2].Key)
	assert.Equal(t, 4, groups[0].Count)
	assert.Equal(t, 4, groups[0].View.Len())
}

func TestCountDistinct_SingleCountry(t *testing.T) {
	t.Parallel()

	brazil := Filter(restaurants(), Criteria{Countries: []string{"Brazil"}, Rating: FullRange()})
	got := CountDistinct(brazil, "country_name", "restaurant_id")

	require.Equal(t, 1, got.Len())
	assert.Equal(t, "Brazil", got.Groups[0].Key)
	assert.Equal(t, 3.0, got.Groups[0].Value, "id 1 appears twice but counts once")
	assert.Equal(t, "distinct_restaurant_id", got.Metric)
}

func TestGroupedMetrics(t *testing.T) {
	t.Parallel()

	view := restaurants()

	rows := CountRows(view, "country_name")
	v, ok := rows.Value("Brazil")
	require.True(t, ok)
	assert.Equal(t, 4.0, v)

	votes := Sum(view, "city", "votes")
	v, _ = votes.Value("New Delhi")
	assert.Equal(t, 3700.0, v)

	cost := Mean(view, "country_name", "average_cost_for_two")
	v, _ = cost.Value("India")
	assert.Equal(t, 3066.67, v, "rounded to 2 decimals")

	cities := CountDistinct(view, "country_name", "city")
	v, _ = cities.Value("India")
	assert.Equal(t, 2.0, v)
}

func TestDerivedRatio_IsNotRowMean(t *testing.T) {
	t.Parallel()

	view := NewSliceView([]Record{
		rec("7", "Bar", "Qatar", "Doha", "Cafe", 3, 10, 1),
		rec("7", "Bar", "Qatar", "Doha", "Cafe", 4, 10, 1),
		rec("7", "Bar", "Qatar", "Doha", "Cafe", 5, 10, 1),
	})

	ratio := DerivedRatio(view, "country_name", "aggregate_rating", "restaurant_id")
	v, ok := ratio.Value("Qatar")
	require.True(t, ok)
	assert.Equal(t, 12.0, v)

	mean := Mean(view, "country_name", "aggregate_rating")
	v, _ = mean.Value("Qatar")
	assert.Equal(t, 4.0, v)
}

func TestTopN(t *testing.T) {
	t.Parallel()

	view := restaurants()
	counts := CountRows(view, "cuisines")
	require.Equal(t, 6, counts.Len())

	top := TopN(counts, 3)
	require.Equal(t, 3, top.Len())
	// Brazilian and Seafood tie at 2; ascending key order decides
	assert.Equal(t, []string{"Brazilian", "Seafood", "Mughlai"}, top.Keys())
	for i := 1; i < top.Len(); i++ {
		assert.GreaterOrEqual(t, top.Groups[i-1].Value, top.Groups[i].Value)
	}

	assert.Equal(t, top.Keys(), TopN(top, 3).Keys(), "idempotent")
	assert.Equal(t, "Brazilian", counts.Groups[0].Key, "input untouched")

	ten := TopN(counts, 10)
	assert.Equal(t, 6, ten.Len(), "at most n rows")
	assert.Equal(t, 6, TopN(counts, 0).Len())
}

func TestJoin_InnerSemantics(t *testing.T) {
	t.Parallel()

	a := MetricTable{GroupBy: "country_name", Metric: "cities", Groups: []Group{
		{Key: "Brazil", Value: 2}, {Key: "India", Value: 2}, {Key: "Qatar", Value: 1},
	}}
	b := MetricTable{GroupBy: "country_name", Metric: "restaurants", Groups: []Group{
		{Key: "India", Value: 3}, {Key: "Brazil", Value: 4}, {Key: "Canada", Value: 9},
	}}

	joined := Join(a, b)
	assert.Equal(t, "country_name", joined.GroupBy)
	assert.Equal(t, []string{"cities", "restaurants"}, joined.Metrics)
	require.Len(t, joined.Rows, 2)
	assert.Equal(t, JoinedRow{Key: "Brazil", Values: []float64{2, 4}}, joined.Rows[0])
	assert.Equal(t, JoinedRow{Key: "India", Values: []float64{2, 3}}, joined.Rows[1])

	assert.Empty(t, Join().Rows)
}

func TestRankWithin(t *testing.T) {
	t.Parallel()

	view := restaurants()

	best := RankWithin(view, "cuisines", "restaurant_name", "aggregate_rating", true)
	worst := RankWithin(view, "cuisines", "restaurant_name", "aggregate_rating", false)
	require.Len(t, best, 6)
	require.Len(t, worst, 6)

	assert.Equal(t, Ranked{Outer: "Brazilian", Inner: "Fogo de Chão", Value: 4.2}, best[0])
	assert.Equal(t, Ranked{Outer: "Brazilian", Inner: "Bar do Mané", Value: 3.1}, worst[0])

	// Coco Bambu appears twice: 4.9 and 4.7 average to 4.8
	assert.Equal(t, "Seafood", best[5].Outer)
	assert.InDelta(t, 4.8, best[5].Value, 1e-9)
}

func TestAggregations_EmptyInput(t *testing.T) {
	t.Parallel()

	empty := Filter(restaurants(), Criteria{Countries: []string{}, Rating: FullRange()})
	require.Equal(t, 0, empty.Len())

	assert.Equal(t, 0, CountDistinct(empty, "country_name", "restaurant_id").Len())
	assert.Equal(t, 0, CountRows(empty, "city").Len())
	assert.Equal(t, 0, Mean(empty, "city", "votes").Len())
	assert.Equal(t, 0, DerivedRatio(empty, "country_name", "aggregate_rating", "restaurant_id").Len())
	assert.Equal(t, 0, TopN(CountRows(empty, "cuisines"), 10).Len())
	assert.Empty(t, Join(CountRows(empty, "city"), Sum(empty, "city", "votes")).Rows)
	assert.Empty(t, RankWithin(empty, "cuisines", "restaurant_name", "aggregate_rating", true))

	assert.Equal(t, 0, Nunique(empty, "restaurant_id"))
	assert.Equal(t, 0.0, SumMeasure(empty, "votes"))
	assert.Equal(t, 0.0, AvgMeasure(empty, "votes"))
	assert.Equal(t, 0.0, MaxMeasure(empty, "votes"))
	assert.Equal(t, 0.0, MinMeasure(empty, "votes"))
}

func TestScalars(t *testing.T) {
	t.Parallel()

	view := restaurants()
	assert.Equal(t, 7, Nunique(view, "restaurant_id"))
	assert.Equal(t, 17040.0, SumMeasure(view, "votes"))
	assert.Equal(t, 11000.0, MaxMeasure(view, "votes"))
	assert.Equal(t, 0.0, MinMeasure(view, "votes"))
	assert.Equal(t, []string{"Brazil", "India", "England"}, UniqueValues(view, "country_name"))
}

func TestFormatting(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1,234,567", FormatInt(1234567))
	assert.Equal(t, "-1,000", FormatInt(-1000))
	assert.Equal(t, "42", FormatValue(42))
	assert.Equal(t, "4.25", FormatValue(4.25))
	assert.Equal(t, "3.14", FormatValue(3.14159))
	assert.Equal(t, 2.35, RoundTo2(2.346))
	assert.Equal(t, "Country name", LabelForDimension("country_name"))
}
