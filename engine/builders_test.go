package engine

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildChart(t *testing.T) {
	t.Parallel()

	top := TopN(CountRows(restaurants(), "cuisines"), 2)
	chart := BuildChart("Top cuisines", top, WithAxes("Cuisine", "Restaurants"))

	assert.Equal(t, "bar", chart.ChartType)
	assert.Equal(t, "Top cuisines", chart.Title)
	assert.Equal(t, "Cuisine", chart.XAxis)
	assert.Equal(t, "Restaurants", chart.YAxis)
	assert.True(t, chart.ShowGrid)
	require.Len(t, chart.Series, 1)
	assert.Equal(t, "Restaurants", chart.Series[0].Name)
	assert.Equal(t, []ChartPoint{{Label: "Brazilian", Value: 2}, {Label: "Seafood", Value: 2}}, chart.Series[0].Data)
	assert.Len(t, chart.Colors, 1)
}

func TestBuildChart_Pie(t *testing.T) {
	t.Parallel()

	counts := TopN(CountRows(restaurants(), "country_name"), 0)
	chart := BuildChart("Restaurants per country", counts,
		WithChartType("pie"), WithPalette("#111111", "#222222"), WithSeriesName("Restaurants"), WithLegend(true))

	assert.Equal(t, "pie", chart.ChartType)
	assert.False(t, chart.ShowGrid)
	assert.True(t, chart.ShowLegend)
	assert.Equal(t, "Country name", chart.XAxis)
	assert.Equal(t, []string{"#111111", "#222222", "#111111"}, chart.Colors)
	assert.Equal(t, "Brazil", chart.Series[0].Data[0].Label)
}

func TestBuildChart_Legend(t *testing.T) {
	t.Parallel()

	counts := CountRows(restaurants(), "city")
	assert.False(t, BuildChart("Cities", counts).ShowLegend)
	assert.True(t, BuildChart("Cities", counts, WithLegend(true)).ShowLegend)
}

func TestBuildChart_EmptyTable(t *testing.T) {
	t.Parallel()

	chart := BuildChart("Nothing", MetricTable{GroupBy: "city", Metric: "rows"})
	require.NotNil(t, chart)
	require.Len(t, chart.Series, 1)
	assert.Empty(t, chart.Series[0].Data)
}

func TestBuildMetricTable(t *testing.T) {
	t.Parallel()

	table := BuildMetricTable("Rows", CountRows(restaurants(), "country_name"), Labels{"country_name": "Country"})
	require.Len(t, table.Columns, 2)
	assert.Equal(t, "Country", table.Columns[0].Label)
	assert.Equal(t, "Rows", table.Columns[1].Label)
	assert.Equal(t, [][]string{{"Brazil", "4"}, {"England", "1"}, {"India", "3"}}, table.Rows)
	require.NotNil(t, table.Summary)
	assert.Equal(t, "8", table.Summary.Values["rows"])

	means := BuildMetricTable("Mean", Mean(restaurants(), "country_name", "aggregate_rating"), nil)
	assert.Nil(t, means.Summary, "means are not additive")
}

func TestBuildJoinedTable(t *testing.T) {
	t.Parallel()

	view := restaurants()
	joined := Join(
		CountDistinct(view, "country_name", "city").As("cities"),
		Mean(view, "country_name", "average_cost_for_two").As("mean_cost"),
	)
	table := BuildJoinedTable("Summary", joined, Labels{"cities": "Cities", "mean_cost": "Mean cost for two"})

	require.Len(t, table.Columns, 3)
	assert.Equal(t, "Mean cost for two", table.Columns[2].Label)
	assert.Equal(t, []string{"India", "2", "3,066.67"}, table.Rows[2])
}

func TestBuildRankedTable(t *testing.T) {
	t.Parallel()

	ranked := []Ranked{{Outer: "Seafood", Inner: "Coco Bambu", Value: 4.8}}
	table := BuildRankedTable("Best", ranked, "cuisines", "restaurant_name", "aggregate_rating", nil)
	assert.Equal(t, [][]string{{"Seafood", "Coco Bambu", "4.8"}}, table.Rows)
	assert.Equal(t, "Restaurant name", table.Columns[1].Label)
}

func TestBuildMapPoints(t *testing.T) {
	t.Parallel()

	points := BuildMapPoints(restaurants())
	require.Len(t, points, 8)
	assert.Equal(t, MapPoint{
		RestaurantName:  "Coco Bambu",
		City:            "Brasília",
		CountryName:     "Brazil",
		AggregateRating: 4.9,
		Latitude:        -15.8,
		Longitude:       -47.9,
	}, points[0])
}

func TestWriteTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, []string{"city", "votes"}, [][]string{{"London", "0"}, {"New Delhi", "3,700"}}))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "CITY")
	assert.Contains(t, lines[2], "New Delhi")

	buf.Reset()
	require.NoError(t, WriteTable(&buf, nil, [][]string{{"x"}}))
	assert.Empty(t, buf.String())
}

func TestWriteChart(t *testing.T) {
	t.Parallel()

	chart := BuildChart("Votes", Sum(restaurants(), "country_name", "votes"))
	var buf bytes.Buffer
	require.NoError(t, WriteChart(&buf, chart, 20))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Votes\n"))
	assert.Contains(t, out, "India")
	assert.Contains(t, out, strings.Repeat("█", 20), "largest group fills the width")

	buf.Reset()
	require.NoError(t, WriteChart(&buf, BuildChart("Empty", MetricTable{}), 20))
	assert.Contains(t, buf.String(), "(no data)")
}
