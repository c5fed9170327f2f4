package views

import (
	"sort"

	"github.com/spektr-org/fomezero/engine"
	"github.com/spektr-org/fomezero/schema"
)

// View names.
const (
	Overview  = "overview"
	Countries = "countries"
	Cities    = "cities"
	Cuisines  = "cuisines"
)

const topN = 10

var (
	fID      = schema.FieldRestaurantID.String()
	fName    = schema.FieldRestaurantName.String()
	fCode    = schema.FieldCountryCode.String()
	fCountry = schema.FieldCountryName.String()
	fCity    = schema.FieldCity.String()
	fCuisine = schema.FieldCuisines.String()
	fRating  = schema.FieldAggregateRating.String()
	fCost    = schema.FieldAverageCostForTwo.String()
	fVotes   = schema.FieldVotes.String()
	fOnline  = schema.FieldHasOnlineDelivery.String()
	fNow     = schema.FieldIsDeliveringNow.String()
)

// countryColors gives the country pie distinct slices for all 15 countries.
var countryColors = []string{
	"#1F77B4", "#FF7F0E", "#2CA02C", "#D62728", "#9467BD",
	"#8C564B", "#E377C2", "#7F7F7F", "#BCBD22", "#17BECF",
	"#AEC7E8", "#FFBB78", "#98DF8A", "#FF9896", "#C5B0D5",
}

// OthersCuisine is the catch-all label left out of the best-rated cuisine.
const OthersCuisine = "Others"

var labels = engine.Labels{
	fCountry:                "Country",
	fCity:                   "City",
	fCuisine:                "Cuisine",
	fName:                   "Restaurant",
	fRating:                 "Mean rating",
	"cities":                "Cities",
	"restaurants":           "Restaurants",
	"cuisine_types":         "Cuisine types",
	"ratings":               "Ratings",
	"rating_per_restaurant": "Average rating per restaurant",
	"mean_rating":           "Mean rating",
	"mean_cost":             "Mean cost for two",
	"votes":                 "Votes",
	"delivering":            "Restaurants delivering online now",
}

func registry() map[string]View {
	return map[string]View{
		Overview:  overview(),
		Countries: countries(),
		Cities:    cities(),
		Cuisines:  cuisines(),
	}
}

// Registry returns every view, ordered as the dashboard lists them.
func Registry() []View {
	order := map[string]int{Overview: 0, Countries: 1, Cities: 2, Cuisines: 3}
	all := make([]View, 0, len(order))
	for _, v := range registry() {
		all = append(all, v)
	}
	sort.Slice(all, func(i, j int) bool { return order[all[i].Name] < order[all[j].Name] })
	return all
}

// Lookup returns the named view.
func Lookup(name string) (View, error) {
	v, ok := registry()[name]
	if !ok {
		return View{}, engine.ErrNotFound("unknown view %q", name)
	}
	return v, nil
}

// ============================================================================
// OVERVIEW
// ============================================================================

func overview() View {
	return View{
		Name:    Overview,
		Title:   "Fome Zero overview",
		Filters: []string{FilterCountries, FilterRating},
		Map:     true,
		Scalars: []engine.ScalarSpec{
			{Key: "restaurants", Label: "Unique restaurants", Aggregation: engine.ScalarNunique, Field: fID},
			{Key: "countries", Label: "Countries", Aggregation: engine.ScalarNunique, Field: fCode},
			{Key: "cities", Label: "Cities", Aggregation: engine.ScalarNunique, Field: fCity},
			{Key: "votes", Label: "Total ratings", Aggregation: engine.ScalarSum, Field: fVotes},
			{Key: "cuisine_types", Label: "Cuisine types", Aggregation: engine.ScalarNunique, Field: fCuisine},
		},
		Sections: []Section{
			{
				Title:  "Top 10 most frequent cuisines",
				Metric: engine.MetricSpec{Key: "restaurants", Aggregation: engine.AggCountRows, GroupBy: fCuisine, Top: topN},
				Chart:  "bar",
			},
			{
				Title:  "Restaurants per country",
				Metric: engine.MetricSpec{Key: "restaurants", Aggregation: engine.AggCountRows, GroupBy: fCountry, Descending: true},
				Chart:  "pie",
				Colors: countryColors,
			},
		},
	}
}

// ============================================================================
// COUNTRIES
// ============================================================================

func countries() View {
	return View{
		Name:    Countries,
		Title:   "Countries",
		Filters: []string{FilterCountries, FilterRating},
		Scalars: []engine.ScalarSpec{
			{Key: "countries", Label: "Countries", Aggregation: engine.ScalarNunique, Field: fCountry},
			{Key: "cities", Label: "Cities", Aggregation: engine.ScalarNunique, Field: fCity},
			{Key: "restaurants", Label: "Restaurants", Aggregation: engine.ScalarNunique, Field: fID},
		},
		Sections: []Section{
			{
				Title:  "Top 10 countries by cities",
				Metric: engine.MetricSpec{Key: "cities", Aggregation: engine.AggCountDistinct, GroupBy: fCountry, Field: fCity, Top: topN},
				Chart:  "bar",
			},
			{
				Title:  "Top 10 countries by restaurants",
				Metric: engine.MetricSpec{Key: "restaurants", Aggregation: engine.AggCountRows, GroupBy: fCountry, Top: topN},
				Chart:  "bar",
			},
			{
				Title: "Top 10 countries by average rating per restaurant",
				Metric: engine.MetricSpec{
					Key: "rating_per_restaurant", Aggregation: engine.AggRatio,
					GroupBy: fCountry, Field: fRating, IDField: fID, Top: topN,
				},
				Chart: "bar",
			},
			{
				Title:  "Top 10 countries by mean cost for two",
				Metric: engine.MetricSpec{Key: "mean_cost", Aggregation: engine.AggMean, GroupBy: fCountry, Field: fCost, Top: topN},
				Chart:  "bar",
			},
		},
		Summary: &Summary{
			Title: "Country summary",
			Metrics: []engine.MetricSpec{
				{Key: "cities", Aggregation: engine.AggCountDistinct, GroupBy: fCountry, Field: fCity},
				{Key: "restaurants", Aggregation: engine.AggCountRows, GroupBy: fCountry},
				{Key: "cuisine_types", Aggregation: engine.AggCountDistinct, GroupBy: fCountry, Field: fCuisine},
				{Key: "ratings", Aggregation: engine.AggCountRows, GroupBy: fCountry},
				{Key: "mean_rating", Aggregation: engine.AggMean, GroupBy: fCountry, Field: fRating},
				{Key: "mean_cost", Aggregation: engine.AggMean, GroupBy: fCountry, Field: fCost},
			},
		},
	}
}

// ============================================================================
// CITIES
// ============================================================================

func cities() View {
	return View{
		Name:    Cities,
		Title:   "Cities",
		Filters: []string{FilterCountries, FilterRating, FilterCities},
		Scalars: []engine.ScalarSpec{
			{Key: "cities", Label: "Unique cities", Aggregation: engine.ScalarNunique, Field: fCity},
			{Key: "restaurants", Label: "Restaurants", Aggregation: engine.ScalarNunique, Field: fID},
			{Key: "cuisine_types", Label: "Cuisine types", Aggregation: engine.ScalarNunique, Field: fCuisine},
		},
		Sections: []Section{
			{
				Title:  "Top 10 cities by restaurants",
				Metric: engine.MetricSpec{Key: "restaurants", Aggregation: engine.AggCountDistinct, GroupBy: fCity, Field: fID, Top: topN},
				Chart:  "bar",
			},
			{
				Title:  "Top 10 cities by mean cost for two",
				Metric: engine.MetricSpec{Key: "mean_cost", Aggregation: engine.AggMean, GroupBy: fCity, Field: fCost, Top: topN},
				Chart:  "bar",
			},
			{
				Title:  "Top 10 cities by cuisine types",
				Metric: engine.MetricSpec{Key: "cuisine_types", Aggregation: engine.AggCountDistinct, GroupBy: fCity, Field: fCuisine, Top: topN},
				Chart:  "bar",
			},
		},
		Summary: &Summary{
			Title: "City summary",
			Metrics: []engine.MetricSpec{
				{Key: "restaurants", Aggregation: engine.AggCountDistinct, GroupBy: fCity, Field: fID},
				{Key: "cuisine_types", Aggregation: engine.AggCountDistinct, GroupBy: fCity, Field: fCuisine},
				{Key: "mean_cost", Aggregation: engine.AggMean, GroupBy: fCity, Field: fCost},
				{Key: "votes", Aggregation: engine.AggSum, GroupBy: fCity, Field: fVotes},
			},
		},
	}
}

// ============================================================================
// CUISINES
// ============================================================================

func cuisines() View {
	return View{
		Name:    Cuisines,
		Title:   "Cuisines",
		Filters: []string{FilterCountries, FilterRating, FilterCuisines},
		Scalars: []engine.ScalarSpec{
			{Key: "cuisine_types", Label: "Cuisine types", Aggregation: engine.ScalarNunique, Field: fCuisine},
			{Key: "restaurants", Label: "Restaurants", Aggregation: engine.ScalarNunique, Field: fID},
			{Key: "mean_rating", Label: "Overall mean rating", Aggregation: engine.ScalarMean, Field: fRating},
		},
		Rankings: []Ranking{
			{Title: "Best rated restaurant per cuisine", Outer: fCuisine, Inner: fName, Measure: fRating, Desc: true},
			{Title: "Worst rated restaurant per cuisine", Outer: fCuisine, Inner: fName, Measure: fRating, Desc: false},
		},
		Sections: []Section{
			{
				Title:  "Highest mean cost for two",
				Metric: engine.MetricSpec{Key: "mean_cost", Aggregation: engine.AggMean, GroupBy: fCuisine, Field: fCost, Top: 1},
			},
			{
				Title:  "Highest mean rating",
				Metric: engine.MetricSpec{Key: "mean_rating", Aggregation: engine.AggMean, GroupBy: fCuisine, Field: fRating, Top: 1},
				Where: func(v engine.RecordView, i int) bool {
					return v.Dimension(i, fCuisine) != OthersCuisine
				},
			},
			{
				Title:  "Most restaurants delivering online now",
				Metric: engine.MetricSpec{Key: "delivering", Aggregation: engine.AggCountRows, GroupBy: fCuisine, Top: 1},
				Where: func(v engine.RecordView, i int) bool {
					return v.Measure(i, fOnline) == 1 && v.Measure(i, fNow) == 1
				},
			},
			{
				Title:  "Top 10 cuisines",
				Metric: engine.MetricSpec{Key: "restaurants", Aggregation: engine.AggCountRows, GroupBy: fCuisine, Top: topN},
				Chart:  "bar",
			},
		},
	}
}
