package engine

import "github.com/spektr-org/fomezero/schema"

// BuildMapPoints returns one marker per row of view, in view order.
func BuildMapPoints(view RecordView) []MapPoint {
	points := make([]MapPoint, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		points = append(points, MapPoint{
			RestaurantName:  view.Dimension(i, schema.FieldRestaurantName.String()),
			City:            view.Dimension(i, schema.FieldCity.String()),
			CountryName:     view.Dimension(i, schema.FieldCountryName.String()),
			AggregateRating: view.Measure(i, schema.FieldAggregateRating.String()),
			Latitude:        view.Measure(i, schema.FieldLatitude.String()),
			Longitude:       view.Measure(i, schema.FieldLongitude.String()),
		})
	}
	return points
}
