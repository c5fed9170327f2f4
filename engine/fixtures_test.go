package engine

// rec builds one restaurant row for tests.
func rec(id, name, country, city, cuisine string, rating, cost, votes float64) Record {
	return Record{
		Dimensions: map[string]string{
			"restaurant_id":   id,
			"restaurant_name": name,
			"country_name":    country,
			"city":            city,
			"cuisines":        cuisine,
		},
		Measures: map[string]float64{
			"aggregate_rating":     rating,
			"average_cost_for_two": cost,
			"votes":                votes,
			"latitude":             -15.8,
			"longitude":            -47.9,
		},
	}
}

// restaurants is a small mixed-country table. Brazil has ids 1, 2 and 3,
// with id 1 listed twice.
func restaurants() RecordView {
	return NewSliceView([]Record{
		rec("1", "Coco Bambu", "Brazil", "Brasília", "Seafood", 4.9, 200, 1000),
		rec("1", "Coco Bambu", "Brazil", "Brasília", "Seafood", 4.7, 200, 800),
		rec("2", "Fogo de Chão", "Brazil", "São Paulo", "Brazilian", 4.2, 300, 500),
		rec("3", "Bar do Mané", "Brazil", "São Paulo", "Brazilian", 3.1, 60, 40),
		rec("10", "Bukhara", "India", "New Delhi", "North Indian", 4.4, 6500, 2800),
		rec("11", "Karim's", "India", "New Delhi", "Mughlai", 3.9, 700, 900),
		rec("12", "Toit", "India", "Bangalore", "Pizza", 4.8, 2000, 11000),
		rec("20", "Nando's", "England", "London", "Others", 0.0, 30, 0),
	})
}
