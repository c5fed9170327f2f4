// Package fomezero is the analytics pipeline behind the Fome Zero
// restaurant dashboard.
//
// Usage:
//
//	table, err := dataset.LoadFile("dataset/zomato.csv")
//	rows := engine.Filter(table.View(), engine.DefaultCriteria([]string{"Brazil", "India"}))
//	view, _ := views.Lookup(views.Countries)
//	page, err := view.Build(rows)
//
// The source is read once into an immutable table with derived columns
// (country name, price tier, color name). Filters return zero-copy
// subviews; views are configuration over the shared aggregation stage and
// return render-ready charts, tables and map points.
//
// The cmd/fomezero binary exposes the same pipeline as a CLI and a JSON
// HTTP API.
package fomezero
