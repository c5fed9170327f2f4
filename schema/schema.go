package schema

import "fmt"

// ============================================================================
// SCHEMA — Describes the shape of the restaurant table
// ============================================================================
// Field names are the normalized column identifiers produced by
// NormalizeHeader. They are checked once when a source is loaded; the rest
// of the pipeline refers to columns only through these constants.
// ============================================================================

// Field is a normalized column identifier.
type Field string

// Source columns.
const (
	FieldRestaurantID      Field = "restaurant_id"
	FieldRestaurantName    Field = "restaurant_name"
	FieldCountryCode       Field = "country_code"
	FieldCity              Field = "city"
	FieldLatitude          Field = "latitude"
	FieldLongitude         Field = "longitude"
	FieldCuisines          Field = "cuisines"
	FieldAverageCostForTwo Field = "average_cost_for_two"
	FieldPriceRange        Field = "price_range"
	FieldAggregateRating   Field = "aggregate_rating"
	FieldRatingColor       Field = "rating_color"
	FieldVotes             Field = "votes"
	FieldHasOnlineDelivery Field = "has_online_delivery"
	FieldIsDeliveringNow   Field = "is_delivering_now"
)

// Derived columns, added by the loader from the lookup tables.
const (
	FieldCountryName Field = "country_name"
	FieldPriceTier   Field = "price_tier"
	FieldColorName   Field = "color_name"
)

// Raw headers of the derived columns, before normalization.
const (
	HeaderCountryName = "Country Name"
	HeaderPriceTier   = "Price Tier"
	HeaderColorName   = "Color Name"
)

func (f Field) String() string { return string(f) }

// RequiredSourceFields lists the columns a source must provide.
func RequiredSourceFields() []Field {
	return []Field{
		FieldRestaurantID,
		FieldRestaurantName,
		FieldCountryCode,
		FieldCity,
		FieldLatitude,
		FieldLongitude,
		FieldCuisines,
		FieldAverageCostForTwo,
		FieldPriceRange,
		FieldAggregateRating,
		FieldRatingColor,
		FieldVotes,
		FieldHasOnlineDelivery,
		FieldIsDeliveringNow,
	}
}

// ============================================================================
// CONFIG — dimension/measure metadata
// ============================================================================

// Config describes the complete shape of a dataset.
type Config struct {
	Name        string `json:"name" yaml:"name"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	Dimensions []DimensionMeta `json:"dimensions" yaml:"dimensions"`
	Measures   []MeasureMeta   `json:"measures" yaml:"measures"`
}

// DimensionMeta describes a string field used for grouping/filtering.
type DimensionMeta struct {
	Key         Field  `json:"key" yaml:"key"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Groupable   bool   `json:"groupable" yaml:"groupable"`
	Filterable  bool   `json:"filterable" yaml:"filterable"`
	Parent      Field  `json:"parent,omitempty" yaml:"parent,omitempty"`
	DerivedFrom Field  `json:"derivedFrom,omitempty" yaml:"derivedFrom,omitempty"`
}

// MeasureMeta describes a numeric field used for aggregation.
type MeasureMeta struct {
	Key         Field  `json:"key" yaml:"key"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Unit        string `json:"unit,omitempty" yaml:"unit,omitempty"` // "currency", "points", "degrees", "count", "flag"
	Integer     bool   `json:"integer,omitempty" yaml:"integer,omitempty"`
}

// DefaultDimension creates a DimensionMeta with sensible defaults.
func DefaultDimension(key Field, displayName string) DimensionMeta {
	return DimensionMeta{
		Key:         key,
		DisplayName: displayName,
		Groupable:   true,
		Filterable:  true,
	}
}

// RestaurantConfig returns the schema of the loaded restaurant table.
func RestaurantConfig() Config {
	city := DefaultDimension(FieldCity, "City")
	city.Parent = FieldCountryName

	countryName := DefaultDimension(FieldCountryName, "Country")
	countryName.DerivedFrom = FieldCountryCode

	cuisines := DefaultDimension(FieldCuisines, "Cuisine")
	cuisines.Description = "Primary (first listed) cuisine"

	priceTier := DefaultDimension(FieldPriceTier, "Price Tier")
	priceTier.DerivedFrom = FieldPriceRange

	colorName := DefaultDimension(FieldColorName, "Rating Color")
	colorName.DerivedFrom = FieldRatingColor

	return Config{
		Name:        "Fome Zero restaurants",
		Version:     "1.0",
		Description: "Restaurant listings with location, cuisine, cost and rating",
		Dimensions: []DimensionMeta{
			{Key: FieldRestaurantID, DisplayName: "Restaurant ID", Filterable: true},
			{Key: FieldRestaurantName, DisplayName: "Restaurant", Groupable: true},
			countryName,
			{Key: FieldCountryCode, DisplayName: "Country Code", Groupable: true},
			city,
			cuisines,
			{Key: FieldPriceRange, DisplayName: "Price Range", Groupable: true, Filterable: true},
			priceTier,
			{Key: FieldRatingColor, DisplayName: "Rating Color Code", Groupable: true},
			colorName,
		},
		Measures: []MeasureMeta{
			{Key: FieldAggregateRating, DisplayName: "Aggregate Rating", Unit: "points"},
			{Key: FieldAverageCostForTwo, DisplayName: "Average Cost for Two", Unit: "currency"},
			{Key: FieldVotes, DisplayName: "Votes", Unit: "count", Integer: true},
			{Key: FieldLatitude, DisplayName: "Latitude", Unit: "degrees"},
			{Key: FieldLongitude, DisplayName: "Longitude", Unit: "degrees"},
			{Key: FieldHasOnlineDelivery, DisplayName: "Has Online Delivery", Unit: "flag", Integer: true},
			{Key: FieldIsDeliveringNow, DisplayName: "Is Delivering Now", Unit: "flag", Integer: true},
		},
	}
}

// DimensionKeys returns all dimension keys.
func (c Config) DimensionKeys() []string {
	keys := make([]string, len(c.Dimensions))
	for i, d := range c.Dimensions {
		keys[i] = string(d.Key)
	}
	return keys
}

// MeasureKeys returns all measure keys.
func (c Config) MeasureKeys() []string {
	keys := make([]string, len(c.Measures))
	for i, m := range c.Measures {
		keys[i] = string(m.Key)
	}
	return keys
}

// IsMeasure reports whether key is a numeric field.
func (c Config) IsMeasure(key string) bool {
	for _, m := range c.Measures {
		if string(m.Key) == key {
			return true
		}
	}
	return false
}

// DisplayName returns the human label of a field, falling back to a
// title-cased version of the key.
func (c Config) DisplayName(key string) string {
	for _, d := range c.Dimensions {
		if string(d.Key) == key {
			return d.DisplayName
		}
	}
	for _, m := range c.Measures {
		if string(m.Key) == key {
			return m.DisplayName
		}
	}
	return toDisplayName(key)
}

// Validate checks the config is internally consistent: keys are unique
// across dimensions and measures, and every Parent or DerivedFrom names a
// known field.
func (c Config) Validate() error {
	seen := make(map[Field]bool, len(c.Dimensions)+len(c.Measures))
	for _, d := range c.Dimensions {
		if d.Key == "" {
			return fmt.Errorf("dimension %q has no key", d.DisplayName)
		}
		if seen[d.Key] {
			return fmt.Errorf("duplicate field %q", d.Key)
		}
		seen[d.Key] = true
	}
	for _, m := range c.Measures {
		if m.Key == "" {
			return fmt.Errorf("measure %q has no key", m.DisplayName)
		}
		if seen[m.Key] {
			return fmt.Errorf("duplicate field %q", m.Key)
		}
		seen[m.Key] = true
	}

	sources := make(map[Field]bool)
	for _, f := range RequiredSourceFields() {
		sources[f] = true
	}
	for _, d := range c.Dimensions {
		if d.Parent != "" && !seen[d.Parent] {
			return fmt.Errorf("dimension %q: unknown parent %q", d.Key, d.Parent)
		}
		if d.DerivedFrom != "" && !seen[d.DerivedFrom] && !sources[d.DerivedFrom] {
			return fmt.Errorf("dimension %q: derived from unknown field %q", d.Key, d.DerivedFrom)
		}
	}
	return nil
}
