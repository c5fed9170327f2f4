package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestaurantConfig_Valid(t *testing.T) {
	t.Parallel()

	cfg := RestaurantConfig()
	require.NoError(t, cfg.Validate())

	assert.Contains(t, cfg.DimensionKeys(), "country_name")
	assert.Contains(t, cfg.MeasureKeys(), "aggregate_rating")
	assert.True(t, cfg.IsMeasure("votes"))
	assert.False(t, cfg.IsMeasure("city"))
	assert.Equal(t, "Country", cfg.DisplayName("country_name"))
	assert.Equal(t, "Rating Text", cfg.DisplayName("rating_text"))
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "duplicate across kinds",
			mutate: func(c *Config) { c.Measures = append(c.Measures, MeasureMeta{Key: FieldCity}) },
			want:   `duplicate field "city"`,
		},
		{
			name:   "empty key",
			mutate: func(c *Config) { c.Dimensions = append(c.Dimensions, DimensionMeta{DisplayName: "Nameless"}) },
			want:   `dimension "Nameless" has no key`,
		},
		{
			name:   "unknown parent",
			mutate: func(c *Config) { c.Dimensions[0].Parent = "region" },
			want:   `unknown parent "region"`,
		},
		{
			name:   "unknown derivation",
			mutate: func(c *Config) { c.Dimensions[0].DerivedFrom = "locale" },
			want:   `derived from unknown field "locale"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := RestaurantConfig()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}
