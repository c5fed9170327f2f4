package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spektr-org/fomezero/engine"
)

// criteriaFlags are the filter controls shared by view, export and map
// style commands.
type criteriaFlags struct {
	countries []string
	cities    []string
	cuisines  []string
	ratingMin float64
	ratingMax float64
}

func (f *criteriaFlags) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("criteria", pflag.ContinueOnError)
	fs.StringSliceVar(&f.countries, "country", nil, "country to include (repeatable; default all)")
	fs.StringSliceVar(&f.cities, "city", nil, "city to include (repeatable; default all)")
	fs.StringSliceVar(&f.cuisines, "cuisine", nil, "cuisine to include (repeatable; default all)")
	fs.Float64Var(&f.ratingMin, "rating-min", engine.MinRating, "lowest aggregate rating")
	fs.Float64Var(&f.ratingMax, "rating-max", engine.MaxRating, "highest aggregate rating")
	return fs
}

// criteria turns the flags into filter criteria. An unset list flag leaves
// the dimension unconstrained; a list flag set to "" selects nothing.
func (f *criteriaFlags) criteria(cmd *cobra.Command) engine.Criteria {
	c := engine.DefaultCriteria(nil)
	flags := cmd.Flags()
	if flags.Changed("country") {
		c.Countries = nonNil(f.countries)
	}
	if flags.Changed("city") {
		c.Cities = nonNil(f.cities)
	}
	if flags.Changed("cuisine") {
		c.Cuisines = nonNil(f.cuisines)
	}
	c.Rating = engine.RatingRange{Low: f.ratingMin, High: f.ratingMax}
	return c
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
