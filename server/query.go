package server

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/spektr-org/fomezero/engine"
)

// Query parameters of the view endpoints.
const (
	paramCountry   = "country"
	paramRatingMin = "rating_min"
	paramRatingMax = "rating_max"
	paramCity      = "city"
	paramCuisine   = "cuisine"
)

// criteriaFromQuery reads filter criteria from query parameters. An absent
// country parameter selects every country; a present but empty one selects
// none. Absent city and cuisine leave those dimensions unconstrained.
func criteriaFromQuery(q url.Values) (engine.Criteria, error) {
	c := engine.DefaultCriteria(listParam(q, paramCountry))
	c.Cities = listParam(q, paramCity)
	c.Cuisines = listParam(q, paramCuisine)

	var err error
	if c.Rating.Low, err = floatParam(q, paramRatingMin, engine.MinRating); err != nil {
		return engine.Criteria{}, err
	}
	if c.Rating.High, err = floatParam(q, paramRatingMax, engine.MaxRating); err != nil {
		return engine.Criteria{}, err
	}
	return c, nil
}

// listParam collects repeated and comma-separated values. It returns nil
// when the parameter is absent and a non-nil empty slice when it is present
// without values.
func listParam(q url.Values, key string) []string {
	raw, ok := q[key]
	if !ok {
		return nil
	}
	out := []string{}
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func floatParam(q url.Values, key string, def float64) (float64, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) {
		return 0, engine.ErrValidation("%s must be a number, got %q", key, v)
	}
	return f, nil
}
