// Package lookup holds the static code tables of the restaurant dataset.
//
// Every function here is total: unknown codes resolve to a fallback label
// instead of an error.
package lookup

import "sort"

// ============================================================================
// FALLBACK LABELS
// ============================================================================

const (
	// UnknownCountry is returned for country codes missing from the table.
	UnknownCountry = "Unknown"
	// UnknownColor is returned for rating colors missing from the table.
	UnknownColor = "unknown"
)

// Price tiers derived from the dataset's price range code.
const (
	TierCheap     = "cheap"
	TierNormal    = "normal"
	TierExpensive = "expensive"
	TierGourmet   = "gourmet"
)

// ============================================================================
// TABLES — read-only after init
// ============================================================================

// Labels follow the dataset's own spelling ("New Zeland", "Singapure").
var countries = map[int]string{
	1:   "India",
	14:  "Australia",
	30:  "Brazil",
	37:  "Canada",
	94:  "Indonesia",
	148: "New Zeland",
	162: "Philippines",
	166: "Qatar",
	184: "Singapure",
	189: "South Africa",
	191: "Sri Lanka",
	208: "Turkey",
	214: "United Arab Emirates",
	215: "England",
	216: "United States of America",
}

var colors = map[string]string{
	"3F7E00": "darkgreen",
	"5BA829": "green",
	"9ACD32": "lightgreen",
	"CDD614": "orange",
	"FFBA00": "red",
	"CBCBC8": "darkred",
	"FF7800": "darkred",
}

// ============================================================================
// COUNTRY
// ============================================================================

// CountryName maps a country code to its name, or "Unknown".
func CountryName(code int) string {
	if name, ok := countries[code]; ok {
		return name
	}
	return UnknownCountry
}

// Country is one entry of the country table.
type Country struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

// Countries returns the country table ordered by code.
func Countries() []Country {
	out := make([]Country, 0, len(countries))
	for code, name := range countries {
		out = append(out, Country{Code: code, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// ============================================================================
// PRICE TIER
// ============================================================================

// PriceTier maps a price range to its tier. Anything that is not 1, 2 or 3
// is "gourmet", including out-of-domain values.
func PriceTier(priceRange int) string {
	switch priceRange {
	case 1:
		return TierCheap
	case 2:
		return TierNormal
	case 3:
		return TierExpensive
	default:
		return TierGourmet
	}
}

// ============================================================================
// RATING COLOR
// ============================================================================

// ColorName maps a rating color hex code to its label, or "unknown".
func ColorName(code string) string {
	if name, ok := colors[code]; ok {
		return name
	}
	return UnknownColor
}
