package schema

import (
	"fmt"
	"strings"
	"unicode"
)

// ============================================================================
// HEADER NORMALIZATION
// ============================================================================
// "Country Code" → "country_code", "Aggregate rating" → "aggregate_rating",
// "Restaurant ID" → "restaurant_id", "HasOnlineDelivery" → "has_online_delivery".
// ============================================================================

// NormalizeHeader converts a raw column header into a lowercase identifier
// with words joined by underscores. Words are split on spaces, underscores,
// hyphens and camel-case boundaries.
func NormalizeHeader(raw string) string {
	runes := []rune(strings.TrimSpace(raw))
	words := make([]string, 0, 4)
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			words = append(words, strings.ToLower(cur.String()))
			cur.Reset()
		}
	}

	for i, r := range runes {
		if unicode.IsSpace(r) || r == '_' || r == '-' {
			flush()
			continue
		}
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur.WriteRune(r)
	}
	flush()

	return strings.Join(words, "_")
}

// NormalizeHeaders normalizes every header and fails if two distinct raw
// headers map to the same identifier, or if a header normalizes to nothing.
func NormalizeHeaders(raw []string) ([]Field, error) {
	out := make([]Field, len(raw))
	seen := make(map[string]string, len(raw))

	for i, h := range raw {
		key := NormalizeHeader(h)
		if key == "" {
			return nil, fmt.Errorf("column %d has an empty header", i+1)
		}
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("headers %q and %q both normalize to %q", prev, h, key)
		}
		seen[key] = h
		out[i] = Field(key)
	}
	return out, nil
}

// toDisplayName cleans a key for human display.
// "average_cost_for_two" → "Average Cost For Two"
func toDisplayName(s string) string {
	if strings.Contains(s, " ") {
		return strings.TrimSpace(s)
	}

	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")

	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
		}
	}
	return strings.Join(words, " ")
}
