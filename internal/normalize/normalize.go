// Package normalize canonicalizes the heterogeneous field representations
// found across annotation sources. All functions are pure: no side effects,
// no dependency on record order, total over their input domain.
package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// String trims surrounding whitespace. The empty string is the distinguished
// absent marker, distinct from any textual value.
func String(v string) string {
	return strings.TrimSpace(v)
}

// Difficulty maps a raw difficulty value to its canonical label.
// Matching is case-insensitive over a small synonym set; anything else,
// including absence, maps to UNKNOWN. The mapping is total and idempotent.
func Difficulty(v string) string {
	switch strings.ToLower(String(v)) {
	case "easy", "e":
		return "EASY"
	case "medium", "med", "m":
		return "MEDIUM"
	case "hard", "h":
		return "HARD"
	default:
		return "UNKNOWN"
	}
}

// Subdomain collapses internal whitespace runs to single spaces and
// title-cases the result, so superficially distinct labels compare equal.
// Absence maps to UNKNOWN, and the marker itself passes through unchanged
// so already-canonical records renormalize to themselves. The mapping is
// total and idempotent.
func Subdomain(v string) string {
	s := String(v)
	if s == "" || s == "UNKNOWN" {
		return "UNKNOWN"
	}
	return titleCase(strings.Join(strings.Fields(s), " "))
}

// titleCase upper-cases the first rune of each space-separated word and
// lower-cases the rest, matching the canonical form used by the report.
func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		first, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(first)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}

// Get walks nested maps along path and returns the value, or def when any
// intermediate structure is missing or not an object. This is how records
// that nest annotation fields under a sub-object and records that flatten
// them are read uniformly.
func Get(m map[string]any, def any, path ...string) any {
	var cur any = m
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return def
		}
		cur, ok = obj[key]
		if !ok {
			return def
		}
	}
	return cur
}

// GetString is Get restricted to string values; non-string hits return def.
func GetString(m map[string]any, def string, path ...string) string {
	v := Get(m, nil, path...)
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

// GetFloat is Get restricted to numeric values. JSON numbers decode as
// float64; anything else reports absence.
func GetFloat(m map[string]any, path ...string) (float64, bool) {
	v := Get(m, nil, path...)
	f, ok := v.(float64)
	return f, ok
}
