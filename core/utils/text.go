package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nonSlug     = regexp.MustCompile(`[^a-z0-9]+`)
	firstNumber = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)
)

// Slug lower-cases s and replaces every run of non-alphanumeric characters with
// a single underscore. Leading and trailing underscores are trimmed.
func Slug(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "_"), "_")
}

// ParseAmount extracts the first number in s, ignoring thousands separators.
// "$1,250 Cash" yields 1250.
func ParseAmount(s string) (float64, bool) {
	m := firstNumber.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FirstNonEmpty returns the first argument that is not blank.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
