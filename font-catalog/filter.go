package font_catalog

import (
	"slices"
	"strings"

	"github.com/tingtt/iterutil"
)

// FilterFamilies keeps families whose name, or any style label or full name,
// contains query (case-insensitive). A blank query returns families as is.
func FilterFamilies(families []GroupedFamily, query string) []GroupedFamily {
	q := strings.TrimSpace(strings.ToLower(query))
	if q == "" {
		return families
	}

	matches := iterutil.FilterFunc(slices.Values(families), func(f GroupedFamily) bool {
		return familyMatches(f, q)
	})

	result := slices.Collect(matches)
	if result == nil {
		return []GroupedFamily{}
	}
	return result
}

func familyMatches(f GroupedFamily, q string) bool {
	if strings.Contains(strings.ToLower(f.Family), q) {
		return true
	}
	for _, s := range f.Styles {
		if strings.Contains(strings.ToLower(s.Style), q) || strings.Contains(strings.ToLower(s.FullName), q) {
			return true
		}
	}
	return false
}
