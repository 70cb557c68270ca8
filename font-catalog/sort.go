package font_catalog

import (
	"fmt"
	"slices"
	"strings"
)

type styleKey struct {
	weight int
	slant  Slant
}

func keyOf(s StyleRecord) styleKey {
	return styleKey{weight: InferWeight(s.Style).Value, slant: ClassifySlant(s.Style)}
}

// SortKey orders styles by weight, then normal < italic < oblique.
func SortKey(style string) string {
	return fmt.Sprintf("%03d.%d", InferWeight(style).Value, ClassifySlant(style))
}

// SortStyles returns a stably sorted copy of styles.
func SortStyles(styles []StyleRecord) []StyleRecord {
	type keyed struct {
		key   string
		style StyleRecord
	}

	items := make([]keyed, len(styles))
	for i, s := range styles {
		items[i] = keyed{key: SortKey(s.Style), style: s}
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		return strings.Compare(a.key, b.key)
	})

	sorted := make([]StyleRecord, len(items))
	for i, it := range items {
		sorted[i] = it.style
	}
	return sorted
}

// DedupeStyles keeps the first style seen for every (weight, slant) pair.
func DedupeStyles(styles []StyleRecord) []StyleRecord {
	seen := make(map[styleKey]bool, len(styles))
	kept := make([]StyleRecord, 0, len(styles))
	for _, s := range styles {
		k := keyOf(s)
		if seen[k] {
			continue
		}
		seen[k] = true
		kept = append(kept, s)
	}
	return kept
}

func NormalizeStyles(styles []StyleRecord) []StyleRecord {
	return DedupeStyles(SortStyles(styles))
}
