package font_catalog

import (
	"slices"
	"strings"
)

// ResolveFavoritesOrder maps the persisted order onto the loaded families.
// Names with no loaded family are skipped, not removed from the order.
func ResolveFavoritesOrder(order []string, families []GroupedFamily) []GroupedFamily {
	byName := make(map[string]GroupedFamily, len(families))
	for _, f := range families {
		if _, dup := byName[f.Family]; !dup {
			byName[f.Family] = f
		}
	}

	resolved := make([]GroupedFamily, 0, len(order))
	for _, name := range order {
		if f, ok := byName[name]; ok {
			resolved = append(resolved, f)
		}
	}
	return resolved
}

// ToggleFavorite removes family from order, or appends it when absent.
func ToggleFavorite(order []string, family string) []string {
	if slices.Contains(order, family) {
		return slices.DeleteFunc(slices.Clone(order), func(name string) bool { return name == family })
	}
	return append(slices.Clone(order), family)
}

// UniqueOrder drops repeated names, keeping the first occurrence.
func UniqueOrder(order []string) []string {
	seen := make(map[string]bool, len(order))
	unique := make([]string, 0, len(order))
	for _, name := range order {
		if seen[name] {
			continue
		}
		seen[name] = true
		unique = append(unique, name)
	}
	return unique
}

// PreviewStyle picks the style shown in a family's collapsed preview,
// preferring the regular weight.
func PreviewStyle(f GroupedFamily) (StyleRecord, bool) {
	if len(f.Styles) == 0 {
		return StyleRecord{}, false
	}

	for _, s := range f.Styles {
		label := strings.ToLower(s.Style)
		if label == "regular" || label == "normal" || strings.Contains(label, "400") {
			return s, true
		}
	}
	for _, s := range f.Styles {
		label := strings.ToLower(s.Style)
		if !strings.Contains(label, "italic") && !strings.Contains(label, "oblique") {
			return s, true
		}
	}
	return f.Styles[0], true
}
