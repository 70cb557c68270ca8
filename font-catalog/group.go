package font_catalog

import "slices"

// GroupFonts partitions styles into families in first-seen order. Every
// family's styles are sorted and deduplicated.
func GroupFonts(styles []StyleRecord, favoritesOrder []string) []GroupedFamily {
	index := make(map[string]int)
	groups := make([]GroupedFamily, 0)

	for _, s := range styles {
		i, found := index[s.Family]
		if !found {
			i = len(groups)
			index[s.Family] = i
			groups = append(groups, GroupedFamily{Family: s.Family})
		}
		groups[i].Styles = append(groups[i].Styles, s)
	}

	for i := range groups {
		groups[i].Styles = NormalizeStyles(groups[i].Styles)
		groups[i].Favorited = slices.Contains(favoritesOrder, groups[i].Family)
	}

	return groups
}
