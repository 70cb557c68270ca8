package font_catalog

import (
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type weightPattern struct {
	pattern *regexp.Regexp
	weight  int
	label   string
}

// Order matters: numeric tokens first, then compound keywords before the
// plain keywords they contain ("ExtraBold" must not hit "bold"). Compounds
// may be written joined, hyphenated or spaced.
var weightPatterns = []weightPattern{
	{regexp.MustCompile(`(?i)\b100\b`), 100, "Thin"},
	{regexp.MustCompile(`(?i)\b200\b`), 200, "Extra Light"},
	{regexp.MustCompile(`(?i)\b300\b`), 300, "Light"},
	{regexp.MustCompile(`(?i)\b400\b`), 400, "Regular"},
	{regexp.MustCompile(`(?i)\b500\b`), 500, "Medium"},
	{regexp.MustCompile(`(?i)\b600\b`), 600, "Semi Bold"},
	{regexp.MustCompile(`(?i)\b700\b`), 700, "Bold"},
	{regexp.MustCompile(`(?i)\b800\b`), 800, "Extra Bold"},
	{regexp.MustCompile(`(?i)\b900\b`), 900, "Black"},
	{regexp.MustCompile(`(?i)\b950\b`), 950, "Extra Black"},

	{regexp.MustCompile(`(?i)\b(extra[\s-]?light|ultra[\s-]?light)\b`), 200, "Extra Light"},
	{regexp.MustCompile(`(?i)\b(extra[\s-]?bold|ultra[\s-]?bold)\b`), 800, "Extra Bold"},
	{regexp.MustCompile(`(?i)\b(extra[\s-]?black|ultra[\s-]?black)\b`), 950, "Extra Black"},
	{regexp.MustCompile(`(?i)\b(semi[\s-]?bold|demi[\s-]?bold)\b`), 600, "Semi Bold"},
	{regexp.MustCompile(`(?i)\b(thin|hairline)\b`), 100, "Thin"},
	{regexp.MustCompile(`(?i)\blight\b`), 300, "Light"},
	{regexp.MustCompile(`(?i)\b(regular|normal|book|roman)\b`), 400, "Regular"},
	{regexp.MustCompile(`(?i)\bmedium\b`), 500, "Medium"},
	{regexp.MustCompile(`(?i)\bbold\b`), 700, "Bold"},
	{regexp.MustCompile(`(?i)\b(black|heavy)\b`), 900, "Black"},
}

var (
	anyNumericWeight = regexp.MustCompile(`\b([1-9]\d{2})\b`)
	standardWeights  = []int{100, 200, 300, 400, 500, 600, 700, 800, 900}

	italicWord  = regexp.MustCompile(`(?i)\bitalic\b`)
	obliqueWord = regexp.MustCompile(`(?i)\boblique\b`)
)

var RegularWeight = Weight{Value: 400, Label: "Regular"}

// InferWeight maps a free-text style label like "ExtraBold Italic" or "700"
// to a weight class.
func InferWeight(style string) Weight {
	for _, p := range weightPatterns {
		if p.pattern.MatchString(style) {
			return Weight{Value: p.weight, Label: p.label}
		}
	}

	if m := anyNumericWeight.FindStringSubmatch(style); m != nil {
		n, _ := strconv.Atoi(m[1])
		closest := snapWeight(n)
		return Weight{Value: closest, Label: labelForWeight(closest)}
	}

	return RegularWeight
}

// snapWeight returns the nearest standard weight, ties going to the lower one.
func snapWeight(n int) int {
	closest := standardWeights[0]
	for _, w := range standardWeights[1:] {
		if abs(w-n) < abs(closest-n) {
			closest = w
		}
	}
	return closest
}

func labelForWeight(w int) string {
	for _, p := range weightPatterns {
		if p.weight == w {
			return p.label
		}
	}
	return strconv.Itoa(w)
}

func ClassifySlant(style string) Slant {
	if italicWord.MatchString(style) {
		return SlantItalic
	}
	if obliqueWord.MatchString(style) {
		return SlantOblique
	}
	return SlantNormal
}

// WeightDescription is the human label shown next to a style preview,
// e.g. "Bold Italic".
func WeightDescription(style string) string {
	w := InferWeight(style)
	slant := ClassifySlant(style)
	if slant == SlantNormal {
		return w.Label
	}
	return fmt.Sprintf("%s %s", w.Label, cases.Title(language.English).String(slant.String()))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
