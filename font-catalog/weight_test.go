package font_catalog

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferWeightNumericTokens(t *testing.T) {
	for _, w := range []int{100, 200, 300, 400, 500, 600, 700, 800, 900, 950} {
		label := "Weight " + strconv.Itoa(w) + " Italic"
		assert.Equal(t, w, InferWeight(label).Value, label)
	}
}

func TestInferWeightNumericOutranksKeywords(t *testing.T) {
	assert.Equal(t, Weight{300, "Light"}, InferWeight("Bold 300"))
}

func TestInferWeightKeywords(t *testing.T) {
	cases := map[string]Weight{
		"ExtraBold":          {800, "Extra Bold"},
		"Extra Bold":         {800, "Extra Bold"},
		"extra-bold":         {800, "Extra Bold"},
		"Ultra Black Italic": {950, "Extra Black"},
		"UltraLight":         {200, "Extra Light"},
		"Extra Light":        {200, "Extra Light"},
		"Ultra Bold Italic":  {800, "Extra Bold"},
		"Extra Black":        {950, "Extra Black"},
		"ultra-black":        {950, "Extra Black"},
		"Semi Bold Italic":   {600, "Semi Bold"},
		"SemiBold":           {600, "Semi Bold"},
		"Demi Bold":          {600, "Semi Bold"},
		"Hairline":           {100, "Thin"},
		"Light Oblique":      {300, "Light"},
		"Book":               {400, "Regular"},
		"Roman":              {400, "Regular"},
		"Medium":             {500, "Medium"},
		"Bold Italic":        {700, "Bold"},
		"Heavy":              {900, "Black"},
		"Black":              {900, "Black"},
	}
	for style, want := range cases {
		assert.Equal(t, want, InferWeight(style), style)
	}
}

func TestInferWeightSnapsUnknownNumbers(t *testing.T) {
	assert.Equal(t, Weight{400, "Regular"}, InferWeight("W350x 450"))
	assert.Equal(t, Weight{400, "Regular"}, InferWeight("450"))
	assert.Equal(t, Weight{300, "Light"}, InferWeight("320"))
	assert.Equal(t, Weight{900, "Black"}, InferWeight("990"))
	assert.Equal(t, Weight{100, "Thin"}, InferWeight("150"))
}

func TestInferWeightFallback(t *testing.T) {
	assert.Equal(t, RegularWeight, InferWeight("Italic"))
	assert.Equal(t, RegularWeight, InferWeight(""))
	assert.Equal(t, RegularWeight, InferWeight("Condensed 12"))
}

func TestClassifySlant(t *testing.T) {
	assert.Equal(t, SlantItalic, ClassifySlant("Bold Italic"))
	assert.Equal(t, SlantItalic, ClassifySlant("ITALIC"))
	assert.Equal(t, SlantOblique, ClassifySlant("Light Oblique"))
	assert.Equal(t, SlantItalic, ClassifySlant("Italic Oblique"))
	assert.Equal(t, SlantNormal, ClassifySlant("BoldItalic"))
	assert.Equal(t, SlantNormal, ClassifySlant("Regular"))
}

func TestWeightDescription(t *testing.T) {
	assert.Equal(t, "Bold Italic", WeightDescription("Bold Italic"))
	assert.Equal(t, "Regular Oblique", WeightDescription("Oblique"))
	assert.Equal(t, "Extra Bold", WeightDescription("ExtraBold"))
	assert.Equal(t, "Regular", WeightDescription("Book"))
}
