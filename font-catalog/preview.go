package font_catalog

import "math"

const (
	MinPreviewSize     = 1.0
	MaxPreviewSize     = 5.0
	DefaultPreviewSize = 2.0
)

// PreviewConfig is shared by every preview. Size is in rem.
type PreviewConfig struct {
	Text string  `json:"text"`
	Size float64 `json:"size"`
}

func DefaultPreviewConfig() PreviewConfig {
	return PreviewConfig{Size: DefaultPreviewSize}
}

func (p PreviewConfig) Clamp() PreviewConfig {
	switch {
	case math.IsNaN(p.Size):
		p.Size = DefaultPreviewSize
	case p.Size < MinPreviewSize:
		p.Size = MinPreviewSize
	case p.Size > MaxPreviewSize:
		p.Size = MaxPreviewSize
	}
	return p
}

// TextFor returns the preview text, or the family name when none is set.
func (p PreviewConfig) TextFor(family string) string {
	if p.Text == "" {
		return family
	}
	return p.Text
}
