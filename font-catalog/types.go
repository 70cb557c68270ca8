package font_catalog

// StyleRecord is one concrete font variant as reported by a font source.
type StyleRecord struct {
	Family         string `json:"family"`
	FullName       string `json:"fullName"`
	Style          string `json:"style"`
	PostscriptName string `json:"postscriptName,omitempty"`

	// Where the face lives, only meaningful to the provider that produced it.
	Provider string `json:"provider,omitempty"`
	Location string `json:"-"`
	Index    int    `json:"-"`
}

type Weight struct {
	Value int    `json:"weight"`
	Label string `json:"label"`
}

type Slant int

const (
	SlantNormal Slant = iota
	SlantItalic
	SlantOblique
)

func (s Slant) String() string {
	switch s {
	case SlantItalic:
		return "italic"
	case SlantOblique:
		return "oblique"
	default:
		return "normal"
	}
}

// GroupedFamily is a family with its sorted, deduplicated styles.
type GroupedFamily struct {
	Family    string        `json:"family"`
	Styles    []StyleRecord `json:"styles"`
	Favorited bool          `json:"favorited"`
}

func (f GroupedFamily) FindStyle(style string) (StyleRecord, bool) {
	for _, s := range f.Styles {
		if s.Style == style {
			return s, true
		}
	}
	return StyleRecord{}, false
}
