package domain

// Zone text sources. Each zone draws its text from one slide field.
const (
	ZoneSourceHeadline = "headline"
	ZoneSourceBody     = "body"
)

// TextZone is a named rectangular text region defined by a template. Zones are
// immutable on the template; slides may override individual fields.
type TextZone struct {
	ID         string  `json:"id"`
	Source     string  `json:"source"`
	X          int     `json:"x"`
	Y          int     `json:"y"`
	W          int     `json:"w"`
	H          int     `json:"h"`
	FontSize   int     `json:"font_size"`
	FontWeight int     `json:"font_weight"`
	LineHeight float64 `json:"line_height"`
	MaxLines   int     `json:"max_lines"`
	Align      string  `json:"align"`
	Color      string  `json:"color"`
}

// Valid reports whether the zone satisfies the geometry invariants.
func (z TextZone) Valid() bool {
	return z.MaxLines >= 1 && z.W > 0
}

// SafeArea describes insets kept free of text and chrome.
type SafeArea struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
	Right  int `json:"right"`
}

// GradientUnset marks a gradient field a slide did not override; the template
// default applies.
const GradientUnset = -1

// GradientSpec holds overlay gradient settings. Slide-level values equal to
// GradientUnset (or empty strings) fall back to the template default
// field-by-field.
type GradientSpec struct {
	Enabled   int    `json:"enabled"` // GradientUnset, 0 or 1
	Direction string `json:"direction"`
	Strength  int    `json:"strength"`
	Extent    int    `json:"extent"`
	SolidSize int    `json:"solid_size"`
	Color     string `json:"color"`
}

// NewUnsetGradient returns a GradientSpec with every field at its sentinel.
func NewUnsetGradient() GradientSpec {
	return GradientSpec{
		Enabled:   GradientUnset,
		Strength:  GradientUnset,
		Extent:    GradientUnset,
		SolidSize: GradientUnset,
	}
}

// MergeGradient applies slide overrides on top of template defaults, slide
// winning field-by-field.
func MergeGradient(base, override GradientSpec) GradientSpec {
	out := base
	if override.Enabled != GradientUnset {
		out.Enabled = override.Enabled
	}
	if override.Direction != "" {
		out.Direction = override.Direction
	}
	if override.Strength != GradientUnset {
		out.Strength = override.Strength
	}
	if override.Extent != GradientUnset {
		out.Extent = override.Extent
	}
	if override.SolidSize != GradientUnset {
		out.SolidSize = override.SolidSize
	}
	if override.Color != "" {
		out.Color = override.Color
	}
	return out
}

// ChromeRules control the non-text furniture rendered on a slide.
type ChromeRules struct {
	ShowCounter    bool   `json:"show_counter"`
	CounterPattern string `json:"counter_pattern"`
	ShowWatermark  bool   `json:"show_watermark"`
	WatermarkText  string `json:"watermark_text"`
	ShowSwipeHint  bool   `json:"show_swipe_hint"`
	SwipeHintText  string `json:"swipe_hint_text"`
}

// TemplateConfig is the declarative visual template a slide renders against.
// Loaded once per slide render and treated as read-only.
type TemplateConfig struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Width      int                  `json:"width"`
	Height     int                  `json:"height"`
	SafeArea   SafeArea             `json:"safe_area"`
	Background BackgroundDescriptor `json:"background"`
	Gradient   GradientSpec         `json:"gradient"`
	Zones      []TextZone           `json:"zones"`
	Chrome     ChromeRules          `json:"chrome"`
}

// ZoneByID returns the template zone with the given id.
func (t *TemplateConfig) ZoneByID(id string) (TextZone, bool) {
	for _, z := range t.Zones {
		if z.ID == id {
			return z, true
		}
	}
	return TextZone{}, false
}
