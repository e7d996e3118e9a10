package domain

import (
	"time"

	"slideforge/internal/highlight"
)

// SlideType enumerates the narrative role of a slide within a carousel.
type SlideType string

const (
	SlideTypeHook    SlideType = "hook"
	SlideTypePoint   SlideType = "point"
	SlideTypeContext SlideType = "context"
	SlideTypeCTA     SlideType = "cta"
	SlideTypeGeneric SlideType = "generic"
)

// ZoneOverride carries per-slide adjustments to a template text zone. Zero
// values mean "keep the template value"; the merge is shallow and field-by-field.
type ZoneOverride struct {
	ZoneID     string  `json:"zone_id"`
	FontSize   int     `json:"font_size,omitempty"`
	FontWeight int     `json:"font_weight,omitempty"`
	LineHeight float64 `json:"line_height,omitempty"`
	MaxLines   int     `json:"max_lines,omitempty"`
	Align      string  `json:"align,omitempty"`
	Color      string  `json:"color,omitempty"`
}

// SlideData is one slide's editable content. Highlight spans index into the
// plain (marker-free) headline/body text.
type SlideData struct {
	ID                 string
	CarouselID         string
	Position           int // 1-based
	Type               SlideType
	Headline           string
	Body               string
	HeadlineHighlights []highlight.Span
	BodyHighlights     []highlight.Span
	TemplateID         string // optional slide-level template override
	Background         *BackgroundDescriptor
	Gradient           GradientSpec
	ZoneOverrides      []ZoneOverride
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// OverrideFor returns the slide's override for a zone id, if any.
func (s *SlideData) OverrideFor(zoneID string) (ZoneOverride, bool) {
	for _, o := range s.ZoneOverrides {
		if o.ZoneID == zoneID {
			return o, true
		}
	}
	return ZoneOverride{}, false
}

// Carousel groups an ordered slide set under one owner and default template.
type Carousel struct {
	ID                string
	UserID            string
	Title             string
	Caption           string
	DefaultTemplateID string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
