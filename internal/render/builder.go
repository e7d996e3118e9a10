package render

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"slideforge/internal/domain"
	"slideforge/internal/highlight"
	"slideforge/internal/textfit"
)

// BuildInput bundles the already-resolved inputs for one slide.
type BuildInput struct {
	Template      *domain.TemplateConfig
	Slide         *domain.SlideData
	Brand         *domain.BrandKit
	SlideIndex    int // 1-based
	TotalSlides   int
	ZoneOverrides []domain.ZoneOverride
	// TextScale scales the font size for the wrapping computation only, so
	// export at non-1:1 aspect ratios wraps the way it will render. Zero
	// means 1.
	TextScale float64
	// ImageURLs are the resolved background image URLs to inject, slot
	// order preserved.
	ImageURLs []string
}

var titleCaser = cases.Title(language.English)

// Build merges template configuration, per-slide overrides, brand identity and
// the resolved background into one SlideRenderModel. The output shares no
// state with the inputs.
func Build(in BuildInput) SlideRenderModel {
	tpl := in.Template
	slide := in.Slide

	model := SlideRenderModel{
		Width:  tpl.Width,
		Height: tpl.Height,
		SafeArea: SafeArea{
			Top:    tpl.SafeArea.Top,
			Bottom: tpl.SafeArea.Bottom,
			Left:   tpl.SafeArea.Left,
			Right:  tpl.SafeArea.Right,
		},
	}

	model.Background = buildBackground(tpl, slide, in.Brand, in.ImageURLs)
	model.Chrome = buildChrome(tpl, in.Brand, in.SlideIndex, in.TotalSlides)

	scale := in.TextScale
	if scale <= 0 {
		scale = 1
	}
	for _, zone := range tpl.Zones {
		merged := mergeZone(zone, in.ZoneOverrides)
		if !merged.Valid() {
			continue
		}
		text, spans := zoneSource(merged, slide)
		if strings.TrimSpace(text) == "" {
			continue
		}
		if len(spans) > 0 {
			text = highlight.InjectMarkers(text, highlight.NormalizeSpans(text, spans))
		}
		wrapFont := int(math.Round(float64(merged.FontSize) * scale))
		lines := textfit.FitToZone(text, textfit.Zone{
			W:        merged.W,
			FontSize: wrapFont,
			MaxLines: merged.MaxLines,
		})
		if len(lines) == 0 {
			continue
		}
		model.Blocks = append(model.Blocks, TextBlock{
			ZoneID:     merged.ID,
			X:          merged.X,
			Y:          merged.Y,
			W:          merged.W,
			H:          merged.H,
			FontSize:   merged.FontSize,
			FontWeight: merged.FontWeight,
			LineHeight: merged.LineHeight,
			Align:      merged.Align,
			Color:      merged.Color,
			Lines:      lines,
		})
	}
	return model
}

// mergeZone applies a per-slide zone override, override winning field-by-field.
func mergeZone(zone domain.TextZone, overrides []domain.ZoneOverride) domain.TextZone {
	for _, o := range overrides {
		if o.ZoneID != zone.ID {
			continue
		}
		if o.FontSize > 0 {
			zone.FontSize = o.FontSize
		}
		if o.FontWeight > 0 {
			zone.FontWeight = o.FontWeight
		}
		if o.LineHeight > 0 {
			zone.LineHeight = o.LineHeight
		}
		if o.MaxLines > 0 {
			zone.MaxLines = o.MaxLines
		}
		if o.Align != "" {
			zone.Align = o.Align
		}
		if o.Color != "" {
			zone.Color = o.Color
		}
		break
	}
	return zone
}

func zoneSource(zone domain.TextZone, slide *domain.SlideData) (string, []highlight.Span) {
	switch zone.Source {
	case domain.ZoneSourceBody:
		return slide.Body, slide.BodyHighlights
	default:
		return slide.Headline, slide.HeadlineHighlights
	}
}

func buildBackground(tpl *domain.TemplateConfig, slide *domain.SlideData, brand *domain.BrandKit, imageURLs []string) BackgroundSpec {
	desc := tpl.Background
	if slide.Background != nil {
		desc = *slide.Background
	}
	gradient := domain.MergeGradient(tpl.Gradient, slide.Gradient)

	spec := BackgroundSpec{
		Kind:          string(desc.Kind),
		Color:         desc.Color,
		GradientFrom:  desc.From,
		GradientTo:    desc.To,
		GradientAngle: desc.Angle,
		ImageURLs:     append([]string(nil), imageURLs...),
		Overlay: OverlaySpec{
			Enabled:   gradient.Enabled == 1,
			Direction: gradient.Direction,
			Strength:  clampUnset(gradient.Strength),
			Extent:    clampUnset(gradient.Extent),
			SolidSize: clampUnset(gradient.SolidSize),
			Color:     gradient.Color,
		},
	}
	// Templates that defer color choices to the brand leave them empty.
	if brand != nil {
		if spec.Color == "" {
			spec.Color = brand.PrimaryColor
		}
		if spec.Overlay.Color == "" {
			spec.Overlay.Color = brand.PrimaryColor
		}
	}
	return spec
}

func buildChrome(tpl *domain.TemplateConfig, brand *domain.BrandKit, index, total int) ChromeState {
	chrome := ChromeState{
		ShowCounter:   tpl.Chrome.ShowCounter,
		ShowWatermark: tpl.Chrome.ShowWatermark,
		ShowSwipeHint: tpl.Chrome.ShowSwipeHint,
		SwipeHintText: tpl.Chrome.SwipeHintText,
	}
	if chrome.ShowCounter {
		chrome.CounterText = CounterText(tpl.Chrome.CounterPattern, index, total)
	}
	if chrome.ShowWatermark {
		text := tpl.Chrome.WatermarkText
		if brand != nil && brand.WatermarkText != "" {
			text = brand.WatermarkText
		}
		chrome.WatermarkText = titleCaser.String(text)
		if brand != nil {
			chrome.LogoURL = brand.LogoURL
		}
	}
	return chrome
}

// ScaleTo maps a template-space model onto the target pixel size. Horizontal
// geometry follows the width ratio, vertical geometry and font size the height
// ratio — the same ratio Build applies to the wrap via TextScale, so line
// breaks match what renders.
func ScaleTo(model SlideRenderModel, width, height int) SlideRenderModel {
	if model.Width <= 0 || model.Height <= 0 {
		model.Width, model.Height = width, height
		return model
	}
	sx := float64(width) / float64(model.Width)
	sy := float64(height) / float64(model.Height)
	scaleX := func(v int) int { return int(math.Round(float64(v) * sx)) }
	scaleY := func(v int) int { return int(math.Round(float64(v) * sy)) }

	model.Width, model.Height = width, height
	model.SafeArea.Left = scaleX(model.SafeArea.Left)
	model.SafeArea.Right = scaleX(model.SafeArea.Right)
	model.SafeArea.Top = scaleY(model.SafeArea.Top)
	model.SafeArea.Bottom = scaleY(model.SafeArea.Bottom)

	blocks := make([]TextBlock, len(model.Blocks))
	for i, b := range model.Blocks {
		b.X = scaleX(b.X)
		b.W = scaleX(b.W)
		b.Y = scaleY(b.Y)
		b.H = scaleY(b.H)
		b.FontSize = scaleY(b.FontSize)
		b.Lines = append([]string(nil), b.Lines...)
		blocks[i] = b
	}
	model.Blocks = blocks
	return model
}

// CounterText substitutes the pattern's placeholder digits: every "1" becomes
// the 1-based slide index and every "9" the total count. This is a literal
// find/replace over the configured pattern, not a numeric formatter.
func CounterText(pattern string, index, total int) string {
	if pattern == "" {
		pattern = "1/9"
	}
	var b strings.Builder
	for _, r := range pattern {
		switch r {
		case '1':
			b.WriteString(strconv.Itoa(index))
		case '9':
			b.WriteString(strconv.Itoa(total))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func clampUnset(v int) int {
	if v == domain.GradientUnset {
		return 0
	}
	return v
}
