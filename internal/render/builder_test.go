package render

import (
	"strings"
	"testing"

	"slideforge/internal/domain"
	"slideforge/internal/highlight"
)

func testTemplate() *domain.TemplateConfig {
	return &domain.TemplateConfig{
		ID:     "tpl-1",
		Name:   "Bold Hook",
		Width:  1080,
		Height: 1350,
		SafeArea: domain.SafeArea{
			Top: 96, Bottom: 96, Left: 72, Right: 72,
		},
		Background: domain.BackgroundDescriptor{
			Kind:  domain.BackgroundSolid,
			Color: "#101820",
		},
		Gradient: domain.GradientSpec{
			Enabled:   1,
			Direction: "bottom",
			Strength:  60,
			Extent:    40,
			SolidSize: 10,
			Color:     "#000000",
		},
		Zones: []domain.TextZone{
			{
				ID:         "headline",
				Source:     domain.ZoneSourceHeadline,
				X:          72,
				Y:          400,
				W:          936,
				H:          400,
				FontSize:   72,
				FontWeight: 800,
				LineHeight: 1.15,
				MaxLines:   4,
				Align:      "left",
				Color:      "#ffffff",
			},
			{
				ID:         "body",
				Source:     domain.ZoneSourceBody,
				X:          72,
				Y:          850,
				W:          936,
				H:          300,
				FontSize:   40,
				FontWeight: 500,
				LineHeight: 1.3,
				MaxLines:   6,
				Align:      "left",
				Color:      "#d0d0d0",
			},
		},
		Chrome: domain.ChromeRules{
			ShowCounter:    true,
			CounterPattern: "1 / 9",
			ShowWatermark:  true,
			WatermarkText:  "made by studio",
			ShowSwipeHint:  true,
			SwipeHintText:  "swipe",
		},
	}
}

func testSlide() *domain.SlideData {
	return &domain.SlideData{
		ID:         "slide-1",
		CarouselID: "car-1",
		Position:   2,
		Type:       domain.SlideTypePoint,
		Headline:   "Grow your audience",
		Body:       "Consistency beats intensity every single time.",
		Gradient:   domain.NewUnsetGradient(),
	}
}

func TestBuildBasics(t *testing.T) {
	model := Build(BuildInput{
		Template:    testTemplate(),
		Slide:       testSlide(),
		SlideIndex:  2,
		TotalSlides: 7,
	})

	if model.Width != 1080 || model.Height != 1350 {
		t.Fatalf("size = %dx%d, want 1080x1350", model.Width, model.Height)
	}
	if len(model.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(model.Blocks))
	}
	if model.Blocks[0].ZoneID != "headline" || model.Blocks[1].ZoneID != "body" {
		t.Fatalf("block order = %q, %q", model.Blocks[0].ZoneID, model.Blocks[1].ZoneID)
	}
	if len(model.Blocks[0].Lines) == 0 {
		t.Fatal("headline has no lines")
	}
	if model.Chrome.CounterText != "2 / 7" {
		t.Fatalf("counter = %q, want %q", model.Chrome.CounterText, "2 / 7")
	}
	if model.Background.Kind != "solid" || model.Background.Color != "#101820" {
		t.Fatalf("background = %+v", model.Background)
	}
	if !model.Background.Overlay.Enabled || model.Background.Overlay.Strength != 60 {
		t.Fatalf("overlay = %+v", model.Background.Overlay)
	}
}

func TestBuildSkipsEmptyZones(t *testing.T) {
	slide := testSlide()
	slide.Body = "   "
	model := Build(BuildInput{Template: testTemplate(), Slide: slide, SlideIndex: 1, TotalSlides: 1})

	if len(model.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(model.Blocks))
	}
	if model.Blocks[0].ZoneID != "headline" {
		t.Fatalf("kept block = %q, want headline", model.Blocks[0].ZoneID)
	}
}

func TestBuildInjectsHighlightMarkers(t *testing.T) {
	slide := testSlide()
	slide.Headline = "Grow your audience"
	slide.HeadlineHighlights = []highlight.Span{{Start: 5, End: 9, Color: "green"}}

	model := Build(BuildInput{Template: testTemplate(), Slide: slide, SlideIndex: 1, TotalSlides: 1})

	joined := strings.Join(model.Blocks[0].Lines, " ")
	if !strings.Contains(joined, "[[#06d6a0]]your[[/]]") {
		t.Fatalf("headline lines missing marker: %#v", model.Blocks[0].Lines)
	}
}

func TestBuildZoneOverrides(t *testing.T) {
	model := Build(BuildInput{
		Template:    testTemplate(),
		Slide:       testSlide(),
		SlideIndex:  1,
		TotalSlides: 1,
		ZoneOverrides: []domain.ZoneOverride{
			{ZoneID: "headline", FontSize: 90, Color: "#ff0000", MaxLines: 2},
		},
	})

	b := model.Blocks[0]
	if b.FontSize != 90 || b.Color != "#ff0000" {
		t.Fatalf("override not applied: %+v", b)
	}
	if len(b.Lines) > 2 {
		t.Fatalf("max lines override ignored: %d lines", len(b.Lines))
	}
	// Unrelated fields keep the template value.
	if b.FontWeight != 800 {
		t.Fatalf("font weight = %d, want 800", b.FontWeight)
	}
}

func TestBuildSlideBackgroundWins(t *testing.T) {
	slide := testSlide()
	slide.Background = &domain.BackgroundDescriptor{
		Kind: domain.BackgroundGradient,
		From: "#112233",
		To:   "#445566",
	}
	slide.Gradient = domain.NewUnsetGradient()

	model := Build(BuildInput{Template: testTemplate(), Slide: slide, SlideIndex: 1, TotalSlides: 1})

	if model.Background.Kind != "gradient" {
		t.Fatalf("kind = %q, want gradient", model.Background.Kind)
	}
	if model.Background.GradientFrom != "#112233" || model.Background.GradientTo != "#445566" {
		t.Fatalf("gradient = %+v", model.Background)
	}
	// Unset slide gradient keeps the template overlay.
	if !model.Background.Overlay.Enabled {
		t.Fatal("template overlay dropped")
	}
}

func TestBuildBrandFallbacks(t *testing.T) {
	tpl := testTemplate()
	tpl.Background.Color = ""
	tpl.Gradient.Color = ""
	brand := &domain.BrandKit{
		UserID:        "user-1",
		PrimaryColor:  "#123456",
		WatermarkText: "my brand",
		LogoURL:       "https://cdn.example.com/logo.png",
	}

	model := Build(BuildInput{Template: tpl, Slide: testSlide(), Brand: brand, SlideIndex: 1, TotalSlides: 1})

	if model.Background.Color != "#123456" {
		t.Fatalf("background color = %q, want brand primary", model.Background.Color)
	}
	if model.Background.Overlay.Color != "#123456" {
		t.Fatalf("overlay color = %q, want brand primary", model.Background.Overlay.Color)
	}
	if model.Chrome.WatermarkText != "My Brand" {
		t.Fatalf("watermark = %q, want title-cased brand text", model.Chrome.WatermarkText)
	}
	if model.Chrome.LogoURL != brand.LogoURL {
		t.Fatalf("logo = %q", model.Chrome.LogoURL)
	}
}

func TestBuildTextScaleChangesWrapOnly(t *testing.T) {
	tpl := testTemplate()
	slide := testSlide()
	slide.Headline = "A headline long enough to wrap differently at larger font sizes"

	headroom := []domain.ZoneOverride{{ZoneID: "headline", MaxLines: 10}}
	base := Build(BuildInput{Template: tpl, Slide: slide, SlideIndex: 1, TotalSlides: 1, ZoneOverrides: headroom})
	scaled := Build(BuildInput{Template: tpl, Slide: slide, SlideIndex: 1, TotalSlides: 1, TextScale: 1.42, ZoneOverrides: headroom})

	if scaled.Blocks[0].FontSize != base.Blocks[0].FontSize {
		t.Fatalf("TextScale must not change the block font size: %d vs %d",
			scaled.Blocks[0].FontSize, base.Blocks[0].FontSize)
	}
	if len(scaled.Blocks[0].Lines) <= len(base.Blocks[0].Lines) {
		t.Fatalf("larger wrap font should produce more lines: base %d, scaled %d",
			len(base.Blocks[0].Lines), len(scaled.Blocks[0].Lines))
	}
}

func TestCounterText(t *testing.T) {
	tests := []struct {
		pattern string
		index   int
		total   int
		want    string
	}{
		{"1/9", 3, 8, "3/8"},
		{"1 of 9", 1, 12, "1 of 12"},
		{"", 2, 5, "2/5"},
		{"slide 1", 4, 9, "slide 4"},
		{"9-9", 1, 3, "3-3"},
	}
	for _, tc := range tests {
		if got := CounterText(tc.pattern, tc.index, tc.total); got != tc.want {
			t.Fatalf("CounterText(%q, %d, %d) = %q, want %q", tc.pattern, tc.index, tc.total, got, tc.want)
		}
	}
}

func TestScaleTo(t *testing.T) {
	model := Build(BuildInput{Template: testTemplate(), Slide: testSlide(), SlideIndex: 1, TotalSlides: 3})
	scaled := ScaleTo(model, 1080, 1920)

	if scaled.Width != 1080 || scaled.Height != 1920 {
		t.Fatalf("size = %dx%d", scaled.Width, scaled.Height)
	}
	// 1920/1350 ≈ 1.4222
	if scaled.Blocks[0].FontSize != 102 {
		t.Fatalf("font size = %d, want 102", scaled.Blocks[0].FontSize)
	}
	if scaled.Blocks[0].X != model.Blocks[0].X {
		t.Fatalf("x changed at equal width: %d vs %d", scaled.Blocks[0].X, model.Blocks[0].X)
	}
	if scaled.Blocks[0].Y == model.Blocks[0].Y {
		t.Fatal("y not scaled")
	}
	if scaled.SafeArea.Top == model.SafeArea.Top {
		t.Fatal("safe area top not scaled")
	}
	// The original model is untouched.
	if model.Width != 1080 || model.Height != 1350 {
		t.Fatalf("source model mutated: %dx%d", model.Width, model.Height)
	}
}
