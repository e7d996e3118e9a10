package render

import (
	"fmt"
	"html/template"
	"strings"

	"slideforge/internal/highlight"
)

// Mode selects which passes of the slide are present in the generated
// document.
type Mode string

const (
	// ModeFull renders background, text and chrome: the static export shape.
	ModeFull Mode = "full"
	// ModeBackground renders background layers only, for video background
	// frames.
	ModeBackground Mode = "background"
	// ModeOverlay renders text and chrome on a transparent base, for the
	// reusable video overlay frame.
	ModeOverlay Mode = "overlay"
)

// RootSelector is the CSS selector of the element the rasterizer screenshots.
const RootSelector = "#slide"

// HTML produces a self-contained document embedding the render model as styled
// markup. The document references nothing outside itself except the background
// image URLs already present in the model.
func HTML(model SlideRenderModel, mode Mode) (string, error) {
	view := buildView(model, mode)
	var b strings.Builder
	if err := pageTemplate.Execute(&b, view); err != nil {
		return "", fmt.Errorf("render: execute template: %w", err)
	}
	return b.String(), nil
}

type segView struct {
	Bold  bool
	Color string
	Text  string
}

type lineView struct {
	Blank bool
	Segs  []segView
}

type blockView struct {
	Style template.CSS
	Lines []lineView
}

type layerView struct {
	Style template.CSS
}

type pageView struct {
	Width       int
	Height      int
	SlideStyle  template.CSS
	Layers      []layerView
	Overlay     *layerView
	Blocks      []blockView
	Chrome      ChromeState
	ChromeStyle template.CSS
	ShowContent bool
}

func buildView(model SlideRenderModel, mode Mode) pageView {
	v := pageView{
		Width:       model.Width,
		Height:      model.Height,
		ShowContent: mode != ModeBackground,
		Chrome:      model.Chrome,
	}
	base := "position:relative;overflow:hidden;"
	if mode == ModeOverlay {
		base += "background:transparent;"
	}
	v.SlideStyle = template.CSS(fmt.Sprintf("%swidth:%dpx;height:%dpx;", base, model.Width, model.Height))

	if mode != ModeOverlay {
		v.Layers = backgroundLayers(model.Background, model.Width, model.Height)
		if model.Background.Overlay.Enabled {
			v.Overlay = &layerView{Style: overlayStyle(model.Background.Overlay)}
		}
	}
	if v.ShowContent {
		for _, block := range model.Blocks {
			v.Blocks = append(v.Blocks, buildBlockView(block))
		}
		v.ChromeStyle = template.CSS(fmt.Sprintf(
			"position:absolute;left:%dpx;right:%dpx;bottom:%dpx;",
			model.SafeArea.Left, model.SafeArea.Right, model.SafeArea.Bottom,
		))
	}
	return v
}

func backgroundLayers(bg BackgroundSpec, w, h int) []layerView {
	full := fmt.Sprintf("position:absolute;inset:0;width:%dpx;height:%dpx;", w, h)
	switch bg.Kind {
	case "gradient":
		return []layerView{{Style: template.CSS(fmt.Sprintf(
			"%sbackground:linear-gradient(%ddeg,%s,%s);", full, bg.GradientAngle, bg.GradientFrom, bg.GradientTo,
		))}}
	case "image", "multi_image":
		n := len(bg.ImageURLs)
		if n == 0 {
			return []layerView{{Style: template.CSS(full + "background:" + safeColor(bg.Color) + ";")}}
		}
		var layers []layerView
		sliceH := h / n
		for i, url := range bg.ImageURLs {
			// Quotes and parens would escape the url() literal.
			url = strings.NewReplacer("'", "%27", "(", "%28", ")", "%29").Replace(url)
			layers = append(layers, layerView{Style: template.CSS(fmt.Sprintf(
				"position:absolute;left:0;top:%dpx;width:%dpx;height:%dpx;background-image:url('%s');background-size:cover;background-position:center;",
				i*sliceH, w, sliceH, url,
			))})
		}
		return layers
	default: // solid
		return []layerView{{Style: template.CSS(full + "background:" + safeColor(bg.Color) + ";")}}
	}
}

func overlayStyle(o OverlaySpec) template.CSS {
	direction := o.Direction
	if direction == "" {
		direction = "to top"
	}
	alpha := float64(o.Strength) / 100
	if alpha <= 0 {
		alpha = 0.6
	}
	extent := o.Extent
	if extent <= 0 {
		extent = 60
	}
	solid := o.SolidSize
	return template.CSS(fmt.Sprintf(
		"position:absolute;inset:0;background:linear-gradient(%s,%s %d%%,rgba(0,0,0,0) %d%%);opacity:%.2f;",
		direction, safeColor(o.Color), solid, extent, alpha,
	))
}

func buildBlockView(block TextBlock) blockView {
	align := block.Align
	if align == "" {
		align = "left"
	}
	lineHeight := block.LineHeight
	if lineHeight <= 0 {
		lineHeight = 1.2
	}
	weight := block.FontWeight
	if weight == 0 {
		weight = 700
	}
	style := template.CSS(fmt.Sprintf(
		"position:absolute;left:%dpx;top:%dpx;width:%dpx;height:%dpx;font-size:%dpx;font-weight:%d;line-height:%.2f;text-align:%s;color:%s;",
		block.X, block.Y, block.W, block.H, block.FontSize, weight, lineHeight, align, safeColor(block.Color),
	))
	out := blockView{Style: style}
	for _, line := range block.Lines {
		if line == "" {
			out.Lines = append(out.Lines, lineView{Blank: true})
			continue
		}
		var lv lineView
		for _, seg := range highlight.ParseInline(line) {
			lv.Segs = append(lv.Segs, segView{
				Bold:  seg.Kind == highlight.SegmentBold,
				Color: seg.Color,
				Text:  seg.Text,
			})
		}
		out.Lines = append(out.Lines, lv)
	}
	return out
}

// safeColor admits hex colors and simple CSS color words; anything else falls
// back to black so user data cannot smuggle CSS.
func safeColor(c string) string {
	c = strings.TrimSpace(c)
	if c == "" {
		return "#000000"
	}
	if strings.HasPrefix(c, "#") {
		for _, r := range c[1:] {
			if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
				return "#000000"
			}
		}
		return c
	}
	for _, r := range c {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return "#000000"
		}
	}
	return c
}

var pageTemplate = template.Must(template.New("slide").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
html,body{margin:0;padding:0;}
.slide{font-family:'Helvetica Neue',Arial,sans-serif;}
.line{white-space:pre;}
.line.blank{min-height:1em;}
.chrome{display:flex;justify-content:space-between;align-items:center;font-size:28px;color:#ffffff;}
.watermark img{height:40px;vertical-align:middle;margin-right:10px;}
</style>
</head>
<body>
<div id="slide" class="slide" style="{{.SlideStyle}}">
{{- range .Layers}}
<div class="bg-layer" style="{{.Style}}"></div>
{{- end}}
{{- with .Overlay}}
<div class="bg-overlay" style="{{.Style}}"></div>
{{- end}}
{{- if .ShowContent}}
{{- range .Blocks}}
<div class="zone" style="{{.Style}}">
{{- range .Lines}}
{{- if .Blank}}
<div class="line blank">&nbsp;</div>
{{- else}}
<div class="line">
{{- range .Segs}}
{{- if .Bold}}<strong>{{.Text}}</strong>
{{- else if .Color}}<span style="color:{{.Color}}">{{.Text}}</span>
{{- else}}<span>{{.Text}}</span>
{{- end}}
{{- end}}
</div>
{{- end}}
{{- end}}
</div>
{{- end}}
<div class="chrome" style="{{.ChromeStyle}}">
{{- if .Chrome.ShowWatermark}}
<div class="watermark">{{if .Chrome.LogoURL}}<img src="{{.Chrome.LogoURL}}" alt="">{{end}}{{.Chrome.WatermarkText}}</div>
{{- end}}
{{- if .Chrome.ShowSwipeHint}}
<div class="swipe">{{.Chrome.SwipeHintText}}</div>
{{- end}}
{{- if .Chrome.ShowCounter}}
<div class="counter">{{.Chrome.CounterText}}</div>
{{- end}}
</div>
{{- end}}
</div>
</body>
</html>
`))
