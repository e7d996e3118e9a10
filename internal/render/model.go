// Package render builds the fully resolved, serializable description of one
// slide and turns it into a self-contained HTML document for rasterization.
package render

// TextBlock is one template zone with its text already wrapped into lines.
type TextBlock struct {
	ZoneID     string   `json:"zone_id"`
	X          int      `json:"x"`
	Y          int      `json:"y"`
	W          int      `json:"w"`
	H          int      `json:"h"`
	FontSize   int      `json:"font_size"`
	FontWeight int      `json:"font_weight"`
	LineHeight float64  `json:"line_height"`
	Align      string   `json:"align"`
	Color      string   `json:"color"`
	Lines      []string `json:"lines"`
}

// OverlaySpec describes the gradient overlay drawn between background and
// text. All values are resolved; there are no unset sentinels here.
type OverlaySpec struct {
	Enabled   bool   `json:"enabled"`
	Direction string `json:"direction"`
	Strength  int    `json:"strength"`
	Extent    int    `json:"extent"`
	SolidSize int    `json:"solid_size"`
	Color     string `json:"color"`
}

// BackgroundSpec is the resolved background of one slide. ImageURLs carries
// the signed or external URLs for image backgrounds, in slot order.
type BackgroundSpec struct {
	Kind          string      `json:"kind"`
	Color         string      `json:"color,omitempty"`
	GradientFrom  string      `json:"gradient_from,omitempty"`
	GradientTo    string      `json:"gradient_to,omitempty"`
	GradientAngle int         `json:"gradient_angle,omitempty"`
	ImageURLs     []string    `json:"image_urls,omitempty"`
	Overlay       OverlaySpec `json:"overlay"`
}

// ChromeState is the resolved slide furniture.
type ChromeState struct {
	ShowCounter   bool   `json:"show_counter"`
	CounterText   string `json:"counter_text,omitempty"`
	ShowWatermark bool   `json:"show_watermark"`
	WatermarkText string `json:"watermark_text,omitempty"`
	LogoURL       string `json:"logo_url,omitempty"`
	ShowSwipeHint bool   `json:"show_swipe_hint"`
	SwipeHintText string `json:"swipe_hint_text,omitempty"`
}

// SafeArea mirrors the template insets as resolved values.
type SafeArea struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
	Right  int `json:"right"`
}

// SlideRenderModel is the single contract between layout computation and
// rasterization: a flat snapshot with no references back to template or slide
// objects, safe to serialize across a process boundary.
type SlideRenderModel struct {
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	SafeArea   SafeArea       `json:"safe_area"`
	Background BackgroundSpec `json:"background"`
	Blocks     []TextBlock    `json:"blocks"`
	Chrome     ChromeState    `json:"chrome"`
}
