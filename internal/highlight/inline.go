package highlight

import "strings"

// SegmentKind tags a run of inline-formatted text.
type SegmentKind string

const (
	SegmentNormal SegmentKind = "normal"
	SegmentBold   SegmentKind = "bold"
	SegmentColor  SegmentKind = "color"
)

// Segment is one homogeneous run of text. Color is set for SegmentColor only.
type Segment struct {
	Kind  SegmentKind
	Text  string
	Color string
}

// ParseInline splits text into normal, bold and color runs. Bold uses the
// "**...**" pair; color uses the highlight marker syntax, either closed with
// "[[/]]" or unclosed, in which case the color runs to the end of the line.
// When multiple constructs start at different offsets the earliest one is
// applied first. Malformed sequences degrade to normal text.
func ParseInline(text string) []Segment {
	var segs []Segment
	rest := text
	for rest != "" {
		boldStart, boldEnd := findBold(rest)
		colorStart, color, colorContentEnd, colorEnd := findColor(rest)

		switch {
		case boldStart < 0 && colorStart < 0:
			segs = appendSegment(segs, Segment{Kind: SegmentNormal, Text: rest})
			rest = ""
		case colorStart < 0 || (boldStart >= 0 && boldStart < colorStart):
			if boldStart > 0 {
				segs = appendSegment(segs, Segment{Kind: SegmentNormal, Text: rest[:boldStart]})
			}
			segs = appendSegment(segs, Segment{Kind: SegmentBold, Text: rest[boldStart+2 : boldEnd]})
			rest = rest[boldEnd+2:]
		default:
			if colorStart > 0 {
				segs = appendSegment(segs, Segment{Kind: SegmentNormal, Text: rest[:colorStart]})
			}
			segs = appendSegment(segs, Segment{
				Kind:  SegmentColor,
				Text:  rest[colorStart+markerOpenLen : colorContentEnd],
				Color: color,
			})
			rest = rest[colorEnd:]
		}
	}
	return segs
}

// findBold locates the earliest closed "**...**" pair. Returns start index of
// the opener and start index of the closer, or -1 when absent or unclosed.
func findBold(s string) (int, int) {
	start := strings.Index(s, markerBold)
	if start < 0 {
		return -1, -1
	}
	closer := strings.Index(s[start+2:], markerBold)
	if closer < 0 {
		return -1, -1
	}
	return start, start + 2 + closer
}

// findColor locates the earliest opening color marker. Returns the opener
// index, the resolved color, the content end index and the index after the
// whole construct. An unclosed marker colors text to the end of the line.
func findColor(s string) (int, string, int, int) {
	for i := 0; i+markerOpenLen <= len(s); i++ {
		color := openColorAt(s, i)
		if color == "" {
			continue
		}
		contentStart := i + markerOpenLen
		if closer := strings.Index(s[contentStart:], markerClose); closer >= 0 {
			return i, color, contentStart + closer, contentStart + closer + len(markerClose)
		}
		end := len(s)
		if nl := strings.IndexByte(s[contentStart:], '\n'); nl >= 0 {
			end = contentStart + nl
		}
		return i, color, end, end
	}
	return -1, "", 0, 0
}

func appendSegment(segs []Segment, s Segment) []Segment {
	if s.Text == "" {
		return segs
	}
	return append(segs, s)
}
