package highlight

import (
	"sort"
	"strings"
)

// Marker syntax: an opening marker "[[#rrggbb]]" and the closing marker
// "[[/]]". Anything that does not parse as a marker is ordinary text.
const (
	markerClose   = "[[/]]"
	markerOpenLen = len("[[#rrggbb]]")
	markerBold    = "**"
)

// InjectMarkers inserts a marker pair around each span. Spans are clamped to
// the text, sorted by start, and overlaps are resolved left-to-right: where
// ranges collide the earlier span wins and the later one is trimmed or
// dropped.
func InjectMarkers(text string, spans []Span) string {
	runes := []rune(text)
	clamped := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Start < 0 {
			s.Start = 0
		}
		if s.End > len(runes) {
			s.End = len(runes)
		}
		if s.End <= s.Start {
			continue
		}
		clamped = append(clamped, s)
	}
	sort.SliceStable(clamped, func(i, j int) bool { return clamped[i].Start < clamped[j].Start })

	var b strings.Builder
	pos := 0
	for _, s := range clamped {
		if s.Start < pos {
			s.Start = pos
		}
		if s.End <= s.Start {
			continue
		}
		b.WriteString(string(runes[pos:s.Start]))
		b.WriteString("[[" + ResolveColor(s.Color) + "]]")
		b.WriteString(string(runes[s.Start:s.End]))
		b.WriteString(markerClose)
		pos = s.End
	}
	b.WriteString(string(runes[pos:]))
	return b.String()
}

// StripMarkers removes highlight markers, leaving only content. Malformed
// marker-like sequences are kept as literal text. StripMarkers(InjectMarkers(t,
// spans)) == t for any valid non-overlapping span set.
func StripMarkers(marked string) string {
	var b strings.Builder
	for i := 0; i < len(marked); {
		if n := markerLenAt(marked, i); n > 0 {
			i += n
			continue
		}
		b.WriteByte(marked[i])
		i++
	}
	return b.String()
}

// markerLenAt returns the byte length of the marker starting at i, or 0.
func markerLenAt(s string, i int) int {
	if strings.HasPrefix(s[i:], markerClose) {
		return len(markerClose)
	}
	if openColorAt(s, i) != "" {
		return markerOpenLen
	}
	return 0
}

// openColorAt returns the hex color of an opening marker at i, or "".
func openColorAt(s string, i int) string {
	if i+markerOpenLen > len(s) {
		return ""
	}
	seg := s[i : i+markerOpenLen]
	if !strings.HasPrefix(seg, "[[#") || !strings.HasSuffix(seg, "]]") {
		return ""
	}
	hex := seg[2 : 2+7]
	if !isHexColor(strings.ToLower(hex)) {
		return ""
	}
	return strings.ToLower(hex)
}

// VisibleText strips highlight and bold markers; the result is what the viewer
// reads. The fitting engine counts characters of this form only.
func VisibleText(s string) string {
	return strings.ReplaceAll(StripMarkers(s), markerBold, "")
}

// VisibleLen counts visible characters (runes) of a possibly-marked string.
func VisibleLen(s string) int {
	return len([]rune(VisibleText(s)))
}

// OpenMarkerLen returns the byte length of an opening marker at i, or 0.
func OpenMarkerLen(s string, i int) int {
	if openColorAt(s, i) == "" {
		return 0
	}
	return markerOpenLen
}

// CloseMarkerLen returns the byte length of a closing marker at i, or 0.
func CloseMarkerLen(s string, i int) int {
	if strings.HasPrefix(s[i:], markerClose) {
		return len(markerClose)
	}
	return 0
}

// ContainsMarker reports whether s holds any highlight marker.
func ContainsMarker(s string) bool {
	for i := 0; i < len(s); i++ {
		if markerLenAt(s, i) > 0 {
			return true
		}
	}
	return false
}

// IsMarkedSpan reports whether the whole string is exactly one marker-wrapped
// span. Such tokens are indivisible during line fitting.
func IsMarkedSpan(s string) bool {
	color := openColorAt(s, 0)
	if color == "" || !strings.HasSuffix(s, markerClose) {
		return false
	}
	inner := s[markerOpenLen : len(s)-len(markerClose)]
	// No nested markers inside a single span.
	for i := 0; i < len(inner); i++ {
		if markerLenAt(inner, i) > 0 {
			return false
		}
	}
	return len(inner) > 0
}
