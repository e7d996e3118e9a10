// Package highlight implements the highlight-span model: word-boundary
// snapping of selections, span normalization, and the marker syntax used to
// carry colored spans inside otherwise plain text. All functions are pure and
// operate on rune indices.
package highlight

import (
	"sort"
	"strings"
	"unicode"
)

// Span marks a half-open character range [Start, End) over marker-free text.
type Span struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Color string `json:"color"`
}

// DefaultColor is used when a span carries no resolvable color.
const DefaultColor = "#ffd166"

var presetColors = map[string]string{
	"yellow": "#ffd166",
	"orange": "#ff9f43",
	"red":    "#ef476f",
	"pink":   "#ff6b9d",
	"green":  "#06d6a0",
	"blue":   "#118ab2",
	"purple": "#9b5de5",
	"white":  "#ffffff",
}

// ResolveColor turns a named preset or hex value into a lowercase 6-digit hex
// color. Unknown values fall back to DefaultColor.
func ResolveColor(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	if hex, ok := presetColors[c]; ok {
		return hex
	}
	if isHexColor(c) {
		return c
	}
	return DefaultColor
}

func isHexColor(c string) bool {
	if len(c) != 7 || c[0] != '#' {
		return false
	}
	for _, r := range c[1:] {
		if !isHexDigit(byte(r)) {
			return false
		}
	}
	return true
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// isWordRune matches letters, digits and the apostrophe. Whitespace and other
// punctuation terminate a word.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\''
}

// ExpandToWordBoundary grows a raw selection outward to the enclosing word.
// Only the first word touched by the selection is kept; the expansion never
// crosses whitespace into an adjacent word. It reports false when the
// selection contains no word character, in which case callers drop the
// highlight.
func ExpandToWordBoundary(text string, start, end int) (Span, bool) {
	runes := []rune(text)
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return Span{}, false
	}

	// First word character inside the selection anchors the expansion.
	anchor := -1
	for i := start; i < end; i++ {
		if isWordRune(runes[i]) {
			anchor = i
			break
		}
	}
	if anchor < 0 {
		return Span{}, false
	}

	left := anchor
	for left > 0 && isWordRune(runes[left-1]) {
		left--
	}
	right := anchor + 1
	for right < len(runes) && isWordRune(runes[right]) {
		right++
	}
	return Span{Start: left, End: right}, true
}

// NormalizeSpans snaps every span to word boundaries, drops spans with no word
// content, resolves colors, sorts by start and removes overlaps (the earlier
// span wins). Normalizing an already-normalized list is a no-op.
func NormalizeSpans(text string, spans []Span) []Span {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		expanded, ok := ExpandToWordBoundary(text, s.Start, s.End)
		if !ok {
			continue
		}
		expanded.Color = ResolveColor(s.Color)
		out = append(out, expanded)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })

	deduped := out[:0]
	prevEnd := -1
	for _, s := range out {
		if s.Start < prevEnd {
			continue
		}
		deduped = append(deduped, s)
		prevEnd = s.End
	}
	return deduped
}

// AutoSpans produces normalized spans for every whole-word, case-insensitive
// occurrence of the given keywords. Used for automatic keyword highlighting.
func AutoSpans(text string, keywords []string, color string) []Span {
	runes := []rune(strings.ToLower(text))
	var spans []Span
	for _, kw := range keywords {
		kwRunes := []rune(strings.ToLower(strings.TrimSpace(kw)))
		if len(kwRunes) == 0 {
			continue
		}
		for i := 0; i+len(kwRunes) <= len(runes); i++ {
			if !runesEqual(runes[i:i+len(kwRunes)], kwRunes) {
				continue
			}
			if i > 0 && isWordRune(runes[i-1]) {
				continue
			}
			if j := i + len(kwRunes); j < len(runes) && isWordRune(runes[j]) {
				continue
			}
			spans = append(spans, Span{Start: i, End: i + len(kwRunes), Color: color})
		}
	}
	return NormalizeSpans(text, spans)
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
