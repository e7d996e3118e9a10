// Package textfit wraps marked-up slide text into the lines of a template text
// zone. The character budget derives from a fixed average-glyph-width factor
// rather than font metrics, so interactive preview and server-side export
// produce identical wraps for the same input.
package textfit

import (
	"math"
	"strings"

	"slideforge/internal/highlight"
)

// Zone carries the geometry a fit needs. W and FontSize are pixels.
type Zone struct {
	W        int
	FontSize int
	MaxLines int
}

// glyphWidthFactor approximates average glyph width as a fraction of the font
// size. Tuned against the reference renderer's font; changing it moves every
// line break.
const glyphWidthFactor = 0.55

// shortTokenMax is the visible length at or under which a token is considered
// a short word ("a", "to") and must not start or own a line.
const shortTokenMax = 2

// MaxCharsPerLine returns the character budget for one line of the zone.
func MaxCharsPerLine(zone Zone) int {
	if zone.W <= 0 || zone.FontSize <= 0 {
		return 1
	}
	n := int(math.Floor(float64(zone.W) / (float64(zone.FontSize) * glyphWidthFactor)))
	if n < 1 {
		n = 1
	}
	return n
}

// FitToZone wraps text into at most zone.MaxLines lines. Input may carry
// highlight markers; marker characters never count against the line budget and
// a marked span is never split across lines. Text past the line budget is
// silently dropped.
func FitToZone(text string, zone Zone) []string {
	if zone.MaxLines < 1 {
		return nil
	}
	budget := MaxCharsPerLine(zone)
	f := &fitter{zone: zone, budget: budget}

	for _, para := range strings.Split(text, "\n") {
		if f.full() {
			break
		}
		if strings.TrimSpace(highlight.VisibleText(para)) == "" {
			// Blank paragraph keeps its line: intentional spacing.
			f.lines = append(f.lines, "")
			continue
		}
		for _, tok := range tokenize(para) {
			if f.full() {
				break
			}
			f.place(tok)
		}
		f.flush()
	}
	if len(f.lines) > zone.MaxLines {
		f.lines = f.lines[:zone.MaxLines]
	}
	return f.lines
}

// ShortenToZone returns the text truncated to what fits the zone, with the
// computed wrap preserved as hard line breaks.
func ShortenToZone(text string, zone Zone) string {
	return strings.Join(FitToZone(text, zone), "\n")
}

type fitter struct {
	zone   Zone
	budget int
	lines  []string
	cur    []string
	curLen int
}

func (f *fitter) full() bool {
	return len(f.lines) >= f.zone.MaxLines
}

func (f *fitter) lineLenWith(vlen int) int {
	if f.curLen == 0 {
		return vlen
	}
	return f.curLen + 1 + vlen
}

func (f *fitter) append(tok string, vlen int) {
	f.curLen = f.lineLenWith(vlen)
	f.cur = append(f.cur, tok)
}

// flush emits the current line. A line consisting of a single short token is
// merged into the previous output line instead of standing on its own.
func (f *fitter) flush() {
	if len(f.cur) == 0 {
		return
	}
	line := strings.Join(f.cur, " ")
	f.cur = nil
	f.curLen = 0
	if len(f.lines) > 0 {
		last := f.lines[len(f.lines)-1]
		if last != "" && isShortToken(line) {
			f.lines[len(f.lines)-1] = last + " " + line
			return
		}
	}
	f.lines = append(f.lines, line)
}

func (f *fitter) place(tok string) {
	vlen := highlight.VisibleLen(tok)
	if f.lineLenWith(vlen) <= f.budget {
		f.append(tok, vlen)
		return
	}

	switch {
	case vlen <= shortTokenMax:
		f.placeShort(tok, vlen)
	case vlen > f.budget:
		f.placeOverlong(tok, vlen)
	default:
		f.flush()
		if !f.full() {
			f.append(tok, vlen)
		}
	}
}

// placeShort handles a short token that overflows the current line. A new
// line must never start with one: first try backing up the last token of the
// current line so the short word follows it onto the next line; when no such
// break point works, glue the short token on even though the line overflows.
func (f *fitter) placeShort(tok string, vlen int) {
	if len(f.cur) >= 2 {
		tail := f.cur[len(f.cur)-1]
		tailLen := highlight.VisibleLen(tail)
		if tailLen+1+vlen <= f.budget {
			f.cur = f.cur[:len(f.cur)-1]
			f.curLen -= tailLen + 1
			f.flush()
			if f.full() {
				return
			}
			f.append(tail, tailLen)
			f.append(tok, vlen)
			return
		}
	}
	// Overflow beats an orphaned short word.
	f.append(tok, vlen)
}

// placeOverlong handles a token longer than the whole line budget. A complete
// highlighted span is indivisible and becomes its own (visually overflowing)
// line; anything else is hard-split character by character.
func (f *fitter) placeOverlong(tok string, vlen int) {
	f.flush()
	if f.full() {
		return
	}
	if highlight.ContainsMarker(tok) {
		f.lines = append(f.lines, tok)
		return
	}
	runes := []rune(tok)
	for len(runes) > f.budget && !f.full() {
		f.lines = append(f.lines, string(runes[:f.budget]))
		runes = runes[f.budget:]
	}
	if len(runes) > 0 && !f.full() {
		f.append(string(runes), len(runes))
	}
}

func isShortToken(s string) bool {
	n := highlight.VisibleLen(s)
	return n >= 1 && n <= shortTokenMax
}

// tokenize splits a paragraph on whitespace, except that a marked highlight
// span stays one token no matter what whitespace it contains. Punctuation
// glued to a span stays with it.
func tokenize(para string) []string {
	var tokens []string
	var b strings.Builder
	depth := 0
	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	for i := 0; i < len(para); {
		if n := highlight.OpenMarkerLen(para, i); n > 0 {
			depth++
			b.WriteString(para[i : i+n])
			i += n
			continue
		}
		if n := highlight.CloseMarkerLen(para, i); n > 0 {
			if depth > 0 {
				depth--
			}
			b.WriteString(para[i : i+n])
			i += n
			continue
		}
		c := para[i]
		if (c == ' ' || c == '\t') && depth == 0 {
			flush()
			i++
			continue
		}
		b.WriteByte(c)
		i++
	}
	flush()
	return tokens
}
