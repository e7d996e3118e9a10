package highlight

import "testing"

func TestExpandToWordBoundary(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		start, end int
		want       Span
		ok         bool
	}{
		{
			name: "mid word grows both ways",
			text: "grow your business",
			// "ur b" touches "your" first; expansion stays on that word.
			start: 7, end: 11,
			want: Span{Start: 5, End: 9}, ok: true,
		},
		{
			name:  "partial word expands to full selection word",
			text:  "highlight me",
			start: 4, end: 6,
			want: Span{Start: 0, End: 9}, ok: true,
		},
		{
			name:  "whitespace only selection is dropped",
			text:  "a  b",
			start: 1, end: 3,
			ok:    false,
		},
		{
			name:  "punctuation only selection is dropped",
			text:  "wait... what",
			start: 4, end: 7,
			ok:    false,
		},
		{
			name:  "apostrophe stays inside the word",
			text:  "it's here",
			start: 2, end: 3,
			want: Span{Start: 0, End: 4}, ok: true,
		},
		{
			name:  "out of range clamps",
			text:  "edge",
			start: -3, end: 99,
			want: Span{Start: 0, End: 4}, ok: true,
		},
		{
			name:  "empty selection",
			text:  "text",
			start: 2, end: 2,
			ok:    false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExpandToWordBoundary(tc.text, tc.start, tc.end)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && (got.Start != tc.want.Start || got.End != tc.want.End) {
				t.Fatalf("span = [%d,%d), want [%d,%d)", got.Start, got.End, tc.want.Start, tc.want.End)
			}
		})
	}
}

func TestResolveColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"yellow", "#ffd166"},
		{"GREEN", "#06d6a0"},
		{"#ff0000", "#ff0000"},
		{"#FF0000", "#ff0000"},
		{"not-a-color", DefaultColor},
		{"", DefaultColor},
		{"#12345", DefaultColor},
	}
	for _, tc := range tests {
		if got := ResolveColor(tc.in); got != tc.want {
			t.Fatalf("ResolveColor(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeSpansOverlapAndOrder(t *testing.T) {
	text := "one two three four"
	spans := []Span{
		{Start: 8, End: 10, Color: "green"},
		{Start: 0, End: 2, Color: "yellow"},
		{Start: 9, End: 12, Color: "red"},
	}

	got := NormalizeSpans(text, spans)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %#v", len(got), got)
	}
	if got[0].Start != 0 || got[0].End != 3 || got[0].Color != "#ffd166" {
		t.Fatalf("first span = %#v", got[0])
	}
	if got[1].Start != 8 || got[1].End != 13 || got[1].Color != "#06d6a0" {
		t.Fatalf("second span = %#v", got[1])
	}
}

func TestNormalizeSpansIdempotent(t *testing.T) {
	text := "repeatable results matter"
	once := NormalizeSpans(text, []Span{{Start: 3, End: 7, Color: "blue"}, {Start: 12, End: 16, Color: "pink"}})
	twice := NormalizeSpans(text, once)
	if len(once) != len(twice) {
		t.Fatalf("lengths differ: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("span %d changed: %#v vs %#v", i, once[i], twice[i])
		}
	}
}

func TestAutoSpans(t *testing.T) {
	text := "Grow your growth. Growth compounds."
	got := AutoSpans(text, []string{"growth"}, "green")
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %#v", len(got), got)
	}
	// "growth" inside "Grow" must not match; whole words only.
	if got[0].Start != 10 || got[0].End != 16 {
		t.Fatalf("first occurrence = [%d,%d), want [10,16)", got[0].Start, got[0].End)
	}
	if got[1].Start != 18 || got[1].End != 24 {
		t.Fatalf("second occurrence = [%d,%d), want [18,24)", got[1].Start, got[1].End)
	}
	for _, s := range got {
		if s.Color != "#06d6a0" {
			t.Fatalf("color = %q, want %q", s.Color, "#06d6a0")
		}
	}
}

func TestAutoSpansNoMatch(t *testing.T) {
	if got := AutoSpans("plain sentence", []string{"absent", " "}, "red"); len(got) != 0 {
		t.Fatalf("expected no spans, got %#v", got)
	}
}
