package view

import (
	"strings"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

// Segment is a run of cell text, marked when it matched the search term.
type Segment struct {
	Text  string
	Match bool
}

// Highlighter marks occurrences of the search term in cell text.
// Matching is ASCII case-insensitive; a nil or empty Highlighter marks nothing.
type Highlighter struct {
	ac     ahocorasick.AhoCorasick
	active bool
}

// NewHighlighter compiles term. Surrounding whitespace is ignored.
func NewHighlighter(term string) *Highlighter {
	term = strings.TrimSpace(term)
	if term == "" {
		return &Highlighter{}
	}
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  false,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
	})
	return &Highlighter{ac: builder.Build([]string{term}), active: true}
}

// Segments splits text into alternating plain and matched runs.
// Concatenating the segment texts always yields text.
func (h *Highlighter) Segments(text string) []Segment {
	if text == "" {
		return nil
	}
	if h == nil || !h.active {
		return []Segment{{Text: text}}
	}

	var out []Segment
	pos := 0
	for _, m := range h.ac.FindAll(text) {
		if m.Start() < pos {
			continue
		}
		if m.Start() > pos {
			out = append(out, Segment{Text: text[pos:m.Start()]})
		}
		out = append(out, Segment{Text: text[m.Start():m.End()], Match: true})
		pos = m.End()
	}
	if pos < len(text) {
		out = append(out, Segment{Text: text[pos:]})
	}
	return out
}
