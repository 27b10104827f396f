package search

import "strings"

const (
	MarkOpen  = "<mark>"
	MarkClose = "</mark>"
)

// Segment is a piece of a snippet; Match is set for occurrences of the query.
type Segment struct {
	Text  string
	Match bool
}

// Highlighter finds literal, case-insensitive occurrences of one query.
// It folds case exactly as Search does, so every reported match is marked.
type Highlighter struct {
	query string
}

func NewHighlighter(query string) *Highlighter {
	return &Highlighter{query: fold(query).s}
}

// Segments splits s into alternating plain and matching pieces.
// Occurrences do not overlap.
func (h *Highlighter) Segments(s string) []Segment {
	if h.query == "" {
		if s == "" {
			return nil
		}
		return []Segment{{Text: s}}
	}

	fs := fold(s)
	var segs []Segment
	last := 0
	for from := 0; from < len(fs.s); {
		idx := strings.Index(fs.s[from:], h.query)
		if idx < 0 {
			break
		}
		at := from + idx
		start, end := fs.src[at], fs.src[at+len(h.query)]
		if start > last {
			segs = append(segs, Segment{Text: s[last:start]})
		}
		segs = append(segs, Segment{Text: s[start:end], Match: true})
		last = end
		from = at + len(h.query)
	}
	if last < len(s) {
		segs = append(segs, Segment{Text: s[last:]})
	}
	return segs
}

// Mark wraps every occurrence of the query in s with MarkOpen/MarkClose.
func (h *Highlighter) Mark(s string) string {
	var b strings.Builder
	for _, seg := range h.Segments(s) {
		if seg.Match {
			b.WriteString(MarkOpen)
			b.WriteString(seg.Text)
			b.WriteString(MarkClose)
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

// Highlight is a convenience for NewHighlighter(query).Mark(s).
func Highlight(s, query string) string {
	if query == "" {
		return s
	}
	return NewHighlighter(query).Mark(s)
}

// SegmentsAll splits s on occurrences of any of terms. Where matches of
// different terms overlap, the earlier term wins.
func SegmentsAll(s string, terms []string) []Segment {
	segs := []Segment{{Text: s}}
	for _, term := range terms {
		if term == "" {
			continue
		}
		hl := NewHighlighter(term)
		var next []Segment
		for _, seg := range segs {
			if seg.Match {
				next = append(next, seg)
				continue
			}
			next = append(next, hl.Segments(seg.Text)...)
		}
		segs = next
	}
	return segs
}
