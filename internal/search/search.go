// Package search locates case-insensitive occurrences of a query inside an
// extracted document and renders highlighted context snippets.
package search

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/studynotes/internal/textproc"
)

const (
	// DefaultContextChars is the number of characters shown on each side of a match.
	DefaultContextChars = 150

	// pageLookback bounds how far before a match a page marker is looked for.
	pageLookback = 500

	Ellipsis = "..."
)

var pageMarker = regexp.MustCompile(`(?i)---\s*(?:page|slide)\s+(\d+)\s*---`)

// Match is a single occurrence of the query.
type Match struct {
	Position   int    `json:"position"` // byte offset into the document
	LineNumber int    `json:"line_number"`
	PageNumber *int   `json:"page_number"`
	Snippet    string `json:"snippet"`

	// Plain is Snippet without highlight markup.
	Plain string `json:"-"`
}

// Result holds every match of Query in document order.
type Result struct {
	Query   string  `json:"query"`
	Matches []Match `json:"matches"`
	Count   int     `json:"count"`
}

// Clone returns a copy of r that shares no memory with it.
func (r Result) Clone() Result {
	if r.Matches == nil {
		return r
	}
	matches := make([]Match, len(r.Matches))
	for i, m := range r.Matches {
		if m.PageNumber != nil {
			n := *m.PageNumber
			m.PageNumber = &n
		}
		matches[i] = m
	}
	r.Matches = matches
	return r
}

// Search finds every case-insensitive occurrence of query in text. Scanning
// resumes one character after each match start, so overlapping occurrences
// are all reported.
func Search(text, query string, contextChars int) (Result, error) {
	if query == "" {
		return Result{}, textproc.Invalid("query", "must not be empty")
	}
	if contextChars < 0 {
		return Result{}, textproc.Invalid("context_chars", "must not be negative")
	}

	hl := NewHighlighter(query)
	ft := fold(text)
	fq := fold(query).s
	_, step := utf8.DecodeRuneInString(fq)

	res := Result{Query: query, Matches: []Match{}}
	line, counted := 1, 0
	for from := 0; from <= len(ft.s); {
		idx := strings.Index(ft.s[from:], fq)
		if idx < 0 {
			break
		}
		at := from + idx
		start, end := ft.src[at], ft.src[at+len(fq)]

		line += strings.Count(text[counted:start], "\n")
		counted = start

		plain := snippet(text, start, end, contextChars)
		res.Matches = append(res.Matches, Match{
			Position:   start,
			LineNumber: line,
			PageNumber: pageNumber(text, start),
			Snippet:    hl.Mark(plain),
			Plain:      plain,
		})
		from = at + step
	}
	res.Count = len(res.Matches)
	return res, nil
}

// snippet returns text around [start, end) widened by n characters on each
// side, with an ellipsis on every side that was cut.
func snippet(text string, start, end, n int) string {
	lo := backRunes(text, start, n)
	hi := forwardRunes(text, end, n)

	var b strings.Builder
	if lo > 0 {
		b.WriteString(Ellipsis)
	}
	b.WriteString(text[lo:hi])
	if hi < len(text) {
		b.WriteString(Ellipsis)
	}
	return b.String()
}

// pageNumber returns the number of the closest page or slide marker in the
// pageLookback characters before pos.
func pageNumber(text string, pos int) *int {
	window := text[backRunes(text, pos, pageLookback):pos]
	found := pageMarker.FindAllStringSubmatch(window, -1)
	if len(found) == 0 {
		return nil
	}
	n, err := strconv.Atoi(found[len(found)-1][1])
	if err != nil {
		return nil
	}
	return &n
}

func backRunes(s string, pos, n int) int {
	for ; n > 0 && pos > 0; n-- {
		_, size := utf8.DecodeLastRuneInString(s[:pos])
		pos -= size
	}
	return pos
}

func forwardRunes(s string, pos, n int) int {
	for ; n > 0 && pos < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[pos:])
		pos += size
	}
	return pos
}

// folded is a lowercased copy of a string. src maps every byte of s, plus
// the end position, to the byte offset of the source rune it came from.
type folded struct {
	s   string
	src []int
}

func fold(s string) folded {
	var b strings.Builder
	b.Grow(len(s))
	src := make([]int, 0, len(s)+1)
	for i, r := range s {
		n, _ := b.WriteRune(unicode.ToLower(r))
		for range n {
			src = append(src, i)
		}
	}
	src = append(src, len(s))
	return folded{s: b.String(), src: src}
}
