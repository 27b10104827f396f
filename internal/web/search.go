package web

import (
	"fmt"
	"io"

	"github.com/dgallion1/studynotes/internal/search"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// SearchPage renders highlighted search results. Snippets are built as
// text and <mark> nodes, so document text is always escaped.
func SearchPage(w io.Writer, filename string, res search.BooleanResult, recent []string) error {
	doc, body := page("Search: " + res.Query)

	appendAll(body,
		textElement(atom.H1, fmt.Sprintf("Results for %q", res.Query)),
		textElement(atom.P, fmt.Sprintf("%s: %d matches", filename, res.Total()), class("meta")),
	)

	for _, r := range res.Results {
		if len(res.Results) > 1 {
			body.AppendChild(textElement(atom.H2, fmt.Sprintf("%s (%d)", r.Query, r.Count)))
		}
		if r.Count == 0 {
			body.AppendChild(textElement(atom.P, "No matches."))
			continue
		}
		terms := res.Terms(r)
		for _, m := range r.Matches {
			body.AppendChild(matchNode(m, terms))
		}
	}

	if len(recent) > 0 {
		list := element(atom.Ul)
		for _, q := range recent {
			list.AppendChild(textElement(atom.Li, q))
		}
		appendAll(body, textElement(atom.H2, "Recent searches"), list)
	}
	return render(w, doc)
}

func matchNode(m search.Match, terms []string) *html.Node {
	loc := fmt.Sprintf("line %d", m.LineNumber)
	if m.PageNumber != nil {
		loc = fmt.Sprintf("page %d, %s", *m.PageNumber, loc)
	}

	snippet := element(atom.P)
	for _, seg := range search.SegmentsAll(m.Plain, terms) {
		if seg.Match {
			snippet.AppendChild(textElement(atom.Mark, seg.Text))
		} else {
			snippet.AppendChild(text(seg.Text))
		}
	}
	return appendAll(element(atom.Div, class("match")),
		textElement(atom.Div, loc, class("meta")),
		snippet,
	)
}
