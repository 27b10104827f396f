package web

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/studynotes/internal/analysis"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// SummaryMarkdown renders an overview as Markdown. Document text is
// escaped so that it is never interpreted as markup.
func SummaryMarkdown(ov analysis.Overview) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Study notes: %s\n\n", escapeMarkdown(ov.Filename))

	b.WriteString("## Key points\n\n")
	for i, s := range ov.Summary.Sentences {
		fmt.Fprintf(&b, "%d. %s\n", i+1, escapeMarkdown(s))
	}

	b.WriteString("\n## Keywords\n\n")
	if len(ov.Keywords) == 0 {
		b.WriteString("_None_\n")
	} else {
		words := make([]string, len(ov.Keywords))
		for i, k := range ov.Keywords {
			words[i] = "`" + k + "`"
		}
		b.WriteString(strings.Join(words, ", ") + "\n")
	}

	b.WriteString("\n## Statistics\n\n")
	b.WriteString("| | Document | Summary |\n|---|---:|---:|\n")
	fmt.Fprintf(&b, "| Words | %d | %d |\n", ov.Stats.WordCount, ov.SummaryStats.WordCount)
	fmt.Fprintf(&b, "| Characters | %d | %d |\n", ov.Stats.CharCount, ov.SummaryStats.CharCount)
	fmt.Fprintf(&b, "| Sentences | %d | %d |\n", ov.Stats.SentenceCount, len(ov.Summary.Sentences))
	fmt.Fprintf(&b, "\nCompression ratio: **%.1f%%**\n", ov.CompressionRatio)
	return b.String()
}

// SummaryPage renders the overview as a complete HTML page.
func SummaryPage(w io.Writer, ov analysis.Overview) error {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(SummaryMarkdown(ov)), &buf); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	doc, body := page("Summary: " + ov.Filename)
	nodes, err := html.ParseFragment(&buf, element(atom.Body))
	if err != nil {
		return fmt.Errorf("parse summary html: %w", err)
	}
	appendAll(body, nodes...)
	return render(w, doc)
}

// escapeMarkdown backslash-escapes ASCII punctuation.
func escapeMarkdown(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 0x80 && strings.ContainsRune("\\`*_{}[]()<>#+-.!|~&", r) {
			b.WriteByte('\\')
		}
		if r == '\n' {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}
