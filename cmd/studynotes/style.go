package main

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/dgallion1/studynotes/internal/search"
)

var (
	matchStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11"))
	metaStyle  = lipgloss.NewStyle().Faint(true)
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// useColor reports whether output should be styled.
func useColor() bool {
	switch colorMode {
	case "always":
		return true
	case "never":
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// highlight renders plain with every occurrence of terms styled, or in
// <mark> tags when color is off.
func highlight(plain string, terms []string) string {
	color := useColor()
	var b strings.Builder
	for _, seg := range search.SegmentsAll(plain, terms) {
		switch {
		case !seg.Match:
			b.WriteString(seg.Text)
		case color:
			b.WriteString(matchStyle.Render(seg.Text))
		default:
			b.WriteString(search.MarkOpen + seg.Text + search.MarkClose)
		}
	}
	return b.String()
}

func styled(s lipgloss.Style, text string) string {
	if !useColor() {
		return text
	}
	return s.Render(text)
}
