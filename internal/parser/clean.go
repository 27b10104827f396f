package parser

import (
	"regexp"
	"strings"
)

var (
	controlChars = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f-\x{9f}]`)
	spaceRuns    = regexp.MustCompile(` +`)
	blankRuns    = regexp.MustCompile(`\n\s*\n`)
)

// Clean normalizes extracted text: line endings become LF, control
// characters are removed, runs of spaces and blank lines are collapsed and
// surrounding whitespace is trimmed.
func Clean(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = controlChars.ReplaceAllString(text, "")
	text = spaceRuns.ReplaceAllString(text, " ")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
