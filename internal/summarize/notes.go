package summarize

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Limits applied by the note extractors.
const (
	MaxDefinitions = 10
	MaxFormulas    = 15
	MaxKeyPoints   = 20

	NotesKeywords  = 25
	NotesSentences = 10

	maxTermLen       = 50
	maxDefinitionLen = 200
	maxFormulaLen    = 100
)

// definitionPatterns are tried in order. Two-group patterns yield
// "term: definition"; the single-group pattern yields the definition alone.
var definitionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(.+?)\s+is\s+defined\s+as\s+(.+?)(?:\.|$)`),
	regexp.MustCompile(`(?i)(.+?)\s+means\s+(.+?)(?:\.|$)`),
	regexp.MustCompile(`(?i)(.+?):\s+(.+?)(?:\.|$)`),
	regexp.MustCompile(`(?i)Definition:\s+(.+?)(?:\.|$)`),
}

var (
	formulaOperand = regexp.MustCompile(`[a-zA-Z]\s*[=+\-*/]\s*`)
	formulaNumber  = regexp.MustCompile(`\d+\s*[=+\-*/]`)

	bulletLine   = regexp.MustCompile(`^[•\-*\d+.]\s+`)
	numberedLine = regexp.MustCompile(`^\d+\.\s+`)
)

// Definitions finds sentences of the form "X is defined as Y", "X means Y",
// "X: Y" and "Definition: Y". Terms of 50 characters or more and
// definitions of 200 or more are skipped.
func Definitions(text string) []string {
	defs := []string{}
	for _, re := range definitionPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if len(m) == 2 {
				defs = append(defs, strings.TrimSpace(m[1]))
				continue
			}
			term, def := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
			if utf8.RuneCountInString(term) < maxTermLen && utf8.RuneCountInString(def) < maxDefinitionLen {
				defs = append(defs, term+": "+def)
			}
		}
	}
	if len(defs) > MaxDefinitions {
		defs = defs[:MaxDefinitions]
	}
	return defs
}

// Formulas returns short lines that look like equations or arithmetic.
func Formulas(text string) []string {
	formulas := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.ContainsAny(line, "=+*/") || utf8.RuneCountInString(line) >= maxFormulaLen {
			continue
		}
		if formulaOperand.MatchString(line) || formulaNumber.MatchString(line) {
			formulas = append(formulas, line)
			if len(formulas) == MaxFormulas {
				break
			}
		}
	}
	return formulas
}

// KeyPoints returns bulleted and numbered list lines.
func KeyPoints(text string) []string {
	points := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if bulletLine.MatchString(line) || numberedLine.MatchString(line) {
			points = append(points, line)
			if len(points) == MaxKeyPoints {
				break
			}
		}
	}
	return points
}

// Notes is the full study-notes breakdown of a document.
type Notes struct {
	Keywords    []string `json:"keywords"`
	Definitions []string `json:"definitions"`
	Formulas    []string `json:"formulas"`
	KeyPoints   []string `json:"key_points"`
	Summary     Summary  `json:"summary"`
}

// DetailedNotes runs every extractor over text.
func DetailedNotes(text string) Notes {
	return Notes{
		Keywords:    Keywords(text, NotesKeywords),
		Definitions: Definitions(text),
		Formulas:    Formulas(text),
		KeyPoints:   KeyPoints(text),
		Summary:     Summarize(text, NotesSentences),
	}
}

// Clone returns a deep copy of n.
func (n Notes) Clone() Notes {
	n.Keywords = slices.Clone(n.Keywords)
	n.Definitions = slices.Clone(n.Definitions)
	n.Formulas = slices.Clone(n.Formulas)
	n.KeyPoints = slices.Clone(n.KeyPoints)
	n.Summary = n.Summary.Clone()
	return n
}

// FormatNotes renders notes as plain text with one section per extractor.
func FormatNotes(filename string, n Notes) string {
	rule := strings.Repeat("=", ruleWidth)

	var b strings.Builder
	fmt.Fprintf(&b, "STUDY NOTES: %s\n%s\n\n", filename, rule)

	b.WriteString("KEYWORDS:\n")
	if len(n.Keywords) == 0 {
		b.WriteString("(none)\n")
	} else {
		b.WriteString(strings.Join(n.Keywords, ", ") + "\n")
	}

	for _, sec := range []struct {
		title string
		items []string
	}{
		{"DEFINITIONS", n.Definitions},
		{"FORMULAS", n.Formulas},
		{"KEY POINTS", n.KeyPoints},
	} {
		fmt.Fprintf(&b, "\n%s:\n", sec.title)
		if len(sec.items) == 0 {
			b.WriteString("(none)\n")
		}
		for _, item := range sec.items {
			fmt.Fprintf(&b, "- %s\n", item)
		}
	}

	b.WriteString("\nSUMMARY:\n")
	for i, s := range n.Summary.Sentences {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return b.String()
}
