// Package summarize builds extractive summaries and keyword lists from
// extracted document text.
package summarize

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/dgallion1/studynotes/internal/textproc"
)

// DefaultSentences is the number of sentences kept in a summary.
const DefaultSentences = 15

const (
	leadFraction = 0.2
	leadBoost    = 1.3
	markerBoost  = 1.4
	digitBoost   = 1.2

	shortTokens  = 5
	shortPenalty = 0.5
	longTokens   = 40
	longPenalty  = 0.8

	ruleWidth = 50
)

var markerWords = []string{"important", "key", "definition", "theorem", "formula", "conclusion", "summary"}

// Summary is an ordered selection of document sentences.
type Summary struct {
	Sentences []string `json:"selected_sentences"`
	FullText  string   `json:"full_text"`
	Formatted string   `json:"formatted"`
}

// Clone returns a copy of s with its own sentence slice.
func (s Summary) Clone() Summary {
	s.Sentences = slices.Clone(s.Sentences)
	return s
}

// ScoredSentence is a sentence with its score and position in the split order.
type ScoredSentence struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
	Index int     `json:"index"`
}

// Summarize selects the n highest scoring sentences of text and returns them
// in document order. When text has at most n sentences it is returned whole.
func Summarize(text string, n int) Summary {
	if n <= 0 {
		n = DefaultSentences
	}
	sentences := textproc.SplitSentences(text)
	if len(sentences) <= n {
		return Summary{
			Sentences: sentences,
			FullText:  text,
			Formatted: Format(sentences),
		}
	}

	ranked := Score(sentences, textproc.Frequencies(text))
	slices.SortStableFunc(ranked, func(a, b ScoredSentence) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return a.Index - b.Index
	})

	top := ranked[:n]
	slices.SortFunc(top, func(a, b ScoredSentence) int { return a.Index - b.Index })

	selected := make([]string, len(top))
	for i, s := range top {
		selected[i] = s.Text
	}
	return Summary{
		Sentences: selected,
		FullText:  strings.Join(selected, " "),
		Formatted: Format(selected),
	}
}

// Score rates every sentence by the summed frequency of its words, then
// applies position, marker-word, digit and length adjustments.
func Score(sentences []string, freq textproc.FrequencyTable) []ScoredSentence {
	lead := float64(len(sentences)) * leadFraction
	out := make([]ScoredSentence, len(sentences))
	for i, s := range sentences {
		tokens := textproc.Tokenize(s)
		score := 0.0
		for _, tok := range tokens {
			score += freq[tok]
		}

		if float64(i) < lead {
			score *= leadBoost
		}
		if hasMarker(s) {
			score *= markerBoost
		}
		if strings.IndexFunc(s, unicode.IsDigit) >= 0 {
			score *= digitBoost
		}
		if len(tokens) < shortTokens {
			score *= shortPenalty
		}
		if len(tokens) > longTokens {
			score *= longPenalty
		}

		out[i] = ScoredSentence{Text: s, Score: score, Index: i}
	}
	return out
}

func hasMarker(s string) bool {
	lower := strings.ToLower(s)
	for _, m := range markerWords {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// Format renders sentences as the numbered study-notes block.
func Format(sentences []string) string {
	var b strings.Builder
	b.WriteString("📚 STUDY NOTES SUMMARY\n")
	b.WriteString(strings.Repeat("=", ruleWidth) + "\n\n")
	b.WriteString("KEY POINTS:\n")
	for i, s := range sentences {
		fmt.Fprintf(&b, "%d. %s\n\n", i+1, s)
	}
	return b.String()
}
