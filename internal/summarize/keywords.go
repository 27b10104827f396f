package summarize

import (
	"cmp"
	"slices"

	"github.com/dgallion1/studynotes/internal/textproc"
)

// DefaultKeywords is the number of keywords returned by default.
const DefaultKeywords = 20

// Keyword is a word with its raw occurrence count.
type Keyword struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// RankKeywords returns up to topN words that occur more than once, most
// frequent first. Equal counts are ordered alphabetically.
func RankKeywords(text string, topN int) []Keyword {
	var ranked []Keyword
	for word, n := range textproc.Counts(text) {
		if n > 1 {
			ranked = append(ranked, Keyword{Word: word, Count: n})
		}
	}
	slices.SortFunc(ranked, func(a, b Keyword) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})
	if topN >= 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// Keywords is RankKeywords without counts.
func Keywords(text string, topN int) []string {
	ranked := RankKeywords(text, topN)
	words := make([]string, len(ranked))
	for i, k := range ranked {
		words[i] = k.Word
	}
	return words
}
