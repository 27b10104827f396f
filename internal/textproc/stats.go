package textproc

import (
	"strings"
	"unicode/utf8"
)

// TextStats summarizes the size of a text blob.
type TextStats struct {
	WordCount     int `json:"word_count"`
	CharCount     int `json:"char_count"`
	LineCount     int `json:"line_count"`
	SentenceCount int `json:"sentence_count"`
}

// Stats computes word, character, line and sentence counts for text.
func Stats(text string) TextStats {
	return TextStats{
		WordCount:     len(strings.Fields(text)),
		CharCount:     utf8.RuneCountInString(text),
		LineCount:     strings.Count(text, "\n") + 1,
		SentenceCount: len(SplitSentences(text)),
	}
}
