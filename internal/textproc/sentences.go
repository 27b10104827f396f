package textproc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MinSentenceLen is the shortest fragment, in characters, kept as a sentence.
	MinSentenceLen = 16

	markerPrefix = "---"
)

// SplitSentences splits text after '.', '!' or '?' when followed by
// whitespace. Fragments shorter than MinSentenceLen and page/slide markers
// are dropped.
func SplitSentences(text string) []string {
	var sentences []string
	keep := func(s string) {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) < MinSentenceLen || strings.HasPrefix(s, markerPrefix) {
			return
		}
		sentences = append(sentences, s)
	}

	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		next, _ := utf8.DecodeRuneInString(text[i:])
		if i >= len(text) || !unicode.IsSpace(next) {
			continue
		}
		keep(text[start:i])
		for i < len(text) {
			ws, n := utf8.DecodeRuneInString(text[i:])
			if !unicode.IsSpace(ws) {
				break
			}
			i += n
		}
		start = i
	}
	if start < len(text) {
		keep(text[start:])
	}
	return sentences
}
