package textproc

import "strings"

// MinTokenLen is the shortest letter run counted as a word.
const MinTokenLen = 3

// Tokenize returns every maximal run of ASCII letters of at least
// MinTokenLen characters, lowercased, in text order.
func Tokenize(text string) []string {
	var tokens []string
	start := -1
	for i := 0; i <= len(text); i++ {
		if i < len(text) && isASCIILetter(text[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if i-start >= MinTokenLen {
				tokens = append(tokens, strings.ToLower(text[start:i]))
			}
			start = -1
		}
	}
	return tokens
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
