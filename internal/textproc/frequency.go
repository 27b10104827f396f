package textproc

// FrequencyTable maps a lowercase word to its count divided by the count
// of the most frequent word. Values are in (0, 1].
type FrequencyTable map[string]float64

// Counts returns raw occurrence counts of every non-stop token in text.
func Counts(text string) map[string]int {
	counts := make(map[string]int)
	for _, tok := range Tokenize(text) {
		if IsStopWord(tok) {
			continue
		}
		counts[tok]++
	}
	return counts
}

// Frequencies builds the normalized frequency table for text.
func Frequencies(text string) FrequencyTable {
	counts := Counts(text)

	maxCount := 1
	for _, n := range counts {
		if n > maxCount {
			maxCount = n
		}
	}

	table := make(FrequencyTable, len(counts))
	for word, n := range counts {
		table[word] = float64(n) / float64(maxCount)
	}
	return table
}
