package textproc

// stopWords is shared by frequency scoring and keyword extraction.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
		"of", "with", "by", "from", "as", "is", "was", "are", "were", "be",
		"been", "being", "have", "has", "had", "do", "does", "did", "will",
		"would", "could", "should", "may", "might", "can", "this", "that",
		"these", "those", "i", "you", "he", "she", "it", "we", "they", "them",
		"their", "what", "which", "who", "when", "where", "why", "how", "all",
		"each", "every", "both", "few", "more", "most", "other", "some", "such",
		"no", "nor", "not", "only", "own", "same", "so", "than", "too", "very",
		"just", "also", "into", "through", "during", "before", "after", "above",
		"below", "between", "under", "again", "further", "then", "once",
	} {
		stopWords[w] = struct{}{}
	}
}

// IsStopWord reports whether word (lowercase) is excluded from scoring.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}
