package summarize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/studynotes/internal/textproc"
)

var biology = []string{
	"Photosynthesis converts light into chemical energy.",
	"The weather today was pleasant and calm outside.",
	"Photosynthesis happens inside the chloroplast of plant cells.",
	"My neighbour painted the fence over the weekend.",
	"Chlorophyll gives leaves their green colour.",
}

func TestSummarize_SelectsTopSentencesInDocumentOrder(t *testing.T) {
	text := strings.Join(biology, " ")
	s := Summarize(text, 2)

	assert.Equal(t, []string{biology[0], biology[2]}, s.Sentences)
	assert.Equal(t, biology[0]+" "+biology[2], s.FullText)
	assert.Contains(t, s.Formatted, "1. "+biology[0])
	assert.Contains(t, s.Formatted, "2. "+biology[2])
}

func TestSummarize_ShortCircuit(t *testing.T) {
	text := "Only two sentences live here.\n\nThe second sentence is right here."
	s := Summarize(text, DefaultSentences)

	assert.Equal(t, text, s.FullText)
	assert.Equal(t, textproc.SplitSentences(text), s.Sentences)
}

func TestSummarize_Idempotent(t *testing.T) {
	text := strings.Repeat(strings.Join(biology, " ")+" ", 4)
	assert.Equal(t, Summarize(text, 3), Summarize(text, 3))
}

func TestSummarize_PreservesSplitOrder(t *testing.T) {
	text := strings.Repeat(strings.Join(biology, " ")+" ", 5)
	all := textproc.SplitSentences(text)
	s := Summarize(text, 7)

	require.Len(t, s.Sentences, 7)
	cursor := 0
	for _, sel := range s.Sentences {
		found := false
		for cursor < len(all) {
			cursor++
			if all[cursor-1] == sel {
				found = true
				break
			}
		}
		assert.True(t, found, "sentence %q out of order", sel)
	}
}

func TestSummarize_DuplicatesAreDistinct(t *testing.T) {
	dup := "Identical sentence about dividing cells here."
	text := strings.Repeat(dup+" ", 4)
	s := Summarize(text, 2)
	assert.Equal(t, []string{dup, dup}, s.Sentences)
}

func TestSummarize_NonPositiveUsesDefault(t *testing.T) {
	text := strings.Join(biology, " ")
	assert.Equal(t, text, Summarize(text, 0).FullText)
}

func TestScore_Adjustments(t *testing.T) {
	sentences := make([]string, 10)
	for i := range sentences {
		sentences[i] = "zzz yyy xxx www vvv"
	}
	sentences[0] = "alpha beta gamma delta epsilon"
	sentences[5] = "alpha beta gamma delta epsilon"
	sentences[6] = "alpha key beta gamma delta"
	sentences[7] = "alpha beta gamma delta 42"
	sentences[8] = "alpha" + strings.Repeat(" word", 41)
	freq := textproc.FrequencyTable{"alpha": 1}

	scored := Score(sentences, freq)

	assert.InDelta(t, 1.3, scored[0].Score, 1e-9)
	assert.InDelta(t, 1.0, scored[5].Score, 1e-9)
	assert.InDelta(t, 1.4, scored[6].Score, 1e-9)
	assert.InDelta(t, 0.6, scored[7].Score, 1e-9)
	assert.InDelta(t, 0.8, scored[8].Score, 1e-9)
	assert.Zero(t, scored[9].Score)
	assert.Equal(t, 8, scored[8].Index)
}

func TestKeywords(t *testing.T) {
	text := "Cells cells cells. Energy energy. Alpha alpha. Unique words appear."

	assert.Equal(t, []string{"cells", "alpha", "energy"}, Keywords(text, DefaultKeywords))
	assert.Equal(t, []string{"cells", "alpha"}, Keywords(text, 2))
	assert.NotContains(t, Keywords(text, DefaultKeywords), "unique")
}

func TestRankKeywords_Counts(t *testing.T) {
	ranked := RankKeywords("theorem theorem proof proof proof lemma", 5)
	assert.Equal(t, []Keyword{{Word: "proof", Count: 3}, {Word: "theorem", Count: 2}}, ranked)
}

func TestFormat(t *testing.T) {
	got := Format([]string{"First point.", "Second point."})
	want := "📚 STUDY NOTES SUMMARY\n" + strings.Repeat("=", 50) + "\n\nKEY POINTS:\n1. First point.\n\n2. Second point.\n\n"
	assert.Equal(t, want, got)
}

func TestReport(t *testing.T) {
	s := Summary{Formatted: "BODY"}
	got := Report("notes.pdf", []string{"cells", "energy"}, s)

	rule := strings.Repeat("=", 50)
	want := "STUDY NOTES SUMMARY\n" + rule + "\n" +
		"Original File: notes.pdf\n\n" +
		"KEYWORDS:\ncells, energy\n\n" +
		rule + "\nSUMMARY:\n\nBODY\n\n" +
		rule + "\nGenerated by Study Notes Search Engine\n"
	assert.Equal(t, want, got)
	assert.Equal(t, "summary_notes.pdf.txt", ReportFilename("notes.pdf"))
}

func TestReport_TruncatesKeywords(t *testing.T) {
	kws := make([]string, 30)
	for i := range kws {
		kws[i] = "kw"
	}
	got := Report("f.txt", kws, Summary{})
	assert.Equal(t, ReportKeywords-1, strings.Count(got, "kw, "))
}
