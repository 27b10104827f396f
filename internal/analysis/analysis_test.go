package analysis

import (
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/studynotes/internal/search"
	"github.com/dgallion1/studynotes/internal/summarize"
	"github.com/dgallion1/studynotes/internal/textproc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lecture = "--- Page 1 ---\n" +
	"Photosynthesis converts light into chemical energy. " +
	"The weather today was pleasant and calm outside. " +
	"Photosynthesis happens inside the chloroplast of plant cells.\n" +
	"--- Page 2 ---\n" +
	"My neighbour painted the fence over the weekend. " +
	"Chlorophyll gives leaves their green colour."

func TestContentHash(t *testing.T) {
	// SHA-256 of "hello world" is well-known.
	assert.Equal(t, "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9", ContentHash("hello world"))
	assert.Equal(t, ContentHash("x"), NewDocument("a.txt", "x").Hash)
}

func TestService_SameOutputWithAndWithoutCache(t *testing.T) {
	cached := New(Options{})
	plain := New(Options{CacheEntries: -1})
	doc := NewDocument("lecture.pdf", lecture)

	for range 2 {
		a, err := cached.Search(doc, "photosynthesis", -1)
		require.NoError(t, err)
		b, err := plain.Search(doc, "photosynthesis", -1)
		require.NoError(t, err)
		assert.Equal(t, b, a)

		assert.Equal(t, plain.Summarize(doc, 2), cached.Summarize(doc, 2))
		assert.Equal(t, plain.Keywords(doc, 5), cached.Keywords(doc, 5))
		assert.Equal(t, plain.Stats(doc), cached.Stats(doc))
	}

	cs := cached.CacheStats()
	assert.Equal(t, 4, cs.Entries)
	assert.Equal(t, 4, cs.Hits)
	assert.Equal(t, 4, cs.Misses)
	assert.InDelta(t, 0.5, cs.HitRate, 1e-9)
	assert.Equal(t, CacheStats{}, plain.CacheStats())
}

func TestService_CachedResultsAreNotShared(t *testing.T) {
	svc := New(Options{})
	doc := NewDocument("lecture.pdf", lecture)

	kw := svc.Keywords(doc, 5)
	require.NotEmpty(t, kw)
	want := kw[0]
	kw[0] = "changed"
	assert.Equal(t, want, svc.Keywords(doc, 5)[0])

	first, err := svc.Search(doc, "photosynthesis", -1)
	require.NoError(t, err)
	require.NotEmpty(t, first.Matches)
	snippet := first.Matches[0].Snippet
	first.Matches[0].Snippet = "changed"
	*first.Matches[0].PageNumber = 99

	again, err := svc.Search(doc, "photosynthesis", -1)
	require.NoError(t, err)
	assert.Equal(t, snippet, again.Matches[0].Snippet)
	assert.Equal(t, 1, *again.Matches[0].PageNumber)

	b, err := svc.SearchBoolean(doc, "leaves OR fence", -1)
	require.NoError(t, err)
	b.Results[0].Matches[0].Snippet = "changed"
	b2, err := svc.SearchBoolean(doc, "leaves OR fence", -1)
	require.NoError(t, err)
	assert.NotEqual(t, "changed", b2.Results[0].Matches[0].Snippet)

	sum := svc.Summarize(doc, 2)
	sum.Sentences[0] = "changed"
	assert.NotEqual(t, "changed", svc.Summarize(doc, 2).Sentences[0])

	notes := svc.Notes(doc)
	require.NotEmpty(t, notes.Keywords)
	notes.Keywords[0] = "changed"
	assert.NotEqual(t, "changed", svc.Notes(doc).Keywords[0])

	assert.Positive(t, svc.CacheStats().Hits)
}

func TestService_Notes(t *testing.T) {
	svc := New(Options{})
	doc := NewDocument("lecture.pdf", lecture)

	notes := svc.Notes(doc)
	assert.Equal(t, summarize.DetailedNotes(lecture), notes)
	assert.Contains(t, notes.Keywords, "photosynthesis")
	assert.Contains(t, svc.Latency(), OpNotes)
}

func TestService_SearchDefaultsAndPages(t *testing.T) {
	svc := New(Options{ContextChars: 10})
	doc := NewDocument("lecture.pdf", lecture)

	res, err := svc.Search(doc, "chlorophyll", -1)
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	require.NotNil(t, res.Matches[0].PageNumber)
	assert.Equal(t, 2, *res.Matches[0].PageNumber)
	assert.Equal(t, 10, svc.DefaultContextChars())
}

func TestService_SearchErrorsNotCached(t *testing.T) {
	svc := New(Options{})
	doc := NewDocument("a.txt", lecture)

	for range 2 {
		_, err := svc.Search(doc, "", -1)
		var ve *textproc.ValidationError
		require.True(t, errors.As(err, &ve))
	}
	assert.Equal(t, 0, svc.CacheStats().Entries)
}

func TestService_SearchBoolean(t *testing.T) {
	svc := New(Options{})
	doc := NewDocument("a.txt", lecture)

	res, err := svc.SearchBoolean(doc, "photosynthesis AND chlorophyll", -1)
	require.NoError(t, err)
	assert.Equal(t, search.OpAnd, res.Operator)
	require.Len(t, res.Results, 2)
	assert.Equal(t, 3, res.Total())
}

func TestService_Overview(t *testing.T) {
	svc := New(Options{})
	doc := NewDocument("lecture.pdf", lecture)

	ov := svc.Overview(doc, 2, 0)
	assert.Equal(t, "lecture.pdf", ov.Filename)
	assert.Len(t, ov.Summary.Sentences, 2)
	assert.Equal(t, textproc.Stats(lecture), ov.Stats)
	assert.Equal(t, textproc.Stats(ov.Summary.FullText).WordCount, ov.SummaryStats.WordCount)
	assert.Equal(t, CompressionRatio(ov.SummaryStats.WordCount, ov.Stats.WordCount), ov.CompressionRatio)
	assert.Contains(t, ov.Keywords, "photosynthesis")
}

func TestService_Report(t *testing.T) {
	svc := New(Options{})
	doc := NewDocument("lecture.pdf", lecture)

	report := svc.Report(doc)
	assert.True(t, strings.HasPrefix(report, "STUDY NOTES SUMMARY\n"))
	assert.Contains(t, report, "Original File: lecture.pdf\n")
	assert.Equal(t, summarize.Report("lecture.pdf", summarize.Keywords(lecture, 20), summarize.Summarize(lecture, 15)), report)
}

func TestService_Latency(t *testing.T) {
	svc := New(Options{})
	doc := NewDocument("a.txt", lecture)
	svc.Stats(doc)
	_, _ = svc.Search(doc, "light", 5)

	lat := svc.Latency()
	assert.Equal(t, 1, lat[OpStats].Count)
	assert.Equal(t, 1, lat[OpSearch].Count)
}

func TestCompressionRatio(t *testing.T) {
	tests := []struct {
		sum, doc int
		want     float64
	}{
		{0, 0, 0},
		{10, 100, 10},
		{1, 3, 33.3},
		{2, 3, 66.7},
		{50, 50, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompressionRatio(tt.sum, tt.doc), "%d/%d", tt.sum, tt.doc)
	}
}

func TestResultCache_Evicts(t *testing.T) {
	c := newResultCache(2)
	c.put("a", 1)
	c.put("b", 2)
	_, _ = c.get("a")
	c.put("c", 3)

	_, ok := c.get("b")
	assert.False(t, ok, "least recently used entry should be evicted")
	v, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, c.stats().Entries)
}
