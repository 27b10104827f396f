// Package analysis is the single entry point the HTTP handlers and the CLI
// use to search, summarize and describe an extracted document.
package analysis

import (
	"crypto/sha256"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/dgallion1/studynotes/internal/search"
	"github.com/dgallion1/studynotes/internal/stats"
	"github.com/dgallion1/studynotes/internal/summarize"
	"github.com/dgallion1/studynotes/internal/textproc"
)

// Operation names used for latency tracking.
const (
	OpSearch    = "search"
	OpSummarize = "summarize"
	OpKeywords  = "keywords"
	OpStats     = "stats"
	OpNotes     = "notes"
)

// Document is extracted text together with its identity.
type Document struct {
	Filename string
	Text     string
	Hash     string
}

// NewDocument builds a Document, hashing text.
func NewDocument(filename, text string) Document {
	return Document{Filename: filename, Text: text, Hash: ContentHash(text)}
}

// ContentHash returns the hex SHA-256 of text.
func ContentHash(text string) string {
	h := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%x", h[:])
}

// Options configures a Service. Zero values select the package defaults.
type Options struct {
	ContextChars     int
	SummarySentences int
	Keywords         int

	// CacheEntries bounds the result cache; negative disables caching.
	CacheEntries int

	// Latency receives one sample per operation. Nil allocates a registry.
	Latency *stats.Registry
}

// Service runs analysis operations with optional memoization.
type Service struct {
	cache   *resultCache
	latency *stats.Registry

	contextChars int
	sentences    int
	keywords     int
}

func New(opts Options) *Service {
	s := &Service{
		latency:      opts.Latency,
		contextChars: opts.ContextChars,
		sentences:    opts.SummarySentences,
		keywords:     opts.Keywords,
	}
	if s.latency == nil {
		s.latency = stats.NewRegistry(stats.DefaultWindow)
	}
	if opts.CacheEntries >= 0 {
		s.cache = newResultCache(opts.CacheEntries)
	}
	if s.contextChars <= 0 {
		s.contextChars = search.DefaultContextChars
	}
	if s.sentences <= 0 {
		s.sentences = summarize.DefaultSentences
	}
	if s.keywords <= 0 {
		s.keywords = summarize.DefaultKeywords
	}
	return s
}

// DefaultContextChars returns the snippet context used when callers pass a
// negative value to Search.
func (s *Service) DefaultContextChars() int { return s.contextChars }

func key(doc Document, op string, params ...any) string {
	hash := doc.Hash
	if hash == "" {
		hash = ContentHash(doc.Text)
	}
	var b strings.Builder
	b.WriteString(op)
	b.WriteByte(':')
	b.WriteString(hash)
	for _, p := range params {
		fmt.Fprintf(&b, ":%v", p)
	}
	return b.String()
}

// Stats returns word, character, line and sentence counts.
func (s *Service) Stats(doc Document) textproc.TextStats {
	defer s.latency.Observe(OpStats, time.Now())
	st, _ := memo(s.cache, key(doc, OpStats), func() (textproc.TextStats, error) {
		return textproc.Stats(doc.Text), nil
	}, nil)
	return st
}

// Search runs a single-term search. A negative contextChars selects the
// configured default.
func (s *Service) Search(doc Document, query string, contextChars int) (search.Result, error) {
	defer s.latency.Observe(OpSearch, time.Now())
	if contextChars < 0 {
		contextChars = s.contextChars
	}
	return memo(s.cache, key(doc, OpSearch, query, contextChars), func() (search.Result, error) {
		return search.Search(doc.Text, query, contextChars)
	}, search.Result.Clone)
}

// SearchBoolean evaluates an AND/OR expression.
func (s *Service) SearchBoolean(doc Document, expr string, contextChars int) (search.BooleanResult, error) {
	defer s.latency.Observe(OpSearch, time.Now())
	if contextChars < 0 {
		contextChars = s.contextChars
	}
	return memo(s.cache, key(doc, "boolean", expr, contextChars), func() (search.BooleanResult, error) {
		return search.SearchBoolean(doc.Text, expr, contextChars)
	}, search.BooleanResult.Clone)
}

// Summarize extracts n sentences; n <= 0 selects the configured default.
func (s *Service) Summarize(doc Document, n int) summarize.Summary {
	defer s.latency.Observe(OpSummarize, time.Now())
	if n <= 0 {
		n = s.sentences
	}
	sum, _ := memo(s.cache, key(doc, OpSummarize, n), func() (summarize.Summary, error) {
		return summarize.Summarize(doc.Text, n), nil
	}, summarize.Summary.Clone)
	return sum
}

// Keywords returns the top n repeated keywords; n <= 0 selects the
// configured default.
func (s *Service) Keywords(doc Document, n int) []string {
	defer s.latency.Observe(OpKeywords, time.Now())
	if n <= 0 {
		n = s.keywords
	}
	kw, _ := memo(s.cache, key(doc, OpKeywords, n), func() ([]string, error) {
		return summarize.Keywords(doc.Text, n), nil
	}, slices.Clone[[]string])
	return kw
}

// Notes extracts keywords, definitions, formulas, list items and a short
// summary in one pass.
func (s *Service) Notes(doc Document) summarize.Notes {
	defer s.latency.Observe(OpNotes, time.Now())
	notes, _ := memo(s.cache, key(doc, OpNotes), func() (summarize.Notes, error) {
		return summarize.DetailedNotes(doc.Text), nil
	}, summarize.Notes.Clone)
	return notes
}

// Report renders the downloadable study notes using the default summary
// length.
func (s *Service) Report(doc Document) string {
	sum := s.Summarize(doc, 0)
	kw := s.Keywords(doc, summarize.ReportKeywords)
	return summarize.Report(doc.Filename, kw, sum)
}

// Overview bundles everything shown on the summary page.
type Overview struct {
	Filename         string             `json:"filename"`
	Summary          summarize.Summary  `json:"summary"`
	Keywords         []string           `json:"keywords"`
	Stats            textproc.TextStats `json:"stats"`
	SummaryStats     textproc.TextStats `json:"summary_stats"`
	CompressionRatio float64            `json:"compression_ratio"`
}

// Overview summarizes doc and reports how much shorter the summary is.
func (s *Service) Overview(doc Document, sentences, keywords int) Overview {
	sum := s.Summarize(doc, sentences)
	docStats := s.Stats(doc)
	sumStats := textproc.Stats(sum.FullText)
	return Overview{
		Filename:         doc.Filename,
		Summary:          sum,
		Keywords:         s.Keywords(doc, keywords),
		Stats:            docStats,
		SummaryStats:     sumStats,
		CompressionRatio: CompressionRatio(sumStats.WordCount, docStats.WordCount),
	}
}

// CompressionRatio is summary words as a percentage of document words,
// rounded to one decimal place. An empty document yields 0.
func CompressionRatio(summaryWords, docWords int) float64 {
	if docWords == 0 {
		return 0
	}
	pct := float64(summaryWords) / float64(docWords) * 100
	return math.Round(pct*10) / 10
}

// CacheStats reports result cache effectiveness. A disabled cache reports
// zeros.
func (s *Service) CacheStats() CacheStats {
	if s.cache == nil {
		return CacheStats{}
	}
	return s.cache.stats()
}

// Latency returns per-operation latency snapshots.
func (s *Service) Latency() map[string]stats.Snapshot {
	return s.latency.Snapshot()
}
