package search

import (
	"regexp"
	"strings"

	"github.com/dgallion1/studynotes/internal/textproc"
)

// Operator combines the terms of a boolean query.
type Operator string

const (
	OpNone Operator = ""
	OpAnd  Operator = "AND"
	OpOr   Operator = "OR"
)

var (
	andSep = regexp.MustCompile(`(?i)\s+AND\s+`)
	orSep  = regexp.MustCompile(`(?i)\s+OR\s+`)
)

// Query is a parsed boolean expression.
type Query struct {
	Op    Operator
	Terms []string
}

// ParseBoolean splits expr on whitespace-delimited AND or OR keywords.
// Expressions mixing both operators are rejected.
func ParseBoolean(expr string) (Query, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Query{}, textproc.Invalid("query", "must not be empty")
	}

	hasAnd, hasOr := andSep.MatchString(expr), orSep.MatchString(expr)
	switch {
	case hasAnd && hasOr:
		return Query{}, textproc.Invalid("query", "cannot combine AND with OR")
	case hasAnd:
		return splitTerms(OpAnd, andSep, expr)
	case hasOr:
		return splitTerms(OpOr, orSep, expr)
	}
	return Query{Terms: []string{expr}}, nil
}

func splitTerms(op Operator, sep *regexp.Regexp, expr string) (Query, error) {
	q := Query{Op: op}
	for _, t := range sep.Split(expr, -1) {
		t = strings.TrimSpace(t)
		if t == "" {
			return Query{}, textproc.Invalid("query", "empty term in %s expression", op)
		}
		q.Terms = append(q.Terms, t)
	}
	return q, nil
}

// BooleanResult is the outcome of SearchBoolean. AND queries carry one
// Result per term; OR and single-term queries carry exactly one.
type BooleanResult struct {
	Query    string   `json:"query"`
	Operator Operator `json:"operator,omitempty"`
	Results  []Result `json:"results"`
}

// Clone returns a deep copy of b.
func (b BooleanResult) Clone() BooleanResult {
	if b.Results == nil {
		return b
	}
	results := make([]Result, len(b.Results))
	for i, r := range b.Results {
		results[i] = r.Clone()
	}
	b.Results = results
	return b
}

// Total is the number of matches over all results.
func (b BooleanResult) Total() int {
	n := 0
	for _, r := range b.Results {
		n += r.Count
	}
	return n
}

// Terms returns the terms whose matches make up r. OR results merge every
// term of the expression into one Result.
func (b BooleanResult) Terms(r Result) []string {
	if b.Operator == OpOr {
		if q, err := ParseBoolean(b.Query); err == nil {
			return q.Terms
		}
	}
	return []string{r.Query}
}

// SearchAnd runs every term separately and returns one result per term.
func SearchAnd(text string, terms []string, contextChars int) ([]Result, error) {
	results := make([]Result, 0, len(terms))
	for _, term := range terms {
		r, err := Search(text, term, contextChars)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// SearchOr concatenates the matches of every term, keeping per-term scan
// order. Matches are neither deduplicated nor re-sorted.
func SearchOr(text string, terms []string, contextChars int) (Result, error) {
	return searchOr(text, strings.Join(terms, " OR "), terms, contextChars)
}

func searchOr(text, query string, terms []string, contextChars int) (Result, error) {
	merged := Result{Query: query, Matches: []Match{}}
	for _, term := range terms {
		r, err := Search(text, term, contextChars)
		if err != nil {
			return Result{}, err
		}
		merged.Matches = append(merged.Matches, r.Matches...)
	}
	merged.Count = len(merged.Matches)
	return merged, nil
}

// SearchBoolean parses expr and dispatches to Search, SearchAnd or SearchOr.
func SearchBoolean(text, expr string, contextChars int) (BooleanResult, error) {
	q, err := ParseBoolean(expr)
	if err != nil {
		return BooleanResult{}, err
	}

	out := BooleanResult{Query: expr, Operator: q.Op}
	switch q.Op {
	case OpAnd:
		out.Results, err = SearchAnd(text, q.Terms, contextChars)
	case OpOr:
		var r Result
		r, err = searchOr(text, expr, q.Terms, contextChars)
		out.Results = []Result{r}
	default:
		var r Result
		r, err = Search(text, q.Terms[0], contextChars)
		out.Results = []Result{r}
	}
	if err != nil {
		return BooleanResult{}, err
	}
	return out, nil
}
