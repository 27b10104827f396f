package search

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/studynotes/internal/textproc"
)

const booleanText = "Photosynthesis needs light. Respiration releases energy. Light drives photosynthesis."

func TestParseBoolean(t *testing.T) {
	tests := []struct {
		expr string
		want Query
	}{
		{"light", Query{Terms: []string{"light"}}},
		{"light AND energy", Query{Op: OpAnd, Terms: []string{"light", "energy"}}},
		{"light and energy", Query{Op: OpAnd, Terms: []string{"light", "energy"}}},
		{"light OR energy OR water", Query{Op: OpOr, Terms: []string{"light", "energy", "water"}}},
		{"sandwich orbit", Query{Terms: []string{"sandwich orbit"}}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ParseBoolean(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBoolean_Rejects(t *testing.T) {
	for _, expr := range []string{"", "   ", "a AND b OR c", "x or y AND z"} {
		_, err := ParseBoolean(expr)
		var verr *textproc.ValidationError
		assert.True(t, errors.As(err, &verr), "expr %q", expr)
	}
}

func TestSearchAnd_OneResultPerTerm(t *testing.T) {
	results, err := SearchAnd(booleanText, []string{"light", "energy"}, DefaultContextChars)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 2, results[0].Count)
	assert.Equal(t, 1, results[1].Count)
}

func TestSearchOr_MergesInTermOrder(t *testing.T) {
	res, err := SearchOr(booleanText, []string{"light", "energy"}, DefaultContextChars)
	require.NoError(t, err)
	require.Equal(t, 3, res.Count)
	assert.Len(t, res.Matches, 3)
	// energy appears before the second "light" in the text but is listed last.
	assert.Greater(t, res.Matches[1].Position, res.Matches[2].Position)
}

func TestSearchBoolean(t *testing.T) {
	and, err := SearchBoolean(booleanText, "light AND energy", DefaultContextChars)
	require.NoError(t, err)
	assert.Equal(t, OpAnd, and.Operator)
	assert.Len(t, and.Results, 2)
	assert.Equal(t, 3, and.Total())

	or, err := SearchBoolean(booleanText, "light OR energy", DefaultContextChars)
	require.NoError(t, err)
	require.Len(t, or.Results, 1)
	assert.Equal(t, "light OR energy", or.Results[0].Query)
	assert.Equal(t, 3, or.Results[0].Count)

	single, err := SearchBoolean(booleanText, "respiration", DefaultContextChars)
	require.NoError(t, err)
	assert.Equal(t, OpNone, single.Operator)
	assert.Equal(t, 1, single.Total())
}

func TestBooleanResult_Terms(t *testing.T) {
	or, err := SearchBoolean(booleanText, "light OR energy", DefaultContextChars)
	require.NoError(t, err)
	assert.Equal(t, []string{"light", "energy"}, or.Terms(or.Results[0]))

	and, err := SearchBoolean(booleanText, "light AND energy", DefaultContextChars)
	require.NoError(t, err)
	assert.Equal(t, []string{"energy"}, and.Terms(and.Results[1]))
}
