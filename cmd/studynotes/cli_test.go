package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const notes = "Photosynthesis converts light into chemical energy.\n" +
	"The weather today was pleasant and calm outside.\n" +
	"Photosynthesis happens inside the chloroplast of plant cells.\n"

// execute runs the root command with args in a clean environment.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CONFIG_FILE", "")
	t.Chdir(t.TempDir())

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"--color", "never"}, args...))
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func writeNotes(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "biology.txt")
	require.NoError(t, os.WriteFile(path, []byte(notes), 0o644))
	return path
}

func TestSearchCmd_RequiresTwoArgs(t *testing.T) {
	_, err := execute(t, "search", "only-file.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestSearchCmd(t *testing.T) {
	path := writeNotes(t)
	searchContext, searchJSON = -1, false

	out, err := execute(t, "search", path, "photosynthesis", "--context", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "2 matches")
	assert.Contains(t, out, "[1] line 1")
	assert.Contains(t, out, "<mark>Photosynthesis</mark> conv...")
	assert.Contains(t, out, "[2] line 3")
}

func TestSearchCmd_OrHighlightsEveryTerm(t *testing.T) {
	path := writeNotes(t)
	searchContext, searchJSON = -1, false

	out, err := execute(t, "search", path, "weather OR calm", "--context", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "<mark>weather</mark>")
	assert.Contains(t, out, "<mark>calm</mark>")
}

func TestSearchCmd_JSON(t *testing.T) {
	path := writeNotes(t)
	searchContext, searchJSON = -1, false

	out, err := execute(t, "search", path, "chloroplast", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"query": "chloroplast"`)
	assert.Contains(t, out, `"line_number": 3`)
}

func TestSearchCmd_UnsupportedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.docx")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	searchContext, searchJSON = -1, false

	_, err := execute(t, "search", path, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file format")
}

func TestSummarizeCmd(t *testing.T) {
	path := writeNotes(t)
	summarySentences, summaryJSON = 1, false

	out, err := execute(t, "summarize", path, "-n", "1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "📚 STUDY NOTES SUMMARY\n"), out)
	assert.Contains(t, out, "1. ")
	assert.Contains(t, out, "words (")
}

func TestKeywordsCmd(t *testing.T) {
	path := writeNotes(t)
	keywordCount = 20

	out, err := execute(t, "keywords", path)
	require.NoError(t, err)
	assert.Contains(t, out, " 1. photosynthesis")
}

func TestStatsCmd(t *testing.T) {
	path := writeNotes(t)

	out, err := execute(t, "stats", path)
	require.NoError(t, err)
	assert.Contains(t, out, "lines:     3\n")
	assert.Contains(t, out, "sentences: 3\n")
}

func TestNotesCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "physics.txt")
	require.NoError(t, os.WriteFile(path, []byte("Velocity is defined as displacement over time.\n"+
		"v = d / t\n"+
		"- Velocity has a direction\n"), 0o644))
	notesJSON = false

	out, err := execute(t, "notes", path)
	require.NoError(t, err)
	assert.Contains(t, out, "STUDY NOTES: physics.txt\n")
	assert.Contains(t, out, "DEFINITIONS:\n- Velocity: displacement over time\n")
	assert.Contains(t, out, "FORMULAS:\n- v = d / t\n")
	assert.Contains(t, out, "KEY POINTS:\n- - Velocity has a direction\n")
}

func TestNotesCmd_JSON(t *testing.T) {
	path := writeNotes(t)

	out, err := execute(t, "notes", path, "--json")
	notesJSON = false
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got), out)
	assert.Equal(t, []any{"photosynthesis"}, got["keywords"])
	assert.Contains(t, got, "summary")
}

func TestReportCmd(t *testing.T) {
	path := writeNotes(t)
	dest := filepath.Join(t.TempDir(), "report.txt")
	reportOut = ""

	out, err := execute(t, "report", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Original File: biology.txt\n")

	_, err = execute(t, "report", path, "-o", dest)
	require.NoError(t, err)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, out, string(data))
	reportOut = ""
}
