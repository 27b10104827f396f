package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgallion1/studynotes/internal/analysis"
	"github.com/dgallion1/studynotes/internal/config"
	"github.com/dgallion1/studynotes/internal/logging"
	"github.com/dgallion1/studynotes/internal/parser"
)

var (
	cfg config.Config
	svc *analysis.Service
	log *slog.Logger

	colorMode string
)

var rootCmd = &cobra.Command{
	Use:   "studynotes",
	Short: "Search and summarize study documents",
	Long: `studynotes extracts the text of a PDF, PowerPoint or plain text file
and searches it, summarizes it or lists its keywords.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "highlight matches: auto, always or never")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Logs go to stderr so they never mix with command output.
	log, _ = logging.New(os.Stderr, logging.Options{Level: "warn", Format: "text"})

	svc = analysis.New(analysis.Options{
		ContextChars:     cfg.DefaultContextChars,
		SummarySentences: cfg.DefaultSummarySentences,
		Keywords:         cfg.DefaultKeywords,
		CacheEntries:     -1,
	})
	return nil
}

// loadDocument extracts the text of the file at path.
func loadDocument(path string) (analysis.Document, error) {
	text, err := parser.ExtractFile(path, parser.Options{PdftotextFallback: cfg.PDFFallbackPdftotext})
	if err != nil {
		log.Debug("extraction failed", "path", path, "error", err)
		return analysis.Document{}, err
	}
	return analysis.NewDocument(filepath.Base(path), text), nil
}
