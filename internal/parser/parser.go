package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/studynotes/internal/doctree"
	"github.com/dgallion1/studynotes/internal/textproc"
)

// Parser converts raw document bytes into a DocTree.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.DocTree, error)
}

// Options tunes the format adapters.
type Options struct {
	// PdftotextFallback retries PDFs with the pdftotext binary when the
	// Go reader fails.
	PdftotextFallback bool
}

// ErrUnsupportedFormat is returned for file extensions without an adapter.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ExtractionError wraps any failure of a format adapter.
type ExtractionError struct {
	Format string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":  true,
	".ppt":  true,
	".pptx": true,
	".txt":  true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.PdftotextFallback}, nil
	case ".pptx":
		return &PPTXParser{}, nil
	case ".ppt":
		return &PPTXParser{Legacy: true}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// ExtractText parses r with the adapter for filename and returns the
// cleaned document text, including page and slide markers.
func ExtractText(r io.Reader, filename string, opts Options) (string, error) {
	p, err := ForFile(filename, opts)
	if err != nil {
		return "", err
	}

	tree, err := p.Parse(r, filename)
	if err != nil {
		return "", &ExtractionError{Format: strings.ToLower(filepath.Ext(filename)), Err: err}
	}

	text := Clean(tree.Text())
	if text == "" {
		return "", textproc.Invalid("document", "no extractable text in %s", filepath.Base(filename))
	}
	return text, nil
}

// ExtractFile is ExtractText for a file on disk.
func ExtractFile(path string, opts Options) (string, error) {
	if !IsSupportedExtension(path) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, strings.ToLower(filepath.Ext(path)))
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ExtractText(f, filepath.Base(path), opts)
}
