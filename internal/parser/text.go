package parser

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/studynotes/internal/doctree"
	"golang.org/x/text/encoding/charmap"
)

// TextParser handles plain text files. Input that is not valid UTF-8 is
// decoded as ISO-8859-1.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}

	var text string
	if utf8.Valid(data) {
		text = strings.TrimPrefix(string(data), "\uFEFF")
	} else {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decode latin-1: %w", err)
		}
		text = string(decoded)
	}

	tree := &doctree.DocTree{
		Title: strings.TrimSuffix(filename, ".txt"),
	}
	if text != "" {
		tree.Children = []*doctree.DocNode{{Text: text}}
	}
	return tree, nil
}
