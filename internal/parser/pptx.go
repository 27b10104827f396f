package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/dgallion1/studynotes/internal/doctree"
)

// errLegacyPPT is returned for binary (pre-2007) PowerPoint files.
var errLegacyPPT = errors.New("legacy binary .ppt is not supported, save as .pptx")

// PPTXParser handles OOXML presentations. With Legacy set the input came
// in as .ppt and is only accepted when it is actually an OOXML package.
type PPTXParser struct {
	Legacy bool
}

func (p *PPTXParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read presentation: %w", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if p.Legacy {
			return nil, errLegacyPPT
		}
		return nil, fmt.Errorf("open pptx: %w", err)
	}

	slides := slideFiles(zr)
	if len(slides) == 0 {
		return nil, errors.New("no slides found")
	}

	tree := &doctree.DocTree{
		Title: strings.TrimSuffix(strings.TrimSuffix(filename, ".pptx"), ".ppt"),
	}
	for i, f := range slides {
		text, err := slideText(f)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		// Every slide gets a node so that its marker is emitted even
		// when the slide has no text.
		tree.Children = append(tree.Children, &doctree.DocNode{
			Title: fmt.Sprintf("Slide %d", i+1),
			Text:  text,
			Page:  i + 1,
		})
	}
	return tree, nil
}

// slideFiles returns ppt/slides/slideN.xml entries ordered by N.
func slideFiles(zr *zip.Reader) []*zip.File {
	type numbered struct {
		n int
		f *zip.File
	}
	var found []numbered
	for _, f := range zr.File {
		dir, name := path.Split(f.Name)
		if dir != "ppt/slides/" || !strings.HasPrefix(name, "slide") || !strings.HasSuffix(name, ".xml") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "slide"), ".xml"))
		if err != nil {
			continue
		}
		found = append(found, numbered{n, f})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })

	out := make([]*zip.File, len(found))
	for i, s := range found {
		out[i] = s.f
	}
	return out
}

// slideText walks a slide's XML and returns the text of each shape on
// its own line. Paragraphs within a shape are joined with "\n".
func slideText(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	var (
		out        strings.Builder
		shape      []string
		para       strings.Builder
		shapeDepth int
		inPara     bool
		inText     bool
	)

	flushShape := func() {
		text := strings.Join(shape, "\n")
		if strings.TrimSpace(text) != "" {
			out.WriteString(text)
			out.WriteString("\n")
		}
		shape = shape[:0]
	}

	dec := xml.NewDecoder(rc)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse slide xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "sp", "graphicFrame":
				shapeDepth++
			case "p":
				if t.Name.Space == drawingNS || t.Name.Space == "" {
					inPara = true
					para.Reset()
				}
			case "t":
				inText = inPara
			case "br":
				if inPara {
					para.WriteString("\n")
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "sp", "graphicFrame":
				shapeDepth--
				if shapeDepth == 0 {
					flushShape()
				}
			case "p":
				if inPara {
					shape = append(shape, para.String())
					inPara = false
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				para.Write(t)
			}
		}
	}
	if len(shape) > 0 {
		flushShape()
	}
	return out.String(), nil
}

const drawingNS = "http://schemas.openxmlformats.org/drawingml/2006/main"
