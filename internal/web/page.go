// Package web renders the browser pages for search results and summaries.
package web

import (
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const stylesheet = `body{font-family:sans-serif;max-width:60em;margin:2em auto;padding:0 1em}
mark{background:#ffe066}
.match{border-left:3px solid #ccc;margin:1em 0;padding:.25em .75em}
.meta{color:#666;font-size:.9em}`

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func class(name string) html.Attribute {
	return html.Attribute{Key: "class", Val: name}
}

// appendAll adds children to parent and returns parent.
func appendAll(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		parent.AppendChild(c)
	}
	return parent
}

// textElement is an element with a single text child.
func textElement(a atom.Atom, s string, attrs ...html.Attribute) *html.Node {
	return appendAll(element(a, attrs...), text(s))
}

// page builds a complete document and returns it with its body node.
func page(title string) (doc, body *html.Node) {
	doc = &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, html.Attribute{Key: "lang", Val: "en"})
	head := appendAll(element(atom.Head),
		element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}),
		textElement(atom.Title, title),
		textElement(atom.Style, stylesheet),
	)
	body = element(atom.Body)
	appendAll(root, head, body)
	doc.AppendChild(root)
	return doc, body
}

func render(w io.Writer, doc *html.Node) error {
	return html.Render(w, doc)
}
