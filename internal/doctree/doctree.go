package doctree

import "strings"

// DocTree is the root of an extracted document.
type DocTree struct {
	Title    string     // Document title (from the filename)
	Children []*DocNode // Pages, slides or a single body node
}

// DocNode is a page, slide or text block in the document tree.
type DocNode struct {
	Title    string     // "Page 3", "Slide 2"; empty for unmarked text
	Text     string     // Text content of this node (may be empty)
	Page     int        // 1-based page/slide number (0 if N/A)
	Children []*DocNode // Nested blocks
}

// Marker returns the separator line written before a numbered node, such
// as "--- Page 3 ---". Nodes without a page number have no marker.
func (n *DocNode) Marker() string {
	if n.Page <= 0 || n.Title == "" {
		return ""
	}
	return "--- " + n.Title + " ---"
}

// Text flattens the tree into one string. Every numbered node is preceded
// by its marker on a line of its own.
func (t *DocTree) Text() string {
	var sb strings.Builder
	var walk func(nodes []*DocNode)
	walk = func(nodes []*DocNode) {
		for _, n := range nodes {
			if m := n.Marker(); m != "" {
				sb.WriteString("\n" + m + "\n")
			}
			sb.WriteString(n.Text)
			walk(n.Children)
		}
	}
	walk(t.Children)
	return sb.String()
}
