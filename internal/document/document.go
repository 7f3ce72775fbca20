// Package document exposes a parsed page as a tree of nodes that can be
// queried with path expressions.
//
// Extraction code depends only on Node, so it can run against the HTML
// backed tree returned by Parse or against a Static tree built in memory.
package document

// Node is one element or text node of a parsed page.
type Node interface {
	// Query returns the descendants matching path, in document order.
	Query(path string) []Node
	// Children returns the direct child nodes, text nodes included.
	Children() []Node
	// Name returns the element tag, or "#text" for text nodes.
	Name() string
	// Text returns the concatenated text of the node and its descendants.
	Text() string
	Attr(name string) (string, bool)
}

// TextNodeName is the Name of text nodes.
const TextNodeName = "#text"

// Texts returns the text of every node matching path.
func Texts(n Node, path string) []string {
	nodes := n.Query(path)
	texts := make([]string, 0, len(nodes))
	for _, node := range nodes {
		texts = append(texts, node.Text())
	}
	return texts
}

// FirstText returns the text of the first node matching path.
func FirstText(n Node, path string) string {
	nodes := n.Query(path)
	if len(nodes) == 0 {
		return ""
	}
	return nodes[0].Text()
}

// FirstAttr returns the attribute of the first node matching path that has it.
func FirstAttr(n Node, path, attr string) string {
	for _, node := range n.Query(path) {
		if value, ok := node.Attr(attr); ok {
			return value
		}
	}
	return ""
}

// FirstNonEmpty runs the paths in order and returns the texts of the first
// one that matches anything.
func FirstNonEmpty(n Node, paths ...string) []string {
	for _, path := range paths {
		if texts := Texts(n, path); len(texts) > 0 {
			return texts
		}
	}
	return nil
}
