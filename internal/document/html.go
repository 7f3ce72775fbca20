package document

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// htmlNode wraps a single-node goquery selection. Paths are CSS selectors.
type htmlNode struct {
	sel *goquery.Selection
}

// Parse reads an HTML page into a Node tree rooted at the document.
func Parse(r io.Reader) (Node, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return htmlNode{sel: doc.Selection}, nil
}

func (n htmlNode) Query(path string) []Node {
	return wrap(n.sel.Find(path))
}

func (n htmlNode) Children() []Node {
	return wrap(n.sel.Contents())
}

func (n htmlNode) Name() string {
	if len(n.sel.Nodes) > 0 && n.sel.Nodes[0].Type == html.TextNode {
		return TextNodeName
	}
	return goquery.NodeName(n.sel)
}

func (n htmlNode) Text() string {
	return n.sel.Text()
}

func (n htmlNode) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

func wrap(sel *goquery.Selection) []Node {
	nodes := make([]Node, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, htmlNode{sel: s})
	})
	return nodes
}
