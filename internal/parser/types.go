package parser

import (
	"net/url"

	"authorship-crawler/internal/authorship"
	"authorship-crawler/internal/document"
)

// Page is the outcome of parsing one fetched article page.
type Page struct {
	URL      string               `json:"url"`
	Document *authorship.Document `json:"-"`
	Records  []authorship.Record  `json:"records"`
	NextPage string               `json:"next_page,omitempty"`
}

// Paginator finds the page to fetch after the current one.
type Paginator interface {
	NextPage(root document.Node, base *url.URL) (string, bool)
}

// SelectorPaginator follows the attribute of the first node matching
// Selector, resolved against the current page URL.
type SelectorPaginator struct {
	Selector string
	Attr     string
}

func (sp SelectorPaginator) NextPage(root document.Node, base *url.URL) (string, bool) {
	if sp.Selector == "" {
		return "", false
	}

	href := document.FirstAttr(root, sp.Selector, sp.Attr)
	if href == "" {
		return "", false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	if base == nil {
		return ref.String(), true
	}
	return base.ResolveReference(ref).String(), true
}
