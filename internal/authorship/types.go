// Package authorship resolves the links between authors, their contribution
// statements and their affiliations on a scholarly article page.
//
// The page itself is never inspected here: callers hand over a Document that
// was already extracted from the page tree, and get back one Record per
// author. Every function is pure and safe for concurrent use.
package authorship

// Document is the extracted content of one fetched article page.
type Document struct {
	DOI           string
	Date          string
	Title         string
	Contributions string
	Authors       []Author
	Affiliations  []AffiliationEntry
}

// Author is one entry of the page's contributor list.
type Author struct {
	Order int
	Name  string
	// Refs are the affiliation reference symbols attached to the author, in
	// page order.
	Refs []string
}

// AffiliationEntry is one address block of the page's affiliation list.
type AffiliationEntry struct {
	Markers []string
	// Text is the concatenated content of the block without its markers.
	Text string
}

func (e AffiliationEntry) HasMarker(symbol string) bool {
	for _, marker := range e.Markers {
		if marker == symbol {
			return true
		}
	}
	return false
}

// Affiliation is a resolved affiliation text and its output label.
type Affiliation struct {
	Label string
	Text  string
}
