package parser

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"unicode"

	"authorship-crawler/internal/authorship"
	"authorship-crawler/internal/config"
	"authorship-crawler/internal/document"
)

type Parser struct {
	profile   *config.Profile
	paginator Paginator
	logger    *slog.Logger
}

func NewParser(profile *config.Profile, logger *slog.Logger) *Parser {
	return &Parser{
		profile: profile,
		paginator: SelectorPaginator{
			Selector: profile.NextPage,
			Attr:     profile.NextPageAttr,
		},
		logger: logger,
	}
}

// WithPaginator replaces the profile's next-page lookup.
func (p *Parser) WithPaginator(paginator Paginator) *Parser {
	p.paginator = paginator
	return p
}

func (p *Parser) Parse(html []byte, pageURL string) (*Page, error) {
	root, err := document.Parse(bytes.NewReader(html))
	if err != nil {
		return nil, err
	}
	return p.ParseNode(root, pageURL)
}

// ParseNode extracts the authorship records of the page rooted at root. It
// fails when the page has no usable contributions statement.
func (p *Parser) ParseNode(root document.Node, pageURL string) (*Page, error) {
	doc := &authorship.Document{}

	extractors := []func(document.Node, *authorship.Document) error{
		p.extractMeta,
		p.extractContributions,
		p.extractAuthors,
		p.extractAffiliations,
	}

	for _, extractor := range extractors {
		if err := extractor(root, doc); err != nil {
			p.logger.Debug("extractor warning", "url", pageURL, "error", err)
		}
	}

	records, err := authorship.Assemble(doc)
	if err != nil {
		return nil, fmt.Errorf("assembling records: %w", err)
	}

	page := &Page{
		URL:      pageURL,
		Document: doc,
		Records:  records,
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}
	if next, ok := p.paginator.NextPage(root, base); ok {
		page.NextPage = next
	}

	return page, nil
}

func (p *Parser) extractMeta(root document.Node, doc *authorship.Document) error {
	doc.DOI = value(root, p.profile.DOI)
	doc.Date = value(root, p.profile.Date)
	doc.Title = value(root, p.profile.Title)

	if doc.DOI == "" {
		return fmt.Errorf("no DOI found with %q", p.profile.DOI)
	}
	return nil
}

func (p *Parser) extractContributions(root document.Node, doc *authorship.Document) error {
	for _, text := range document.Texts(root, p.profile.Contributions) {
		if strings.Contains(text, p.profile.ContributionsLabel) {
			doc.Contributions = authorship.Normalize(text)
			return nil
		}
	}
	return fmt.Errorf("no %q statement found", p.profile.ContributionsLabel)
}

func (p *Parser) extractAuthors(root document.Node, doc *authorship.Document) error {
	unnamed := 0

	for _, contributor := range root.Query(p.profile.Contributors) {
		name := authorship.Normalize(document.FirstText(contributor, p.profile.AuthorName))
		if name == "" && p.profile.AuthorCollab != "" {
			name = authorship.Normalize(document.FirstText(contributor, p.profile.AuthorCollab))
		}
		if name == "" {
			unnamed++
			continue
		}

		var refs []string
		for _, text := range document.FirstNonEmpty(contributor, p.profile.AuthorRefs...) {
			refs = append(refs, splitSymbols(text)...)
		}

		doc.Authors = append(doc.Authors, authorship.Author{
			Order: len(doc.Authors) + 1,
			Name:  name,
			Refs:  refs,
		})
	}

	if unnamed > 0 {
		return fmt.Errorf("skipped %d contributors without a name", unnamed)
	}
	if len(doc.Authors) == 0 {
		return fmt.Errorf("no contributors found with %q", p.profile.Contributors)
	}
	return nil
}

func (p *Parser) extractAffiliations(root document.Node, doc *authorship.Document) error {
	for _, block := range root.Query(p.profile.Affiliations) {
		var entry authorship.AffiliationEntry
		var text strings.Builder

		for _, child := range block.Children() {
			if child.Name() == p.profile.Marker {
				entry.Markers = append(entry.Markers, splitSymbols(child.Text())...)
				continue
			}
			text.WriteString(child.Text())
		}

		entry.Text = text.String()
		doc.Affiliations = append(doc.Affiliations, entry)
	}

	if len(doc.Affiliations) == 0 {
		return fmt.Errorf("no affiliations found with %q", p.profile.Affiliations)
	}
	return nil
}

// value reads a meta tag's content, or the text of any other element.
func value(root document.Node, selector string) string {
	if selector == "" {
		return ""
	}
	if content := document.FirstAttr(root, selector, "content"); content != "" {
		return content
	}
	return authorship.Normalize(document.FirstText(root, selector))
}

// splitSymbols turns marker text such as "a,b" or " 1 " into symbols.
func splitSymbols(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
