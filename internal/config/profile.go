package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile holds the CSS selectors that locate authorship data on a journal's
// article pages.
type Profile struct {
	Name string `yaml:"name"`

	DOI   string `yaml:"doi"`
	Date  string `yaml:"date"`
	Title string `yaml:"title"`

	Contributions      string `yaml:"contributions"`
	ContributionsLabel string `yaml:"contributions_label"`

	Contributors string `yaml:"contributors"`
	AuthorName   string `yaml:"author_name"`
	AuthorCollab string `yaml:"author_collab"`
	// AuthorRefs are tried in order; the first selector with results wins.
	AuthorRefs []string `yaml:"author_refs"`

	Affiliations string `yaml:"affiliations"`
	Marker       string `yaml:"marker"`

	NextPage     string `yaml:"next_page"`
	NextPageAttr string `yaml:"next_page_attr"`
}

// DefaultProfile matches PNAS article pages.
func DefaultProfile() *Profile {
	return &Profile{
		Name:               "pnas",
		DOI:                `meta[name="DC.Identifier"]`,
		Date:               `meta[name="DC.Date"]`,
		Title:              `meta[name="DC.Title"]`,
		Contributions:      "div#fn-group-1 li p",
		ContributionsLabel: "Author contributions",
		Contributors:       "ol.contributor-list > li",
		AuthorName:         "span.name",
		AuthorCollab:       "span.collab",
		AuthorRefs: []string{
			"a.xref-aff sup",
			"a.xref-fn sup",
			"a.xref-aff",
			"a.xref-fn",
		},
		Affiliations: "ol.affiliation-list > li address",
		Marker:       "sup",
		NextPage:     `li:not(.active) > a[data-panel-name="jnl_pnas_tab_info"]`,
		NextPageAttr: "href",
	}
}

// LoadProfile reads a YAML profile. Keys missing from the file keep their
// DefaultProfile value, and an empty path returns the default.
func LoadProfile(path string) (*Profile, error) {
	profile := DefaultProfile()
	if path == "" {
		return profile, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}

	if profile.Contributors == "" || profile.Affiliations == "" {
		return nil, fmt.Errorf("%w: profile %q needs contributors and affiliations selectors", ErrInvalid, profile.Name)
	}

	return profile, nil
}
