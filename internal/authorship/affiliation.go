package authorship

import (
	"strconv"
	"strings"
)

// PrimaryAffiliationLabel labels the first resolved affiliation of an author.
const PrimaryAffiliationLabel = "3. Affiliation1"

// ResolveAffiliations maps an author's reference symbols to affiliation
// texts.
//
// For the i-th symbol, every entry carrying it contributes one affiliation;
// the j-th such entry is labeled "Affiliation<i+1>" with "<j+1>" appended
// when j > 0. The first one resolved is labeled PrimaryAffiliationLabel
// instead. When nothing resolves, the first entry's text becomes the primary
// affiliation, so the result is never empty.
func ResolveAffiliations(refs []string, entries []AffiliationEntry) []Affiliation {
	var resolved []Affiliation
	byLabel := make(map[string]int)

	for i, ref := range refs {
		matched := 0
		for _, entry := range entries {
			if !entry.HasMarker(ref) {
				continue
			}
			label := affiliationLabel(i, matched)
			if len(resolved) == 0 {
				label = PrimaryAffiliationLabel
			}
			text := Normalize(entry.Text)
			if at, ok := byLabel[label]; ok {
				resolved[at].Text = text
			} else {
				byLabel[label] = len(resolved)
				resolved = append(resolved, Affiliation{Label: label, Text: text})
			}
			matched++
		}
	}

	if len(resolved) > 0 {
		return resolved
	}

	var text string
	if len(entries) > 0 {
		text = Normalize(entries[0].Text)
	}
	return []Affiliation{{Label: PrimaryAffiliationLabel, Text: text}}
}

func affiliationLabel(ref, entry int) string {
	label := "Affiliation" + strconv.Itoa(ref+1)
	if entry > 0 {
		label += strconv.Itoa(entry + 1)
	}
	return label
}

// PrimaryAffiliation returns the text of the primary entry of affiliations.
func PrimaryAffiliation(affiliations []Affiliation) string {
	for _, a := range affiliations {
		if a.Label == PrimaryAffiliationLabel {
			return a.Text
		}
	}
	return ""
}

// Nationality derives a country from an affiliation: the last comma
// separated part of its first ';' segment, without a closing period.
func Nationality(affiliation string) string {
	first, _, _ := strings.Cut(affiliation, ";")
	parts := strings.Split(first, ",")
	country := Normalize(parts[len(parts)-1])
	return Normalize(strings.TrimSuffix(country, "."))
}
