package authorship

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Output labels. The numeric prefixes keep row oriented outputs in a stable
// column order.
const (
	LabelAuthor       = "1. Author"
	LabelContribution = "2. Contribution"
	LabelNational     = "4. National"
	LabelOrder        = "5. Order"
	LabelTitle        = "6. Title"
	LabelDOI          = "7. Doi"
	LabelDate         = "8. Date"
)

// Record is the output row for one author of one document.
type Record struct {
	Author       string
	Contribution string
	Affiliations []Affiliation
	Nationality  string
	Order        int
	Title        string
	DOI          string
	Date         string
}

// Field is one labeled value of a Record.
type Field struct {
	Label string
	Value any
}

// Fields returns the record's values in output order: the numbered labels
// first, then the secondary affiliations in resolution order.
func (r Record) Fields() []Field {
	fields := []Field{
		{LabelAuthor, r.Author},
		{LabelContribution, r.Contribution},
		{PrimaryAffiliationLabel, PrimaryAffiliation(r.Affiliations)},
		{LabelNational, r.Nationality},
		{LabelOrder, r.Order},
		{LabelTitle, r.Title},
		{LabelDOI, r.DOI},
		{LabelDate, r.Date},
	}
	for _, a := range r.Affiliations {
		if a.Label != PrimaryAffiliationLabel {
			fields = append(fields, Field{a.Label, a.Text})
		}
	}
	return fields
}

// MarshalJSON encodes the record as an object whose keys follow Fields.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Label)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", f.Label, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
