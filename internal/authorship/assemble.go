package authorship

// Assemble builds one Record per named author of doc, in document order.
//
// It fails only when doc has no parsable contributions statement; an author
// absent from the statement gets an empty contribution, and an author
// without a usable name is left out.
func Assemble(doc *Document) ([]Record, error) {
	contributions, err := ParseContributions(doc.Contributions)
	if err != nil {
		return nil, err
	}

	title := Normalize(doc.Title)
	doi := Normalize(doc.DOI)
	date := Normalize(doc.Date)

	records := make([]Record, 0, len(doc.Authors))
	for _, author := range doc.Authors {
		name := Normalize(author.Name)
		if name == "" {
			continue
		}

		affiliations := ResolveAffiliations(author.Refs, doc.Affiliations)

		records = append(records, Record{
			Author:       name,
			Contribution: Normalize(contributions.Match(name)),
			Affiliations: affiliations,
			Nationality:  Nationality(PrimaryAffiliation(affiliations)),
			Order:        author.Order,
			Title:        title,
			DOI:          doi,
			Date:         date,
		})
	}

	return records, nil
}
