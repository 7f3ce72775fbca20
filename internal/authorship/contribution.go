package authorship

import (
	"errors"
	"strings"
)

// ErrNoContributions is returned when the contributions text lacks the
// "label:" prefix, which means the page has no contributions section.
var ErrNoContributions = errors.New("contributions text has no ':' separator")

// Tier says which form of the author's name matched a clause.
type Tier int

const (
	TierNone Tier = iota
	TierFull
	TierShort
	TierName
)

func (t Tier) String() string {
	switch t {
	case TierFull:
		return "full"
	case TierShort:
		return "short"
	case TierName:
		return "name"
	default:
		return "none"
	}
}

// Contributions is a parsed contributions statement, such as
// "Author contributions: J.A.D. designed research; J.S. wrote the paper."
type Contributions struct {
	clauses []string
}

// ClauseMatch describes one clause attributed to an author.
type ClauseMatch struct {
	Clause string
	Tier   Tier
	Role   string
}

// ParseContributions splits text after its first ':' into ';' clauses.
func ParseContributions(text string) (Contributions, error) {
	_, body, ok := strings.Cut(text, ":")
	if !ok {
		return Contributions{}, ErrNoContributions
	}
	return Contributions{clauses: strings.Split(body, ";")}, nil
}

func (c Contributions) Clauses() []string {
	return c.clauses
}

// Explain returns every clause attributed to author together with the tier
// that matched it. A name without initials only matches literally.
func (c Contributions) Explain(author string) []ClauseMatch {
	author = Normalize(author)
	sig, _ := Initials(author)

	var matches []ClauseMatch
	for _, clause := range c.clauses {
		tier := matchTier(clause, author, sig)
		if tier == TierNone {
			continue
		}
		matches = append(matches, ClauseMatch{
			Clause: Normalize(clause),
			Tier:   tier,
			Role:   clauseRole(clause),
		})
	}
	return matches
}

// Match returns the roles attributed to author joined by ", ", or "" when
// the statement does not mention them.
func (c Contributions) Match(author string) string {
	var roles []string
	for _, m := range c.Explain(author) {
		if m.Role != "" {
			roles = append(roles, m.Role)
		}
	}
	return strings.Join(roles, ", ")
}

// MatchContribution parses text and matches author against it.
func MatchContribution(author, text string) (string, error) {
	contributions, err := ParseContributions(text)
	if err != nil {
		return "", err
	}
	return contributions.Match(author), nil
}

func matchTier(clause, author string, sig Signature) Tier {
	switch {
	case containsNonEmpty(clause, sig.Full):
		return TierFull
	case containsNonEmpty(clause, sig.Short):
		return TierShort
	case containsNonEmpty(clause, author):
		return TierName
	default:
		return TierNone
	}
}

func containsNonEmpty(s, substr string) bool {
	return substr != "" && strings.Contains(s, substr)
}

// clauseRole returns the description part of a clause: the text after the
// last '.' once the clause's own terminating period is dropped.
func clauseRole(clause string) string {
	clause = strings.TrimSuffix(strings.TrimSpace(clause), ".")
	if i := strings.LastIndex(clause, "."); i >= 0 {
		clause = clause[i+1:]
	}
	return Normalize(clause)
}
