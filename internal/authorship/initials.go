package authorship

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ErrMalformedName is returned by Initials when a name has no word tokens.
var ErrMalformedName = errors.New("author name has no word tokens")

// Signature is the initials form of an author name as it appears in
// contribution statements.
type Signature struct {
	// Full has one "X." per name token, hyphenated parts joined by "-":
	// "Jean-Paul Sartre" -> "J.-P.S.".
	Full string
	// Short is the first two and last two characters of Full, "J.S." for
	// the name above. Empty when Full is shorter than four characters.
	Short string
}

func (s Signature) IsZero() bool {
	return s.Full == "" && s.Short == ""
}

// Initials derives the initials signature of name.
//
// The name is split on hyphens first, then every hyphen segment is split on
// runs of non-word characters (anything but letters, digits and '_'). Empty
// segments and tokens are skipped. A name without any token yields a zero
// Signature and ErrMalformedName.
func Initials(name string) (Signature, error) {
	name = norm.NFC.String(name)

	var segments []string
	for _, segment := range strings.Split(name, "-") {
		var b strings.Builder
		for _, token := range strings.FieldsFunc(segment, isNonWord) {
			r, _ := utf8.DecodeRuneInString(token)
			b.WriteRune(r)
			b.WriteByte('.')
		}
		if b.Len() > 0 {
			segments = append(segments, b.String())
		}
	}

	if len(segments) == 0 {
		return Signature{}, fmt.Errorf("%w: %q", ErrMalformedName, name)
	}

	full := strings.Join(segments, "-")
	return Signature{Full: full, Short: shortSignature(full)}, nil
}

func shortSignature(full string) string {
	runes := []rune(full)
	if len(runes) < 4 {
		return ""
	}
	return string(runes[:2]) + string(runes[len(runes)-2:])
}

func isNonWord(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
}
