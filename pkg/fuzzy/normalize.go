// Package fuzzy normalizes free-text music queries before they reach a provider.
package fuzzy

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// NormalizeQuery composes the query to NFC and collapses whitespace.
// Case, punctuation and diacritics are kept since the provider matches on them.
func (n *Normalizer) NormalizeQuery(query string) string {
	query = norm.NFC.String(query)
	query = whitespaceRegex.ReplaceAllString(query, " ")
	return strings.TrimSpace(query)
}
