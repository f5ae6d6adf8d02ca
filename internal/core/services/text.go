package services

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Leading qualifiers stripped to find a modifier's base word.
var qualifierPrefixes = []string{"extra ", "add ", "light ", "with "}

// Leading words that turn a modifier phrase into an exclusion.
var negationPrefixes = []string{"no ", "without "}

// Normalize lowercases s, folds diacritics ("jalapeño" -> "jalapeno"),
// trims it and collapses internal whitespace to single spaces.
func Normalize(s string) string {
	// Transformers carry state, so each call builds its own chain.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// baseWord strips any run of leading qualifiers and negations from a
// normalised phrase. "add extra cheese" -> "cheese".
func baseWord(phrase string) string {
	prefixes := append(append([]string{}, qualifierPrefixes...), negationPrefixes...)
	for {
		stripped := false
		for _, prefix := range prefixes {
			if rest, ok := strings.CutPrefix(phrase, prefix); ok && rest != "" {
				phrase = rest
				stripped = true
			}
		}
		if !stripped {
			return phrase
		}
	}
}

// qualifierBase strips leading intensity and relation qualifiers only.
func qualifierBase(phrase string) string {
	for {
		stripped := false
		for _, prefix := range qualifierPrefixes {
			if rest, ok := strings.CutPrefix(phrase, prefix); ok && rest != "" {
				phrase = rest
				stripped = true
			}
		}
		if !stripped {
			return phrase
		}
	}
}

// negationTarget returns the excluded name of a negated phrase.
func negationTarget(phrase string) (string, bool) {
	for _, prefix := range negationPrefixes {
		if rest, ok := strings.CutPrefix(phrase, prefix); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}
