package reconcile

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var genericTokens = map[string]struct{}{
	"league": {},
	"fc":     {},
	"serie":  {},
	"liga":   {},
	"cup":    {},
}

// NameTokens lower-cases name, folds diacritics, splits on anything that is
// not a letter or digit and drops generic tokens such as "league" or "fc".
func NameTokens(name string) []string {
	folded := foldDiacritics(strings.ToLower(name))
	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, field := range fields {
		if _, generic := genericTokens[field]; generic {
			continue
		}
		out = append(out, field)
	}
	return out
}

// NormalizeName joins NameTokens with single spaces.
func NormalizeName(name string) string {
	return strings.Join(NameTokens(name), " ")
}

func foldDiacritics(value string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, value)
	if err != nil {
		return value
	}
	return folded
}

// containsRun reports whether needle occurs as a contiguous run of whole tokens in haystack.
func containsRun(haystack, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
outer:
	for start := 0; start+len(needle) <= len(haystack); start++ {
		for i, token := range needle {
			if haystack[start+i] != token {
				continue outer
			}
		}
		return true
	}
	return false
}

// sameNumbers compares the digit-only tokens of both names as sets, so that
// "La Liga" never absorbs "La Liga 2".
func sameNumbers(a, b []string) bool {
	left, right := numberSet(a), numberSet(b)
	if len(left) != len(right) {
		return false
	}
	for token := range left {
		if _, ok := right[token]; !ok {
			return false
		}
	}
	return true
}

func numberSet(tokens []string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, token := range tokens {
		if isDigits(token) {
			out[token] = struct{}{}
		}
	}
	return out
}

func isDigits(token string) bool {
	for _, r := range token {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return token != ""
}

// NamesOverlap is the competition identity test: either token sequence contains
// the other and both carry the same numbers. Empty names never overlap.
func NamesOverlap(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	if !containsRun(a, b) && !containsRun(b, a) {
		return false
	}
	return sameNumbers(a, b)
}
