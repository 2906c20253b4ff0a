package csvio

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
)

// suffixTokens are dropped when comparing fund names.
var suffixTokens = map[string]struct{}{
	"fund": {}, "lp": {}, "llp": {}, "llc": {}, "ltd": {}, "inc": {}, "scsp": {}, "the": {},
}

// numeralToken matches fund sequence numbers such as "ii", "xiv" or "3".
var numeralToken = regexp.MustCompile(`^(?:[0-9]+|x{0,3}(?:ix|iv|v?i{0,3}))$`)

// minContainedTokens is the shortest name a containment match accepts.
const minContainedTokens = 2

var dottedSuffixes = strings.NewReplacer("l.p.", "lp", "l.l.p.", "llp", "l.l.c.", "llc", "s.c.sp.", "scsp")

// NormalizeFundName reduces a fund name to the lowercase words that identify
// it: punctuation becomes a word break and legal suffixes such as LP, L.P.,
// Fund and Ltd are removed.
//
// Example:
//
//	NormalizeFundName("Acme Capital Fund II, L.P.") // "acme capital ii"
func NormalizeFundName(name string) string {
	return strings.Join(nameTokens(name), " ")
}

func nameTokens(name string) []string {
	name = dottedSuffixes.Replace(strings.ToLower(name))
	words := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := words[:0]
	for _, w := range words {
		if _, ok := suffixTokens[w]; ok {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// MatchFund finds the candidate whose name matches name. Normalized names are
// compared for equality first; failing that, a candidate matches when one
// name's words appear as a contiguous run in the other's, and the candidate
// closest in length wins. Ties keep the earliest candidate.
//
// A containment match needs at least two words on the shorter side and the
// same sequence numbers on both sides, so "Acme Capital II" never matches
// "Acme Capital".
func MatchFund[T any](name string, candidates []T, nameOf func(T) string) (T, bool) {
	var zero T

	target := nameTokens(name)
	if len(target) == 0 {
		return zero, false
	}

	for _, c := range candidates {
		if slices.Equal(target, nameTokens(nameOf(c))) {
			return c, true
		}
	}

	best, bestDiff := -1, 0
	for i, c := range candidates {
		tokens := nameTokens(nameOf(c))
		if len(tokens) == 0 {
			continue
		}
		if !containsRun(target, tokens) && !containsRun(tokens, target) {
			continue
		}
		if min(len(tokens), len(target)) < minContainedTokens || !slices.Equal(numerals(tokens), numerals(target)) {
			continue
		}
		diff := len(tokens) - len(target)
		if diff < 0 {
			diff = -diff
		}
		if best < 0 || diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	if best < 0 {
		return zero, false
	}
	return candidates[best], true
}

func numerals(tokens []string) []string {
	var out []string
	for _, t := range tokens {
		if t != "" && numeralToken.MatchString(t) {
			out = append(out, t)
		}
	}
	return out
}

// containsRun reports whether needle occurs as a contiguous run in haystack.
func containsRun(haystack, needle []string) bool {
	if len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if slices.Equal(haystack[i:i+len(needle)], needle) {
			return true
		}
	}
	return false
}
