package usecase

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const minFuzzyTeamNameLength = 4

var (
	clubPrefixRegex = regexp.MustCompile(`\b(fc|ac|as|sc|ssc|rc|cf|cd|ud|sv|us|ss|og|rb|tsg|vfb|vfl|1\.)\b`)
	nonAlnumRegex   = regexp.MustCompile(`[^a-z0-9]`)
)

// TeamNamesMatch reports whether two provider spellings refer to the same club.
// Normalized names match when equal, or when both have at least four
// characters and one contains the other.
func TeamNamesMatch(a, b string) bool {
	na := normalizeTeamName(a)
	nb := normalizeTeamName(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	if len(na) < minFuzzyTeamNameLength || len(nb) < minFuzzyTeamNameLength {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

func normalizeTeamName(name string) string {
	value := stripDiacritics(strings.ToLower(strings.TrimSpace(name)))
	value = clubPrefixRegex.ReplaceAllString(value, "")
	return nonAlnumRegex.ReplaceAllString(value, "")
}

func stripDiacritics(value string) string {
	// transform.Chain is stateful, so build it per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, value)
	if err != nil {
		return value
	}
	return out
}
