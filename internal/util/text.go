package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"partpick/internal"
)

var reLabel = regexp.MustCompile(`^\s*\[([^\]]*)\]\s*(.*)$`)

// ParseLabel splits "[category] name" into its parts. A label that is only a
// tag uses the tag text as the name.
func ParseLabel(raw string) (category, name string) {
	s := strings.TrimSpace(raw)
	m := reLabel.FindStringSubmatch(s)
	if m == nil {
		return internal.CategoryUncategorized, s
	}
	category = strings.TrimSpace(m[1])
	name = strings.TrimSpace(m[2])
	if name == "" {
		name = category
	}
	if category == "" {
		category = internal.CategoryUncategorized
	}
	return category, name
}

// NormalizeSearch folds text for space and case insensitive matching.
func NormalizeSearch(text string) string {
	return StripSpace(strings.ToLower(norm.NFKD.String(text)))
}

func MatchesQuery(name, query string) bool {
	return MatchesNormalized(NormalizeSearch(name), NormalizeSearch(query))
}

// MatchesNormalized is MatchesQuery for inputs already passed through
// NormalizeSearch. An empty query matches everything.
func MatchesNormalized(name, query string) bool {
	return query == "" || strings.Contains(name, query)
}

// StripSpace removes every whitespace rune.
func StripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func DiceCoefficient(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	pairs := func(s string) []string {
		r := []rune(s)
		if len(r) < 2 {
			return nil
		}
		out := make([]string, 0, len(r)-1)
		for i := 0; i < len(r)-1; i++ {
			out = append(out, string(r[i:i+2]))
		}
		return out
	}

	aPairs := pairs(a)
	bPairs := pairs(b)
	if len(aPairs) == 0 || len(bPairs) == 0 {
		return 0
	}

	bCount := map[string]int{}
	for _, p := range bPairs {
		bCount[p]++
	}
	inter := 0
	for _, p := range aPairs {
		if bCount[p] > 0 {
			inter++
			bCount[p]--
		}
	}

	return float64(2*inter) / float64(len(aPairs)+len(bPairs))
}
