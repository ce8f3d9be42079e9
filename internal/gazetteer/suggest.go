package gazetteer

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Suggest returns up to n names of cities that fuzzily match query, best
// match first. It backs "did you mean" hints when no city is recognised.
func Suggest(cities []string, query string, n int) []string {
	query = strings.TrimSpace(query)
	if query == "" || n <= 0 {
		return nil
	}
	matches := fuzzy.Find(query, cities)
	if len(matches) > n {
		matches = matches[:n]
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return out
}
