package nlu

import (
	"errors"
	"regexp"
	"strings"
)

var errEmptyVocabulary = errors.New("empty vocabulary")

// compilePattern turns a vocabulary into a single matcher that is true when
// any term occurs in the text as a whole word.
// ["see you", "bye"] -> `(?i)\b(?:see\s+you|bye)\b`
func compilePattern(vocab Vocabulary) (*regexp.Regexp, error) {
	parts := make([]string, 0, len(vocab))
	for _, term := range vocab {
		if term == "" {
			continue
		}
		// Escape regex meta chars, then let a single space match any run.
		escaped := regexp.QuoteMeta(term)
		escaped = strings.ReplaceAll(escaped, " ", `\s+`)
		parts = append(parts, escaped)
	}
	if len(parts) == 0 {
		return nil, errEmptyVocabulary
	}
	return regexp.Compile(`(?i)\b(?:` + strings.Join(parts, "|") + `)\b`)
}
