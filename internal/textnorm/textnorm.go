package textnorm

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiPunct is the ASCII punctuation set stripped from user text.
const asciiPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

func isASCIIPunct(r rune) bool {
	return r < 0x80 && strings.ContainsRune(asciiPunct, r)
}

// StripPunct removes ASCII punctuation and composes the text to NFC.
// Composition runs last so a mark left next to its base letter by a removed
// character is composed in the same pass.
func StripPunct(s string) string {
	// Transformers carry state, so build a fresh chain per call.
	t := transform.Chain(runes.Remove(runes.Predicate(isASCIIPunct)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Lower lowercases s with English casing rules.
func Lower(s string) string {
	return cases.Lower(language.English).String(s)
}

// Normalize lowercases s, removes punctuation and trims surrounding space.
// " Hello, World! " becomes "hello world". Normalize is idempotent.
func Normalize(s string) string {
	return strings.TrimSpace(StripPunct(Lower(s)))
}

// Compact normalizes s and drops every whitespace rune and hyphen, so that
// "New-York", "new york" and "NewYork" all become "newyork".
func Compact(s string) string {
	s = Normalize(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '-':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
