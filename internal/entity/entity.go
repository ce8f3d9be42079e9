// Package entity pulls the city, the requested day and the weather aspects
// out of a raw utterance.
package entity

import (
	"strings"

	"weatherbot/internal/textnorm"
)

// Entities is what the extractor found in one utterance.
type Entities struct {
	City        string
	HasCity     bool
	DateKeyword string
	Aspects     []string
}

var (
	todayWords    = []string{"today", "now", "tonight", "thisday"}
	tomorrowWords = []string{"tomorrow", "nextday"}
	weekdays      = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

	aspectWords = map[string]bool{
		"sunrise":     true,
		"sunset":      true,
		"temperature": true,
		"temp":        true,
		"wind":        true,
		"rain":        true,
		"windy":       true,
	}
)

type city struct {
	name    string
	compact string
}

// Extractor matches utterances against a gazetteer. The gazetteer order is
// the city priority. It is read-only after construction.
type Extractor struct {
	cities []city
}

// NewExtractor indexes gazetteer, keeping its order. Names that compact to
// the empty string are skipped.
func NewExtractor(gazetteer []string) *Extractor {
	e := &Extractor{cities: make([]city, 0, len(gazetteer))}
	for _, name := range gazetteer {
		c := textnorm.Compact(name)
		if c == "" {
			continue
		}
		e.cities = append(e.cities, city{name: name, compact: c})
	}
	return e
}

// Extract runs every extractor over text.
func (e *Extractor) Extract(text string) Entities {
	name, ok := e.City(text)
	return Entities{
		City:        name,
		HasCity:     ok,
		DateKeyword: DateKeyword(text),
		Aspects:     Aspects(text),
	}
}

// City returns the first gazetteer city whose compacted name occurs in the
// compacted text. "I love New-York" finds "New York".
func (e *Extractor) City(text string) (string, bool) {
	in := textnorm.Compact(text)
	if in == "" {
		return "", false
	}
	for _, c := range e.cities {
		if strings.Contains(in, c.compact) {
			return c.name, true
		}
	}
	return "", false
}

// Len is the number of indexed cities.
func (e *Extractor) Len() int { return len(e.cities) }

// DateKeyword returns "today", "tomorrow", a weekday name or "". The today
// family wins over the tomorrow family, which wins over weekdays; weekdays
// are tried monday first. Matching runs on the compacted text so "next day"
// and "next-day" count as "nextday".
func DateKeyword(text string) string {
	t := textnorm.Compact(text)
	if containsAny(t, todayWords) {
		return "today"
	}
	if containsAny(t, tomorrowWords) {
		return "tomorrow"
	}
	for _, d := range weekdays {
		if strings.Contains(t, d) {
			return d
		}
	}
	return ""
}

// Aspects lists the aspect words of text in the order they appear.
// Repeats are kept.
func Aspects(text string) []string {
	var out []string
	for _, tok := range strings.Fields(textnorm.Normalize(text)) {
		if aspectWords[tok] {
			out = append(out, tok)
		}
	}
	return out
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
