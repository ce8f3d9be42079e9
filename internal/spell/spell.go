package spell

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/antzucaro/matchr"
)

//go:embed words.txt
var defaultWords string

// DefaultMaxDistance is the largest edit distance a correction may span.
const DefaultMaxDistance = 2

// Candidate is a dictionary word close enough to replace a token.
type Candidate struct {
	Word      string
	Distance  int
	Frequency int
	Preferred bool
}

// Corrector replaces unknown tokens with the closest dictionary word.
// It is read-only after New and safe for concurrent use.
type Corrector struct {
	freq        map[string]int
	words       []string
	preferred   map[string]bool
	maxDistance int
}

// Option configures New.
type Option func(*Corrector)

// WithMaxDistance sets the maximum Levenshtein distance of a correction.
func WithMaxDistance(n int) Option {
	return func(c *Corrector) {
		if n >= 0 {
			c.maxDistance = n
		}
	}
}

// WithPreferred adds single words to the dictionary and ranks them ahead of
// ordinary words at the same distance. Multi-word terms are split.
func WithPreferred(terms ...string) Option {
	return func(c *Corrector) {
		for _, t := range terms {
			for _, w := range strings.Fields(strings.ToLower(t)) {
				c.preferred[w] = true
				if _, ok := c.freq[w]; !ok {
					c.freq[w] = 1
				}
			}
		}
	}
}

// WithKnown adds words to the dictionary without ranking them ahead of
// others, so they are kept as typed but rarely offered as corrections.
// Multi-word names are split.
func WithKnown(words ...string) Option {
	return func(c *Corrector) {
		for _, t := range words {
			for _, w := range strings.Fields(strings.ToLower(t)) {
				if _, ok := c.freq[w]; !ok {
					c.freq[w] = 1
				}
			}
		}
	}
}

// New builds a corrector over a word -> frequency table.
func New(freq map[string]int, opts ...Option) *Corrector {
	c := &Corrector{
		freq:        make(map[string]int, len(freq)),
		preferred:   make(map[string]bool),
		maxDistance: DefaultMaxDistance,
	}
	for w, f := range freq {
		c.freq[strings.ToLower(w)] = f
	}
	for _, opt := range opts {
		opt(c)
	}

	c.words = make([]string, 0, len(c.freq))
	for w := range c.freq {
		c.words = append(c.words, w)
	}
	sort.Strings(c.words)
	return c
}

// DefaultFrequencies parses the embedded English word list.
func DefaultFrequencies() (map[string]int, error) {
	return ParseFrequencies(strings.NewReader(defaultWords))
}

// Default builds a corrector over the embedded English word list.
func Default(opts ...Option) (*Corrector, error) {
	freq, err := DefaultFrequencies()
	if err != nil {
		return nil, err
	}
	return New(freq, opts...), nil
}

// ParseFrequencies reads "word count" lines. Blank lines and lines starting
// with '#' are skipped; a missing count means 1.
func ParseFrequencies(r io.Reader) (map[string]int, error) {
	freq := make(map[string]int)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		count := 1
		if len(fields) > 1 {
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("spell: line %d: bad count %q", line, fields[1])
			}
			count = n
		}
		freq[strings.ToLower(fields[0])] += count
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("spell: reading dictionary: %w", err)
	}
	return freq, nil
}

// Known reports whether word is in the dictionary.
func (c *Corrector) Known(word string) bool {
	_, ok := c.freq[word]
	return ok
}

// Candidates lists the dictionary words within the maximum distance of word,
// best first: lower distance, then preferred words, then higher frequency,
// then alphabetical order. A known word is its own single candidate.
func (c *Corrector) Candidates(word string) []Candidate {
	if f, ok := c.freq[word]; ok {
		return []Candidate{{Word: word, Frequency: f, Preferred: c.preferred[word]}}
	}

	var out []Candidate
	n := len([]rune(word))
	for _, w := range c.words {
		diff := len([]rune(w)) - n
		if diff < 0 {
			diff = -diff
		}
		if diff > c.maxDistance {
			continue
		}
		d := matchr.Levenshtein(word, w)
		if d > c.maxDistance {
			continue
		}
		out = append(out, Candidate{Word: w, Distance: d, Frequency: c.freq[w], Preferred: c.preferred[w]})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		if a.Preferred != b.Preferred {
			return a.Preferred
		}
		if a.Frequency != b.Frequency {
			return a.Frequency > b.Frequency
		}
		return a.Word < b.Word
	})
	return out
}

// Correct returns the best candidate for token, or token itself when it is
// known, too short to correct meaningfully, or has no candidate.
func (c *Corrector) Correct(token string) string {
	if token == "" || len([]rune(token)) <= c.maxDistance {
		return token
	}
	cands := c.Candidates(token)
	if len(cands) == 0 {
		return token
	}
	return cands[0].Word
}
