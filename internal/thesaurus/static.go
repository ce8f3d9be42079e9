// Package thesaurus provides synonym sources for widening intent
// vocabularies: a curated static table and an LLM-backed lookup.
package thesaurus

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"weatherbot/internal/textnorm"
)

//go:embed synonyms.yaml
var defaultSynonyms []byte

// Static answers lookups from a fixed word -> synonyms table.
type Static struct {
	table map[string][]string
}

// NewStatic parses a YAML mapping of word to synonym list.
func NewStatic(data []byte) (*Static, error) {
	raw := map[string][]string{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("thesaurus: parsing synonyms: %w", err)
	}

	s := &Static{table: make(map[string][]string, len(raw))}
	for word, syns := range raw {
		key := key(word)
		if key == "" {
			continue
		}
		s.table[key] = append(s.table[key], syns...)
	}
	return s, nil
}

// Default returns the embedded curated table.
func Default() (*Static, error) {
	return NewStatic(defaultSynonyms)
}

// Synonyms returns the listed synonyms of word, or nothing when the word is
// not in the table.
func (s *Static) Synonyms(_ context.Context, word string) ([]string, error) {
	syns := s.table[key(word)]
	if len(syns) == 0 {
		return nil, nil
	}
	return append([]string(nil), syns...), nil
}

func key(word string) string {
	return strings.Join(strings.Fields(textnorm.Normalize(word)), " ")
}
