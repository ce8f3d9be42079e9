package nlu

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"weatherbot/internal/textnorm"
)

// Thesaurus supplies synonyms used to widen an intent's seed keywords.
type Thesaurus interface {
	Synonyms(ctx context.Context, word string) ([]string, error)
}

// Normalize lowercases s, strips ASCII punctuation and trims it. It is the
// form every vocabulary term and corrected token is compared in.
func Normalize(s string) string {
	return textnorm.Normalize(s)
}

// Vocabulary is the sorted, de-duplicated set of trigger terms of one intent.
type Vocabulary []string

// Contains reports whether term is in the vocabulary.
func (v Vocabulary) Contains(term string) bool {
	i := sort.SearchStrings(v, term)
	return i < len(v) && v[i] == term
}

// Expand builds the vocabulary of one intent: the normalized seeds, the
// synonyms of every seed and the synonyms of the intent name itself. A nil
// thesaurus yields just the normalized seeds. Lookup failures are logged and
// treated as "no synonyms".
func Expand(ctx context.Context, th Thesaurus, name string, seeds []string, log zerolog.Logger) Vocabulary {
	set := make(map[string]struct{}, len(seeds)*4)
	add := func(term string) {
		term = strings.Join(strings.Fields(textnorm.Normalize(term)), " ")
		if term != "" {
			set[term] = struct{}{}
		}
	}
	lookup := func(word string) {
		if th == nil {
			return
		}
		syns, err := th.Synonyms(ctx, word)
		if err != nil {
			log.Warn().Err(err).Str("word", word).Msg("synonym lookup failed")
			return
		}
		for _, s := range syns {
			add(s)
		}
	}

	lookup(name)
	for _, seed := range seeds {
		lookup(seed)
		add(seed)
	}

	out := make(Vocabulary, 0, len(set))
	for term := range set {
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}
