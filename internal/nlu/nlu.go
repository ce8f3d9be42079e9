package nlu

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"weatherbot/internal/textnorm"
)

// Speller corrects a single normalized token.
type Speller interface {
	Correct(token string) string
}

// SpellerFactory builds a Speller once the expanded vocabulary is known, so
// the speller can treat trigger terms as known words.
type SpellerFactory func(terms []string) Speller

type identitySpeller struct{}

func (identitySpeller) Correct(token string) string { return token }

// Engine classifies utterances against an ordered intent table. It is
// immutable after NewEngine returns and safe for concurrent use.
type Engine struct {
	matchers []*intentMatcher
	replies  map[Intent][]string
	speller  Speller
}

// intentMatcher holds the compiled logic for one intent's vocabulary.
type intentMatcher struct {
	intent Intent
	vocab  Vocabulary
	regex  *regexp.Regexp
}

type engineConfig struct {
	thesaurus Thesaurus
	speller   SpellerFactory
	log       zerolog.Logger
}

// Option configures NewEngine.
type Option func(*engineConfig)

// WithThesaurus sets the synonym source used to expand seed keywords.
func WithThesaurus(t Thesaurus) Option {
	return func(c *engineConfig) { c.thesaurus = t }
}

// WithSpeller sets the factory for the token corrector applied before
// matching. Without it tokens are matched as typed.
func WithSpeller(f SpellerFactory) Option {
	return func(c *engineConfig) { c.speller = f }
}

// WithLogger sets the logger used while building vocabularies.
func WithLogger(l zerolog.Logger) Option {
	return func(c *engineConfig) { c.log = l }
}

// NewEngine expands and compiles every intent of table. Table order is kept
// as match priority.
func NewEngine(ctx context.Context, table []Entry, opts ...Option) (*Engine, error) {
	cfg := engineConfig{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := validateTable(table); err != nil {
		return nil, fmt.Errorf("nlu: %w", err)
	}

	e := &Engine{
		matchers: make([]*intentMatcher, 0, len(table)),
		replies:  make(map[Intent][]string, len(table)),
	}

	var terms []string
	for _, entry := range table {
		if len(entry.Replies) > 0 {
			e.replies[entry.Intent] = append([]string(nil), entry.Replies...)
		}
		if entry.Intent == Unknown {
			continue
		}

		vocab := Expand(ctx, cfg.thesaurus, entry.Intent.String(), entry.Seeds, cfg.log)
		re, err := compilePattern(vocab)
		if err != nil {
			return nil, fmt.Errorf("nlu: compiling %s: %w", entry.Intent, err)
		}
		e.matchers = append(e.matchers, &intentMatcher{
			intent: entry.Intent,
			vocab:  vocab,
			regex:  re,
		})
		terms = append(terms, vocab...)

		cfg.log.Debug().
			Str("intent", entry.Intent.String()).
			Int("terms", len(vocab)).
			Msg("intent compiled")
	}

	e.speller = identitySpeller{}
	if cfg.speller != nil {
		e.speller = cfg.speller(terms)
	}
	return e, nil
}

// Correct normalizes the utterance, spell-corrects every token on its own
// and joins the result with single spaces.
func (e *Engine) Correct(utterance string) string {
	words := strings.Fields(utterance)
	corrected := make([]string, 0, len(words))
	for _, w := range words {
		w = textnorm.Normalize(w)
		if w == "" {
			continue
		}
		corrected = append(corrected, e.speller.Correct(w))
	}
	return strings.Join(corrected, " ")
}

// Match returns the first intent, in table order, whose vocabulary occurs in
// the corrected utterance, or Unknown when none does.
func (e *Engine) Match(utterance string) Intent {
	return e.MatchCorrected(e.Correct(utterance))
}

// MatchCorrected is Match for text that has already gone through Correct.
func (e *Engine) MatchCorrected(corrected string) Intent {
	for _, m := range e.matchers {
		if m.regex.MatchString(corrected) {
			return m.intent
		}
	}
	return Unknown
}

// Replies returns the canned replies of an intent, falling back to the
// replies of Unknown.
func (e *Engine) Replies(i Intent) []string {
	if r, ok := e.replies[i]; ok {
		return r
	}
	return e.replies[Unknown]
}

// Vocabulary returns the expanded vocabulary of an intent.
func (e *Engine) Vocabulary(i Intent) Vocabulary {
	for _, m := range e.matchers {
		if m.intent == i {
			return m.vocab
		}
	}
	return nil
}

// Intents lists the matchable intents in priority order.
func (e *Engine) Intents() []Intent {
	out := make([]Intent, 0, len(e.matchers))
	for _, m := range e.matchers {
		out = append(out, m.intent)
	}
	return out
}
