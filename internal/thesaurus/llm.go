package thesaurus

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

const synonymPrompt = `List up to %d common English synonyms or short phrases a person would use instead of %q in a casual chat message.
Answer with a single comma-separated line and nothing else.`

// LLM asks a language model for synonyms. Answers are memoized per word for
// the lifetime of the value.
type LLM struct {
	model llms.Model
	limit int

	mu    sync.Mutex
	cache map[string][]string
}

// NewLLM wraps model. limit caps the synonyms kept per word (default 5).
func NewLLM(model llms.Model, limit int) *LLM {
	if limit <= 0 {
		limit = 5
	}
	return &LLM{model: model, limit: limit, cache: make(map[string][]string)}
}

// Synonyms queries the model once per word.
func (l *LLM) Synonyms(ctx context.Context, word string) ([]string, error) {
	k := key(word)
	if k == "" {
		return nil, nil
	}

	l.mu.Lock()
	if syns, ok := l.cache[k]; ok {
		l.mu.Unlock()
		return syns, nil
	}
	l.mu.Unlock()

	msgs := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, fmt.Sprintf(synonymPrompt, l.limit, k)),
	}
	resp, err := l.model.GenerateContent(ctx, msgs, llms.WithTemperature(0))
	if err != nil {
		return nil, fmt.Errorf("thesaurus: synonyms of %q: %w", k, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("thesaurus: synonyms of %q: empty response from model", k)
	}

	syns := parseList(resp.Choices[0].Content, k, l.limit)

	l.mu.Lock()
	l.cache[k] = syns
	l.mu.Unlock()
	return syns, nil
}

// parseList splits a model answer on commas and newlines, dropping list
// markers, quotes, the word itself and repeats.
func parseList(answer, word string, limit int) []string {
	fields := strings.FieldsFunc(answer, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})

	seen := map[string]bool{word: true}
	var out []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		f = strings.TrimLeft(f, "-*0123456789. ")
		f = key(f)
		if f == "" || seen[f] || len(strings.Fields(f)) > 3 {
			continue
		}
		seen[f] = true
		out = append(out, f)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Source is anything that can answer a synonym lookup.
type Source interface {
	Synonyms(ctx context.Context, word string) ([]string, error)
}

// Merged unions the answers of several sources. It fails only when every
// source fails.
type Merged []Source

// Synonyms returns the concatenated, de-duplicated answers in source order.
func (m Merged) Synonyms(ctx context.Context, word string) ([]string, error) {
	var (
		out  []string
		errs []error
		seen = map[string]bool{}
	)
	for _, src := range m {
		syns, err := src.Synonyms(ctx, word)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, s := range syns {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	if len(errs) == len(m) && len(m) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}
