// Package llm builds langchaingo chat models for the configured provider.
package llm

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

type Provider string

const (
	ProviderOllama    Provider = "ollama"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
)

// ParseProvider accepts a provider name in any case.
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case ProviderOllama, ProviderOpenAI, ProviderAnthropic, ProviderGemini:
		return p, nil
	}
	return "", fmt.Errorf("unsupported provider: %s", s)
}

// New returns a model client for provider. API keys come from the
// environment, the same variables each provider's own SDK reads.
func New(provider Provider, model, baseURL string) (llms.Model, error) {
	switch provider {
	case ProviderOllama:
		return newOllama(model, baseURL)
	case ProviderOpenAI:
		return newOpenAI(model, baseURL)
	case ProviderAnthropic:
		return newAnthropic(model)
	case ProviderGemini:
		return newGemini(model, baseURL)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
