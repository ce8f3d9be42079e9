package llm

import (
	"context"
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

func newGemini(model, baseURL string) (llms.Model, error) {
	if model == "" {
		model = googleai.DefaultOptions().DefaultModel
	}

	opts := []googleai.Option{
		googleai.WithDefaultModel(model),
	}
	if baseURL != "" {
		opts = append(opts, googleai.WithRest())
	}
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		opts = append(opts, googleai.WithAPIKey(key))
	}
	return googleai.New(context.Background(), opts...)
}
