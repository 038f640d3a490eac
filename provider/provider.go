package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/quaero-ai/quaero/config"
	"github.com/quaero-ai/quaero/models"
	openai_provider "github.com/quaero-ai/quaero/provider/openai"
	static_provider "github.com/quaero-ai/quaero/provider/static"
)

// ErrGenerationUnavailable signals that a provider cannot generate answers;
// the synthesizer falls back to its deterministic template.
var ErrGenerationUnavailable = static_provider.ErrUnavailable

// Provider is one embedding/generation capability backend. Embed must be
// pure for a given input within a process run; GenerateAnswer may return
// ErrGenerationUnavailable.
type Provider interface {
	Name() string
	Embed(ctx context.Context, text string) (models.Vector, error)
	GenerateAnswer(ctx context.Context, query string, contextChunks []string) (string, error)
}

// New builds the configured backend set: an OpenAI provider when an API key
// is set, plus the requested number of deterministic static backends.
func New(cfg config.ProvidersConfig) ([]Provider, error) {
	var providers []Provider
	if cfg.OpenAI.APIKey != "" {
		providers = append(providers, openai_provider.NewClient(
			cfg.OpenAI.APIKey,
			cfg.OpenAI.CompletionModel,
			cfg.OpenAI.EmbeddingModel,
			cfg.OpenAI.Temperature,
			cfg.OpenAI.MaxTokens,
			cfg.OpenAI.Timeout,
		))
	}
	for i := 0; i < cfg.Static.Backends; i++ {
		providers = append(providers, static_provider.New(fmt.Sprintf("static-%d", i), cfg.Static.Dimensions))
	}
	if len(providers) == 0 {
		return nil, errors.New("no embedding backends configured")
	}
	return providers, nil
}
