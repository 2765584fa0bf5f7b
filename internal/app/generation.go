package app

import (
	"fmt"
	"log/slog"

	"github.com/heartmarshall/flashmind/internal/adapter/provider/anthropic"
	"github.com/heartmarshall/flashmind/internal/adapter/provider/openai"
	"github.com/heartmarshall/flashmind/internal/config"
	"github.com/heartmarshall/flashmind/internal/service/generate"
)

// NewCompleter returns the model client for the configured provider, or nil
// when generation is disabled.
func NewCompleter(cfg config.GenerationConfig, logger *slog.Logger) (generate.Completer, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	switch cfg.Provider {
	case config.ProviderAnthropic:
		return anthropic.NewClient(anthropic.Config{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			MaxTokens:  cfg.MaxTokens,
			BaseURL:    cfg.BaseURL,
			MaxRetries: cfg.MaxRetries,
		}, logger), nil
	case config.ProviderOpenAI:
		return openai.NewClient(openai.Config{
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
			BaseURL:   cfg.BaseURL,
		}, logger), nil
	default:
		return nil, fmt.Errorf("unknown generation provider %q", cfg.Provider)
	}
}
