package llm

import (
	"fmt"
	"strings"

	"github.com/ppiankov/verdict/internal/model"
)

// NewProvider creates a new LLM provider based on configuration. When
// RequestsPerSecond is set the provider is wrapped in a throttle.
func NewProvider(config Config) (Provider, error) {
	var (
		provider Provider
		err      error
	)

	switch strings.ToLower(config.Provider) {
	case "openai":
		provider, err = NewOpenAIProvider(config)
	case "anthropic", "claude":
		provider, err = NewAnthropicProvider(config)
	case "ollama":
		provider, err = NewOllamaProvider(config)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
	if err != nil {
		return nil, err
	}

	if config.RequestsPerSecond > 0 {
		provider = NewThrottled(provider, config.RequestsPerSecond)
	}
	return provider, nil
}

// ConfigFromModel converts one annotator's model.LLMConfig to llm.Config,
// taking proxy settings from the HTTP section.
func ConfigFromModel(name string, m model.LLMConfig, h model.HTTPConfig) Config {
	return Config{
		Provider:          name,
		Model:             m.Model,
		APIKey:            m.APIKey,
		BaseURL:           m.BaseURL,
		Timeout:           m.Timeout,
		MaxTokens:         m.MaxTokens,
		RequestsPerSecond: m.RequestsPerSecond,
		HTTPProxy:         h.HTTPProxy,
		HTTPSProxy:        h.HTTPSProxy,
		NoProxy:           h.NoProxy,
	}
}
