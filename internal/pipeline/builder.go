package pipeline

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/ppiankov/verdict/internal/cache"
	"github.com/ppiankov/verdict/internal/extract/adapters"
	"github.com/ppiankov/verdict/internal/llm"
	"github.com/ppiankov/verdict/internal/logging"
	"github.com/ppiankov/verdict/internal/metrics"
	"github.com/ppiankov/verdict/internal/model"
)

// Known annotator names
const (
	AnnotatorProse     = "prose"
	AnnotatorOpenAI    = "openai"
	AnnotatorAnthropic = "anthropic"
	AnnotatorOllama    = "ollama"
)

var knownAnnotators = []string{AnnotatorProse, AnnotatorOpenAI, AnnotatorAnthropic, AnnotatorOllama}

// AnnotatorOrder returns the configured priority order followed by any
// known annotator the configuration left out. Unknown names are dropped.
func AnnotatorOrder(order []string) []string {
	out := make([]string, 0, len(knownAnnotators))
	for _, name := range order {
		if slices.Contains(knownAnnotators, name) && !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	for _, name := range knownAnnotators {
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

// BuildRegistry constructs the annotator registry from configuration.
// Disabled annotators are only registered when they can be built without
// credentials, so they stay toggleable at runtime. Enabled annotators that
// cannot be built are a configuration error.
func BuildRegistry(cfg *model.Config, logger *zap.Logger, m *metrics.Metrics) (*adapters.Registry, error) {
	logger = logging.OrNop(logger)
	registry := adapters.NewRegistry(
		adapters.WithCallTimeout(cfg.Annotators.CallTimeout),
		adapters.WithLogger(logger),
		adapters.WithMetrics(m),
	)

	var responses cache.Cache
	if cfg.Cache.Enabled {
		responses = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	for _, name := range AnnotatorOrder(cfg.Annotators.Order) {
		enabled := annotatorEnabled(cfg, name)

		annotator, salt, err := buildAnnotator(cfg, name)
		if err != nil {
			if enabled {
				return nil, fmt.Errorf("annotator %s: %w", name, err)
			}
			logger.Debug("annotator not registered", zap.String("annotator", name), zap.Error(err))
			continue
		}

		if responses != nil && name != AnnotatorProse {
			annotator = adapters.NewCachedAnnotator(annotator, responses, cfg.Cache.DiskTTL, salt)
		}
		registry.Register(annotator, enabled)
	}

	logger.Debug("annotators configured", zap.Strings("enabled", registry.Enabled()))
	return registry, nil
}

func annotatorEnabled(cfg *model.Config, name string) bool {
	switch name {
	case AnnotatorProse:
		return cfg.Annotators.Prose.Enabled
	case AnnotatorOpenAI:
		return cfg.Annotators.OpenAI.Enabled
	case AnnotatorAnthropic:
		return cfg.Annotators.Anthropic.Enabled
	case AnnotatorOllama:
		return cfg.Annotators.Ollama.Enabled
	}
	return false
}

// buildAnnotator returns the annotator and the cache salt that identifies
// its model.
func buildAnnotator(cfg *model.Config, name string) (adapters.Annotator, string, error) {
	var llmCfg model.LLMConfig
	switch name {
	case AnnotatorProse:
		return adapters.NewProseAnnotator(cfg.Annotators.Prose.ModelPath), cfg.Annotators.Prose.ModelPath, nil
	case AnnotatorOpenAI:
		llmCfg = cfg.Annotators.OpenAI
	case AnnotatorAnthropic:
		llmCfg = cfg.Annotators.Anthropic
	case AnnotatorOllama:
		llmCfg = cfg.Annotators.Ollama
	default:
		return nil, "", fmt.Errorf("unknown annotator %q", name)
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(name, llmCfg, cfg.HTTP))
	if err != nil {
		return nil, "", err
	}
	return adapters.NewLLMAnnotator(provider), llmCfg.Model, nil
}
