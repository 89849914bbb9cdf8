package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/verdict/internal/model"
)

func TestAnnotatorOrder(t *testing.T) {
	assert.Equal(t,
		[]string{"ollama", "prose", "openai", "anthropic"},
		AnnotatorOrder([]string{"ollama", "spacy", "ollama", "prose"}))
	assert.Equal(t, knownAnnotators, AnnotatorOrder(nil))
}

func TestBuildRegistry_DefaultsEnableNothing(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false

	registry, err := BuildRegistry(cfg, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, registry.Enabled())

	// prose and ollama need no credentials and stay toggleable
	assert.True(t, registry.SetEnabled(AnnotatorOllama, true))
	assert.True(t, registry.SetEnabled(AnnotatorProse, true))
	assert.False(t, registry.SetEnabled(AnnotatorOpenAI, true))
	assert.Equal(t, []string{AnnotatorProse, AnnotatorOllama}, registry.Enabled())
}

func TestBuildRegistry_EnabledWithoutCredentials(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.Annotators.OpenAI.Enabled = true

	_, err := BuildRegistry(cfg, nil, nil)
	assert.Error(t, err)
}

func TestBuildRegistry_OrderAndCache(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Cache.Dir = t.TempDir()
	cfg.Annotators.Order = []string{"ollama", "prose"}
	cfg.Annotators.Ollama.Enabled = true
	cfg.Annotators.Anthropic.Enabled = true
	cfg.Annotators.Anthropic.APIKey = "test-key"

	registry, err := BuildRegistry(cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{AnnotatorOllama, AnnotatorAnthropic}, registry.Enabled())
}

