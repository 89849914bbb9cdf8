package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/verdict/internal/model"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"OPENAI_API_KEY", "OPENAI_BASE_URL", "ANTHROPIC_API_KEY", "OLLAMA_BASE_URL"} {
		t.Setenv(key, "")
	}
}

func TestConfigure_DefaultsOnly(t *testing.T) {
	isolateEnv(t)

	v := viper.New()
	used, err := configure(v, "")
	require.NoError(t, err)
	assert.Empty(t, used)

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), cfg)
}

func TestConfigure_FileAndEnvironment(t *testing.T) {
	isolateEnv(t)
	t.Setenv("VERDICT_CONCURRENCY_WORKERS", "9")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	path := filepath.Join(t.TempDir(), "verdict.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
annotators:
  call_timeout: 5s
  prose:
    enabled: true
`), 0o600))

	v := viper.New()
	used, err := configure(v, path)
	require.NoError(t, err)
	assert.Equal(t, path, used)

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.True(t, cfg.Annotators.Prose.Enabled)
	assert.False(t, cfg.Annotators.OpenAI.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Annotators.CallTimeout)
	assert.Equal(t, 9, cfg.Concurrency.Workers)
	assert.Equal(t, "sk-test", cfg.Annotators.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.Annotators.OpenAI.Model)
}

func TestConfigure_MissingExplicitFile(t *testing.T) {
	v := viper.New()
	_, err := configure(v, filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestWriteDefaultConfig(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, writeDefaultConfig(path))
	assert.Error(t, writeDefaultConfig(path), "existing config must not be overwritten")

	v := viper.New()
	_, err := configure(v, path)
	require.NoError(t, err)
	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), cfg)
}

func TestMaskSecrets(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Annotators.Anthropic.APIKey = "sk-ant-secret"

	masked := maskSecrets(cfg)
	assert.Equal(t, redactedSecret, masked.Annotators.Anthropic.APIKey)
	assert.Empty(t, masked.Annotators.OpenAI.APIKey)
	assert.Equal(t, "sk-ant-secret", cfg.Annotators.Anthropic.APIKey, "original must be untouched")
}

func TestVersionCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "verdict dev\n", out.String())
}

func TestWriteOutput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, writeOutput(path, func(w io.Writer) error {
		_, err := w.Write([]byte("ok"))
		return err
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
}
