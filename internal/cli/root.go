package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/verdict/internal/model"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=..."
var Version = "dev"

const envPrefix = "VERDICT"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "verdict",
	Short: "Verdict - structured entity extraction from Persian court rulings",
	Long: `Verdict extracts structured legal metadata and sensitive entities from
court-ruling documents: case identifiers, court branch and judges, persons
with their procedural roles, dates, amounts, law citations, places,
addresses and redacted values.

Extraction is deterministic and rule-based. External annotators (an
in-process statistical model or remote language models) can add person
and place mentions under the same merge rules, and are all off by default.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command; commands stop when ctx is cancelled
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "verdict %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.verdict/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (console, json)")
	flags.StringP("format", "f", "", "output format (json, yaml, xlsx)")

	_ = viper.BindPFlag("output.verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", flags.Lookup("log-format"))
	_ = viper.BindPFlag("output.format", flags.Lookup("format"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	used, err := configure(viper.GetViper(), cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		return
	}
	if used != "" && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", used)
	}
}

// configure seeds v with the built-in defaults, merges the config file and
// enables VERDICT_* environment overrides. It returns the file used, if any.
func configure(v *viper.Viper, file string) (string, error) {
	defaults, err := yaml.Marshal(model.DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("marshal defaults: %w", err)
	}
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return "", fmt.Errorf("load defaults: %w", err)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys left out of the defaults by omitempty, plus the providers' usual variables
	_ = v.BindEnv("annotators.openai.api_key", envPrefix+"_ANNOTATORS_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("annotators.openai.base_url", envPrefix+"_ANNOTATORS_OPENAI_BASE_URL", "OPENAI_BASE_URL")
	_ = v.BindEnv("annotators.anthropic.api_key", envPrefix+"_ANNOTATORS_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("annotators.anthropic.base_url", envPrefix+"_ANNOTATORS_ANTHROPIC_BASE_URL")
	_ = v.BindEnv("annotators.ollama.base_url", envPrefix+"_ANNOTATORS_OLLAMA_BASE_URL", "OLLAMA_BASE_URL")
	_ = v.BindEnv("http.http_proxy", envPrefix+"_HTTP_HTTP_PROXY")
	_ = v.BindEnv("http.https_proxy", envPrefix+"_HTTP_HTTPS_PROXY")
	_ = v.BindEnv("http.no_proxy", envPrefix+"_HTTP_NO_PROXY")

	if file != "" {
		v.SetConfigFile(file)
	} else {
		dir, err := configDir()
		if err != nil {
			return "", nil
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
	}

	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", err
	}
	return v.ConfigFileUsed(), nil
}

// loadConfig decodes the effective configuration
func loadConfig(v *viper.Viper) (*model.Config, error) {
	cfg := &model.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".verdict"), nil
}
