package model

import "time"

// Config is the complete runtime configuration
type Config struct {
	Annotators   AnnotatorsConfig   `yaml:"annotators" mapstructure:"annotators"`
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
	Server       ServerConfig       `yaml:"server" mapstructure:"server"`
}

// AnnotatorsConfig controls the external annotator layer.
// Order is the merge priority; names not listed are appended after it.
type AnnotatorsConfig struct {
	Order       []string      `yaml:"order" mapstructure:"order"`
	InitTimeout time.Duration `yaml:"init_timeout" mapstructure:"init_timeout"`
	CallTimeout time.Duration `yaml:"call_timeout" mapstructure:"call_timeout"`
	Prose       ProseConfig   `yaml:"prose" mapstructure:"prose"`
	OpenAI      LLMConfig     `yaml:"openai" mapstructure:"openai"`
	Anthropic   LLMConfig     `yaml:"anthropic" mapstructure:"anthropic"`
	Ollama      LLMConfig     `yaml:"ollama" mapstructure:"ollama"`
}

// ProseConfig configures the in-process statistical annotator
type ProseConfig struct {
	Enabled   bool   `yaml:"enabled" mapstructure:"enabled"`
	ModelPath string `yaml:"model_path" mapstructure:"model_path"` // Empty uses the bundled model
}

// LLMConfig configures one remote model used as an annotator
type LLMConfig struct {
	Enabled           bool    `yaml:"enabled" mapstructure:"enabled"`
	Model             string  `yaml:"model" mapstructure:"model"`
	APIKey            string  `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL           string  `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout           int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens         int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// HTTPConfig configures outbound fetching of published rulings
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// CacheConfig configures the annotator response cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig sizes the batch worker pool
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig throttles outbound fetches per host
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// OutputConfig controls record rendering
type OutputConfig struct {
	Format  string `yaml:"format" mapstructure:"format"` // json, yaml, xlsx
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// LogConfig controls structured logging
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json, console
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr          string `yaml:"addr" mapstructure:"addr"`
	MaxUploadSize int64  `yaml:"max_upload_size" mapstructure:"max_upload_size"`
}

// DefaultConfig returns the built-in defaults. Every annotator starts disabled.
func DefaultConfig() *Config {
	return &Config{
		Annotators: AnnotatorsConfig{
			Order:       []string{"prose", "openai", "anthropic", "ollama"},
			InitTimeout: 2 * time.Minute,
			CallTimeout: 60 * time.Second,
			OpenAI: LLMConfig{
				Model:             "gpt-4o-mini",
				Timeout:           30,
				MaxTokens:         2000,
				RequestsPerSecond: 2,
			},
			Anthropic: LLMConfig{
				Model:             "claude-3-5-haiku-20241022",
				Timeout:           30,
				MaxTokens:         2000,
				RequestsPerSecond: 2,
			},
			Ollama: LLMConfig{
				Model:             "llama3.1",
				BaseURL:           "http://localhost:11434",
				Timeout:           120,
				MaxTokens:         2000,
				RequestsPerSecond: 1,
			},
		},
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "Verdict/0.1 (+https://github.com/ppiankov/verdict)",
			MaxBodyBytes:  5_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".verdict-cache",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 1,
			BurstSize:         2,
		},
		Output: OutputConfig{
			Format: "json",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Server: ServerConfig{
			Addr:          ":8080",
			MaxUploadSize: 16 << 20,
		},
	}
}
