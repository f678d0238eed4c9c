package model

import (
	"runtime"
	"time"
)

// Config is the complete blueprint CLI configuration
type Config struct {
	Prompt      PromptConfig      `yaml:"prompt" mapstructure:"prompt"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
}

// PromptConfig controls prompt assembly
type PromptConfig struct {
	Tone               string   `yaml:"tone" mapstructure:"tone"`
	SystemInstructions []string `yaml:"system_instructions" mapstructure:"system_instructions"`
}

// OutputConfig controls how payloads are rendered
type OutputConfig struct {
	Format  string `yaml:"format" mapstructure:"format"` // json, markdown, openai
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// ConcurrencyConfig controls batch parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// CacheConfig controls the fingerprint cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
	Dir     string        `yaml:"dir" mapstructure:"dir"` // Optional on-disk layer, shared across runs
}

// LogConfig controls structured logging
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // console, json
}

// LLMConfig shapes the exported chat completion request. Nothing is sent.
type LLMConfig struct {
	Model       string  `yaml:"model" mapstructure:"model"`
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float32 `yaml:"temperature" mapstructure:"temperature"`
}

// DefaultTone is used when no tone is configured
const DefaultTone = "supportive and practical"

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Prompt: PromptConfig{
			Tone: DefaultTone,
		},
		Output: OutputConfig{
			Format: "json",
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Hour,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			MaxTokens:   1500,
			Temperature: 0.4,
		},
	}
}
