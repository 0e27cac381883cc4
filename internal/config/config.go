// Package config loads scout's runtime configuration.
//
// Values come from, in increasing precedence: built-in defaults, an optional
// YAML file, environment variables (a .env file is loaded first if present),
// and finally command-line flags applied by the caller. API keys are read from
// the environment only.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	ai "github.com/spetersoncode/scout"
	"github.com/spetersoncode/scout/agent"
	"github.com/spetersoncode/scout/internal/telemetry"
	"github.com/spetersoncode/scout/tool"
	"gopkg.in/yaml.v3"
)

// Trace exporters.
const (
	TraceNone   = telemetry.ExporterNone
	TraceStdout = telemetry.ExporterStdout
)

// Config holds the agent configuration.
type Config struct {
	Provider      string  `yaml:"provider"`
	Model         string  `yaml:"model"`
	Temperature   float64 `yaml:"temperature"`
	MaxTokens     int     `yaml:"max_tokens"`
	MaxIterations int     `yaml:"max_iterations"`
	// Instructions replaces the default system instructions when set.
	Instructions string `yaml:"instructions"`
	// Concurrency bounds how many questions run at once.
	Concurrency int `yaml:"concurrency"`

	Search SearchConfig `yaml:"search"`

	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text, json
	Trace     string `yaml:"trace"`      // none, stdout

	// API keys
	AnthropicKey string `yaml:"-"`
	OpenAIKey    string `yaml:"-"`
	GoogleKey    string `yaml:"-"`
	TavilyKey    string `yaml:"-"`
}

// SearchConfig configures the web search tool.
type SearchConfig struct {
	MaxResults    int           `yaml:"max_results"`
	Depth         string        `yaml:"depth"`
	IncludeAnswer bool          `yaml:"include_answer"`
	Timeout       time.Duration `yaml:"timeout"`
	CacheSize     int           `yaml:"cache_size"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`
	RatePerSecond float64       `yaml:"rate_per_second"`
	Burst         int           `yaml:"burst"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Provider:      string(ai.ProviderOpenAI),
		Temperature:   0,
		MaxIterations: agent.DefaultMaxIterations,
		Concurrency:   1,
		Search: SearchConfig{
			MaxResults:    3,
			Depth:         tool.SearchDepthAdvanced,
			IncludeAnswer: true,
			Timeout:       30 * time.Second,
			CacheSize:     128,
			CacheTTL:      15 * time.Minute,
			RatePerSecond: 2,
			Burst:         2,
		},
		LogLevel:  "info",
		LogFormat: "text",
		Trace:     TraceNone,
	}
}

// Load builds a configuration from defaults, the YAML file at path (skipped
// when path is empty) and the environment. It does not validate; callers
// apply flag overrides and then call Validate.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // Load .env file if present

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Provider = getEnvOrDefault("SCOUT_PROVIDER", c.Provider)
	c.Model = getEnvOrDefault("SCOUT_MODEL", c.Model)
	c.Temperature = getEnvFloatOrDefault("SCOUT_TEMPERATURE", c.Temperature)
	c.MaxTokens = getEnvIntOrDefault("SCOUT_MAX_TOKENS", c.MaxTokens)
	c.MaxIterations = getEnvIntOrDefault("SCOUT_MAX_ITERATIONS", c.MaxIterations)
	c.Concurrency = getEnvIntOrDefault("SCOUT_CONCURRENCY", c.Concurrency)
	c.Instructions = getEnvOrDefault("SCOUT_INSTRUCTIONS", c.Instructions)
	c.Search.Depth = getEnvOrDefault("SCOUT_SEARCH_DEPTH", c.Search.Depth)
	c.Search.Timeout = getEnvDurationOrDefault("SCOUT_SEARCH_TIMEOUT", c.Search.Timeout)
	c.LogLevel = getEnvOrDefault("SCOUT_LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnvOrDefault("SCOUT_LOG_FORMAT", c.LogFormat)
	c.Trace = getEnvOrDefault("SCOUT_TRACE", c.Trace)

	c.AnthropicKey = os.Getenv("ANTHROPIC_API_KEY")
	c.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	c.GoogleKey = os.Getenv("GOOGLE_API_KEY")
	c.TavilyKey = os.Getenv("TAVILY_API_KEY")
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error

	p, ok := ai.ParseProvider(strings.ToLower(c.Provider))
	switch {
	case !ok:
		errs = append(errs, fmt.Errorf("unknown provider: %q (must be anthropic, openai, or google)", c.Provider))
	case p == ai.ProviderAnthropic && c.AnthropicKey == "":
		errs = append(errs, errors.New("ANTHROPIC_API_KEY is required for anthropic provider"))
	case p == ai.ProviderOpenAI && c.OpenAIKey == "":
		errs = append(errs, errors.New("OPENAI_API_KEY is required for openai provider"))
	case p == ai.ProviderGoogle && c.GoogleKey == "":
		errs = append(errs, errors.New("GOOGLE_API_KEY is required for google provider"))
	}

	if c.MaxIterations < 1 {
		errs = append(errs, fmt.Errorf("max_iterations must be at least 1, got %d", c.MaxIterations))
	}
	if c.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency))
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		errs = append(errs, fmt.Errorf("temperature must be between 0 and 2, got %g", c.Temperature))
	}
	if c.MaxTokens < 0 {
		errs = append(errs, fmt.Errorf("max_tokens must not be negative, got %d", c.MaxTokens))
	}

	if d := c.Search.Depth; d != tool.SearchDepthBasic && d != tool.SearchDepthAdvanced {
		errs = append(errs, fmt.Errorf("search.depth must be %s or %s, got %q", tool.SearchDepthBasic, tool.SearchDepthAdvanced, d))
	}
	if c.Search.MaxResults < 1 {
		errs = append(errs, fmt.Errorf("search.max_results must be at least 1, got %d", c.Search.MaxResults))
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}
	if c.Trace != TraceNone && c.Trace != TraceStdout {
		errs = append(errs, fmt.Errorf("trace must be %s or %s, got %q", TraceNone, TraceStdout, c.Trace))
	}

	return errors.Join(errs...)
}

// ProviderName returns the normalized provider.
func (c *Config) ProviderName() ai.Provider {
	p, _ := ai.ParseProvider(strings.ToLower(c.Provider))
	return p
}

// SlogLevel returns the configured log level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log_level must be debug, info, warn, or error, got %q", s)
	}
	return level, nil
}

// SearchOptions converts the search section into tool options.
func (c *Config) SearchOptions() []tool.SearchToolOption {
	return []tool.SearchToolOption{
		tool.WithMaxResults(c.Search.MaxResults),
		tool.WithSearchDepth(c.Search.Depth),
		tool.WithIncludeAnswer(c.Search.IncludeAnswer),
		tool.WithSearchTimeout(c.Search.Timeout),
		tool.WithSearchCache(c.Search.CacheSize, c.Search.CacheTTL),
		tool.WithRateLimit(c.Search.RatePerSecond, c.Search.Burst),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
