package config

import (
	"fmt"
	"os"
	"strconv"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/model"
	"github.com/hupe1980/tripmesh/model/anthropic"
	"github.com/hupe1980/tripmesh/model/openai"
	"github.com/hupe1980/tripmesh/search"
)

// Supported model providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config holds everything needed to assemble a workflow: which model
// provider to use, the credentials for it and the search provider, plus
// logging and search tuning.
type Config struct {
	// Provider selects the reasoning backend: "openai" or "anthropic".
	Provider string `yaml:"provider"`
	// ModelName overrides the provider's default model.
	ModelName string `yaml:"model"`

	OpenAIAPIKey    string `yaml:"openai_api_key"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	TavilyAPIKey    string `yaml:"tavily_api_key"`

	// SearchDepth is passed to the search provider ("basic" or "advanced").
	SearchDepth string `yaml:"search_depth"`
	// MaxSearchResults caps per-query results for the search agent.
	MaxSearchResults int `yaml:"max_search_results"`
	// CacheSearchResults enables the in-process search result cache.
	CacheSearchResults bool `yaml:"cache_search_results"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// LogFormat is "text" or "json".
	LogFormat string `yaml:"log_format"`
}

// Default returns a config with every tunable at its default; credentials
// stay empty.
func Default() *Config {
	return &Config{
		Provider:    ProviderOpenAI,
		SearchDepth: "basic",
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// FromEnv builds a config from environment variables on top of defaults.
func FromEnv() *Config {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

// Load reads a YAML config file and then applies environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Provider = envOr("TRIPMESH_PROVIDER", c.Provider)
	c.ModelName = envOr("TRIPMESH_MODEL", c.ModelName)
	c.OpenAIAPIKey = envOr("OPENAI_API_KEY", c.OpenAIAPIKey)
	c.AnthropicAPIKey = envOr("ANTHROPIC_API_KEY", c.AnthropicAPIKey)
	c.TavilyAPIKey = envOr("TAVILY_API_KEY", c.TavilyAPIKey)
	c.SearchDepth = envOr("TRIPMESH_SEARCH_DEPTH", c.SearchDepth)
	c.MaxSearchResults = envIntOr("TRIPMESH_MAX_SEARCH_RESULTS", c.MaxSearchResults)
	c.CacheSearchResults = envBoolOr("TRIPMESH_CACHE_SEARCH", c.CacheSearchResults)
	c.LogLevel = envOr("TRIPMESH_LOG_LEVEL", c.LogLevel)
	c.LogFormat = envOr("TRIPMESH_LOG_FORMAT", c.LogFormat)
}

// Validate checks that the selected provider has its credential and that the
// search provider can be built.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("provider %q requires OPENAI_API_KEY", c.Provider)
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("provider %q requires ANTHROPIC_API_KEY", c.Provider)
		}
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if c.TavilyAPIKey == "" {
		return fmt.Errorf("TAVILY_API_KEY is required for web search")
	}
	return nil
}

// NewModel builds the reasoning model the config selects.
func (c *Config) NewModel() (model.Model, error) {
	switch c.Provider {
	case ProviderOpenAI:
		return openai.NewModel(func(o *openai.Options) {
			o.APIKey = c.OpenAIAPIKey
			if c.ModelName != "" {
				o.Model = c.ModelName
			}
		}), nil
	case ProviderAnthropic:
		return anthropic.NewModel(func(o *anthropic.Options) {
			o.APIKey = c.AnthropicAPIKey
			if c.ModelName != "" {
				o.Model = anthropicsdk.Model(c.ModelName)
			}
		}), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", c.Provider)
	}
}

// NewSearchProvider builds the web-search provider, optionally wrapped in
// the result cache.
func (c *Config) NewSearchProvider() (core.SearchProvider, error) {
	if c.TavilyAPIKey == "" {
		return nil, fmt.Errorf("TAVILY_API_KEY is required for web search")
	}
	var provider core.SearchProvider = search.NewTavily(c.TavilyAPIKey, c.SearchDepth)
	if c.CacheSearchResults {
		provider = search.NewCache(provider)
	}
	return provider, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envBoolOr(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
