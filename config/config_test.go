package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("TRIPMESH_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("TAVILY_API_KEY", "tvly-test")
	t.Setenv("TRIPMESH_MAX_SEARCH_RESULTS", "7")
	t.Setenv("TRIPMESH_CACHE_SEARCH", "true")

	cfg := FromEnv()

	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "sk-ant-test", cfg.AnthropicAPIKey)
	assert.Equal(t, "tvly-test", cfg.TavilyAPIKey)
	assert.Equal(t, 7, cfg.MaxSearchResults)
	assert.True(t, cfg.CacheSearchResults)
	// Defaults survive when unset.
	assert.Equal(t, "basic", cfg.SearchDepth)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tripmesh.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
provider: openai
model: gpt-4o
tavily_api_key: tvly-from-file
search_depth: advanced
max_search_results: 3
`), 0o644))

	t.Setenv("TAVILY_API_KEY", "tvly-from-env")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("TRIPMESH_PROVIDER", "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "gpt-4o", cfg.ModelName)
	assert.Equal(t, "advanced", cfg.SearchDepth)
	assert.Equal(t, 3, cfg.MaxSearchResults)
	// Environment wins over the file.
	assert.Equal(t, "tvly-from-env", cfg.TavilyAPIKey)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "openai ok",
			cfg:  Config{Provider: ProviderOpenAI, OpenAIAPIKey: "sk", TavilyAPIKey: "tvly"},
		},
		{
			name: "anthropic ok",
			cfg:  Config{Provider: ProviderAnthropic, AnthropicAPIKey: "sk-ant", TavilyAPIKey: "tvly"},
		},
		{
			name:    "missing openai key",
			cfg:     Config{Provider: ProviderOpenAI, TavilyAPIKey: "tvly"},
			wantErr: "OPENAI_API_KEY",
		},
		{
			name:    "missing anthropic key",
			cfg:     Config{Provider: ProviderAnthropic, TavilyAPIKey: "tvly"},
			wantErr: "ANTHROPIC_API_KEY",
		},
		{
			name:    "missing tavily key",
			cfg:     Config{Provider: ProviderOpenAI, OpenAIAPIKey: "sk"},
			wantErr: "TAVILY_API_KEY",
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "bedrock"},
			wantErr: "unknown provider",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestNewModelSelectsProvider(t *testing.T) {
	openaiCfg := Config{Provider: ProviderOpenAI, OpenAIAPIKey: "sk", ModelName: "gpt-4o"}
	m, err := openaiCfg.NewModel()
	require.NoError(t, err)
	assert.Equal(t, "openai", m.Info().Provider)
	assert.Equal(t, "gpt-4o", m.Info().Name)

	anthropicCfg := Config{Provider: ProviderAnthropic, AnthropicAPIKey: "sk-ant"}
	m, err = anthropicCfg.NewModel()
	require.NoError(t, err)
	assert.Equal(t, "anthropic", m.Info().Provider)

	_, err = (&Config{Provider: "bedrock"}).NewModel()
	assert.Error(t, err)
}

func TestNewSearchProvider(t *testing.T) {
	cfg := Config{TavilyAPIKey: "tvly", SearchDepth: "basic"}
	p, err := cfg.NewSearchProvider()
	require.NoError(t, err)
	assert.Equal(t, "tavily", p.Name())

	cached := Config{TavilyAPIKey: "tvly", CacheSearchResults: true}
	p, err = cached.NewSearchProvider()
	require.NoError(t, err)
	assert.Equal(t, "tavily", p.Name())

	_, err = (&Config{}).NewSearchProvider()
	assert.Error(t, err)
}
