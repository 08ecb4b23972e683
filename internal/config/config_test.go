package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tripwing/tripwing/internal/llm"
)

func TestLoadLLMConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := LoadLLMConfig()
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderOpenAI, cfg.Provider)
	assert.Equal(t, llm.DefaultOpenAIModel, cfg.Model)
	assert.Equal(t, llm.DefaultOpenAIEmbeddingModel, cfg.EmbeddingModel)
	assert.Empty(t, cfg.APIKey)
}

func TestLoadLLMConfigOllamaDefaults(t *testing.T) {
	viper.Reset()
	viper.Set("llm.provider", llm.ProviderOllama)

	cfg, err := LoadLLMConfig()
	require.NoError(t, err)
	assert.Equal(t, llm.DefaultOllamaURL, cfg.BaseURL)
	assert.Equal(t, llm.DefaultOllamaModel, cfg.Model)
	assert.Equal(t, llm.DefaultOllamaEmbeddingModel, cfg.EmbeddingModel)
}

func TestLoadLLMConfigRejectsUnknownProvider(t *testing.T) {
	viper.Reset()
	viper.Set("llm.provider", "parrot")

	_, err := LoadLLMConfig()
	require.Error(t, err)
}

func TestResolveAPIKeyPrecedence(t *testing.T) {
	viper.Reset()
	t.Setenv("OPENAI_API_KEY", "env-key")

	assert.Equal(t, "env-key", ResolveAPIKey(llm.ProviderOpenAI))

	viper.Set("llm.apiKeys.openai", "config-key")
	assert.Equal(t, "config-key", ResolveAPIKey(llm.ProviderOpenAI),
		"explicit config beats env")
}

func TestLoadCloudConfig(t *testing.T) {
	viper.Reset()
	t.Setenv("TRIPWING_CLOUD_API_KEY", "env-cloud-key")
	viper.Set("cloud.baseURL", "https://plans.example.com")

	cfg := LoadCloudConfig()
	assert.Equal(t, "https://plans.example.com", cfg.BaseURL)
	assert.Equal(t, "env-cloud-key", cfg.APIKey)

	viper.Set("cloud.apiKey", "config-cloud-key")
	assert.Equal(t, "config-cloud-key", LoadCloudConfig().APIKey)
}

func TestSaveGlobalLLMConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	orig := GetGlobalConfigDir
	GetGlobalConfigDir = func() (string, error) { return dir, nil }
	defer func() { GetGlobalConfigDir = orig }()

	require.NoError(t, SaveGlobalLLMConfig("ollama", "", ""))

	raw, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(raw, &doc))
	llmSection := doc["llm"].(map[string]any)
	assert.Equal(t, "ollama", llmSection["provider"])
	assert.Equal(t, llm.DefaultOllamaModel, llmSection["model"])
	_, hasKeys := llmSection["apiKeys"]
	assert.False(t, hasKeys, "no apiKeys section without a key")
}

func TestSaveGlobalLLMConfigPreservesOtherSettings(t *testing.T) {
	dir := t.TempDir()
	orig := GetGlobalConfigDir
	GetGlobalConfigDir = func() (string, error) { return dir, nil }
	defer func() { GetGlobalConfigDir = orig }()

	existing := "data:\n  path: /tmp/trips\nllm:\n  provider: openai\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(existing), 0o600))

	require.NoError(t, SaveGlobalLLMConfig("anthropic", "claude-3-5-haiku-latest", "sk-test"))

	raw, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(raw, &doc))

	dataSection := doc["data"].(map[string]any)
	assert.Equal(t, "/tmp/trips", dataSection["path"])
	llmSection := doc["llm"].(map[string]any)
	assert.Equal(t, "anthropic", llmSection["provider"])
	apiKeys := llmSection["apiKeys"].(map[string]any)
	assert.Equal(t, "sk-test", apiKeys["anthropic"])
}

func TestGetDataBasePathPrecedence(t *testing.T) {
	viper.Reset()
	t.Setenv("XDG_DATA_HOME", "")

	viper.Set("data.path", "/custom/data")
	assert.Equal(t, "/custom/data", GetDataBasePath())

	viper.Reset()
	t.Setenv("XDG_DATA_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "tripwing"), GetDataBasePath())

	t.Setenv("XDG_DATA_HOME", "")
	orig := GetGlobalConfigDir
	GetGlobalConfigDir = func() (string, error) { return "/home/u/.tripwing", nil }
	defer func() { GetGlobalConfigDir = orig }()
	assert.Equal(t, filepath.Join("/home/u/.tripwing", "data"), GetDataBasePath())
	assert.Equal(t, filepath.Join("/home/u/.tripwing", "data", "trips"), GetTripsPath())
}
