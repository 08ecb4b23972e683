package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tripwing/tripwing/internal/llm"
)

// SaveGlobalLLMConfig writes the provider, model and API key to the
// global config file, preserving unrelated settings. An empty key is
// allowed for providers that need none.
func SaveGlobalLLMConfig(provider, model, key string) error {
	if provider == "" {
		return fmt.Errorf("provider cannot be empty")
	}
	if model == "" {
		model = llm.DefaultModelForProvider(provider)
	}

	configDir, err := GetGlobalConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	configFile := filepath.Join(configDir, "config.yaml")

	doc := map[string]any{}
	if raw, err := os.ReadFile(configFile); err == nil {
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("parse existing config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	llmSection, _ := doc["llm"].(map[string]any)
	if llmSection == nil {
		llmSection = map[string]any{}
	}
	llmSection["provider"] = provider
	llmSection["model"] = model
	if key != "" {
		apiKeys, _ := llmSection["apiKeys"].(map[string]any)
		if apiKeys == nil {
			apiKeys = map[string]any{}
		}
		apiKeys[provider] = key
		llmSection["apiKeys"] = apiKeys
	}
	doc["llm"] = llmSection

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("serialize config: %w", err)
	}
	// 0600: the file may hold API keys.
	return os.WriteFile(configFile, out, 0o600)
}
