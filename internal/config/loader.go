// Package config centralizes configuration resolution for TripWing.
// Precedence everywhere is: explicit Viper config > environment > defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/tripwing/tripwing/internal/llm"
)

// LoadLLMConfig resolves the completion/embedding engine configuration.
// It does not prompt interactively; that belongs in the CLI layer.
func LoadLLMConfig() (llm.Config, error) {
	provider := viper.GetString("llm.provider")
	if provider == "" {
		provider = llm.DefaultProvider
	}

	provider, err := llm.ValidateProvider(provider)
	if err != nil {
		return llm.Config{}, fmt.Errorf("invalid provider: %w", err)
	}

	model := viper.GetString("llm.model")
	if model == "" {
		model = llm.DefaultModelForProvider(provider)
	}

	// Missing keys are not an error here; Ollama needs none and the CLI
	// may still prompt for one.
	apiKey := ResolveAPIKey(provider)

	baseURL := viper.GetString("llm.baseURL")
	if baseURL == "" && provider == llm.ProviderOllama {
		baseURL = llm.DefaultOllamaURL
	}

	embeddingModel := viper.GetString("llm.embeddingModel")
	if embeddingModel == "" {
		switch provider {
		case llm.ProviderOpenAI:
			embeddingModel = llm.DefaultOpenAIEmbeddingModel
		case llm.ProviderOllama:
			embeddingModel = llm.DefaultOllamaEmbeddingModel
		}
	}

	return llm.Config{
		Provider:       provider,
		Model:          model,
		EmbeddingModel: embeddingModel,
		APIKey:         apiKey,
		BaseURL:        baseURL,
	}, nil
}

// CloudConfig holds the cloud planning service settings.
type CloudConfig struct {
	BaseURL string
	APIKey  string
}

// LoadCloudConfig resolves the cloud planning service endpoint and key.
func LoadCloudConfig() CloudConfig {
	key := strings.TrimSpace(viper.GetString("cloud.apiKey"))
	if key == "" {
		key = strings.TrimSpace(os.Getenv("TRIPWING_CLOUD_API_KEY"))
	}
	return CloudConfig{
		BaseURL: viper.GetString("cloud.baseURL"),
		APIKey:  key,
	}
}

// ResolveAPIKey returns the best API key for the given provider using
// per-provider config keys, then provider-specific env vars.
func ResolveAPIKey(provider string) string {
	if viper.IsSet("llm.apiKeys." + provider) {
		if key := strings.TrimSpace(viper.GetString("llm.apiKeys." + provider)); key != "" {
			return key
		}
	}
	return providerEnvKey(provider)
}

func providerEnvKey(provider string) string {
	switch provider {
	case llm.ProviderOpenAI:
		return strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	case llm.ProviderAnthropic:
		return strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	case llm.ProviderGemini:
		key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
		if key == "" {
			key = strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
		}
		return key
	default:
		return ""
	}
}
