package llm

// Provider constants
const (
	// DefaultProvider is the default cloud LLM provider
	DefaultProvider = ProviderOpenAI

	// ProviderOpenAI represents the OpenAI provider
	ProviderOpenAI = "openai"

	// ProviderOllama represents the Ollama provider (local/on-device)
	ProviderOllama = "ollama"

	// ProviderAnthropic represents the Anthropic provider
	ProviderAnthropic = "anthropic"

	// ProviderGemini represents the Google Gemini provider
	ProviderGemini = "gemini"
)

// Default chat model constants
const (
	// DefaultOpenAIModel is the default chat model for OpenAI
	DefaultOpenAIModel = "gpt-4o-mini"

	// DefaultOllamaModel is the default chat model for Ollama
	DefaultOllamaModel = "llama3.2"

	// DefaultAnthropicModel is the default chat model for Anthropic
	DefaultAnthropicModel = "claude-3-5-haiku-latest"

	// DefaultGeminiModel is the default chat model for Gemini
	DefaultGeminiModel = "gemini-2.0-flash"
)

// Embedding model constants
const (
	// DefaultOpenAIEmbeddingModel is the default embedding model for OpenAI
	DefaultOpenAIEmbeddingModel = "text-embedding-3-small"

	// DefaultOllamaEmbeddingModel is the default embedding model for Ollama
	DefaultOllamaEmbeddingModel = "nomic-embed-text"
)

// DefaultOllamaURL is the default URL for the local Ollama server
const DefaultOllamaURL = "http://localhost:11434"

// DefaultModelForProvider returns the default chat model for a provider.
func DefaultModelForProvider(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return DefaultOpenAIModel
	case ProviderOllama:
		return DefaultOllamaModel
	case ProviderAnthropic:
		return DefaultAnthropicModel
	case ProviderGemini:
		return DefaultGeminiModel
	default:
		return ""
	}
}
