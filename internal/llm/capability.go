package llm

import "context"

// Message roles understood by the completion capability.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn in a completion conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionOptions tunes a single completion call.
type CompletionOptions struct {
	MaxTokens     int
	Temperature   float32
	StopSequences []string
}

// CompletionResult is the outcome of a completion call.
type CompletionResult struct {
	Response        string
	TotalTokens     int
	TokensPerSecond float64
}

// TokenCallback receives incremental output during streaming generation.
// Tokens arrive in generation order; no other ordering is guaranteed.
type TokenCallback func(token string)

// Embedder is the embedding capability consumed by the memory layer.
// Implementations fail with an engine-specific error when the model is
// not ready.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Completer is the completion capability consumed by Q&A and replanning.
// onToken may be nil to disable streaming.
type Completer interface {
	Complete(ctx context.Context, messages []Message, opts CompletionOptions, onToken TokenCallback) (*CompletionResult, error)
}

// Readiness reports whether the on-device engine is downloaded and usable.
// Indexing side effects are deferred, not failed, when it reports false.
type Readiness interface {
	Ready(ctx context.Context) bool
}

// ReadyFunc adapts a function to the Readiness interface.
type ReadyFunc func(ctx context.Context) bool

// Ready implements Readiness.
func (f ReadyFunc) Ready(ctx context.Context) bool { return f(ctx) }
