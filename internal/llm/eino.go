package llm

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Factories are variables so tests can inject mocks.
var (
	embeddingModelFactory = NewEmbeddingModel
	chatModelFactory      = NewChatModel
)

// EinoEmbedder adapts an Eino embedding model to the Embedder capability.
type EinoEmbedder struct {
	cfg      Config
	embedder embedding.Embedder
}

// NewEinoEmbedder creates an Embedder backed by the configured provider.
func NewEinoEmbedder(cfg Config) *EinoEmbedder {
	return &EinoEmbedder{cfg: cfg}
}

// Embed generates a vector embedding for the given text.
func (e *EinoEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e.embedder == nil {
		embedder, err := embeddingModelFactory(ctx, e.cfg)
		if err != nil {
			return nil, fmt.Errorf("create embedding model: %w", err)
		}
		e.embedder = embedder
	}

	// Eino returns [][]float64
	vectors, err := e.embedder.EmbedStrings(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("generate embedding: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	vec := make([]float32, len(vectors[0]))
	for i, v := range vectors[0] {
		vec[i] = float32(v)
	}
	return vec, nil
}

// EinoCompleter adapts an Eino chat model to the Completer capability.
type EinoCompleter struct {
	cfg       Config
	chatModel model.BaseChatModel
}

// NewEinoCompleter creates a Completer backed by the configured provider.
func NewEinoCompleter(cfg Config) *EinoCompleter {
	return &EinoCompleter{cfg: cfg}
}

// Complete runs a single completion call. When onToken is non-nil the
// response is streamed and each chunk is forwarded as it arrives.
func (c *EinoCompleter) Complete(ctx context.Context, messages []Message, opts CompletionOptions, onToken TokenCallback) (*CompletionResult, error) {
	if c.chatModel == nil {
		chatModel, err := chatModelFactory(ctx, c.cfg)
		if err != nil {
			return nil, fmt.Errorf("create chat model: %w", err)
		}
		c.chatModel = chatModel
	}

	einoMessages := toSchemaMessages(messages)
	var modelOpts []model.Option
	if opts.Temperature > 0 {
		modelOpts = append(modelOpts, model.WithTemperature(opts.Temperature))
	}
	if opts.MaxTokens > 0 {
		modelOpts = append(modelOpts, model.WithMaxTokens(opts.MaxTokens))
	}
	if len(opts.StopSequences) > 0 {
		modelOpts = append(modelOpts, model.WithStop(opts.StopSequences))
	}

	start := time.Now()

	if onToken != nil {
		stream, err := c.chatModel.Stream(ctx, einoMessages, modelOpts...)
		if err != nil {
			return nil, fmt.Errorf("stream completion: %w", err)
		}
		defer stream.Close()

		var sb strings.Builder
		chunks := 0
		for {
			chunk, err := stream.Recv()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("recv stream: %w", err)
			}
			onToken(chunk.Content)
			sb.WriteString(chunk.Content)
			chunks++
		}
		if sb.Len() == 0 {
			return nil, fmt.Errorf("empty response from model")
		}
		return &CompletionResult{
			Response:        sb.String(),
			TokensPerSecond: float64(chunks) / time.Since(start).Seconds(),
		}, nil
	}

	resp, err := c.chatModel.Generate(ctx, einoMessages, modelOpts...)
	if err != nil {
		return nil, fmt.Errorf("generate completion: %w", err)
	}

	result := &CompletionResult{Response: resp.Content}
	if resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
		result.TotalTokens = resp.ResponseMeta.Usage.TotalTokens
		elapsed := time.Since(start).Seconds()
		if elapsed > 0 {
			result.TokensPerSecond = float64(resp.ResponseMeta.Usage.CompletionTokens) / elapsed
		}
	}
	return result, nil
}

func toSchemaMessages(messages []Message) []*schema.Message {
	out := make([]*schema.Message, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			out = append(out, schema.SystemMessage(m.Content))
		case RoleAssistant:
			out = append(out, schema.AssistantMessage(m.Content, nil))
		default:
			out = append(out, schema.UserMessage(m.Content))
		}
	}
	return out
}
