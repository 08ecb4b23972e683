package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// OllamaReadiness probes the local Ollama server for a downloaded model.
// It reports false on any transport failure; the caller treats that as
// "engine not ready", never as a hard error.
type OllamaReadiness struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

// NewOllamaReadiness creates a readiness probe for the given model.
func NewOllamaReadiness(baseURL, model string) *OllamaReadiness {
	if baseURL == "" {
		baseURL = DefaultOllamaURL
	}
	return &OllamaReadiness{
		BaseURL: baseURL,
		Model:   model,
		Client:  &http.Client{Timeout: 3 * time.Second},
	}
}

type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Ready implements Readiness.
func (r *OllamaReadiness) Ready(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(r.BaseURL, "/")+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return false
	}

	var tags ollamaTagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return false
	}

	want := strings.SplitN(r.Model, ":", 2)[0]
	for _, m := range tags.Models {
		if strings.SplitN(m.Name, ":", 2)[0] == want {
			return true
		}
	}
	return false
}
