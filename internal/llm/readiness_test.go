package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tagsServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestOllamaReadinessModelLookup(t *testing.T) {
	srv := tagsServer(t, http.StatusOK,
		`{"models":[{"name":"llama3.2:latest"},{"name":"nomic-embed-text:latest"}]}`)
	defer srv.Close()

	tests := []struct {
		name  string
		model string
		want  bool
	}{
		{"bare name matches tagged listing", "llama3.2", true},
		{"tagged request matches on base name", "llama3.2:8b", true},
		{"embedding model present", "nomic-embed-text", true},
		{"absent model", "mistral", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewOllamaReadiness(srv.URL, tt.model)
			assert.Equal(t, tt.want, r.Ready(context.Background()))
		})
	}
}

func TestOllamaReadinessFailuresReportNotReady(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		srv := tagsServer(t, http.StatusInternalServerError, "")
		defer srv.Close()
		assert.False(t, NewOllamaReadiness(srv.URL, "llama3.2").Ready(context.Background()))
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := tagsServer(t, http.StatusOK, "not json")
		defer srv.Close()
		assert.False(t, NewOllamaReadiness(srv.URL, "llama3.2").Ready(context.Background()))
	})

	t.Run("unreachable server", func(t *testing.T) {
		srv := tagsServer(t, http.StatusOK, "{}")
		srv.Close()
		assert.False(t, NewOllamaReadiness(srv.URL, "llama3.2").Ready(context.Background()))
	})
}

func TestNewOllamaReadinessDefaultsBaseURL(t *testing.T) {
	r := NewOllamaReadiness("", "llama3.2")
	assert.Equal(t, DefaultOllamaURL, r.BaseURL)
}
