package completion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/mindbuffer/pkg/domain"
	"github.com/aretw0/mindbuffer/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://api.deepseek.com", "https://api.deepseek.com/chat/completions"},
		{"https://api.deepseek.com/", "https://api.deepseek.com/chat/completions"},
		{"http://localhost:11434/v1", "http://localhost:11434/v1/chat/completions"},
		{"https://x.test/v1/chat/completions", "https://x.test/v1/chat/completions"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BuildURL(tt.in))
	}
}

func TestOpenAI_Complete(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-1", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAI(srv.URL, "sk-1", "deepseek-chat", WithTemperature(0.2))
	out, err := c.Complete(context.Background(), ports.CompletionRequest{System: "sys", User: "usr", JSON: true})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)

	assert.Equal(t, "deepseek-chat", got.Model)
	assert.InDelta(t, 0.2, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "usr", got.Messages[1].Content)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
}

func TestOpenAI_PlainTextOmitsResponseFormat(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hi"}}]}`))
	}))
	defer srv.Close()

	out, err := NewOpenAI(srv.URL, "", "m").Complete(context.Background(), ports.CompletionRequest{User: "u"})
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
	assert.NotContains(t, raw, "response_format")
}

func TestOpenAI_Errors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad key", http.StatusUnauthorized)
		}))
		defer srv.Close()

		_, err := NewOpenAI(srv.URL, "bad", "m").Complete(context.Background(), ports.CompletionRequest{})
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusUnauthorized, se.Code)
	})

	t.Run("no choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer srv.Close()

		_, err := NewOpenAI(srv.URL, "k", "m").Complete(context.Background(), ports.CompletionRequest{})
		assert.Error(t, err)
	})
}

func TestForSettings(t *testing.T) {
	_, err := ForSettings(context.Background(), domain.DefaultSettings(), nil)
	assert.ErrorIs(t, err, ErrNotConfigured)

	s := domain.DefaultSettings()
	s.AIProvider = domain.ProviderDeepSeek
	s.APIKey = "k"
	c, err := ForSettings(context.Background(), s, nil)
	require.NoError(t, err)
	assert.IsType(t, &OpenAI{}, c)

	s.AIProvider = "unknown"
	_, err = ForSettings(context.Background(), s, nil)
	assert.Error(t, err)
}
