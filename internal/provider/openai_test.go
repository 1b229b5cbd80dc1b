package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAIClient(baseURL string) *OpenAIClient {
	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = baseURL + "/v1"
	return &OpenAIClient{
		apiKey: "test-key",
		client: openai.NewClientWithConfig(cfg),
	}
}

func TestOpenAIInvoke(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
			Temperature float64 `json:"temperature"`
			MaxTokens   int     `json:"max_tokens"`
			TopP        float64 `json:"top_p"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-3.5-turbo", body.Model)
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "system", body.Messages[0].Role)
		assert.Equal(t, TranslationPrompt("English"), body.Messages[0].Content)
		assert.Equal(t, "user", body.Messages[1].Role)
		assert.Equal(t, "Hola", body.Messages[1].Content)
		assert.InDelta(t, 0.3, body.Temperature, 0.001)
		assert.Equal(t, MaxTranslationTokens, body.MaxTokens)
		assert.InDelta(t, 1.0, body.TopP, 0.001)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"  Hello \n"}}]}`))
	}))
	defer srv.Close()

	o := newTestOpenAIClient(srv.URL)

	got, err := o.Invoke(context.Background(), Request{
		Model:        "gpt-3.5-turbo",
		SystemPrompt: TranslationPrompt("English"),
		Text:         "Hola",
		MaxTokens:    MaxTranslationTokens,
	})
	require.NoError(t, err)
	// The first completion's text is trimmed
	assert.Equal(t, "Hello", got)
}

func TestOpenAIInvokeEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","choices":[]}`))
	}))
	defer srv.Close()

	o := newTestOpenAIClient(srv.URL)

	_, err := o.Invoke(context.Background(), Request{Model: "gpt-3.5-turbo", Text: "Hola"})
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, perr.Message, "empty response")
}

func TestOpenAIInvokeNoKey(t *testing.T) {
	o := NewOpenAIClient("")

	_, err := o.Invoke(context.Background(), Request{Model: "gpt-3.5-turbo", Text: "Hola"})
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, OpenAI, perr.Provider)
	assert.Contains(t, perr.Message, "API key not configured")
}
