package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/translate-app/backend/internal/orchestrator"
	"github.com/translate-app/backend/internal/provider"
)

type scriptedInvoker struct {
	reply func(req provider.Request) (string, error)
}

func (s scriptedInvoker) Name() string { return "openai" }
func (s scriptedInvoker) Invoke(ctx context.Context, req provider.Request) (string, error) {
	return s.reply(req)
}

type nopGateway struct{}

func (nopGateway) SaveTranslation(ctx context.Context, rec orchestrator.Record) error { return nil }

func newTranslateHandler(reply func(req provider.Request) (string, error)) *TranslateHandler {
	inv := scriptedInvoker{reply: reply}
	registry := provider.NewRegistry()
	registry.Register(provider.OpenAI, inv)
	orch := orchestrator.New(registry, inv, "gpt-3.5-turbo", nopGateway{}, 3)
	return NewTranslateHandler(orch)
}

func TestTranslateHandler(t *testing.T) {
	h := newTranslateHandler(func(req provider.Request) (string, error) {
		return "Hello", nil
	})

	body := `{"message":"Hola","language":"English","model":"gpt-3.5-turbo"}`
	rec := httptest.NewRecorder()
	h.Translate(rec, httptest.NewRequest("POST", "/api/translate", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp TranslateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, map[string]string{"gpt-3.5-turbo": "Hello"}, resp.Translations)
	assert.Empty(t, resp.Ratings)
	assert.Empty(t, resp.Errors)
}

func TestTranslateHandlerEmptyMessage(t *testing.T) {
	h := newTranslateHandler(func(req provider.Request) (string, error) {
		t.Fatal("no provider call expected")
		return "", nil
	})

	body := `{"message":"","language":"English","model":"gpt-3.5-turbo"}`
	rec := httptest.NewRecorder()
	h.Translate(rec, httptest.NewRequest("POST", "/api/translate", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please enter the message.")
}

func TestTranslateHandlerAllModelsFail(t *testing.T) {
	h := newTranslateHandler(func(req provider.Request) (string, error) {
		return "", &provider.Error{Provider: provider.OpenAI, Message: "down"}
	})

	body := `{"message":"Hola","language":"English","model":"gpt-3.5-turbo"}`
	rec := httptest.NewRecorder()
	h.Translate(rec, httptest.NewRequest("POST", "/api/translate", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestTranslateHandlerRatingMode(t *testing.T) {
	h := newTranslateHandler(func(req provider.Request) (string, error) {
		if req.SystemPrompt == provider.RatingPrompt() {
			return "9", nil
		}
		return "Hello", nil
	})

	body := `{"message":"Hola","language":"English","model":"gpt-3.5-turbo","ratingMode":true,"selectedModels":["gpt-4"]}`
	rec := httptest.NewRecorder()
	h.Translate(rec, httptest.NewRequest("POST", "/api/translate", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp TranslateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp.Ratings, "gpt-4")
	require.NotNil(t, resp.Ratings["gpt-4"])
	assert.Equal(t, 9, *resp.Ratings["gpt-4"])
}

func TestModelsHandler(t *testing.T) {
	h := NewModelsHandler()

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest("GET", "/api/models", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var catalogs map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &catalogs))
	assert.Equal(t, []string{"gpt-3.5-turbo", "gpt-4", "gpt-4-turbo"}, catalogs["openai"])
	assert.Equal(t, []string{"gemini-1.5-flash", "gemini-1.5-ultra", "gemini-1.5-pro-002", "gemini-1.5-flash-002"}, catalogs["gemini"])
	assert.Equal(t, []string{"Default"}, catalogs["deepl"])
}
