package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageCode(t *testing.T) {
	tests := []struct {
		language string
		code     string
	}{
		{"English", "EN-US"},
		{"Spanish", "ES"},
		{"French", "FR"},
		{"German", "DE"},
		{"Japanese", "JA"},
	}
	for _, tt := range tests {
		code, err := LanguageCode(tt.language)
		require.NoError(t, err, tt.language)
		assert.Equal(t, tt.code, code)
	}
}

func TestLanguageCodeUnsupported(t *testing.T) {
	_, err := LanguageCode("Hindi")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
	assert.ErrorContains(t, err, "Hindi")
}

func TestDeepLInvokeUnsupportedLanguageSkipsNetwork(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer srv.Close()

	d := NewDeepLClient("test-key")
	d.baseURL = srv.URL

	_, err := d.Invoke(context.Background(), Request{Text: "hola", TargetLanguage: "Hindi"})
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
	assert.Zero(t, requests.Load())
}

func TestDeepLTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "DeepL-Auth-Key test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "Hola", r.Form.Get("text"))
		assert.Equal(t, "EN-US", r.Form.Get("target_lang"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"translations":[{"text":"Hello"}]}`))
	}))
	defer srv.Close()

	d := NewDeepLClient("test-key")
	d.baseURL = srv.URL

	got, err := d.Translate(context.Background(), "Hola", "EN-US")
	require.NoError(t, err)
	assert.Equal(t, "Hello", got)
}

func TestDeepLInvokeResolvesCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "DE", r.Form.Get("target_lang"))
		w.Write([]byte(`{"translations":[{"text":"Hallo"}]}`))
	}))
	defer srv.Close()

	d := NewDeepLClient("test-key")
	d.baseURL = srv.URL

	got, err := d.Invoke(context.Background(), Request{Text: "Hello", TargetLanguage: "German"})
	require.NoError(t, err)
	assert.Equal(t, "Hallo", got)
}

func TestDeepLTranslateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	d := NewDeepLClient("test-key")
	d.baseURL = srv.URL

	_, err := d.Translate(context.Background(), "Hola", "EN-US")
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, DeepL, perr.Provider)
	assert.Contains(t, perr.Message, "status 403")
}

func TestDeepLTranslateNoKey(t *testing.T) {
	d := NewDeepLClient("")

	_, err := d.Translate(context.Background(), "Hola", "EN-US")
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, perr.Message, "API key not configured")
}
