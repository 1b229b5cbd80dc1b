// Package relay is the client-side gateway to the relay backend. The mobile
// presentation layer uses it to reach the endpoints that need server-held
// credentials or storage.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/translate-app/backend/internal/orchestrator"
	"github.com/translate-app/backend/internal/provider"
)

// Client talks to the relay's JSON-over-HTTP surface. The base URL is
// configuration, not a constant.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

func (c *Client) Name() string {
	return string(provider.DeepL)
}

// Invoke routes a DeepL invocation through the relay, so the client never
// holds the DeepL credential. The language-code check still happens locally,
// before any network call.
func (c *Client) Invoke(ctx context.Context, req provider.Request) (string, error) {
	code, err := provider.LanguageCode(req.TargetLanguage)
	if err != nil {
		return "", err
	}
	return c.Translate(ctx, req.Text, code)
}

// Translate calls POST /api/translate-deepl with an already-resolved target
// code.
func (c *Client) Translate(ctx context.Context, text, targetCode string) (string, error) {
	var resp struct {
		Translation string `json:"translation"`
	}
	err := c.post(ctx, "/api/translate-deepl", map[string]string{
		"text":       text,
		"targetLang": targetCode,
	}, &resp)
	if err != nil {
		return "", &provider.Error{Provider: provider.DeepL, Message: "relay request", Err: err}
	}
	return resp.Translation, nil
}

// SaveTranslation calls POST /api/save-translation. Satisfies the
// orchestrator's persistence gateway for client-side orchestration.
func (c *Client) SaveTranslation(ctx context.Context, rec orchestrator.Record) error {
	body := map[string]interface{}{
		"originalText":   rec.OriginalText,
		"translatedText": rec.Translations,
		"language":       rec.Language,
		"model":          rec.Model,
	}
	if rec.Rating != nil {
		body["ratingNumber"] = *rec.Rating
	}
	var resp struct {
		Message string `json:"message"`
	}
	return c.post(ctx, "/api/save-translation", body, &resp)
}

// StoredTranslation mirrors one row of the relay's translation table.
type StoredTranslation struct {
	ID             int64  `json:"id"`
	OriginalText   string `json:"original_text"`
	TranslatedText string `json:"translated_text"`
	Language       string `json:"language"`
	Model          string `json:"model"`
}

// ListTranslations calls GET /api/get-translations.
func (c *Client) ListTranslations(ctx context.Context) ([]StoredTranslation, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/get-translations", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("relay request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, relayError(resp)
	}

	var translations []StoredTranslation
	if err := json.NewDecoder(resp.Body).Decode(&translations); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return translations, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("relay request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return relayError(resp)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func relayError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	var errResp struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
		return fmt.Errorf("relay error (status %d): %s", resp.StatusCode, errResp.Error)
	}
	return fmt.Errorf("relay error (status %d): %s", resp.StatusCode, string(body))
}
