package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const deeplAPIURL = "https://api-free.deepl.com/v2/translate"

// languageCodes maps supported target language names to the short codes the
// DeepL wire protocol requires. Languages outside this table cannot be sent
// to DeepL.
var languageCodes = map[string]string{
	"English":  "EN-US",
	"Spanish":  "ES",
	"French":   "FR",
	"German":   "DE",
	"Japanese": "JA",
}

// LanguageCode resolves a target language name to its DeepL short code.
// Returns ErrUnsupportedLanguage for languages outside the table.
func LanguageCode(language string) (string, error) {
	code, ok := languageCodes[language]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedLanguage, language)
	}
	return code, nil
}

// DeepLClient is the dedicated translation service adapter. The mobile client
// never calls DeepL directly; the relay holds the credential.
type DeepLClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewDeepLClient(apiKey string) *DeepLClient {
	return &DeepLClient{
		apiKey:  apiKey,
		baseURL: deeplAPIURL,
		httpClient: &http.Client{
			Timeout: 1 * time.Minute,
		},
	}
}

func (d *DeepLClient) Name() string {
	return string(DeepL)
}

// Invoke maps the target language name to a DeepL code and translates. The
// language check happens before any network I/O; the system prompt and model
// are ignored since DeepL has a single default engine.
func (d *DeepLClient) Invoke(ctx context.Context, req Request) (string, error) {
	code, err := LanguageCode(req.TargetLanguage)
	if err != nil {
		return "", err
	}
	return d.Translate(ctx, req.Text, code)
}

// Translate sends text to DeepL with an already-resolved target code.
func (d *DeepLClient) Translate(ctx context.Context, text, targetCode string) (string, error) {
	if d.apiKey == "" {
		return "", &Error{Provider: DeepL, Message: "API key not configured"}
	}

	form := url.Values{}
	form.Add("text", text)
	form.Set("target_lang", targetCode)

	httpReq, err := http.NewRequestWithContext(ctx, "POST", d.baseURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", &Error{Provider: DeepL, Message: "build request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Authorization", "DeepL-Auth-Key "+d.apiKey)

	resp, err := d.httpClient.Do(httpReq)
	if err != nil {
		return "", &Error{Provider: DeepL, Message: "API request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Provider: DeepL, Message: "read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &Error{Provider: DeepL, Message: fmt.Sprintf("API error (status %d): %s", resp.StatusCode, string(body))}
	}

	var deeplResp struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}

	if err := json.Unmarshal(body, &deeplResp); err != nil {
		return "", &Error{Provider: DeepL, Message: "parse response", Err: err}
	}

	if len(deeplResp.Translations) == 0 {
		return "", &Error{Provider: DeepL, Message: "empty response"}
	}

	parts := make([]string, len(deeplResp.Translations))
	for i, t := range deeplResp.Translations {
		parts[i] = t.Text
	}
	return strings.Join(parts, " "), nil
}
