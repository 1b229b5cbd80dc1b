package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const geminiAPIBase = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiClient is the generative single-prompt adapter.
type GeminiClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		baseURL: geminiAPIBase,
		httpClient: &http.Client{
			Timeout: 1 * time.Minute,
		},
	}
}

func (g *GeminiClient) Name() string {
	return string(Gemini)
}

// Invoke concatenates the instruction and the user text into a single prompt
// and returns the full generated text. Gemini output is not trimmed by a
// token cap.
func (g *GeminiClient) Invoke(ctx context.Context, req Request) (string, error) {
	if g.apiKey == "" {
		return "", &Error{Provider: Gemini, Message: "API key not configured"}
	}

	prompt := fmt.Sprintf("%s, text is: %s", req.SystemPrompt, req.Text)

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", &Error{Provider: Gemini, Message: "encode request", Err: err}
	}

	url := fmt.Sprintf("%s/%s:generateContent", g.baseURL, req.Model)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", &Error{Provider: Gemini, Message: "build request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", &Error{Provider: Gemini, Message: "API request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Provider: Gemini, Message: "read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &Error{Provider: Gemini, Message: fmt.Sprintf("API error (status %d): %s", resp.StatusCode, string(body))}
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
		PromptFeedback struct {
			BlockReason string `json:"blockReason"`
		} `json:"promptFeedback"`
	}

	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", &Error{Provider: Gemini, Message: "parse response", Err: err}
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		if geminiResp.PromptFeedback.BlockReason != "" {
			return "", &Error{Provider: Gemini, Message: "blocked: " + geminiResp.PromptFeedback.BlockReason}
		}
		return "", &Error{Provider: Gemini, Message: "empty response"}
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}
