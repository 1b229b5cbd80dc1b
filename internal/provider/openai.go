package provider

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient is the chat-completion adapter. One client is constructed at
// startup and shared across all submissions.
type OpenAIClient struct {
	apiKey string
	client *openai.Client
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

func (o *OpenAIClient) Name() string {
	return string(OpenAI)
}

// Invoke sends a two-message exchange (system instruction + user text) with
// fixed sampling parameters and returns the first completion's trimmed text.
func (o *OpenAIClient) Invoke(ctx context.Context, req Request) (string, error) {
	if o.apiKey == "" {
		return "", &Error{Provider: OpenAI, Message: "API key not configured"}
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.Text},
		},
		Temperature:      0.3,
		MaxTokens:        req.MaxTokens,
		TopP:             1.0,
		FrequencyPenalty: 0.0,
		PresencePenalty:  0.0,
	})
	if err != nil {
		return "", &Error{Provider: OpenAI, Message: "chat completion request", Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &Error{Provider: OpenAI, Message: "empty response"}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
