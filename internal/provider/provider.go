package provider

import (
	"context"
	"errors"
	"fmt"
)

// Provider identifies one of the hosted translation backends.
type Provider string

const (
	OpenAI Provider = "openai"
	Gemini Provider = "gemini"
	DeepL  Provider = "deepl"
)

// Fixed model catalogs per provider. Model IDs are opaque strings scoped to
// exactly one provider.
var (
	openAIModels = []string{"gpt-3.5-turbo", "gpt-4", "gpt-4-turbo"}
	geminiModels = []string{"gemini-1.5-flash", "gemini-1.5-ultra", "gemini-1.5-pro-002", "gemini-1.5-flash-002"}
	deepLModels  = []string{"Default"}
)

// Models returns the model catalog for a provider.
func Models(p Provider) []string {
	var src []string
	switch p {
	case OpenAI:
		src = openAIModels
	case Gemini:
		src = geminiModels
	case DeepL:
		src = deepLModels
	default:
		return nil
	}
	result := make([]string, len(src))
	copy(result, src)
	return result
}

// ForModel resolves the provider that owns a model ID.
func ForModel(model string) (Provider, bool) {
	for p, catalog := range map[Provider][]string{
		OpenAI: openAIModels,
		Gemini: geminiModels,
		DeepL:  deepLModels,
	} {
		for _, m := range catalog {
			if m == model {
				return p, true
			}
		}
	}
	return "", false
}

// Request carries everything an invocation needs. MaxTokens is honored by the
// chat-completion provider only; TargetLanguage is only needed by the
// dedicated translation provider.
type Request struct {
	Model          string
	SystemPrompt   string
	Text           string
	TargetLanguage string
	MaxTokens      int
}

// Invoker is the common interface for all provider adapters.
type Invoker interface {
	// Invoke sends one request and returns the generated text.
	Invoke(ctx context.Context, req Request) (string, error)
	// Name returns the provider name.
	Name() string
}

// ErrUnsupportedLanguage is returned when a target language has no DeepL
// short code. It is detected before any network call.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Error is an adapter-level failure carrying the provider name and a
// human-readable message.
type Error struct {
	Provider Provider
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Registry maps model IDs to the adapter that serves them.
type Registry struct {
	invokers map[Provider]Invoker
}

func NewRegistry() *Registry {
	return &Registry{invokers: make(map[Provider]Invoker)}
}

// Register binds an adapter to a provider. Later registrations replace
// earlier ones.
func (r *Registry) Register(p Provider, inv Invoker) {
	r.invokers[p] = inv
}

// ForModel returns the adapter serving a model ID.
func (r *Registry) ForModel(model string) (Invoker, error) {
	p, ok := ForModel(model)
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", model)
	}
	inv, ok := r.invokers[p]
	if !ok {
		return nil, fmt.Errorf("no adapter registered for provider %s", p)
	}
	return inv, nil
}
