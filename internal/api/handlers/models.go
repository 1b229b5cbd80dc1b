package handlers

import (
	"net/http"

	"github.com/translate-app/backend/internal/provider"
)

type ModelsHandler struct{}

func NewModelsHandler() *ModelsHandler {
	return &ModelsHandler{}
}

// List returns the per-provider model catalogs for the presentation layer's
// model pickers.
func (h *ModelsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		string(provider.OpenAI): provider.Models(provider.OpenAI),
		string(provider.Gemini): provider.Models(provider.Gemini),
		string(provider.DeepL):  provider.Models(provider.DeepL),
	})
}
