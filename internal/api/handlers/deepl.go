package handlers

import (
	"context"
	"encoding/json"
	"net/http"
)

// DeepLTranslator translates text to an already-resolved DeepL target code.
type DeepLTranslator interface {
	Translate(ctx context.Context, text, targetCode string) (string, error)
}

type DeepLHandler struct {
	translator DeepLTranslator
}

func NewDeepLHandler(translator DeepLTranslator) *DeepLHandler {
	return &DeepLHandler{translator: translator}
}

// Translate relays a single text to DeepL. The server holds the credential;
// mobile clients must use this endpoint instead of calling DeepL directly.
func (h *DeepLHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text       string `json:"text"`
		TargetLang string `json:"targetLang"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Text == "" || req.TargetLang == "" {
		jsonError(w, "Text and targetLang are required", http.StatusBadRequest)
		return
	}

	translation, err := h.translator.Translate(r.Context(), req.Text, req.TargetLang)
	if err != nil {
		jsonError(w, "Translation failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"translation": translation})
}
