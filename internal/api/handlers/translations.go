package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/translate-app/backend/internal/db"
)

// TranslationStore is the storage surface the translation handlers need.
type TranslationStore interface {
	InsertTranslation(ctx context.Context, originalText, translatedText, language, model string) error
	ListTranslations(ctx context.Context) ([]db.Translation, error)
}

type TranslationsHandler struct {
	store TranslationStore
}

func NewTranslationsHandler(store TranslationStore) *TranslationsHandler {
	return &TranslationsHandler{store: store}
}

// List returns every stored translation row.
func (h *TranslationsHandler) List(w http.ResponseWriter, r *http.Request) {
	translations, err := h.store.ListTranslations(r.Context())
	if err != nil {
		jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, translations)
}

// SaveTranslationRequest is the save-translation wire body. RatingNumber is
// accepted for compatibility but not stored.
type SaveTranslationRequest struct {
	OriginalText   string            `json:"originalText"`
	TranslatedText map[string]string `json:"translatedText"`
	Language       string            `json:"language"`
	Model          string            `json:"model"`
	RatingNumber   *int              `json:"ratingNumber"`
}

// Save inserts one row per model in the request's translation mapping. The
// inserts run in sorted model order with no surrounding transaction, so a
// failure partway leaves the earlier rows committed.
func (h *TranslationsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req SaveTranslationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.OriginalText == "" || req.TranslatedText == nil || req.Language == "" || req.Model == "" {
		jsonError(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	for _, model := range sortedModels(req.TranslatedText) {
		if err := h.store.InsertTranslation(r.Context(), req.OriginalText, req.TranslatedText[model], req.Language, model); err != nil {
			jsonError(w, "Failed to save translation", http.StatusInternalServerError)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Translations saved successfully!"})
}
