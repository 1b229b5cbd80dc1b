package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/translate-app/backend/internal/orchestrator"
)

type TranslateHandler struct {
	orch *orchestrator.Orchestrator
}

func NewTranslateHandler(orch *orchestrator.Orchestrator) *TranslateHandler {
	return &TranslateHandler{orch: orch}
}

// TranslateRequest is the orchestrated submission body. SelectedModels is
// only consulted when RatingMode is on.
type TranslateRequest struct {
	Message          string   `json:"message"`
	Language         string   `json:"language"`
	Model            string   `json:"model"`
	CorrectionMode   bool     `json:"correctionMode"`
	RatingMode       bool     `json:"ratingMode"`
	StoreTranslation bool     `json:"storeTranslation"`
	SelectedModels   []string `json:"selectedModels"`
}

// TranslateResponse carries the per-model results of one submission.
type TranslateResponse struct {
	ID               string            `json:"id"`
	CorrectedMessage string            `json:"correctedMessage,omitempty"`
	Translations     map[string]string `json:"translations"`
	Ratings          map[string]*int   `json:"ratings,omitempty"`
	Errors           map[string]string `json:"errors,omitempty"`
	PersistenceError string            `json:"persistenceError,omitempty"`
}

// Translate runs a full orchestrated submission: optional correction,
// per-model translation, optional rating and optional persistence.
func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	state := h.orch.Run(r.Context(), orchestrator.Submission{
		Message:          req.Message,
		Language:         req.Language,
		Model:            req.Model,
		CorrectionMode:   req.CorrectionMode,
		RatingMode:       req.RatingMode,
		StoreTranslation: req.StoreTranslation,
		SelectedModels:   req.SelectedModels,
	})

	if state.State == orchestrator.StateFailed {
		if errors.Is(state.Err, orchestrator.ErrEmptyMessage) {
			jsonError(w, "Please enter the message.", http.StatusBadRequest)
			return
		}
		jsonError(w, state.Err.Error(), http.StatusBadGateway)
		return
	}

	resp := TranslateResponse{
		ID:               state.ID,
		CorrectedMessage: state.CorrectedMessage,
		Translations:     make(map[string]string, len(state.Translations)),
		Errors:           state.ModelErrors,
	}
	if req.RatingMode {
		resp.Ratings = make(map[string]*int, len(state.Translations))
	}
	for model, result := range state.Translations {
		resp.Translations[model] = result.Text
		if req.RatingMode {
			resp.Ratings[model] = result.Rating
		}
	}

	var perr *orchestrator.PersistenceError
	if errors.As(state.Err, &perr) {
		resp.PersistenceError = perr.Error()
	}

	writeJSON(w, http.StatusOK, resp)
}
