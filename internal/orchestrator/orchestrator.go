package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/translate-app/backend/internal/provider"
)

// State is the phase a submission is in. Submissions move
// Idle → Correcting → Translating → Rating → Persisting → Done, or stop at
// Failed on an unrecoverable error.
type State string

const (
	StateIdle        State = "idle"
	StateCorrecting  State = "correcting"
	StateTranslating State = "translating"
	StateRating      State = "rating"
	StatePersisting  State = "persisting"
	StateDone        State = "done"
	StateFailed      State = "failed"
)

// ErrEmptyMessage is returned when a submission carries no message. It is
// detected before any network call.
var ErrEmptyMessage = errors.New("message must not be empty")

// PersistenceError reports a failed save. Translations already produced are
// kept; nothing is rolled back.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist translation: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Submission is the user input for one translation flow.
type Submission struct {
	Message          string
	Language         string
	Model            string
	CorrectionMode   bool
	RatingMode       bool
	StoreTranslation bool
	SelectedModels   []string
}

// ModelResult is one model's translation and its optional 1-10 rating.
type ModelResult struct {
	Text   string
	Rating *int
}

// SubmissionState is the immutable value threaded through the orchestration
// steps. Each step receives a state and returns a new one; callers never see
// partial mutation.
type SubmissionState struct {
	ID               string
	State            State
	Input            Submission
	Text             string // effective text being translated
	CorrectedMessage string
	Translations     map[string]ModelResult
	ModelErrors      map[string]string
	Err              error
}

// Record is what the persistence gateway stores: one row per model.
type Record struct {
	OriginalText string
	Translations map[string]string
	Language     string
	Model        string
	Rating       *int
}

// Gateway persists a completed translation record.
type Gateway interface {
	SaveTranslation(ctx context.Context, rec Record) error
}

// Orchestrator sequences correction, per-model translation, rating and
// persistence for a submission. Provider clients are constructed once at
// startup and injected here.
type Orchestrator struct {
	registry    *provider.Registry
	rater       provider.Invoker // pinned chat-completion provider
	ratingModel string
	gateway     Gateway
	concurrency int
}

func New(registry *provider.Registry, rater provider.Invoker, ratingModel string, gateway Gateway, concurrency int) *Orchestrator {
	if ratingModel == "" {
		ratingModel = "gpt-3.5-turbo"
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Orchestrator{
		registry:    registry,
		rater:       rater,
		ratingModel: ratingModel,
		gateway:     gateway,
		concurrency: concurrency,
	}
}

// Run executes one submission to completion. The returned state is Done when
// at least one model produced a translation (or the model set was empty), and
// Failed otherwise. A persistence failure leaves the state Done with the
// error recorded.
func (o *Orchestrator) Run(ctx context.Context, sub Submission) SubmissionState {
	s := SubmissionState{
		ID:    uuid.NewString(),
		State: StateIdle,
		Input: sub,
		Text:  sub.Message,
	}

	if sub.Message == "" {
		return fail(s, ErrEmptyMessage)
	}

	s = o.correct(ctx, s)
	if s.State == StateFailed {
		return s
	}

	s = o.translate(ctx, s)
	if s.State == StateFailed {
		return s
	}

	return o.persist(ctx, s)
}

// correct runs the optional correction pass on the pinned chat-completion
// provider. A correction failure aborts the whole flow; translation is not
// attempted.
func (o *Orchestrator) correct(ctx context.Context, s SubmissionState) SubmissionState {
	if !s.Input.CorrectionMode {
		return s
	}
	s.State = StateCorrecting

	corrected, err := o.rater.Invoke(ctx, provider.Request{
		Model:          o.ratingModel,
		SystemPrompt:   provider.CorrectionPrompt(s.Input.Language),
		Text:           s.Input.Message,
		TargetLanguage: s.Input.Language,
		MaxTokens:      provider.MaxTranslationTokens,
	})
	if err != nil {
		return fail(s, fmt.Errorf("correct message: %w", err))
	}

	log.Printf("[orchestrator] %s corrected message (%d chars)", s.ID, len(corrected))
	s.CorrectedMessage = corrected
	s.Text = corrected
	return s
}

// translate fans out one task per selected model. Tasks are isolated: a
// failing model is recorded per model and the submission fails only when no
// model produced a translation.
func (o *Orchestrator) translate(ctx context.Context, s SubmissionState) SubmissionState {
	s.State = StateTranslating

	models := modelSet(s.Input)
	if len(models) == 0 {
		s.State = StateDone
		s.Translations = map[string]ModelResult{}
		return s
	}

	type taskResult struct {
		model  string
		result ModelResult
		err    error
	}

	results := make([]taskResult, len(models))
	sem := make(chan struct{}, o.concurrency)
	var wg sync.WaitGroup

	for i, model := range models {
		wg.Add(1)
		sem <- struct{}{}

		go func(idx int, model string) {
			defer wg.Done()
			defer func() { <-sem }()

			text, err := o.translateOne(ctx, s, model)
			if err != nil {
				results[idx] = taskResult{model: model, err: err}
				return
			}

			r := ModelResult{Text: text}
			if s.Input.RatingMode {
				r.Rating = o.rate(ctx, s.ID, model, text)
			}
			results[idx] = taskResult{model: model, result: r}
		}(i, model)
	}

	wg.Wait()

	translations := make(map[string]ModelResult, len(models))
	modelErrors := make(map[string]string)
	var firstErr error
	for _, r := range results {
		if r.err != nil {
			log.Printf("[orchestrator] %s model %s failed: %v", s.ID, r.model, r.err)
			modelErrors[r.model] = r.err.Error()
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		translations[r.model] = r.result
	}

	s.Translations = translations
	s.ModelErrors = modelErrors

	if len(translations) == 0 {
		return fail(s, fmt.Errorf("all models failed: %w", firstErr))
	}
	return s
}

func (o *Orchestrator) translateOne(ctx context.Context, s SubmissionState, model string) (string, error) {
	inv, err := o.registry.ForModel(model)
	if err != nil {
		return "", err
	}
	return inv.Invoke(ctx, provider.Request{
		Model:          model,
		SystemPrompt:   provider.TranslationPrompt(s.Input.Language),
		Text:           s.Text,
		TargetLanguage: s.Input.Language,
		MaxTokens:      provider.MaxTranslationTokens,
	})
}

// rate scores a translation 1-10 on the pinned chat-completion provider,
// regardless of which provider produced the translation. A rating that fails
// or does not parse yields nil, never an error.
func (o *Orchestrator) rate(ctx context.Context, id, model, translatedText string) *int {
	reply, err := o.rater.Invoke(ctx, provider.Request{
		Model:        o.ratingModel,
		SystemPrompt: provider.RatingPrompt(),
		Text:         translatedText,
		MaxTokens:    provider.MaxRatingTokens,
	})
	if err != nil {
		log.Printf("[orchestrator] %s rating for %s failed: %v", id, model, err)
		return nil
	}
	return parseRating(reply)
}

// persist saves the result mapping on explicit opt-in. A failure is recorded
// but does not discard the translations already produced.
func (o *Orchestrator) persist(ctx context.Context, s SubmissionState) SubmissionState {
	if !s.Input.StoreTranslation || len(s.Translations) == 0 {
		s.State = StateDone
		return s
	}
	s.State = StatePersisting

	byModel := make(map[string]string, len(s.Translations))
	for model, r := range s.Translations {
		byModel[model] = r.Text
	}

	rec := Record{
		OriginalText: s.Input.Message,
		Translations: byModel,
		Language:     s.Input.Language,
		Model:        s.Input.Model,
	}
	if r, ok := s.Translations[s.Input.Model]; ok {
		rec.Rating = r.Rating
	}

	if err := o.gateway.SaveTranslation(ctx, rec); err != nil {
		log.Printf("[orchestrator] %s persistence failed: %v", s.ID, err)
		s.Err = &PersistenceError{Err: err}
	}

	s.State = StateDone
	return s
}

// modelSet returns the models to invoke: the selected set in rating mode,
// otherwise the single currently-selected model.
func modelSet(sub Submission) []string {
	if sub.RatingMode {
		models := make([]string, len(sub.SelectedModels))
		copy(models, sub.SelectedModels)
		return models
	}
	return []string{sub.Model}
}

func parseRating(reply string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(reply))
	if err != nil {
		return nil
	}
	return &n
}

func fail(s SubmissionState, err error) SubmissionState {
	s.State = StateFailed
	s.Err = err
	return s
}
