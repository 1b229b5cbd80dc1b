package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/translate-app/backend/internal/api/handlers"
	"github.com/translate-app/backend/internal/api/middleware"
	"github.com/translate-app/backend/internal/orchestrator"
)

// NewRouter wires the relay's HTTP surface. Provider clients and the
// orchestrator are constructed once at startup and injected here.
func NewRouter(store handlers.TranslationStore, orch *orchestrator.Orchestrator, deepl handlers.DeepLTranslator, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(middleware.CORSHandler(corsOrigins)))
	r.Use(middleware.MaxBodySize(1 << 20)) // JSON bodies only; 1 MiB is plenty

	// Handlers
	translationsHandler := handlers.NewTranslationsHandler(store)
	deeplHandler := handlers.NewDeepLHandler(deepl)
	translateHandler := handlers.NewTranslateHandler(orch)
	modelsHandler := handlers.NewModelsHandler()

	// Rate limit the endpoints that spend provider quota
	providerLimiter := middleware.NewRateLimiter(30, time.Minute)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})

		r.Get("/get-translations", translationsHandler.List)
		r.Post("/save-translation", translationsHandler.Save)
		r.Get("/models", modelsHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(providerLimiter.Handler)

			r.Post("/translate-deepl", deeplHandler.Translate)
			r.Post("/translate", translateHandler.Translate)
		})
	})

	return r
}
