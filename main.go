package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/translate-app/backend/internal/api"
	"github.com/translate-app/backend/internal/config"
	"github.com/translate-app/backend/internal/db"
	"github.com/translate-app/backend/internal/orchestrator"
	"github.com/translate-app/backend/internal/provider"
)

// storeGateway adapts the sqlite layer to the orchestrator's persistence
// gateway. The rating and selected model travel on the wire but are not
// stored; the table keeps one row per model.
type storeGateway struct {
	database *db.Database
}

func (g storeGateway) SaveTranslation(ctx context.Context, rec orchestrator.Record) error {
	return g.database.SaveTranslations(ctx, rec.OriginalText, rec.Translations, rec.Language)
}

func main() {
	cfg := config.Load()

	// Ensure data directory exists
	os.MkdirAll(cfg.DataPath, 0755)

	// Initialize database
	database, err := db.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Process-scoped provider clients, one per provider
	openaiClient := provider.NewOpenAIClient(cfg.OpenAIAPIKey)
	geminiClient := provider.NewGeminiClient(cfg.GoogleAPIKey)
	deeplClient := provider.NewDeepLClient(cfg.DeepLAPIKey)

	registry := provider.NewRegistry()
	registry.Register(provider.OpenAI, openaiClient)
	registry.Register(provider.Gemini, geminiClient)
	registry.Register(provider.DeepL, deeplClient)
	log.Printf("Registered providers: openai gemini deepl (rating model: %s)", cfg.RatingModel)

	orch := orchestrator.New(registry, openaiClient, cfg.RatingModel, storeGateway{database}, cfg.TranslateConcurrency)

	// Create router
	router := api.NewRouter(database, orch, deeplClient, cfg.CORSOrigins)

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Starting server on %s", addr)
	log.Printf("Database: %s", cfg.DBPath)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		os.Exit(0)
	}()

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
