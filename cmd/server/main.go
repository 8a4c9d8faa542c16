// Package main is the entry point for the PDF Q&A API server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/BalasaitejaG/Pdf-AI/internal/config"
	"github.com/BalasaitejaG/Pdf-AI/internal/database"
	"github.com/BalasaitejaG/Pdf-AI/internal/router"
	"github.com/BalasaitejaG/Pdf-AI/internal/services/answer"
	"github.com/BalasaitejaG/Pdf-AI/internal/services/gemini"
	"github.com/BalasaitejaG/Pdf-AI/internal/services/trial"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("🚀 PDF Q&A API %s starting...", Version)

	// Load .env if present — works for both local dev and deployment.
	_ = godotenv.Load()

	// Step 1: Load Configuration
	// A missing trial credential is the one fatal configuration error —
	// we refuse to serve any request without it.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	log.Printf("📋 Config loaded: port=%s, model=%s, trial_limit=%d, gin_mode=%s",
		cfg.Port, cfg.GeminiModel, cfg.TrialQuestionLimit, cfg.GinMode)

	os.Setenv("GIN_MODE", cfg.GinMode)

	// Step 2: Connect to Database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("✅ Database connected")

	// Run migrations
	if err := db.RunMigrations("migrations"); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	// Step 3: Create Services
	ai := gemini.New(cfg.GeminiModel, time.Duration(cfg.AITimeoutSeconds)*time.Second)
	sealer := trial.NewSealer(cfg.SessionSecret)
	resolver := trial.NewResolver(db, sealer, cfg.GoogleAPIKey, cfg.TrialQuestionLimit)
	ans := answer.New(resolver, db, ai)
	log.Printf("✅ Trial mode enabled: %d free questions per session", cfg.TrialQuestionLimit)

	// Step 4: Setup HTTP Router
	r := router.Setup(cfg, db, ans, resolver, Version)

	// Step 5: Start the HTTP Server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // the AI call can take a while
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Server listening on http://localhost:%s", cfg.Port)
		log.Printf("📖 Health check: http://localhost:%s/api/v1/health", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	// Step 6: Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Printf("🛑 Received signal %v, shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️  Server forced to shutdown: %v", err)
	}

	log.Println("👋 Server stopped. Goodbye!")
}
