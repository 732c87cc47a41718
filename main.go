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

	"github.com/coldcanuk/MyChatApp/internal/adapter/assistant"
	"github.com/coldcanuk/MyChatApp/internal/config"
	"github.com/coldcanuk/MyChatApp/internal/docstore"
	"github.com/coldcanuk/MyChatApp/internal/service"
	"github.com/coldcanuk/MyChatApp/internal/store"
	handler "github.com/coldcanuk/MyChatApp/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	log.Printf("Starting chat server...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Document store: %s", cfg.DocstoreDriver)
	log.Printf("Poll interval: %s (max %d attempts)", cfg.PollInterval, cfg.PollMaxAttempts)

	if cfg.OpenAIAPIKey == "" {
		log.Printf("WARN: OPENAI_API_KEY not set. Check your environment variable setup.")
	}
	if cfg.AssistantID == "" {
		log.Printf("WARN: ASSISTANT_ID not set. Check your environment variable setup.")
	}

	// Initialize document store
	docs, err := newDocstore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize document store: %v", err)
	}
	defer docs.Close()

	// Initialize assistant client
	assistantClient := assistant.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.AssistantID, cfg.RequestTimeout)

	// Initialize service
	threads := store.New(docs)
	svc := service.New(assistantClient, threads, cfg)

	// Create HTTP server
	server := handler.NewServer(svc)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Chat server started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down chat server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Chat server stopped")
}

func newDocstore(cfg *config.Config) (docstore.Store, error) {
	switch cfg.DocstoreDriver {
	case "chroma":
		return docstore.NewChromaStore(cfg.ChromaURL, cfg.ChromaCollection, cfg.RequestTimeout), nil
	case "sqlite":
		return docstore.NewSQLiteStore(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown docstore driver: %s", cfg.DocstoreDriver)
	}
}
