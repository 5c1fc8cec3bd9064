package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/newsdeck/newsdeck/internal/ai"
	"github.com/newsdeck/newsdeck/internal/config"
	"github.com/newsdeck/newsdeck/internal/database"
	"github.com/newsdeck/newsdeck/internal/news"
	"github.com/newsdeck/newsdeck/internal/server"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	// A missing .env is fine; the environment may already be set.
	godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	var logLevel slog.Level
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Newsdeck")

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("Database initialized", "path", cfg.Database.Path)

	if cfg.Perplexity.APIKey == "" {
		slog.Warn("PERPLEXITY_API_KEY is not set, AI generation will fail")
	}

	aiClient := ai.NewClient(ai.ClientConfig{
		APIKey:        cfg.Perplexity.APIKey,
		BaseURL:       cfg.Perplexity.BaseURL,
		Model:         cfg.Perplexity.Model,
		RecencyFilter: cfg.Perplexity.RecencyFilter,
		Timeout:       time.Duration(cfg.Perplexity.TimeoutSeconds) * time.Second,
	})
	agent := ai.NewAgent(aiClient, ai.AgentConfig{
		Model:       cfg.Perplexity.Model,
		MaxAttempts: cfg.Perplexity.MaxRetries,
	})

	newsSvc := news.NewService(db)
	aiNews := news.NewAIService(agent, newsSvc)

	srv := server.New(cfg, db, newsSvc, aiNews)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sessionCleanup(ctx, db)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		slog.Info("Shutting down...")
		cancel()
		srv.Shutdown(context.Background())
	}()

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}

// sessionCleanup purges expired sessions hourly until ctx is cancelled.
func sessionCleanup(ctx context.Context, db *database.DB) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := db.DeleteExpiredSessions(); err != nil {
				slog.Warn("Session cleanup failed", "error", err)
			} else if n > 0 {
				slog.Debug("Expired sessions removed", "count", n)
			}
		}
	}
}
