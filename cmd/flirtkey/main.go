package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/azizmatyakubov/flirtkey/internal/api"
	"github.com/azizmatyakubov/flirtkey/internal/backend"
	"github.com/azizmatyakubov/flirtkey/internal/coach"
	"github.com/azizmatyakubov/flirtkey/internal/config"
	"github.com/azizmatyakubov/flirtkey/internal/events"
	"github.com/azizmatyakubov/flirtkey/internal/generate"
	"github.com/azizmatyakubov/flirtkey/internal/history"
	"github.com/azizmatyakubov/flirtkey/internal/ocr"
	"github.com/azizmatyakubov/flirtkey/internal/usage"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("flirtkey starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	hist, err := history.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer hist.Close()
	slog.Info("database connected")

	// Redis usage store
	usageStore, err := usage.Connect(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer usageStore.Close()
	slog.Info("redis connected")

	// Generation backend
	if cfg.GenerationAPIKey == "" {
		slog.Error("GENERATION_API_KEY is required")
		os.Exit(1)
	}
	llm := backend.NewClient(cfg.GenerationModel, cfg.GenerationMaxTokens, cfg.GenerationTemperature)
	slog.Info("generation backend ready", "model", cfg.GenerationModel)

	gen := generate.New(llm, generate.Settings{
		Style: coach.UserStyleProfile{
			Formality:        cfg.Formality,
			UseAbbreviations: cfg.UseAbbreviations,
		},
		Coaching: cfg.CoachingMode,
	}, slog.Default())

	ocrClient := ocr.NewClient()

	// Events (optional — the pipeline works without NATS, just no events)
	var publisher *events.Publisher
	if cfg.NatsURL != "" {
		publisher, err = events.Connect(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS not configured — running without events")
	}

	deps := api.Deps{
		Generator:        gen,
		History:          hist,
		Usage:            usageStore,
		OCR:              ocrClient,
		GenerationAPIKey: cfg.GenerationAPIKey,
		OCRAPIKey:        cfg.OCRAPIKey,
		APIToken:         cfg.APIToken,
		Logger:           slog.Default(),
	}
	if publisher != nil {
		deps.Events = publisher
	}

	srv := api.NewServer(cfg.Port, deps)
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("flirtkey ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("flirtkey stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
