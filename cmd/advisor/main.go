package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/masterclass-labs/architect-advisor/internal/advisor"
	"github.com/masterclass-labs/architect-advisor/internal/api/kroki"
	"github.com/masterclass-labs/architect-advisor/internal/config"
	"github.com/masterclass-labs/architect-advisor/internal/diagram"
	"github.com/masterclass-labs/architect-advisor/internal/history"
	"github.com/masterclass-labs/architect-advisor/internal/provider/gemini"
	"github.com/masterclass-labs/architect-advisor/internal/report"
	"github.com/masterclass-labs/architect-advisor/internal/server"
	"github.com/masterclass-labs/architect-advisor/internal/storage/kv"
	"github.com/masterclass-labs/architect-advisor/internal/telemetry"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	// Initialize OpenTelemetry
	shutdown, err := telemetry.InitTracer("architect-advisor", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	store, err := openStore(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	hist := history.New(store, logger)

	ctx := context.Background()
	genOpts := []gemini.ProviderOption{
		gemini.WithModels(gemini.Models{
			Match:   cfg.Gemini.MatchModel,
			Review:  cfg.Gemini.ReviewModel,
			Explain: cfg.Gemini.ExplainModel,
		}),
	}
	if cfg.Gemini.MaxPromptTokens > 0 {
		genOpts = append(genOpts, gemini.WithMaxPromptTokens(cfg.Gemini.MaxPromptTokens))
	}
	gen, err := gemini.New(ctx, cfg.Gemini.APIKey, logger, genOpts...)
	if err != nil {
		log.Fatalf("Failed to create generation client: %v", err)
	}

	session := advisor.NewSession(gen, hist, logger,
		advisor.WithCallTimeout(cfg.Advisor.CallTimeout()))

	renderer := diagram.NewKrokiRenderer(
		kroki.NewClient(kroki.WithBaseURL(cfg.Renderer.BaseURL)))

	srv := server.New(cfg.Server.Port, logger, session, renderer, report.NewExporter())
	if err := srv.Start(); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}

func openStore(cfg config.StorageConfig) (kv.Store, error) {
	switch cfg.Type {
	case "sqlite":
		return kv.NewSQLiteStore(cfg.SQLite.Path)
	default:
		return kv.NewFileStore(cfg.File.Dir)
	}
}
