package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql (migrations)
	"go.uber.org/zap"

	"github.com/adamphillips/atlas/pkg/config"
	"github.com/adamphillips/atlas/pkg/database"
	"github.com/adamphillips/atlas/pkg/handlers"
	"github.com/adamphillips/atlas/pkg/llm"
	"github.com/adamphillips/atlas/pkg/middleware"
	"github.com/adamphillips/atlas/pkg/prompts"
	"github.com/adamphillips/atlas/pkg/repositories"
	"github.com/adamphillips/atlas/pkg/services"
	"github.com/adamphillips/atlas/pkg/webfetch"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("base_url", cfg.BaseURL),
		zap.String("database", cfg.Database.Database),
		zap.String("ai_provider", cfg.AI.Provider))

	ctx := context.Background()

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// golang-migrate needs database/sql rather than the pgx pool.
	sqlDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, cfg.MigrationsDir, logger.Named("migrations")); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	sqlDB.Close()

	generator, err := llm.NewTextGenerator(cfg.AI.Provider, &llm.Config{
		Endpoint:    cfg.AI.BaseURL,
		APIKey:      cfg.AI.APIKey(),
		Temperature: cfg.AI.Temperature,
	}, logger.Named("llm"))
	if err != nil {
		logger.Fatal("Failed to create AI client", zap.Error(err))
	}

	// Repositories
	contactRepo := repositories.NewContactRepository(db)
	interactionRepo := repositories.NewInteractionRepository(db)
	noteRepo := repositories.NewNoteRepository(db)
	factRepo := repositories.NewFactRepository(db)

	// The intelligence pipelines require both their flag and an API key.
	hasKey := cfg.AI.APIKey() != ""
	intelCfg := services.IntelConfig{
		DraftingModel:         cfg.AI.DraftingModel,
		SummarizerModel:       cfg.AI.SummarizerModel,
		FactExtractionEnabled: cfg.AI.FactExtractionEnabled && hasKey,
		SuggestionsEnabled:    cfg.AI.SuggestionsEnabled && hasKey,
	}

	examples := prompts.LoadStyleExamples(cfg.StyleDir)

	// Services
	intelService := services.NewIntelService(
		contactRepo, interactionRepo, noteRepo, factRepo,
		generator, webfetch.NewFetcher(), examples, intelCfg,
		logger.Named("intel"))
	contactService := services.NewContactService(contactRepo, interactionRepo, noteRepo, logger.Named("contacts"))
	interactionService := services.NewInteractionService(interactionRepo, contactRepo, intelService, logger.Named("interactions"))
	noteService := services.NewNoteService(noteRepo, contactRepo, intelService, logger.Named("notes"))
	reportService := services.NewReportService(interactionRepo)

	// Handlers
	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger.Named("health")).RegisterRoutes(mux)
	handlers.NewContactsHandler(contactService, logger.Named("handlers")).RegisterRoutes(mux)
	handlers.NewInteractionsHandler(interactionService, logger.Named("handlers")).RegisterRoutes(mux)
	handlers.NewNotesHandler(noteService, intelService, logger.Named("handlers")).RegisterRoutes(mux)
	handlers.NewDraftsHandler(intelService, logger.Named("handlers")).RegisterRoutes(mux)
	handlers.NewReportsHandler(reportService, logger.Named("handlers")).RegisterRoutes(mux)

	// Serve static UI files
	mux.Handle("/", http.FileServer(http.Dir(cfg.UIDir)))

	handler := middleware.RequestLogger(logger.Named("http"))(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting atlas",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
