package main

import (
	"log/slog"
	"os"
	"sync"

	"github.com/conduitapp/conduit/internal/auth"
	"github.com/conduitapp/conduit/internal/config"
	"github.com/conduitapp/conduit/internal/core"
	"github.com/conduitapp/conduit/internal/database"
	"github.com/golang-cz/devslog"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type application struct {
	config config.Config
	core   *core.Core
	auth   *auth.Auth
	logger *slog.Logger
	wg     sync.WaitGroup
}

func main() {
	logger := configLogger()
	logger.Info("Starting application...")

	// A missing .env is fine, the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Error loading configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.Open(cfg)
	if err != nil {
		logger.Error("Error opening database connection", "error", err)
		os.Exit(1)
	}

	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Error closing database connection", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("Database connection established successfully")

	sqlTemplate := database.NewSQLTemplate(db, cfg.QueryTimeout)
	app := application{
		config: cfg,
		core:   core.NewCore(db, logger, sqlTemplate),
		auth:   auth.New(cfg.JWTSecret),
		logger: logger,
	}

	if err := app.serve(); err != nil {
		logger.Error("Error starting server", "error", err)
		os.Exit(1)
	}
}

func configLogger() *slog.Logger {
	handler := devslog.NewHandler(
		os.Stdout, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     slog.LevelDebug,
			},
			NewLineAfterLog: false,
		})

	return slog.New(handler)
}
