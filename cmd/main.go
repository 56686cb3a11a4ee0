package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/drewanderson201/be-nc-news/internal/core"
	"github.com/drewanderson201/be-nc-news/internal/utils/databaseutils"
	"github.com/drewanderson201/be-nc-news/migrations"
	"github.com/golang-cz/devslog"
	_ "github.com/lib/pq"
)

type application struct {
	config config
	core   *core.Core
	logger *slog.Logger
}

func main() {
	logger := configLogger()
	logger.Info("Starting application...")

	cfg := loadConfig()

	db, err := openDBConnection(cfg)
	if err != nil {
		logger.Error("Error opening database connection", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Error closing database connection", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	logger.Info("Database connection established successfully")

	if cfg.AutoMigrate {
		if err := migrations.Up(db); err != nil {
			logger.Error("Error applying migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Database migrations applied")
	}

	sqlTemplate := databaseutils.NewSQLTemplate(db, cfg.QueryTimeout)

	app := application{
		config: cfg,
		core:   core.NewCore(db, logger, sqlTemplate),
		logger: logger,
	}

	if err := app.serve(); err != nil {
		logger.Error("Error starting server", slog.String("error", err.Error()))
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

func openDBConnection(cfg config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(10 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return db, nil
}
