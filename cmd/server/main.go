package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"amiokay/internal/config"
	"amiokay/internal/cooccur"
	"amiokay/internal/generation"
	"amiokay/internal/insight"
	"amiokay/internal/storage"
	"amiokay/internal/survey"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Configuration & logging
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}

	// 2. Infrastructure
	db, err := storage.Open(cfg.Database.Path, logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	logger.Info().Str("path", cfg.Database.Path).Msg("database ready")

	// 3. Clients
	genClient := generation.NewClient(generation.Config{
		BaseURL: cfg.Generation.BaseURL,
		APIKey:  cfg.Generation.APIKey,
		Model:   cfg.Generation.Model,
		Timeout: cfg.Generation.Timeout,
	})
	if cfg.Generation.APIKey == "" {
		logger.Warn().Msg("no generation API key configured, explanations will use fallback text")
	}

	// 4. Services
	surveyRepo := survey.NewRepository(db)
	seeder := survey.NewSeeder(db, logger, time.Now().UnixNano())
	surveyHandler := survey.NewHandler(surveyRepo, seeder, logger)

	recomputer := cooccur.NewRecomputer(db, logger, cooccur.Config{MinSupport: cfg.Cooccur.MinSupport})
	cooccurHandler := cooccur.NewHandler(recomputer)

	insightRepo := insight.NewRepository(db)
	insightSvc := insight.NewService(insightRepo, genClient, logger)
	insightHandler := insight.NewHandler(insightSvc, func(ctx context.Context, id int64) (string, error) {
		stage, err := surveyRepo.LifeStageByID(ctx, id)
		if err != nil {
			return "", err
		}
		return stage.Name, nil
	})

	// 5. Router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		survey.RegisterRoutes(r, surveyHandler)
		insight.RegisterRoutes(r, insightHandler)
		r.Route("/admin", func(r chi.Router) {
			survey.RegisterAdminRoutes(r, surveyHandler)
			cooccur.RegisterRoutes(r, cooccurHandler)
		})
	})
	r.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info().Str("addr", addr).Msg("server starting")
	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

func newLogger(cfg config.LogConfig) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	logger := zerolog.New(os.Stderr)
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return logger.Level(level).With().Timestamp().Logger(), nil
}
