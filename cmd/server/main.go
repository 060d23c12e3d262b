package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/config"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/extract"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/handlers"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/platform"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/storage"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/version"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/worker"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg := config.Load()

	db, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("failed to open database")
	}
	defer db.Close()

	extractionRepo := storage.NewExtractionRepository(db)
	jobRepo := storage.NewJobRepository(db)

	extractor, err := extract.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize extractor")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := worker.NewWorker(jobRepo)
	w.RegisterHandler(storage.JobTypeExtract, extractJobHandler(extractor, extractionRepo, jobRepo))
	w.Start(ctx)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.GET("/health", handlers.Health)

	extractHandler := handlers.NewExtractHandler(extractor, extractionRepo)
	e.POST("/api/extract", extractHandler.Extract)
	e.GET("/api/extractions", extractHandler.List)
	e.GET("/api/extractions/:id", extractHandler.Get)

	jobHandler := handlers.NewJobHandler(jobRepo)
	e.POST("/api/jobs", jobHandler.Create)
	e.GET("/api/jobs", jobHandler.List)
	e.GET("/api/jobs/:id", jobHandler.Get)

	go func() {
		log.Info().Str("version", version.Version).Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(fmt.Sprintf(":%s", cfg.Port)); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	w.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
}

// extractJobHandler runs extraction for a queued job and stores the result
func extractJobHandler(extractor *extract.Extractor, extractionRepo *storage.ExtractionRepository, jobRepo *storage.JobRepository) worker.JobHandler {
	return func(ctx context.Context, job *storage.Job) error {
		content := extractor.Extract(ctx, job.URL)

		extraction := &storage.Extraction{
			URL:        job.URL,
			Platform:   platform.Classify(job.URL).String(),
			SourceType: string(content.Source),
			Content:    content.Text,
		}
		if err := extractionRepo.Create(ctx, extraction); err != nil {
			return fmt.Errorf("store extraction: %w", err)
		}

		return jobRepo.Complete(ctx, job.ID, extraction.ID)
	}
}
