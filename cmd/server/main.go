package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/codeflash/internal/api"
	"github.com/vytor/codeflash/internal/config"
	"github.com/vytor/codeflash/internal/db"
	"github.com/vytor/codeflash/internal/digest"
	"github.com/vytor/codeflash/internal/jobs"
	"github.com/vytor/codeflash/internal/logger"
	"github.com/vytor/codeflash/internal/repository/sqlite"
	"github.com/vytor/codeflash/internal/services"
	"github.com/vytor/codeflash/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("CodeFlash Server Starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("history_worker_count=%d", cfg.HistoryWorkerCount)
	log.Debug("history_queue_size=%d", cfg.HistoryQueueSize)
	log.Debug("digest_interval_minutes=%d", cfg.DigestIntervalMinutes)
	log.Debug("due_limit=%d", cfg.DueLimit)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	deckRepo := sqlite.NewDeckRepository(database.DB)
	cardRepo := sqlite.NewCardRepository(database.DB)
	reviewRepo := sqlite.NewReviewRepository(database.DB)

	historyPool := worker.NewPool(cfg.HistoryWorkerCount, cfg.HistoryQueueSize)
	jobQueue := jobs.NewWorkerQueue(historyPool, reviewRepo)

	deckService := services.NewDeckService(deckRepo, cardRepo, nil)
	cardService := services.NewCardService(cardRepo, deckRepo, jobQueue, nil)
	reviewService := services.NewReviewService(reviewRepo, cardRepo, nil)

	srv := &api.Server{
		DB:            database.DB,
		DeckService:   deckService,
		CardService:   cardService,
		ReviewService: reviewService,
		DueLimit:      cfg.DueLimit,
	}

	historyPool.Start(context.Background())

	reporter := digest.New(deckService, time.Duration(cfg.DigestIntervalMinutes)*time.Minute)
	if err := reporter.Start(); err != nil {
		log.Warn("failed to schedule due digest: %v", err)
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping due digest")
	reporter.Stop()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Reviews accepted before shutdown still get their history written.
	log.Debug("draining history pool, %d pending", historyPool.QueueSize())
	historyPool.Stop()

	log.Info("===========================================")
	log.Info("CodeFlash Server Stopped")
	log.Info("===========================================")
}
