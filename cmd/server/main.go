package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lribeiro/flashdeck/internal/api"
	"github.com/lribeiro/flashdeck/internal/clock"
	"github.com/lribeiro/flashdeck/internal/config"
	"github.com/lribeiro/flashdeck/internal/db"
	"github.com/lribeiro/flashdeck/internal/jobs"
	"github.com/lribeiro/flashdeck/internal/logger"
	"github.com/lribeiro/flashdeck/internal/repository/sqlite"
	"github.com/lribeiro/flashdeck/internal/scheduler"
	"github.com/lribeiro/flashdeck/internal/services"
	"github.com/lribeiro/flashdeck/internal/worker"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Default().Error("%v", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("FlashDeck Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("persist_worker_count=%d", cfg.PersistWorkerCount)
	log.Debug("persist_queue_size=%d", cfg.PersistQueueSize)
	log.Debug("max_interval_days=%d", cfg.MaxIntervalDays)
	log.Debug("activity_days=%d", cfg.ActivityDays)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Repositories
	deckRepo := sqlite.NewDeckRepository(database.DB)
	folderRepo := sqlite.NewFolderRepository(database.DB)
	statsRepo := sqlite.NewStatsRepository(database.DB)
	settingsRepo := sqlite.NewSettingsRepository(database.DB)

	// Background persistence
	persistPool := worker.NewPool(cfg.PersistWorkerCount, cfg.PersistQueueSize)
	queue := jobs.NewWorkerQueue(persistPool, deckRepo, statsRepo)

	// Services
	clk := clock.System()
	sched := scheduler.Scheduler{MaxIntervalDays: cfg.MaxIntervalDays}
	tracker := services.NewStatsTracker(statsRepo, clk)
	deckService := services.NewDeckService(deckRepo, clk)
	folderService := services.NewFolderService(folderRepo, clk)
	studyService := services.NewStudyService(deckRepo, tracker, queue, clk, sched)
	statsService := services.NewStatsService(deckRepo, statsRepo, tracker, clk)
	settingsService := services.NewSettingsService(settingsRepo)

	srv := &api.Server{
		DB:           database,
		Decks:        deckService,
		Folders:      folderService,
		Study:        studyService,
		Stats:        statsService,
		Settings:     settingsService,
		ActivityDays: cfg.ActivityDays,
	}

	ctx, cancel := context.WithCancel(context.Background())
	persistPool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Shutdown HTTP server first so no new saves get enqueued.
	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Drain pending saves before cancelling the worker context.
	log.Debug("stopping persistence pool")
	persistPool.Stop()
	cancel()

	log.Info("===========================================")
	log.Info("FlashDeck Server Stopped")
	log.Info("===========================================")
}
