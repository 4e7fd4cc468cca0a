package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chorewheel/internal/api"
	"chorewheel/internal/chores"
	"chorewheel/internal/config"
	"chorewheel/internal/store"
)

func main() {
	// Logger
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Task definitions: invalid entries are excluded and logged, not fatal.
	defs, invalid, err := store.LoadDefinitions(cfg.TasksFile)
	if err != nil {
		logger.Error("failed to load task definitions", "error", err)
		os.Exit(1)
	}
	for _, e := range invalid {
		logger.Warn("task definition excluded", "task", e.Task, "error", e.Reason)
	}
	logger.Info("task definitions loaded", "active", len(defs), "excluded", len(invalid))

	// Completion log
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Service
	cachePath := ""
	if cfg.StatusCache {
		cachePath = cfg.TasksFile
	}
	svc := chores.NewService(
		defs,
		store.NewCompletionStore(db),
		cachePath,
		time.Duration(cfg.LockWaitMS)*time.Millisecond,
		logger,
	)

	// Router
	defaultTimeline := time.Duration(cfg.TimelineDays) * 24 * time.Hour
	router := api.NewRouter(db, svc, defaultTimeline, cfg.APIKey, logger)

	// Server
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("chore server starting", "addr", addr, "tasks", len(defs))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
