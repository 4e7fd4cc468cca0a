package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"chorewheel/internal/chores"
	"chorewheel/internal/config"
	"chorewheel/internal/mcp"
	"chorewheel/internal/store"
)

func main() {
	// stdout carries the MCP protocol; logs go to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %s\n", err)
		os.Exit(1)
	}

	defs, invalid, err := store.LoadDefinitions(cfg.TasksFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "task file error: %s\n", err)
		os.Exit(1)
	}
	for _, e := range invalid {
		logger.Warn("task definition excluded", "task", e.Task, "error", e.Reason)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "database error: %s\n", err)
		os.Exit(1)
	}
	defer db.Close()

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

	s := mcp.NewServer(svc, time.Duration(cfg.TimelineDays)*24*time.Hour)
	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "mcp server error: %s\n", err)
		os.Exit(1)
	}
}
