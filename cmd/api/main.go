package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Nasaee/taskboard/internal/config"
	"github.com/Nasaee/taskboard/internal/env"
	"github.com/Nasaee/taskboard/internal/logging"
	"github.com/Nasaee/taskboard/internal/task"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config (default $TASKBOARD_CONFIG or taskboard.toml)")
	flag.Parse()

	env.Init()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Logger
	logger := logging.New(logging.Options{
		Level:           cfg.Log.Level,
		Format:          cfg.Log.Format,
		ReportTimestamp: cfg.Log.Timestamps,
		Prefix:          "taskboard",
	})
	slog.SetDefault(logger)

	// cancelled on Ctrl-C or SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openRepository(ctx, cfg.Store, logger)
	if err != nil {
		logger.Error("failed to open task store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	api := application{
		config:      cfg,
		logger:      logger,
		taskService: task.NewService(repo),
	}

	if err := api.run(ctx, api.mount()); err != nil {
		logger.Error("server exited with error", "error", err)
		closeRepo()
		stop()
		os.Exit(1)
	}
}
