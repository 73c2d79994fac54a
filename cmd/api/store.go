package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Nasaee/taskboard/internal/config"
	"github.com/Nasaee/taskboard/internal/task"
)

// openRepository builds the configured backend. The returned func releases
// any connection it opened.
func openRepository(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (task.TaskRepository, func(), error) {
	noop := func() {}

	switch cfg.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory store, tasks are lost on restart")
		return task.NewMemoryRepository(), noop, nil

	case config.DriverRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, noop, fmt.Errorf("redis ping: %w", err)
		}
		logger.Info("redis connected", "addr", cfg.RedisAddr)
		return task.NewRedisRepository(rdb, cfg.RedisKey, logger), func() { _ = rdb.Close() }, nil

	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, noop, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("postgres ping: %w", err)
		}
		repo, err := task.NewPostgresRepository(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		logger.Info("database pool connected")
		return repo, pool.Close, nil

	case config.DriverSQLite:
		db, err := task.OpenSQLite(cfg.SQLitePath, logger)
		if err != nil {
			return nil, noop, err
		}
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		logger.Info("sqlite opened", "path", cfg.SQLitePath)
		return task.NewSQLiteRepository(db), closeFn, nil

	case config.DriverFile:
		repo := task.NewFileRepository(cfg.DataDir, logger)
		logger.Info("using file store", "path", repo.Path())
		return repo, noop, nil
	}

	return nil, noop, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
