package main

import (
	"fmt"
	"log"

	"task-list/api/server"
	"task-list/config"
	"task-list/logger"
	"task-list/tasks/service"
	"task-list/tasks/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("task list failed: %v", err)
	}
}

// run wires the process together and blocks until the server stops
func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	lg := logger.New(cfg.LogLevel, nil)

	lg.Info("Starting task list", map[string]any{
		"version":       cfg.Version,
		"port":          cfg.ServerPort,
		"log_level":     cfg.LogLevel,
		"store_backend": cfg.StoreBackend,
	})

	taskStore, closeStore, err := createTaskStore(cfg, lg)
	if err != nil {
		return fmt.Errorf("store setup failed: %w", err)
	}
	defer closeStore()

	svc := service.New(taskStore, lg)

	srv := server.New(svc, cfg, lg)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// createTaskStore builds the configured backend and a func releasing its resources
func createTaskStore(cfg *config.Config, lg *logger.Logger) (store.TaskStore, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		s, err := store.NewRedisTaskStore(cfg.RedisURL, cfg.RedisKeyPrefix)
		if err != nil {
			return nil, nil, err
		}
		lg.Info("Using Redis task store", map[string]any{
			"key_prefix": cfg.RedisKeyPrefix,
		})
		return s, func() {
			if err := s.Close(); err != nil {
				lg.Error("failed to close Redis connection", map[string]any{"error": err.Error()})
			}
		}, nil

	case config.BackendMemory:
		lg.Info("Using in-memory task store", map[string]any{
			"lock_timeout": cfg.LockTimeout.String(),
		})
		return store.NewMemoryTaskStore(store.WithLockTimeout(cfg.LockTimeout)), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store backend %q", cfg.StoreBackend)
	}
}
