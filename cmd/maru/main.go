package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"maru/internal/config"
	"maru/internal/storage"
	"maru/internal/task"
	"maru/internal/ui"
)

func main() {
	cfg, err := config.LoadOrCreate(config.ResolveConfigPath())
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	repo, err := openRepository(cfg)
	if err != nil {
		fmt.Printf("failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer repo.Close()

	store := task.NewStore(repo)

	scheduler := task.NewScheduler(store, time.Duration(cfg.ReminderIntervalHours)*time.Hour)
	scheduler.Start()
	defer scheduler.Stop()

	if err := ui.Run(store, cfg); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}

func openRepository(cfg config.Config) (task.Repository, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return storage.OpenSQLite(filepath.Join(cfg.DataDir, "maru.db"))
	case config.BackendJSON, "":
		return storage.OpenFile(cfg.DataDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
