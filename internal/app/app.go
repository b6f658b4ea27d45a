package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/ladzin/modula/internal/config"
	"github.com/ladzin/modula/internal/cue"
	"github.com/ladzin/modula/internal/storage"
	"github.com/ladzin/modula/internal/store"
)

// App holds the application state and dependencies
type App struct {
	Config   config.Config
	DB       *storage.DB
	Store    *store.Store
	DataDir  string
	lockFile *flock.Flock
}

// New wires config, the single-instance lock, storage and the store
func New(cfg config.Config) (*App, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = storage.DefaultDataDir()
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	a := &App{
		Config:  cfg,
		DataDir: dataDir,
	}

	if err := a.acquireLock(); err != nil {
		return nil, err
	}

	db, err := storage.Open(filepath.Join(dataDir, "modula.db"))
	if err != nil {
		a.releaseLock()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a.DB = db

	state, err := db.Load()
	if err != nil {
		db.Close()
		a.releaseLock()
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	var player cue.Player = cue.Null{}
	if !cfg.DisableCues {
		player = cue.NewTerminal()
	}

	a.Store = store.New(store.Options{
		Initial:   &state,
		Cues:      player,
		Persister: db,
	})

	return a, nil
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.DataDir, "modula.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another instance of modula is already running")
	}
	return nil
}

func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	a.releaseLock()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
