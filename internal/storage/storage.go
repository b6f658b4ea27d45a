package storage

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/ladzin/modula/internal/store"
)

//go:embed migrations/*.sql
var migrations embed.FS

// stateKey is the fixed identifier the whole snapshot lives under
const stateKey = "modula-state"

// DB wraps the SQLite connection that holds the persisted state blob
type DB struct {
	*sql.DB
}

// DefaultDataDir returns the default data directory path
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".modula"
	}
	return filepath.Join(home, ".local", "share", "modula")
}

// DefaultDBPath returns the default database file path
func DefaultDBPath() string {
	return filepath.Join(DefaultDataDir(), "modula.db")
}

// Open opens the database and runs migrations
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// WAL keeps the file safe to sync between machines
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", dbPath)
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &DB{DB: sqlDB}

	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// migrate runs database migrations using embedded SQL files
func (db *DB) migrate() error {
	// Silence goose logging (it corrupts TUI output)
	goose.SetLogger(log.New(io.Discard, "", 0))
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.Up(db.DB, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// Save writes the snapshot under the fixed key. Implements
// store.Persister.
func (db *DB) Save(state store.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	_, err = db.Exec(`
		INSERT INTO state (key, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, stateKey, string(data))
	return err
}

// Load reads the last saved snapshot. A missing or corrupt blob is not
// an error: the application starts over with an empty state.
func (db *DB) Load() (store.State, error) {
	var data string
	err := db.QueryRow(`SELECT data FROM state WHERE key = ?`, stateKey).Scan(&data)
	if err == sql.ErrNoRows {
		return store.State{}, nil
	}
	if err != nil {
		return store.State{}, err
	}

	var state store.State
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		log.Printf("warning: discarding corrupt state blob: %v", err)
		return store.State{}, nil
	}
	return state, nil
}
