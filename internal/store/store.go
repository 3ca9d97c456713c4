// Package store persists the ledger in a single SQLite file.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
)

//go:embed migrations/*.sql
var migrations embed.FS

var (
	// ErrNotFound is returned when a member id does not exist.
	ErrNotFound = errors.New("member not found")
	// ErrReserved is returned when a member operation targets the Profit row.
	ErrReserved = errors.New("profit row is reserved")
	// ErrExceedsDebt is returned when a repayment would drive loan or interest negative.
	ErrExceedsDebt = errors.New("repayment exceeds debt")
	// ErrAlreadyInitialized is returned by Initialize when the schema already exists.
	ErrAlreadyInitialized = errors.New("store already initialized")
	// ErrNotInitialized is returned by Migrate on an empty database.
	ErrNotInitialized = errors.New("store not initialized")
	// ErrCorrupt marks a store whose schema or reserved rows are in an unexpected state.
	ErrCorrupt = errors.New("store is corrupt")
)

// Store is the single long-lived handle on the ledger database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the SQLite database at path. It does not
// touch the schema; call Bootstrap or Initialize next.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Single handle; ":memory:" databases are per-connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Initialize creates the schema and seeds the sentinel credential and the
// Profit row. It fails with ErrAlreadyInitialized if any ledger table exists.
func (s *Store) Initialize(ctx context.Context) error {
	n, err := s.ledgerTables(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrAlreadyInitialized
	}
	s.logger.Info("initializing ledger schema")
	return s.migrate(ctx)
}

// Migrate applies pending migrations to an initialized store.
func (s *Store) Migrate(ctx context.Context) error {
	n, err := s.ledgerTables(ctx)
	if err != nil {
		return err
	}
	switch n {
	case 0:
		return ErrNotInitialized
	case 1:
		return fmt.Errorf("%w: partial schema", ErrCorrupt)
	}
	return s.migrate(ctx)
}

// Bootstrap initializes an empty database or migrates an existing one.
func (s *Store) Bootstrap(ctx context.Context) error {
	err := s.Migrate(ctx)
	if errors.Is(err, ErrNotInitialized) {
		return s.Initialize(ctx)
	}
	return err
}

func (s *Store) ledgerTables(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('credential', 'member')",
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("inspect schema: %w", err)
	}
	return n, nil
}

func (s *Store) migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{s.logger})

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, s.db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, s.db)
	if err != nil {
		return fmt.Errorf("goose version: %w", err)
	}
	s.logger.Info("ledger schema ready", "version", version)
	return nil
}

// gooseLogger routes goose output into slog.
type gooseLogger struct {
	logger *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...), "component", "goose")
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...), "component", "goose")
	os.Exit(1)
}

// withTx runs fn in a transaction, committing only if fn succeeds.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
