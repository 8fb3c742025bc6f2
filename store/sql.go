package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLStore keeps every key as a row of a single table.
//
// Table:
//
//	collections(name, payload)  PRIMARY KEY (name)
//
// The same statements serve SQLite and PostgreSQL; placeholders are
// rebound for the driver in use.
type SQLStore struct {
	mu sync.RWMutex
	db *sqlx.DB
}

// NewSqliteStore opens (or creates) a SQLite database at dbPath in WAL mode.
func NewSqliteStore(dbPath string) (*SQLStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}
	db, err := sqlx.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	return NewSQLStore(db)
}

// NewPostgresStore connects to PostgreSQL using dsn.
func NewPostgresStore(dsn string) (*SQLStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return NewSQLStore(db)
}

// NewSQLStore wraps an open database and makes sure the table exists.
func NewSQLStore(db *sqlx.DB) (*SQLStore, error) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		payload TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create collections table: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var payload string
	err := s.db.Get(&payload, s.db.Rebind("SELECT payload FROM collections WHERE name = ?"), key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return payload, true, nil
}

func (s *SQLStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(s.db.Rebind(
		`INSERT INTO collections (name, payload) VALUES (?, ?)
		 ON CONFLICT (name) DO UPDATE SET payload = excluded.payload`),
		key, value,
	)
	return err
}

func (s *SQLStore) Delete(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.Exec(s.db.Rebind("DELETE FROM collections WHERE name = ?"), key)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *SQLStore) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var names []string
	if err := s.db.Select(&names, "SELECT name FROM collections ORDER BY name"); err != nil {
		return nil, err
	}
	return names, nil
}
