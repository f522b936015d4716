package mirror

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"memoboard/internal/gateway/ports/mirror"
	"memoboard/pkg/logger"
)

// Константы для сообщений об ошибках SQLite.
const (
	ErrEmptyPath    = "empty sqlite path"
	ErrOpenSQLite   = "failed to open sqlite database"
	ErrInitSQLite   = "failed to initialize sqlite schema"
	ErrSQLiteGet    = "failed to read mirror value"
	ErrSQLiteSet    = "failed to write mirror value"
	ErrSQLiteRemove = "failed to delete mirror value"

	LogSQLiteOpened = "sqlite mirror opened"
)

// SQLiteStore хранит зеркало в файле SQLite.
type SQLiteStore struct {
	db *sql.DB
}

var _ mirror.Store = (*SQLiteStore)(nil)

// OpenSQLite открывает (или создает) файл path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New(ErrEmptyPath)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrOpenSQLite, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrOpenSQLite, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", ErrInitSQLite, err)
		}
	}

	logger.Log(ctx).Info(ctx, LogSQLiteOpened, zap.String("path", path))
	return &SQLiteStore{db: db}, nil
}

// Get возвращает значение по ключу.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", ErrSQLiteGet, err)
	}
	return value, true, nil
}

// Set сохраняет значение.
func (s *SQLiteStore) Set(ctx context.Context, key string, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv(key, value, updated_at) VALUES(?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrSQLiteSet, err)
	}
	return nil
}

// Remove удаляет значение.
func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("%s: %w", ErrSQLiteRemove, err)
	}
	return nil
}

// Close закрывает файл базы.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
