package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	_ "github.com/glebarez/go-sqlite"

	"go.hackfix.me/kangyang/db/migrator"
	"go.hackfix.me/kangyang/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store is a store backed by a single SQLite table.
type Store struct {
	db     *sql.DB
	ctx    context.Context
	logger *slog.Logger
}

var _ store.Store = &Store{}

// Option is a function that allows configuring the store.
type Option func(*Store)

// WithLogger sets the logger used to report applied migrations.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Open opens the SQLite database at path, and brings its schema up to date.
// path can be ":memory:" or any URI supported by the driver.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer, and in-memory databases are private to
	// the connection that created them.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, ctx: ctx, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) migrate() error {
	dir, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	migrations, err := migrator.Load(dir)
	if err != nil {
		return err
	}

	err = migrator.Run(s.ctx, s.db, migrations, migrator.Up, migrator.All, s.logger)
	if err != nil {
		return fmt.Errorf("failed migrating store schema: %w", err)
	}

	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value of key.
func (s *Store) Get(key string) (value []byte, ok bool, err error) {
	err = s.db.QueryRowContext(s.ctx,
		`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, mapErr(err)
	}

	return value, true, nil
}

// Set writes value under key.
func (s *Store) Set(key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.ExecContext(s.ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`, key, value)

	return mapErr(err)
}

// Delete removes key.
func (s *Store) Delete(key string) error {
	_, err := s.db.ExecContext(s.ctx, `DELETE FROM kv WHERE key = ?`, key)
	return mapErr(err)
}

// Keys returns all keys with the given prefix.
func (s *Store) Keys(prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(s.ctx,
		`SELECT key FROM kv WHERE key >= ? ORDER BY key`, prefix)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		// Keys are sorted, so nothing after the first mismatch can match.
		if !strings.HasPrefix(key, prefix) {
			break
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}

func mapErr(err error) error {
	if err != nil && strings.Contains(err.Error(), "database is closed") {
		return store.ErrClosed
	}
	return err
}
