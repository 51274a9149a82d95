// Package database is the SQLite backed implementation of domain.Store.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nfrund/learnhub/internal/domain"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store implements domain.Store on SQLite.
type Store struct {
	db        *sql.DB
	timeouts  Timeouts
	writeLock *sync.Mutex // go-sqlite does not support concurrent writes
}

var _ domain.Store = (*Store)(nil)

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string, timeouts Timeouts) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// A single connection keeps :memory: databases shared and serialises access.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	for _, pragma := range []string{"PRAGMA busy_timeout = 5000", "PRAGMA foreign_keys = ON"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %q: %w", pragma, err)
		}
	}

	if err := initializeDB(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize db: %w", err)
	}

	slog.Info("Opened SQLite store", "path", path)
	return &Store{db: db, timeouts: timeouts, writeLock: new(sync.Mutex)}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id                     TEXT    PRIMARY KEY,
	name                   TEXT    NOT NULL,
	username               TEXT    UNIQUE NOT NULL,
	email                  TEXT    UNIQUE NOT NULL COLLATE NOCASE,
	password_hash          BLOB    NOT NULL,
	role                   TEXT    NOT NULL,
	grade                  TEXT    NOT NULL,
	age                    INTEGER NOT NULL DEFAULT 0,
	failed_signin_attempts INTEGER NOT NULL DEFAULT 0,
	registration_date      INTEGER NOT NULL,
	last_login             INTEGER
);

CREATE TABLE IF NOT EXISTS progress (
	user_id        TEXT    PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
	points         INTEGER NOT NULL DEFAULT 0,
	current_streak INTEGER NOT NULL DEFAULT 0,
	longest_streak INTEGER NOT NULL DEFAULT 0,
	last_active_on INTEGER
);

CREATE TABLE IF NOT EXISTS courses (
	id      TEXT PRIMARY KEY,
	name    TEXT UNIQUE NOT NULL,
	subject TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS modules (
	id        TEXT    PRIMARY KEY,
	course_id TEXT    NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
	name      TEXT    NOT NULL,
	position  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS topics (
	id        TEXT    PRIMARY KEY,
	module_id TEXT    NOT NULL REFERENCES modules(id) ON DELETE CASCADE,
	name      TEXT    NOT NULL,
	position  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS lessons (
	id                 TEXT PRIMARY KEY,
	course_id          TEXT NOT NULL,
	module_id          TEXT NOT NULL,
	topic_id           TEXT NOT NULL REFERENCES topics(id) ON DELETE CASCADE,
	title              TEXT NOT NULL,
	learning_objective TEXT NOT NULL,
	content            TEXT NOT NULL DEFAULT '',
	video_filename     TEXT NOT NULL DEFAULT '',
	thumbnail_filename TEXT NOT NULL DEFAULT '',
	textbook_name      TEXT NOT NULL DEFAULT '',
	textbook_pages     TEXT NOT NULL DEFAULT '',
	practice_content   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS quizzes (
	id       TEXT PRIMARY KEY,
	topic_id TEXT NOT NULL DEFAULT '',
	title    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS questions (
	id       TEXT    PRIMARY KEY,
	quiz_id  TEXT    NOT NULL REFERENCES quizzes(id) ON DELETE CASCADE,
	text     TEXT    NOT NULL,
	position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS answers (
	id          TEXT    PRIMARY KEY,
	question_id TEXT    NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
	text        TEXT    NOT NULL,
	correct     INTEGER NOT NULL DEFAULT 0,
	position    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS attempts (
	id           TEXT    PRIMARY KEY,
	quiz_id      TEXT    NOT NULL REFERENCES quizzes(id) ON DELETE CASCADE,
	user_id      TEXT    NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	score        INTEGER NOT NULL,
	total        INTEGER NOT NULL,
	submitted_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS responses (
	attempt_id  TEXT    NOT NULL REFERENCES attempts(id) ON DELETE CASCADE,
	question_id TEXT    NOT NULL,
	answer_id   TEXT    NOT NULL,
	correct     INTEGER NOT NULL,
	PRIMARY KEY (attempt_id, question_id)
);
`

func initializeDB(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	return nil
}

// write runs fn in a transaction under the write lock and the execute deadline.
func (s *Store) write(ctx context.Context, op string, fn func(ctx context.Context, tx *sql.Tx) error) error {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	ctx, cancel := s.timeouts.ExecuteContext(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WrapError(err, op+": begin")
	}
	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback()
		return WrapError(err, op)
	}
	if err := tx.Commit(); err != nil {
		return WrapError(err, op+": commit")
	}
	return nil
}

// isConstraint reports whether err is a uniqueness or primary key violation.
func isConstraint(err error) bool {
	var liteErr *sqlite.Error
	if !errors.As(err, &liteErr) {
		return false
	}
	switch liteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	}
	return false
}

func unixOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Unix()
}

func timeFromNull(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(v.Int64, 0).UTC()
	return &t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
