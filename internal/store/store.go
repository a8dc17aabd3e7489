// Package store keeps notes and reminders in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"jarvis/internal/gateway"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Note is a saved note.
type Note struct {
	ID        int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Reminder is a saved reminder.
type Reminder struct {
	ID        int64
	Title     string
	DueAt     time.Time
	CreatedAt time.Time
}

// Store is a SQLite-backed note and reminder store.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and applies migrations.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)

	if err := migrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, now: now}, nil
}

func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	// m.Close would also close db; only the source is released here.
	defer src.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// now returns UTC time truncated to seconds.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func titleKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// SaveNote stores a note, replacing the content of a note with the same
// title (compared case-insensitively).
func (s *Store) SaveNote(ctx context.Context, title, content string) error {
	ts := s.now()
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO notes(title, title_key, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(title_key) DO UPDATE SET title=excluded.title, content=excluded.content, updated_at=excluded.updated_at;
	`, title, titleKey(title), content, ts, ts)
	if err != nil {
		return fmt.Errorf("save note %q: %w", title, err)
	}
	return nil
}

// LoadNote returns a note's content, or gateway.ErrNotFound.
func (s *Store) LoadNote(ctx context.Context, title string) (string, error) {
	row := s.db.QueryRowContext(ctx, `SELECT content FROM notes WHERE title_key = ?`, titleKey(title))
	var content string
	if err := row.Scan(&content); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("note %q: %w", title, gateway.ErrNotFound)
		}
		return "", fmt.Errorf("load note %q: %w", title, err)
	}
	return content, nil
}

// Notes lists all notes, most recently updated first.
func (s *Store) Notes(ctx context.Context) ([]Note, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, title, content, created_at, updated_at FROM notes ORDER BY updated_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()
	var out []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// SaveReminder stores a reminder due at dueAt.
func (s *Store) SaveReminder(ctx context.Context, title string, dueAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO reminders(title, due_at, created_at) VALUES (?, ?, ?)`,
		title, dueAt.UTC(), s.now())
	if err != nil {
		return fmt.Errorf("save reminder %q: %w", title, err)
	}
	return nil
}

// Reminders lists reminders due at or after from, soonest first.
func (s *Store) Reminders(ctx context.Context, from time.Time) ([]Reminder, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, title, due_at, created_at FROM reminders WHERE due_at >= ? ORDER BY due_at, id`, from.UTC())
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()
	var out []Reminder
	for rows.Next() {
		var r Reminder
		if err := rows.Scan(&r.ID, &r.Title, &r.DueAt, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
