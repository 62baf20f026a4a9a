package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"tasktracker/internal/models"
)

// DatabaseFile is the SQLite file name inside the data directory.
const DatabaseFile = "tasktracker.db"

// SQLitePath returns the database location for a data directory.
func SQLitePath(dataDir string) string {
	return filepath.Join(dataDir, DatabaseFile)
}

const themeKey = "theme"

// SQLiteStore implements Gateway using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (and migrates) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := ensureDir(filepath.Dir(dbPath)); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and writes ordered.
	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteStore{db: db, path: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveTasks replaces the stored list with tasks, in order.
func (s *SQLiteStore) SaveTasks(ctx context.Context, tasks []models.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO tasks (position, text, completed) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, task := range tasks {
		if _, err := stmt.ExecContext(ctx, i, task.Text, task.Completed); err != nil {
			return fmt.Errorf("failed to save task %d: %w", i+1, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO task_saves (id, task_count, saved_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET task_count = excluded.task_count, saved_at = excluded.saved_at
	`, len(tasks), time.Now())
	if err != nil {
		return fmt.Errorf("failed to record save: %w", err)
	}

	return tx.Commit()
}

// LoadTasks returns the saved list ordered by position, or ErrNotFound if the
// list was never saved.
func (s *SQLiteStore) LoadTasks(ctx context.Context) ([]models.Task, error) {
	var saved int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM task_saves`).Scan(&saved); err != nil {
		return nil, fmt.Errorf("failed to check saved tasks: %w", err)
	}
	if saved == 0 {
		return nil, ErrNotFound
	}

	rows, err := s.db.QueryContext(ctx, `SELECT text, completed FROM tasks ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.Text, &task.Completed); err != nil {
			return nil, &CorruptDataError{Path: s.path, Err: fmt.Errorf("scan task: %w", err)}
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return numbered(tasks), nil
}

// SaveSettings stores the settings record.
func (s *SQLiteStore) SaveSettings(ctx context.Context, settings models.Settings) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, themeKey, string(settings.Theme), time.Now())
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// LoadSettings returns the stored settings, or defaults with ErrNotFound.
func (s *SQLiteStore) LoadSettings(ctx context.Context) (models.Settings, error) {
	var theme string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, themeKey).Scan(&theme)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DefaultSettings(), ErrNotFound
		}
		return models.DefaultSettings(), fmt.Errorf("failed to load settings: %w", err)
	}

	return models.Settings{Theme: models.Theme(theme)}.Normalize(), nil
}
