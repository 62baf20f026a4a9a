package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"tasktracker/internal/models"
)

// Fixed file names inside the data directory.
const (
	TasksFile    = "tasks.json"
	SettingsFile = "settings.json"
)

// JSONStore implements Gateway with two JSON files in a data directory.
type JSONStore struct {
	dir string
}

// NewJSONStore creates a JSON store rooted at dir, creating the directory if
// needed.
func NewJSONStore(dir string) (*JSONStore, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	return &JSONStore{dir: dir}, nil
}

// TasksPath returns the location of the task file.
func (s *JSONStore) TasksPath() string {
	return filepath.Join(s.dir, TasksFile)
}

// SettingsPath returns the location of the settings file.
func (s *JSONStore) SettingsPath() string {
	return filepath.Join(s.dir, SettingsFile)
}

// SaveTasks writes the task list as [{"text": ..., "completed": ...}].
func (s *JSONStore) SaveTasks(ctx context.Context, tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}
	return writeJSON(s.TasksPath(), tasks)
}

// LoadTasks reads the task list. It returns ErrNotFound if the file has never
// been written.
func (s *JSONStore) LoadTasks(ctx context.Context) ([]models.Task, error) {
	data, err := readFile(s.TasksPath())
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := decodeValidated(s.TasksPath(), data, tasksSchema, &tasks); err != nil {
		return nil, err
	}
	return numbered(tasks), nil
}

// SaveSettings writes the settings record.
func (s *JSONStore) SaveSettings(ctx context.Context, settings models.Settings) error {
	return writeJSON(s.SettingsPath(), settings)
}

// LoadSettings reads the settings record. Defaults are returned together with
// ErrNotFound or a CorruptDataError.
func (s *JSONStore) LoadSettings(ctx context.Context) (models.Settings, error) {
	data, err := readFile(s.SettingsPath())
	if err != nil {
		return models.DefaultSettings(), err
	}

	var settings models.Settings
	if err := decodeValidated(s.SettingsPath(), data, settingsSchema, &settings); err != nil {
		return models.DefaultSettings(), err
	}
	return settings.Normalize(), nil
}

// Close is a no-op; files are not held open between calls.
func (s *JSONStore) Close() error {
	return nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')

	// Write beside the target and rename so a crash never leaves half a file.
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}
