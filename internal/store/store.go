package store

import (
	"context"
	"errors"
	"fmt"

	"tasktracker/internal/models"
)

// ErrNotFound is returned when nothing has been persisted yet. Callers treat
// it as a first run, not a failure.
var ErrNotFound = errors.New("no saved data")

// CorruptDataError reports persisted content that does not have the expected
// shape. Callers recover by starting from an empty list or default settings.
type CorruptDataError struct {
	Path string // file or database the content came from
	Err  error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt data in %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *CorruptDataError) Unwrap() error {
	return e.Err
}

// Gateway defines the persistence operations for the task list and settings.
type Gateway interface {
	// Task list. Only text and completion are persisted; LoadTasks derives
	// display indices from position.
	SaveTasks(ctx context.Context, tasks []models.Task) error
	LoadTasks(ctx context.Context) ([]models.Task, error)

	// Settings. LoadSettings returns usable settings alongside ErrNotFound or
	// a CorruptDataError.
	SaveSettings(ctx context.Context, settings models.Settings) error
	LoadSettings(ctx context.Context) (models.Settings, error)

	// Lifecycle
	Close() error
}

// Open returns the gateway for the named backend rooted at dataDir.
func Open(backend, dataDir string) (Gateway, error) {
	switch backend {
	case "", BackendJSON:
		return NewJSONStore(dataDir)
	case BackendSQLite:
		return NewSQLiteStore(SQLitePath(dataDir))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

func numbered(tasks []models.Task) []models.Task {
	for i := range tasks {
		tasks[i].DisplayIndex = i + 1
	}
	return tasks
}
