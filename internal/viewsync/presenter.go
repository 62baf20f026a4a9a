package viewsync

import (
	"fmt"

	"tasktracker/internal/models"
)

// RowID is an opaque handle for one presented row, issued by the Presenter.
// It identifies the row, not a position: positions are resolved by the
// Controller at event time.
type RowID uint64

// Level classifies a notice.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// MarshalText encodes the level by name.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes a level name.
func (l *Level) UnmarshalText(text []byte) error {
	switch string(text) {
	case "info":
		*l = LevelInfo
	case "warning":
		*l = LevelWarning
	case "error":
		*l = LevelError
	default:
		return fmt.Errorf("unknown notice level %q", text)
	}
	return nil
}

// Notice is a non-blocking message for the user.
type Notice struct {
	Level   Level  `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Presenter is the presentation layer driven by the Controller. Rows are kept
// in the order they were appended minus the ones destroyed.
type Presenter interface {
	AppendRow(task models.Task) RowID
	DestroyRow(row RowID)
	RelabelRow(row RowID, displayIndex int)
	MarkRow(row RowID, completed bool)
	DestroyAllRows()
	SetProgress(percent int, label string)
	ApplyTheme(theme models.Theme)
	Notify(notice Notice)
}
