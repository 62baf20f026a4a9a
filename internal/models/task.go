package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is returned when a task has no text to show.
var ErrInvalidInput = errors.New("task text is required")

// Task represents a single entry in the task list.
//
// DisplayIndex is the task's 1-based position in its collection. It is owned by
// the collection and is never persisted.
type Task struct {
	DisplayIndex int    `json:"-"`
	Text         string `json:"text"`
	Completed    bool   `json:"completed"`
}

// Validate checks that the task has valid field values.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return ErrInvalidInput
	}
	return nil
}

// Label returns the row label shown for the task, e.g. "2. Walk dog".
func (t *Task) Label() string {
	return fmt.Sprintf("%d. %s", t.DisplayIndex, t.Text)
}
