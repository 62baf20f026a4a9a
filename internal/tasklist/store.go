// Package tasklist holds the ordered, positionally numbered task collection.
package tasklist

import (
	"fmt"
	"strings"

	"tasktracker/internal/models"
)

// OutOfRangeError reports a position that does not address an existing task.
type OutOfRangeError struct {
	Position int
	Len      int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("position %d out of range [0, %d)", e.Position, e.Len)
}

// Store owns the ordered task collection. Every structural change keeps
// tasks[i].DisplayIndex == i+1.
type Store struct {
	tasks []models.Task
}

// New creates an empty Store.
func New() *Store {
	return &Store{}
}

// Add appends a new incomplete task. Text is trimmed; empty text returns
// models.ErrInvalidInput and leaves the collection untouched.
func (s *Store) Add(text string) (models.Task, error) {
	task := models.Task{
		DisplayIndex: len(s.tasks) + 1,
		Text:         strings.TrimSpace(text),
	}
	if err := task.Validate(); err != nil {
		return models.Task{}, err
	}

	s.tasks = append(s.tasks, task)
	return task, nil
}

// ToggleCompletion flips the completed flag of the task at position.
func (s *Store) ToggleCompletion(position int) error {
	if err := s.check(position); err != nil {
		return err
	}
	s.tasks[position].Completed = !s.tasks[position].Completed
	return nil
}

// Remove deletes the task at position and renumbers the tasks after it.
func (s *Store) Remove(position int) error {
	if err := s.check(position); err != nil {
		return err
	}

	s.tasks = append(s.tasks[:position], s.tasks[position+1:]...)
	for i := position; i < len(s.tasks); i++ {
		s.tasks[i].DisplayIndex--
	}
	return nil
}

// ReplaceAll swaps in a new collection, re-deriving every display index from
// position regardless of what the incoming tasks carry.
func (s *Store) ReplaceAll(tasks []models.Task) {
	s.tasks = make([]models.Task, len(tasks))
	copy(s.tasks, tasks)
	s.renumber()
}

// CompletionRatio returns completed/total, or 0 for an empty collection.
func (s *Store) CompletionRatio() float64 {
	if len(s.tasks) == 0 {
		return 0
	}
	return float64(s.CompletedCount()) / float64(len(s.tasks))
}

// CompletedCount returns the number of completed tasks.
func (s *Store) CompletedCount() int {
	n := 0
	for _, t := range s.tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// At returns a copy of the task at position.
func (s *Store) At(position int) (models.Task, error) {
	if err := s.check(position); err != nil {
		return models.Task{}, err
	}
	return s.tasks[position], nil
}

// Tasks returns a copy of the collection in display order.
func (s *Store) Tasks() []models.Task {
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) check(position int) error {
	if position < 0 || position >= len(s.tasks) {
		return &OutOfRangeError{Position: position, Len: len(s.tasks)}
	}
	return nil
}

func (s *Store) renumber() {
	for i := range s.tasks {
		s.tasks[i].DisplayIndex = i + 1
	}
}
