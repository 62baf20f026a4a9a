package tasklist

import (
	"errors"
	"math/rand"
	"testing"

	"tasktracker/internal/models"
)

func assertNumbering(t *testing.T, s *Store) {
	t.Helper()
	for i, task := range s.Tasks() {
		if task.DisplayIndex != i+1 {
			t.Fatalf("position %d: expected display index %d, got %d", i, i+1, task.DisplayIndex)
		}
	}
}

func texts(s *Store) []string {
	var out []string
	for _, task := range s.Tasks() {
		out = append(out, task.Text)
	}
	return out
}

func TestAdd_AppendsWithNextIndex(t *testing.T) {
	s := New()

	first, err := s.Add("Buy milk")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	second, err := s.Add("  Walk dog  ")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if first.DisplayIndex != 1 || second.DisplayIndex != 2 {
		t.Errorf("expected indices 1 and 2, got %d and %d", first.DisplayIndex, second.DisplayIndex)
	}
	if second.Text != "Walk dog" {
		t.Errorf("expected trimmed text, got %q", second.Text)
	}
	if second.Completed {
		t.Error("new task should not be completed")
	}
}

func TestAdd_RejectsBlankText(t *testing.T) {
	s := New()
	s.Add("keep")

	for _, text := range []string{"", "   ", "\t"} {
		if _, err := s.Add(text); !errors.Is(err, models.ErrInvalidInput) {
			t.Errorf("Add(%q): expected ErrInvalidInput, got %v", text, err)
		}
	}
	if s.Len() != 1 {
		t.Errorf("expected blank adds to be no-ops, got %d tasks", s.Len())
	}
}

func TestToggleCompletion(t *testing.T) {
	s := New()
	s.Add("A")
	s.Add("B")

	if err := s.ToggleCompletion(1); err != nil {
		t.Fatalf("ToggleCompletion failed: %v", err)
	}
	b, _ := s.At(1)
	if !b.Completed {
		t.Error("expected B to be completed")
	}

	s.ToggleCompletion(1)
	b, _ = s.At(1)
	if b.Completed {
		t.Error("expected second toggle to clear completion")
	}
	if got := texts(s); got[0] != "A" || got[1] != "B" {
		t.Errorf("toggle must not reorder, got %v", got)
	}
}

func TestOutOfRange(t *testing.T) {
	s := New()
	s.Add("only")

	for _, pos := range []int{-1, 1, 5} {
		var oor *OutOfRangeError
		if err := s.ToggleCompletion(pos); !errors.As(err, &oor) {
			t.Errorf("ToggleCompletion(%d): expected OutOfRangeError, got %v", pos, err)
		}
		if err := s.Remove(pos); !errors.As(err, &oor) {
			t.Errorf("Remove(%d): expected OutOfRangeError, got %v", pos, err)
		}
		if _, err := s.At(pos); !errors.As(err, &oor) {
			t.Errorf("At(%d): expected OutOfRangeError, got %v", pos, err)
		}
	}
	if s.Len() != 1 {
		t.Errorf("expected collection unchanged, got %d tasks", s.Len())
	}
}

func TestRemove_MidListRenumbers(t *testing.T) {
	s := New()
	s.Add("A")
	s.Add("B")
	s.Add("C")

	if err := s.Remove(1); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	tasks := s.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Text != "A" || tasks[0].DisplayIndex != 1 {
		t.Errorf("expected {1 A}, got %+v", tasks[0])
	}
	if tasks[1].Text != "C" || tasks[1].DisplayIndex != 2 {
		t.Errorf("expected {2 C}, got %+v", tasks[1])
	}
}

func TestNumberingHoldsAcrossRandomEdits(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := New()

	for i := 0; i < 500; i++ {
		if s.Len() == 0 || rng.Intn(3) > 0 {
			s.Add("task")
		} else {
			s.Remove(rng.Intn(s.Len()))
		}
		assertNumbering(t, s)
	}
}

func TestCompletionRatio(t *testing.T) {
	s := New()
	if got := s.CompletionRatio(); got != 0 {
		t.Errorf("empty store: expected 0, got %v", got)
	}

	s.Add("A")
	s.Add("B")
	s.Add("C")
	s.ToggleCompletion(0)

	if got, want := s.CompletionRatio(), 1.0/3.0; got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
	if s.CompletedCount() != 1 {
		t.Errorf("expected 1 completed, got %d", s.CompletedCount())
	}

	s.ToggleCompletion(1)
	s.ToggleCompletion(2)
	if got := s.CompletionRatio(); got != 1 {
		t.Errorf("all done: expected 1, got %v", got)
	}
}

func TestReplaceAll_RepairsIndices(t *testing.T) {
	s := New()
	s.Add("stale")

	incoming := []models.Task{
		{DisplayIndex: 7, Text: "X", Completed: true},
		{DisplayIndex: 7, Text: "Y"},
		{DisplayIndex: 0, Text: "Z"},
	}
	s.ReplaceAll(incoming)

	assertNumbering(t, s)
	if got := texts(s); len(got) != 3 || got[0] != "X" || got[2] != "Z" {
		t.Errorf("unexpected contents %v", got)
	}
	if incoming[0].DisplayIndex != 7 {
		t.Error("ReplaceAll must not modify the caller's slice")
	}

	s.ReplaceAll(nil)
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d", s.Len())
	}
}

func TestTasks_ReturnsCopy(t *testing.T) {
	s := New()
	s.Add("A")

	tasks := s.Tasks()
	tasks[0].Text = "mutated"

	got, _ := s.At(0)
	if got.Text != "A" {
		t.Errorf("store was mutated through Tasks(): %q", got.Text)
	}
}
