package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tasktracker/internal/models"
	"tasktracker/internal/store"
	"tasktracker/internal/tasklist"
	"tasktracker/internal/viewsync"
)

func setupModel(t *testing.T) (*Model, *viewsync.Controller, *store.JSONStore) {
	t.Helper()

	gateway, err := store.NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore failed: %v", err)
	}

	ctx := context.Background()
	m := New(ctx)
	ctrl := viewsync.New(tasklist.New(), gateway, m)
	m.Attach(ctrl)
	ctrl.Start(ctx)
	return m, ctrl, gateway
}

func send(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func typeText(m *Model, text string) {
	send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	send(m, tea.KeyMsg{Type: tea.KeyEnter})
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func labels(m *Model) []string {
	out := make([]string, len(m.rows))
	for i, r := range m.rows {
		out[i] = r.task.Label()
	}
	return out
}

func TestModel_AddFromInput(t *testing.T) {
	m, ctrl, _ := setupModel(t)

	typeText(m, "buy milk")

	if got := labels(m); len(got) != 1 || got[0] != "1. buy milk" {
		t.Fatalf("expected [1. buy milk], got %v", got)
	}
	if m.input.Value() != "" {
		t.Errorf("expected input cleared, got %q", m.input.Value())
	}
	if ctrl.Tasks()[0].Text != "buy milk" {
		t.Errorf("expected controller to hold task, got %+v", ctrl.Tasks())
	}
}

func TestModel_BlankInputKept(t *testing.T) {
	m, _, _ := setupModel(t)

	typeText(m, "   ")

	if len(m.rows) != 0 {
		t.Fatalf("expected no rows, got %v", labels(m))
	}
	if m.input.Value() != "   " {
		t.Errorf("expected input left untouched, got %q", m.input.Value())
	}
}

func TestModel_ToggleAfterDeleteHitsShiftedTask(t *testing.T) {
	m, ctrl, _ := setupModel(t)
	for _, text := range []string{"a", "b", "c"} {
		typeText(m, text)
	}

	send(m, tea.KeyMsg{Type: tea.KeyTab})
	send(m, keyRune('d'))
	// The cursor stays at the top row, which is now "b".
	send(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	tasks := ctrl.Tasks()
	if len(tasks) != 2 || tasks[0].Text != "b" || !tasks[0].Completed {
		t.Fatalf("expected b completed at position 0, got %+v", tasks)
	}
	if got := labels(m); got[0] != "1. b" || got[1] != "2. c" {
		t.Errorf("expected renumbered labels, got %v", got)
	}
	if !m.rows[0].task.Completed {
		t.Error("expected first row checked")
	}
	if m.percent != 50 || m.label != "Progress: 50%" {
		t.Errorf("expected 50%%, got %d %q", m.percent, m.label)
	}
}

func TestModel_CursorStaysInRange(t *testing.T) {
	m, _, _ := setupModel(t)
	typeText(m, "a")
	typeText(m, "b")

	send(m, tea.KeyMsg{Type: tea.KeyTab})
	send(m, keyRune('j'), keyRune('j'), keyRune('j'))
	if m.cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", m.cursor)
	}

	send(m, keyRune('d'))
	if m.cursor != 0 {
		t.Errorf("expected cursor clamped to 0, got %d", m.cursor)
	}

	send(m, keyRune('d'))
	send(m, keyRune('d'))
	send(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if len(m.rows) != 0 {
		t.Errorf("expected empty list, got %v", labels(m))
	}
}

func TestModel_ThemeCycles(t *testing.T) {
	m, ctrl, gateway := setupModel(t)

	send(m, tea.KeyMsg{Type: tea.KeyCtrlT})

	if m.theme != models.ThemeLight {
		t.Errorf("expected light theme, got %s", m.theme)
	}
	if ctrl.Settings().Theme != models.ThemeLight {
		t.Errorf("expected controller settings light, got %s", ctrl.Settings().Theme)
	}
	saved, err := gateway.LoadSettings(context.Background())
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if saved.Theme != models.ThemeLight {
		t.Errorf("expected stored light theme, got %s", saved.Theme)
	}
}

func TestModel_ExitSavesOnce(t *testing.T) {
	m, _, gateway := setupModel(t)
	typeText(m, "write report")

	cmd := send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if !m.Closed() || m.ShutdownErr() != nil {
		t.Fatalf("expected clean shutdown, closed=%v err=%v", m.Closed(), m.ShutdownErr())
	}

	tasks, err := gateway.LoadTasks(context.Background())
	if err != nil {
		t.Fatalf("LoadTasks failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Text != "write report" {
		t.Errorf("expected saved task, got %+v", tasks)
	}
}

func TestModel_SaveAndLoadScenario(t *testing.T) {
	m, ctrl, _ := setupModel(t)
	for _, text := range []string{"a", "b", "c"} {
		typeText(m, text)
	}

	send(m, tea.KeyMsg{Type: tea.KeyTab})
	send(m, keyRune('j'), tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.notice.Title != "Saved" {
		t.Fatalf("expected Saved notice, got %+v", m.notice)
	}

	send(m, tea.KeyMsg{Type: tea.KeyUp}, keyRune('d'))
	if len(m.rows) != 2 {
		t.Fatalf("expected 2 rows, got %v", labels(m))
	}

	send(m, tea.KeyMsg{Type: tea.KeyCtrlL})

	want := []string{"1. a", "2. b", "3. c"}
	got := labels(m)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if !m.rows[1].task.Completed || m.rows[0].task.Completed {
		t.Errorf("expected only b completed, got %+v", m.rows)
	}
	if m.percent != 33 {
		t.Errorf("expected 33%%, got %d", m.percent)
	}
	if len(ctrl.Rows()) != 3 {
		t.Errorf("expected controller to track 3 rows, got %d", len(ctrl.Rows()))
	}
}

func TestModel_ViewShowsState(t *testing.T) {
	m, _, _ := setupModel(t)
	typeText(m, "buy milk")

	view := m.View()
	for _, want := range []string{"1. buy milk", "Progress: 0%", "[ ]"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestIsTTY_NonFile(t *testing.T) {
	var b strings.Builder
	if IsTTY(&b) {
		t.Error("expected builder not to be a TTY")
	}
}
