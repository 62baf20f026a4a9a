package store

import (
	"context"
	"errors"
	"testing"

	"tasktracker/internal/models"
)

// gatewayFactories returns a fresh, empty gateway for every backend.
func gatewayFactories() map[string]func(t *testing.T) Gateway {
	return map[string]func(t *testing.T) Gateway{
		BackendJSON: func(t *testing.T) Gateway {
			s, err := NewJSONStore(t.TempDir())
			if err != nil {
				t.Fatalf("failed to create json store: %v", err)
			}
			return s
		},
		BackendSQLite: func(t *testing.T) Gateway {
			s, err := NewSQLiteStore(SQLitePath(t.TempDir()))
			if err != nil {
				t.Fatalf("failed to create sqlite store: %v", err)
			}
			t.Cleanup(func() { s.Close() })
			return s
		},
	}
}

func TestGateway_LoadTasksBeforeFirstSave(t *testing.T) {
	for name, newGateway := range gatewayFactories() {
		t.Run(name, func(t *testing.T) {
			g := newGateway(t)

			tasks, err := g.LoadTasks(context.Background())
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			if len(tasks) != 0 {
				t.Errorf("expected no tasks, got %d", len(tasks))
			}
		})
	}
}

func TestGateway_TasksRoundTrip(t *testing.T) {
	for name, newGateway := range gatewayFactories() {
		t.Run(name, func(t *testing.T) {
			g := newGateway(t)
			ctx := context.Background()

			// Indices deliberately disagree with position; they must not survive.
			saved := []models.Task{
				{DisplayIndex: 9, Text: "Buy milk", Completed: true},
				{DisplayIndex: 3, Text: "Walk dog"},
				{DisplayIndex: 3, Text: "Ünïcode, \"quotes\" and\nnewlines", Completed: true},
			}
			if err := g.SaveTasks(ctx, saved); err != nil {
				t.Fatalf("SaveTasks failed: %v", err)
			}

			got, err := g.LoadTasks(ctx)
			if err != nil {
				t.Fatalf("LoadTasks failed: %v", err)
			}
			if len(got) != len(saved) {
				t.Fatalf("expected %d tasks, got %d", len(saved), len(got))
			}
			for i := range saved {
				if got[i].Text != saved[i].Text || got[i].Completed != saved[i].Completed {
					t.Errorf("position %d: expected %+v, got %+v", i, saved[i], got[i])
				}
				if got[i].DisplayIndex != i+1 {
					t.Errorf("position %d: expected display index %d, got %d", i, i+1, got[i].DisplayIndex)
				}
			}
		})
	}
}

func TestGateway_SaveReplacesPreviousList(t *testing.T) {
	for name, newGateway := range gatewayFactories() {
		t.Run(name, func(t *testing.T) {
			g := newGateway(t)
			ctx := context.Background()

			g.SaveTasks(ctx, []models.Task{{Text: "A"}, {Text: "B"}, {Text: "C"}})
			g.SaveTasks(ctx, []models.Task{{Text: "C"}})

			got, err := g.LoadTasks(ctx)
			if err != nil {
				t.Fatalf("LoadTasks failed: %v", err)
			}
			if len(got) != 1 || got[0].Text != "C" {
				t.Errorf("expected only C, got %+v", got)
			}
		})
	}
}

func TestGateway_EmptyListIsNotNotFound(t *testing.T) {
	for name, newGateway := range gatewayFactories() {
		t.Run(name, func(t *testing.T) {
			g := newGateway(t)
			ctx := context.Background()

			if err := g.SaveTasks(ctx, nil); err != nil {
				t.Fatalf("SaveTasks failed: %v", err)
			}

			got, err := g.LoadTasks(ctx)
			if err != nil {
				t.Fatalf("expected saved empty list to load cleanly, got %v", err)
			}
			if len(got) != 0 {
				t.Errorf("expected empty list, got %+v", got)
			}
		})
	}
}

func TestGateway_Settings(t *testing.T) {
	for name, newGateway := range gatewayFactories() {
		t.Run(name, func(t *testing.T) {
			g := newGateway(t)
			ctx := context.Background()

			settings, err := g.LoadSettings(ctx)
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound before first save, got %v", err)
			}
			if settings.Theme != models.ThemeClassic {
				t.Errorf("expected Classic default, got %q", settings.Theme)
			}

			for _, theme := range []models.Theme{models.ThemeDark, models.ThemeLight} {
				if err := g.SaveSettings(ctx, models.Settings{Theme: theme}); err != nil {
					t.Fatalf("SaveSettings failed: %v", err)
				}
				got, err := g.LoadSettings(ctx)
				if err != nil {
					t.Fatalf("LoadSettings failed: %v", err)
				}
				if got.Theme != theme {
					t.Errorf("expected %q, got %q", theme, got.Theme)
				}
			}
		})
	}
}

func TestGateway_UnknownThemeFallsBackToDefault(t *testing.T) {
	for name, newGateway := range gatewayFactories() {
		t.Run(name, func(t *testing.T) {
			g := newGateway(t)
			ctx := context.Background()

			g.SaveSettings(ctx, models.Settings{Theme: "Neon"})

			got, err := g.LoadSettings(ctx)
			if err != nil {
				t.Fatalf("LoadSettings failed: %v", err)
			}
			if got.Theme != models.ThemeClassic {
				t.Errorf("expected Classic, got %q", got.Theme)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	for _, backend := range []string{"", BackendJSON, BackendSQLite} {
		g, err := Open(backend, dir)
		if err != nil {
			t.Fatalf("Open(%q) failed: %v", backend, err)
		}
		g.Close()
	}

	if _, err := Open("postgres", dir); err == nil {
		t.Error("expected error for unknown backend")
	}
}
