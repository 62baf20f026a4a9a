// Package viewsync keeps a presentation layer's rows and progress readout in
// step with the task list, and drives loading and saving.
//
// All Controller methods must be called from a single goroutine (the UI event
// loop, or a caller that serializes events).
package viewsync

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"tasktracker/internal/models"
	"tasktracker/internal/store"
	"tasktracker/internal/tasklist"
)

// Progress is the aggregate completion readout.
type Progress struct {
	Percent int    `json:"percent"`
	Label   string `json:"label"`
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for warnings. The default discards output.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// Controller mediates between the task list, its persistence and a Presenter.
type Controller struct {
	tasks    *tasklist.Store
	gateway  store.Gateway
	view     Presenter
	logger   *log.Logger
	settings models.Settings

	// rows[i] is the row presenting tasks position i.
	rows []RowID
}

// New creates a Controller. The task list and the presenter are expected to
// start out empty.
func New(tasks *tasklist.Store, gateway store.Gateway, view Presenter, opts ...Option) *Controller {
	c := &Controller{
		tasks:    tasks,
		gateway:  gateway,
		view:     view,
		logger:   log.New(io.Discard),
		settings: models.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start applies the stored theme and loads the stored task list.
func (c *Controller) Start(ctx context.Context) {
	settings, err := c.gateway.LoadSettings(ctx)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		c.logger.Warn("failed to load settings, using defaults", "err", err)
	}
	c.settings = settings.Normalize()
	c.view.ApplyTheme(c.settings.Theme)

	c.OnLoadRequested(ctx)
}

// OnAddRequested appends a task for rawText. Blank text returns
// models.ErrInvalidInput and changes nothing.
func (c *Controller) OnAddRequested(rawText string) error {
	task, err := c.tasks.Add(rawText)
	if err != nil {
		return err
	}

	c.rows = append(c.rows, c.view.AppendRow(task))
	c.refreshProgress()
	return nil
}

// OnToggleRequested flips completion of the task shown by row.
func (c *Controller) OnToggleRequested(row RowID) error {
	position, err := c.resolve(row)
	if err == nil {
		err = c.tasks.ToggleCompletion(position)
	}
	if err != nil {
		c.logger.Warn("ignoring toggle for unknown row", "row", row, "err", err)
		return err
	}

	task, _ := c.tasks.At(position)
	c.view.MarkRow(row, task.Completed)
	c.refreshProgress()
	return nil
}

// OnDeleteRequested removes the task shown by row and renumbers the rows
// after it.
func (c *Controller) OnDeleteRequested(row RowID) error {
	position, err := c.resolve(row)
	if err == nil {
		err = c.tasks.Remove(position)
	}
	if err != nil {
		c.logger.Warn("ignoring delete for unknown row", "row", row, "err", err)
		return err
	}

	c.rows = append(c.rows[:position], c.rows[position+1:]...)
	c.view.DestroyRow(row)

	tasks := c.tasks.Tasks()
	for i := position; i < len(c.rows); i++ {
		c.view.RelabelRow(c.rows[i], tasks[i].DisplayIndex)
	}
	c.refreshProgress()
	return nil
}

// OnLoadRequested replaces the task list with the stored one and rebuilds
// every row. A missing or unreadable store leaves an empty list.
func (c *Controller) OnLoadRequested(ctx context.Context) {
	tasks, err := c.gateway.LoadTasks(ctx)

	var corrupt *store.CorruptDataError
	switch {
	case err == nil:
		c.replace(tasks)
		c.view.Notify(Notice{
			Level:   LevelInfo,
			Title:   "Loaded",
			Message: fmt.Sprintf("Task list loaded (%d tasks).", len(tasks)),
		})
	case errors.Is(err, store.ErrNotFound):
		c.replace(nil)
		c.view.Notify(Notice{
			Level:   LevelInfo,
			Title:   "No saved tasks",
			Message: "No existing task list was found. Starting a new one.",
		})
	case errors.As(err, &corrupt):
		c.logger.Warn("stored task list is corrupt, starting empty", "path", corrupt.Path, "err", corrupt.Err)
		c.replace(nil)
		c.view.Notify(Notice{
			Level:   LevelWarning,
			Title:   "Could not read tasks",
			Message: "The saved task list could not be read. Starting a new one.",
		})
	default:
		c.logger.Error("failed to load tasks", "err", err)
		c.view.Notify(Notice{
			Level:   LevelError,
			Title:   "Load failed",
			Message: err.Error(),
		})
	}
}

// OnSaveRequested persists the task list and reports the outcome.
func (c *Controller) OnSaveRequested(ctx context.Context) error {
	if err := c.gateway.SaveTasks(ctx, c.tasks.Tasks()); err != nil {
		c.logger.Error("failed to save tasks", "err", err)
		c.view.Notify(Notice{Level: LevelError, Title: "Save failed", Message: err.Error()})
		return fmt.Errorf("save tasks: %w", err)
	}

	c.view.Notify(Notice{Level: LevelInfo, Title: "Saved", Message: "Task list saved."})
	return nil
}

// OnThemeRequested switches the theme and persists the settings right away.
func (c *Controller) OnThemeRequested(ctx context.Context, theme models.Theme) error {
	parsed, err := models.ParseTheme(string(theme))
	if err != nil {
		return err
	}

	c.settings.Theme = parsed
	c.view.ApplyTheme(parsed)

	if err := c.gateway.SaveSettings(ctx, c.settings); err != nil {
		c.logger.Error("failed to save settings", "err", err)
		c.view.Notify(Notice{Level: LevelError, Title: "Settings not saved", Message: err.Error()})
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Shutdown saves the task list. It must run before the presenter is torn down.
func (c *Controller) Shutdown(ctx context.Context) error {
	return c.OnSaveRequested(ctx)
}

// ProgressReadout derives the progress readout from the task list, rounding
// the percentage down.
func (c *Controller) ProgressReadout() Progress {
	percent := 0
	if n := c.tasks.Len(); n > 0 {
		percent = c.tasks.CompletedCount() * 100 / n
	}
	return Progress{Percent: percent, Label: fmt.Sprintf("Progress: %d%%", percent)}
}

// Settings returns the settings currently in effect.
func (c *Controller) Settings() models.Settings {
	return c.settings
}

// Tasks returns the task list in display order.
func (c *Controller) Tasks() []models.Task {
	return c.tasks.Tasks()
}

// Rows returns the row handles in display order.
func (c *Controller) Rows() []RowID {
	out := make([]RowID, len(c.rows))
	copy(out, c.rows)
	return out
}

// resolve maps a row to the position it shows right now.
func (c *Controller) resolve(row RowID) (int, error) {
	for i, r := range c.rows {
		if r == row {
			return i, nil
		}
	}
	return -1, fmt.Errorf("row %d: %w", row, &tasklist.OutOfRangeError{Position: -1, Len: len(c.rows)})
}

func (c *Controller) replace(tasks []models.Task) {
	c.tasks.ReplaceAll(tasks)

	c.view.DestroyAllRows()
	c.rows = c.rows[:0]
	for _, task := range c.tasks.Tasks() {
		c.rows = append(c.rows, c.view.AppendRow(task))
	}
	c.refreshProgress()
}

func (c *Controller) refreshProgress() {
	p := c.ProgressReadout()
	c.view.SetProgress(p.Percent, p.Label)
}
