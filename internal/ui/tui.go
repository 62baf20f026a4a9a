// Package ui provides the terminal presentation layer.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasktracker/internal/models"
	"tasktracker/internal/viewsync"
)

// Controller receives the user's requests. *viewsync.Controller implements it.
type Controller interface {
	OnAddRequested(rawText string) error
	OnToggleRequested(row viewsync.RowID) error
	OnDeleteRequested(row viewsync.RowID) error
	OnLoadRequested(ctx context.Context)
	OnSaveRequested(ctx context.Context) error
	OnThemeRequested(ctx context.Context, theme models.Theme) error
	Shutdown(ctx context.Context) error
	Settings() models.Settings
}

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

type row struct {
	id   viewsync.RowID
	task models.Task
}

// Model is the bubbletea model. It is also the viewsync.Presenter the
// Controller drives, so every row change happens on the Update goroutine.
type Model struct {
	ctx   context.Context
	ctrl  Controller
	keys  keyMap
	focus focusArea

	input  textinput.Model
	rows   []row
	nextID viewsync.RowID
	cursor int

	bar      progress.Model
	barWidth int
	percent  int
	label    string

	theme  models.Theme
	styles styles
	notice viewsync.Notice

	closed      bool
	shutdownErr error
}

var _ viewsync.Presenter = (*Model)(nil)

// New creates a Model. Attach must be called before the program runs.
func New(ctx context.Context) *Model {
	input := textinput.New()
	input.Placeholder = "What needs doing?"
	input.Prompt = "New task: "
	input.CharLimit = 200
	input.Focus()

	m := &Model{
		ctx:      ctx,
		keys:     defaultKeyMap(),
		input:    input,
		barWidth: 30,
		label:    "Progress: 0%",
	}
	m.ApplyTheme(models.ThemeClassic)
	return m
}

// Attach connects the controller that handles user requests.
func (m *Model) Attach(ctrl Controller) {
	m.ctrl = ctrl
}

// Closed reports whether the model already ran the shutdown save.
func (m *Model) Closed() bool {
	return m.closed
}

// ShutdownErr returns the error from the shutdown save, if any.
func (m *Model) ShutdownErr() error {
	return m.shutdownErr
}

// Run starts the terminal program and blocks until it exits.
func Run(ctx context.Context, m *Model) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.barWidth = max(10, min(60, msg.Width-8))
		m.bar.Width = m.barWidth
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Exit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Save):
		m.ctrl.OnSaveRequested(m.ctx)
		return m, nil
	case key.Matches(msg, m.keys.Load):
		m.ctrl.OnLoadRequested(m.ctx)
		return m, nil
	case key.Matches(msg, m.keys.Theme):
		m.ctrl.OnThemeRequested(m.ctx, m.theme.Next())
		return m, nil
	case key.Matches(msg, m.keys.Focus):
		m.switchFocus()
		return m, nil
	}

	if m.focus == focusInput {
		if key.Matches(msg, m.keys.Add) {
			// Blank input is rejected by the controller and left as is.
			if err := m.ctrl.OnAddRequested(m.input.Value()); err == nil {
				m.input.Reset()
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if r, ok := m.selected(); ok {
			m.ctrl.OnToggleRequested(r.id)
		}
	case key.Matches(msg, m.keys.Delete):
		if r, ok := m.selected(); ok {
			m.ctrl.OnDeleteRequested(r.id)
		}
	}
	return m, nil
}

func (m *Model) quit() tea.Cmd {
	if !m.closed {
		m.shutdownErr = m.ctrl.Shutdown(m.ctx)
		m.closed = true
	}
	return tea.Quit
}

func (m *Model) switchFocus() {
	if m.focus == focusInput {
		m.focus = focusList
		m.input.Blur()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

func (m *Model) selected() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m *Model) View() string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.title.Render(fmt.Sprintf("Task Tracker · %s", m.theme)))
	b.WriteString("\n")

	inputStyle := s.input
	if m.focus == focusInput {
		inputStyle = s.inputFocus
	}
	b.WriteString(inputStyle.Render(m.input.View()))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(s.info.Render("No tasks yet."))
		b.WriteString("\n")
	}
	for i, r := range m.rows {
		b.WriteString(m.renderRow(i, r))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.bar.ViewAs(float64(m.percent) / 100))
	b.WriteString("\n")
	b.WriteString(s.label.Render(m.label))
	b.WriteString("\n")

	if m.notice.Message != "" {
		b.WriteString("\n")
		b.WriteString(m.renderNotice())
		b.WriteString("\n")
	}

	b.WriteString(s.help.Render(m.helpLine()))
	return s.app.Render(b.String())
}

func (m *Model) renderRow(i int, r row) string {
	s := m.styles
	check := "[ ]"
	if r.task.Completed {
		check = "[x]"
	}

	text := r.task.Label()
	if r.task.Completed {
		text = s.doneRow.Render(text)
	}
	line := fmt.Sprintf("%s %s", s.checkbox.Render(check), text)

	if m.focus == focusList && i == m.cursor {
		return s.selectedRow.Render("> " + line)
	}
	return s.row.Render("  " + line)
}

func (m *Model) renderNotice() string {
	text := fmt.Sprintf("%s: %s", m.notice.Title, m.notice.Message)
	switch m.notice.Level {
	case viewsync.LevelWarning:
		return m.styles.warning.Render(text)
	case viewsync.LevelError:
		return m.styles.err.Render(text)
	default:
		return m.styles.info.Render(text)
	}
}

func (m *Model) helpLine() string {
	bindings := m.keys.inputHelp()
	if m.focus == focusList {
		bindings = m.keys.listHelp()
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}

// AppendRow adds a row at the bottom of the list.
func (m *Model) AppendRow(task models.Task) viewsync.RowID {
	m.nextID++
	m.rows = append(m.rows, row{id: m.nextID, task: task})
	return m.nextID
}

// DestroyRow removes a row, keeping the cursor on a valid row.
func (m *Model) DestroyRow(id viewsync.RowID) {
	i := m.find(id)
	if i < 0 {
		return
	}
	m.rows = append(m.rows[:i], m.rows[i+1:]...)
	if m.cursor >= len(m.rows) && m.cursor > 0 {
		m.cursor = len(m.rows) - 1
	}
}

// RelabelRow changes the number shown on a row.
func (m *Model) RelabelRow(id viewsync.RowID, displayIndex int) {
	if i := m.find(id); i >= 0 {
		m.rows[i].task.DisplayIndex = displayIndex
	}
}

// MarkRow sets the row's checkbox.
func (m *Model) MarkRow(id viewsync.RowID, completed bool) {
	if i := m.find(id); i >= 0 {
		m.rows[i].task.Completed = completed
	}
}

// DestroyAllRows clears the list.
func (m *Model) DestroyAllRows() {
	m.rows = nil
	m.cursor = 0
}

// SetProgress updates the progress bar and its label.
func (m *Model) SetProgress(percent int, label string) {
	m.percent = percent
	m.label = label
}

// ApplyTheme restyles the whole view.
func (m *Model) ApplyTheme(theme models.Theme) {
	m.theme = theme
	m.styles = newStyles(theme)
	m.bar = progress.New(
		progress.WithSolidFill(string(paletteFor(theme).accent)),
		progress.WithWidth(m.barWidth),
		progress.WithoutPercentage(),
	)
	m.input.PromptStyle = m.styles.label
	m.input.TextStyle = m.styles.label
}

// Notify shows a notice in the status area until the next one replaces it.
func (m *Model) Notify(notice viewsync.Notice) {
	m.notice = notice
}

func (m *Model) find(id viewsync.RowID) int {
	for i, r := range m.rows {
		if r.id == id {
			return i
		}
	}
	return -1
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
