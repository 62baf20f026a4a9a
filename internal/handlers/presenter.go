package handlers

import (
	"slices"

	"tasktracker/internal/models"
	"tasktracker/internal/viewsync"
)

// Row is one task row as the page shows it.
type Row struct {
	ID        viewsync.RowID `json:"id"`
	Label     string         `json:"label"`
	Text      string         `json:"text"`
	Completed bool           `json:"completed"`
}

// State is the snapshot served to the page.
type State struct {
	Rows     []Row            `json:"rows"`
	Percent  int              `json:"percent"`
	Progress string           `json:"progress"`
	Theme    models.Theme     `json:"theme"`
	Themes   []models.Theme   `json:"themes"`
	Notice   *viewsync.Notice `json:"notice,omitempty"`
}

// Presenter keeps the rows a browser renders. Handlers guards it with the
// same lock as the controller.
type Presenter struct {
	next    viewsync.RowID
	rows    []Row
	percent int
	label   string
	theme   models.Theme
	notice  *viewsync.Notice
}

var _ viewsync.Presenter = (*Presenter)(nil)

// NewPresenter returns an empty presenter with the default theme.
func NewPresenter() *Presenter {
	return &Presenter{
		rows:  []Row{},
		label: "Progress: 0%",
		theme: models.ThemeClassic,
	}
}

// AppendRow adds a row at the end of the list.
func (p *Presenter) AppendRow(task models.Task) viewsync.RowID {
	p.next++
	p.rows = append(p.rows, Row{
		ID:        p.next,
		Label:     task.Label(),
		Text:      task.Text,
		Completed: task.Completed,
	})
	return p.next
}

// DestroyRow removes a row. Unknown rows are ignored.
func (p *Presenter) DestroyRow(row viewsync.RowID) {
	if i := p.find(row); i >= 0 {
		p.rows = slices.Delete(p.rows, i, i+1)
	}
}

// RelabelRow changes the number shown on a row.
func (p *Presenter) RelabelRow(row viewsync.RowID, displayIndex int) {
	if i := p.find(row); i >= 0 {
		task := models.Task{DisplayIndex: displayIndex, Text: p.rows[i].Text}
		p.rows[i].Label = task.Label()
	}
}

// MarkRow sets the row's checkbox.
func (p *Presenter) MarkRow(row viewsync.RowID, completed bool) {
	if i := p.find(row); i >= 0 {
		p.rows[i].Completed = completed
	}
}

// DestroyAllRows clears the list.
func (p *Presenter) DestroyAllRows() {
	p.rows = []Row{}
}

// SetProgress updates the progress readout.
func (p *Presenter) SetProgress(percent int, label string) {
	p.percent = percent
	p.label = label
}

// ApplyTheme records the theme the page is styled with.
func (p *Presenter) ApplyTheme(theme models.Theme) {
	p.theme = theme
}

// Notify keeps the notice until the next one replaces it.
func (p *Presenter) Notify(notice viewsync.Notice) {
	p.notice = &notice
}

// Snapshot copies the current state.
func (p *Presenter) Snapshot() State {
	state := State{
		Rows:     slices.Clone(p.rows),
		Percent:  p.percent,
		Progress: p.label,
		Theme:    p.theme,
		Themes:   models.Themes,
	}
	if p.notice != nil {
		n := *p.notice
		state.Notice = &n
	}
	return state
}

func (p *Presenter) find(row viewsync.RowID) int {
	for i, r := range p.rows {
		if r.ID == row {
			return i
		}
	}
	return -1
}
