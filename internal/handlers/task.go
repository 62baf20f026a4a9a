package handlers

import (
	"errors"
	"net/http"

	"tasktracker/internal/models"
	"tasktracker/internal/tasklist"
)

// Home renders the task page.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	state := h.view.Snapshot()
	h.mu.Unlock()

	h.render(w, "home.html", state)
}

// State returns the current rows, progress, theme and last notice as JSON.
func (h *Handlers) State(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	state := h.view.Snapshot()
	h.mu.Unlock()

	h.respondJSON(w, state)
}

// CreateTask appends a task. Blank text is ignored.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.ctrl.OnAddRequested(r.FormValue("text")); err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.respondServerError(w, err)
		return
	}

	h.respondJSON(w, h.view.Snapshot())
}

// ToggleRow flips completion of the task on a row.
func (h *Handlers) ToggleRow(w http.ResponseWriter, r *http.Request) {
	row, err := parseRow(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid row id")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.ctrl.OnToggleRequested(row); err != nil {
		h.respondRowError(w, err)
		return
	}

	h.respondJSON(w, h.view.Snapshot())
}

// DeleteRow removes the task on a row.
func (h *Handlers) DeleteRow(w http.ResponseWriter, r *http.Request) {
	row, err := parseRow(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid row id")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.ctrl.OnDeleteRequested(row); err != nil {
		h.respondRowError(w, err)
		return
	}

	h.respondJSON(w, h.view.Snapshot())
}

func (h *Handlers) respondRowError(w http.ResponseWriter, err error) {
	var rangeErr *tasklist.OutOfRangeError
	if errors.As(err, &rangeErr) {
		respondError(w, http.StatusNotFound, "row not found")
		return
	}
	h.respondServerError(w, err)
}
