package handlers

import (
	"net/http"

	"tasktracker/internal/models"
)

// Save writes the task list. A failed save is reported through the notice in
// the returned state.
func (h *Handlers) Save(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.ctrl.OnSaveRequested(r.Context()); err != nil {
		h.logger.Warn("save requested from web failed", "err", err)
	}
	h.respondJSON(w, h.view.Snapshot())
}

// Load replaces the task list with the stored one.
func (h *Handlers) Load(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.ctrl.OnLoadRequested(r.Context())
	h.respondJSON(w, h.view.Snapshot())
}

// SetTheme switches the theme and stores it.
func (h *Handlers) SetTheme(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	theme, err := models.ParseTheme(r.FormValue("theme"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.ctrl.OnThemeRequested(r.Context(), theme); err != nil {
		h.logger.Warn("theme not saved", "theme", theme, "err", err)
	}
	h.respondJSON(w, h.view.Snapshot())
}
