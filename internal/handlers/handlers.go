package handlers

import (
	"context"
	"encoding/json"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"tasktracker/internal/models"
	"tasktracker/internal/viewsync"
)

// Controller receives the requests the web page makes.
type Controller interface {
	OnAddRequested(rawText string) error
	OnToggleRequested(row viewsync.RowID) error
	OnDeleteRequested(row viewsync.RowID) error
	OnLoadRequested(ctx context.Context)
	OnSaveRequested(ctx context.Context) error
	OnThemeRequested(ctx context.Context, theme models.Theme) error
}

// Handlers holds the HTTP handlers and their dependencies.
//
// The controller is not safe for concurrent use, so every request that
// reaches it or reads the presenter holds mu.
type Handlers struct {
	mu        sync.Mutex
	ctrl      Controller
	view      *Presenter
	templates *template.Template
	logger    *log.Logger
}

// New creates a new Handlers instance. Attach must be called before serving.
func New(view *Presenter, tmpl *template.Template, logger *log.Logger) *Handlers {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Handlers{
		view:      view,
		templates: tmpl,
		logger:    logger,
	}
}

// Attach connects the controller that handles requests.
func (h *Handlers) Attach(ctrl Controller) {
	h.ctrl = ctrl
}

// Routes registers the page and API routes on r.
func (h *Handlers) Routes(r chi.Router) {
	r.Get("/", h.Home)
	r.Get("/api/state", h.State)

	r.Post("/api/tasks", h.CreateTask)
	r.Post("/api/rows/{row}/toggle", h.ToggleRow)
	r.Delete("/api/rows/{row}", h.DeleteRow)

	r.Post("/api/save", h.Save)
	r.Post("/api/load", h.Load)
	r.Put("/api/settings/theme", h.SetTheme)
}

// Lock runs fn while holding the request lock, for callers outside HTTP such
// as startup and shutdown.
func (h *Handlers) Lock(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn()
}

// parseRow extracts and parses a row ID from URL parameters.
func parseRow(r *http.Request) (viewsync.RowID, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "row"), 10, 64)
	return viewsync.RowID(id), err
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, code int, message string) {
	w.WriteHeader(code)
	w.Write([]byte(message))
}

func (h *Handlers) respondServerError(w http.ResponseWriter, err error) {
	h.logger.Error("internal server error", "err", err)
	respondError(w, http.StatusInternalServerError, "internal server error")
}

func (h *Handlers) respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "err", err)
	}
}

func (h *Handlers) render(w http.ResponseWriter, name string, data any) {
	if h.templates == nil {
		// For testing without templates
		w.WriteHeader(http.StatusOK)
		return
	}
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.respondServerError(w, err)
	}
}
