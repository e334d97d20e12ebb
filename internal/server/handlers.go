package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"alertdash/internal/dashboard"
	"alertdash/internal/metrics"
	"alertdash/internal/render"
	"alertdash/internal/urlstate"
	"alertdash/internal/view"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Handler holds the server dependencies
type Handler struct {
	snapshot *dashboard.Snapshot
	links    render.Links
	title    string
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewHandler creates a new handler over a loaded snapshot. m may be nil.
func NewHandler(snap *dashboard.Snapshot, links render.Links, title string, m *metrics.Metrics, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		snapshot: snap,
		links:    links,
		title:    title,
		metrics:  m,
		logger:   logger,
	}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleDashboard)
	r.Get("/api/alerts", h.HandleAlerts)
	r.Get("/api/platforms", h.HandlePlatforms)
	r.Get("/health", h.HandleHealth)
	r.Get("/ready", h.HandleReady)
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}
}

// HandleDashboard renders the dashboard page for the state in the query string.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	var page render.Page
	status := http.StatusOK

	switch h.snapshot.Status {
	case dashboard.StatusFailed:
		page = render.ErrorPage(h.title, h.snapshot.Err)
		status = http.StatusBadGateway
	case dashboard.StatusEmpty:
		page = render.EmptyPage(h.title)
	default:
		st := requestState(r)
		page = render.Build(render.Input{
			Title:    h.title,
			BasePath: r.URL.Path,
			State:    st,
			Result:   h.compute(st),
			Store:    h.snapshot.Store,
			Links:    h.links,
		})
	}

	var buf bytes.Buffer
	if err := render.HTML(&buf, page); err != nil {
		h.logger.Error("Failed to render dashboard", "error", err)
		http.Error(w, "Failed to render dashboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("Failed to write dashboard", "error", err)
	}
}

type alertsResponse struct {
	Snapshot uuid.UUID `json:"snapshot"`
	LoadedAt time.Time `json:"loadedAt"`
	render.Document
}

// HandleAlerts returns the computed view as JSON. It accepts the same query
// parameters as the dashboard page.
func (h *Handler) HandleAlerts(w http.ResponseWriter, r *http.Request) {
	if !h.snapshot.Ready() {
		h.writeLoadError(w)
		return
	}

	st := requestState(r)
	h.writeJSON(w, http.StatusOK, alertsResponse{
		Snapshot: h.snapshot.ID,
		LoadedAt: h.snapshot.LoadedAt,
		Document: render.NewDocument(h.compute(st)),
	})
}

// HandlePlatforms returns the platform filter options.
func (h *Handler) HandlePlatforms(w http.ResponseWriter, r *http.Request) {
	if !h.snapshot.Ready() {
		h.writeLoadError(w)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string][]string{
		"platforms": h.snapshot.Store.Platforms(),
	})
}

// HandleHealth returns health status
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleReady reports whether the alert load succeeded.
func (h *Handler) HandleReady(w http.ResponseWriter, r *http.Request) {
	if !h.snapshot.Ready() {
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  h.snapshot.Err.Error(),
		})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ready",
		"snapshot": h.snapshot.ID,
		"alerts":   h.snapshot.Store.Len(),
	})
}

func (h *Handler) compute(st view.State) view.Result {
	res := view.Compute(h.snapshot.Store.Alerts(), st)
	h.metrics.ObserveView(string(res.Mode))
	return res
}

func (h *Handler) writeLoadError(w http.ResponseWriter) {
	h.writeJSON(w, http.StatusBadGateway, map[string]string{
		"error": "Error loading alerts: " + h.snapshot.Err.Error(),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("Failed to encode response", "error", err)
	}
}

// requestState decodes the view state and the request scoped sort.
func requestState(r *http.Request) view.State {
	q := r.URL.Query()
	return urlstate.DecodeSort(q, urlstate.Decode(q))
}
