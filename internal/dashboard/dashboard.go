// Package dashboard performs the single alert load of a process and keeps
// its outcome as a snapshot.
package dashboard

import (
	"context"
	"log/slog"
	"time"

	"alertdash/internal/clients/redash"
	"alertdash/internal/config"
	"alertdash/internal/metrics"
	"alertdash/internal/models"
	"alertdash/internal/store"

	"github.com/google/uuid"
)

// Snapshot status values.
const (
	StatusLoaded = "loaded"
	StatusEmpty  = "empty"
	StatusFailed = "failed"
)

// Fetcher retrieves the raw query rows.
type Fetcher interface {
	FetchRows(ctx context.Context) ([]models.Row, error)
}

// Snapshot is the outcome of a load. Store is nil unless Status is loaded
// or empty; Err is set only when Status is failed.
type Snapshot struct {
	ID       uuid.UUID
	Status   string
	Store    *store.Store
	Err      error
	LoadedAt time.Time
}

// Ready reports whether the load produced a usable store.
func (s *Snapshot) Ready() bool {
	return s.Status != StatusFailed
}

// Loader runs loads against a fetcher.
type Loader struct {
	fetcher Fetcher
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewLoader creates a loader. m may be nil.
func NewLoader(fetcher Fetcher, m *metrics.Metrics, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{fetcher: fetcher, metrics: m, logger: logger, now: time.Now}
}

// NewRedashLoader creates a loader fetching from the configured query endpoint.
func NewRedashLoader(cfg config.RedashConfig, m *metrics.Metrics, logger *slog.Logger) *Loader {
	client := redash.NewClient(cfg.URL, cfg.APIKey, cfg.GetTimeoutDuration(), logger)
	return NewLoader(client, m, logger)
}

// Load fetches once and maps the rows into a store. It never retries and
// never returns an error: failures are part of the snapshot.
func (l *Loader) Load(ctx context.Context) *Snapshot {
	start := l.now()
	snap := &Snapshot{ID: uuid.New()}

	rows, err := l.fetcher.FetchRows(ctx)
	if err == nil {
		snap.Store, err = store.Load(rows, l.logger)
	}

	snap.LoadedAt = l.now()
	switch {
	case err != nil:
		snap.Status = StatusFailed
		snap.Err = err
		l.logger.Error("Failed to load alerts", "snapshot", snap.ID, "error", err)
	case snap.Store.Len() == 0:
		snap.Status = StatusEmpty
		l.logger.Warn("Query returned no alerts", "snapshot", snap.ID)
	default:
		snap.Status = StatusLoaded
		l.logger.Info("Loaded alerts", "snapshot", snap.ID, "alerts", snap.Store.Len(),
			"max_probe_length", snap.Store.MaxProbeLength())
	}

	alerts := 0
	if snap.Store != nil {
		alerts = snap.Store.Len()
	}
	l.metrics.ObserveFetch(snap.LoadedAt.Sub(start), snap.Status, alerts)

	return snap
}
