// Package store holds the immutable in-memory list of alerts loaded from a query result.
package store

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"alertdash/internal/clients/redash"
	"alertdash/internal/models"
)

// Store is the full alert list of one load plus values derived from it.
// It is never mutated after Load returns.
type Store struct {
	alerts         []models.Alert
	maxProbeLength int
}

// Load maps raw query rows into alerts. A row without a usable alert ID
// rejects the whole result; repeated alert IDs keep the first row.
func Load(rows []models.Row, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	alerts := make([]models.Alert, 0, len(rows))
	seen := make(map[int64]struct{}, len(rows))
	for i, row := range rows {
		alert, ok := models.AlertFromRow(row)
		if !ok {
			return nil, &redash.ParseError{Reason: fmt.Sprintf("row %d has no valid %q", i, models.ColAlertID)}
		}
		if _, dup := seen[alert.AlertID]; dup {
			logger.Warn("Dropping duplicate alert row", "alert_id", alert.AlertID, "row", i)
			continue
		}
		seen[alert.AlertID] = struct{}{}
		alerts = append(alerts, alert)
	}

	return New(alerts), nil
}

// New builds a store over already typed alerts.
func New(alerts []models.Alert) *Store {
	s := &Store{alerts: alerts}
	for i := range alerts {
		if n := utf8.RuneCountInString(alerts[i].ProbeName()); n > s.maxProbeLength {
			s.maxProbeLength = n
		}
	}
	return s
}

// Alerts returns the alerts in fetch order. Callers must not modify the slice.
func (s *Store) Alerts() []models.Alert {
	return s.alerts
}

// Len returns the number of loaded alerts
func (s *Store) Len() int {
	return len(s.alerts)
}

// MaxProbeLength is the length of the longest probe name.
func (s *Store) MaxProbeLength() int {
	return s.maxProbeLength
}

// Platforms returns the sorted distinct platforms, used as filter options.
func (s *Store) Platforms() []string {
	set := make(map[string]struct{})
	for i := range s.alerts {
		if p := s.alerts[i].Platform; p != "" {
			set[p] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// PadProbe right-pads a probe name to the longest probe for fixed-width display.
func (s *Store) PadProbe(probe *string) string {
	if probe == nil {
		return "N/A"
	}
	pad := s.maxProbeLength - utf8.RuneCountInString(*probe)
	if pad <= 0 {
		return *probe
	}
	return *probe + strings.Repeat(" ", pad)
}
