// Package models defines the shared core data structures used throughout alertdash.
package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Column names used by the query result rows.
const (
	ColAlertID        = "Alert ID"
	ColAlertSummaryID = "Alert Summary ID"
	ColBug            = "Bug"
	ColBugStatus      = "Bug Status"
	ColCreated        = "created"
	ColProbe          = "probe"
	ColPlatform       = "platform"
	ColPushDate       = "Push Date"
	ColDetectionPush  = "Detection Push"
	ColPushRange      = "Push Range"
	ColNewestPush     = "Newest Push"
	ColOldestPush     = "Oldest Push"
)

// Row is one raw query result row keyed by column name.
type Row map[string]any

// Alert represents one detected telemetry regression.
// Optional fields are nil when the query result did not carry a usable value.
type Alert struct {
	AlertID        int64      `json:"alertId"`
	AlertSummaryID int64      `json:"alertSummaryId"`
	Bug            *int64     `json:"bug,omitempty"`
	BugStatus      *string    `json:"bugStatus,omitempty"`
	Created        *time.Time `json:"created,omitempty"`
	Probe          *string    `json:"probe,omitempty"`
	Platform       string     `json:"platform"`
	PushDate       *time.Time `json:"pushDate,omitempty"`
	DetectionPush  *string    `json:"detectionPush,omitempty"`
	OldestPush     *string    `json:"oldestPush,omitempty"`
	NewestPush     *string    `json:"newestPush,omitempty"`
	PushRange      *string    `json:"pushRange,omitempty"`
}

// HasBug returns true if a bug has been filed for the alert
func (a *Alert) HasBug() bool {
	return a.Bug != nil
}

// ProbeName returns the probe name, empty string if absent
func (a *Alert) ProbeName() string {
	if a.Probe == nil {
		return ""
	}
	return *a.Probe
}

// Int returns the integer value of a column, false if absent or not numeric.
func (r Row) Int(key string) (int64, bool) {
	switch v := r[key].(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		if f, err := v.Float64(); err == nil && f == float64(int64(f)) {
			return int64(f), true
		}
	case float64:
		if v == float64(int64(v)) {
			return int64(v), true
		}
	case int:
		return int64(v), true
	case int64:
		return v, true
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// String returns the non-empty string value of a column.
func (r Row) String(key string) (string, bool) {
	switch v := r[key].(type) {
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	case json.Number:
		return v.String(), true
	}
	return "", false
}

// Time returns the timestamp value of a column.
func (r Row) Time(key string) (time.Time, bool) {
	s, ok := r.String(key)
	if !ok {
		return time.Time{}, false
	}
	return ParseTimestamp(s)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses the timestamp formats emitted by the query service.
// Values without a zone are read as UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// AlertFromRow maps a raw row into an Alert. The second return value is
// false when the row has no usable alert ID.
func AlertFromRow(r Row) (Alert, bool) {
	id, ok := r.Int(ColAlertID)
	if !ok {
		return Alert{}, false
	}

	alert := Alert{AlertID: id}
	alert.AlertSummaryID, _ = r.Int(ColAlertSummaryID)
	if bug, ok := r.Int(ColBug); ok {
		alert.Bug = &bug
	}
	alert.BugStatus = optString(r, ColBugStatus)
	alert.Created = optTime(r, ColCreated)
	alert.Probe = optString(r, ColProbe)
	alert.Platform, _ = r.String(ColPlatform)
	alert.PushDate = optTime(r, ColPushDate)
	alert.DetectionPush = optString(r, ColDetectionPush)
	alert.OldestPush = optString(r, ColOldestPush)
	alert.NewestPush = optString(r, ColNewestPush)
	alert.PushRange = optString(r, ColPushRange)

	return alert, true
}

func optString(r Row, key string) *string {
	if s, ok := r.String(key); ok {
		return &s
	}
	return nil
}

func optTime(r Row, key string) *time.Time {
	if t, ok := r.Time(key); ok {
		return &t
	}
	return nil
}
