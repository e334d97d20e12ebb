package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertHasBug(t *testing.T) {
	bug := int64(1234)
	tests := []struct {
		name     string
		alert    Alert
		expected bool
	}{
		{"with bug", Alert{Bug: &bug}, true},
		{"without bug", Alert{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.alert.HasBug())
		})
	}
}

func TestAlertFromRow(t *testing.T) {
	var row Row
	dec := json.NewDecoder(strings.NewReader(`{
		"Alert ID": 42,
		"Alert Summary ID": 7,
		"Bug": 1888,
		"Bug Status": "NEW",
		"created": "2024-01-16T08:30:00.123",
		"probe": "GC_MS",
		"platform": "Windows",
		"Push Date": "2024-01-15T23:00:00",
		"Detection Push": "abc123",
		"Push Range": "https://example.com/range",
		"Newest Push": "def456",
		"Oldest Push": null
	}`))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&row))

	alert, ok := AlertFromRow(row)
	require.True(t, ok)

	assert.Equal(t, int64(42), alert.AlertID)
	assert.Equal(t, int64(7), alert.AlertSummaryID)
	require.NotNil(t, alert.Bug)
	assert.Equal(t, int64(1888), *alert.Bug)
	assert.Equal(t, "NEW", *alert.BugStatus)
	assert.Equal(t, "GC_MS", alert.ProbeName())
	assert.Equal(t, "Windows", alert.Platform)
	assert.Equal(t, time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC), *alert.PushDate)
	require.NotNil(t, alert.Created)
	assert.Equal(t, 123000000, alert.Created.Nanosecond())
	assert.Equal(t, "abc123", *alert.DetectionPush)
	assert.Nil(t, alert.OldestPush)
}

func TestAlertFromRowAbsentFields(t *testing.T) {
	alert, ok := AlertFromRow(Row{ColAlertID: float64(1), ColBug: nil, ColProbe: ""})
	require.True(t, ok)

	assert.Nil(t, alert.Bug)
	assert.Nil(t, alert.BugStatus)
	assert.Nil(t, alert.Probe)
	assert.Nil(t, alert.PushDate)
	assert.Nil(t, alert.Created)
	assert.Equal(t, "", alert.ProbeName())
}

func TestAlertFromRowMissingID(t *testing.T) {
	_, ok := AlertFromRow(Row{ColProbe: "GC_MS"})
	assert.False(t, ok)

	_, ok = AlertFromRow(Row{ColAlertID: "not-a-number"})
	assert.False(t, ok)
}

func TestRowIntAcceptsNumericStrings(t *testing.T) {
	n, ok := Row{"Bug": " 99 "}.Int("Bug")
	assert.True(t, ok)
	assert.Equal(t, int64(99), n)

	_, ok = Row{"Bug": 1.5}.Int("Bug")
	assert.False(t, ok)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-15T23:00:00Z", time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)},
		{"2024-01-15T23:00:00", time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)},
		{"2024-01-15 23:00:00", time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)},
		{"2024-01-15T23:00", time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)},
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.in)
			require.True(t, ok)
			assert.True(t, tt.want.Equal(got))
		})
	}

	_, ok := ParseTimestamp("yesterday")
	assert.False(t, ok)
}
