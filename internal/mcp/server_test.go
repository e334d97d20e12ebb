package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"alertdash/internal/dashboard"
	"alertdash/internal/models"
	"alertdash/internal/render"
	"alertdash/internal/store"
	"alertdash/internal/view"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func testServer() *Server {
	return New(&dashboard.Snapshot{
		Status: dashboard.StatusLoaded,
		Store: store.New([]models.Alert{
			{AlertID: 1, AlertSummaryID: 10, Bug: ptr(int64(5)), Probe: ptr("gc_ms"), Platform: "Windows"},
			{AlertID: 2, AlertSummaryID: 10, Probe: ptr("memory"), Platform: "Linux"},
			{AlertID: 3, AlertSummaryID: 20, Probe: ptr("paint"), Platform: "Linux"},
		}),
	}, nil)
}

func callTool(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestStateFromRequest(t *testing.T) {
	st := stateFromRequest(callTool("list_alerts", map[string]any{
		"view":      "grouped",
		"platforms": "Windows,Linux",
		"probe":     "GC mem",
		"groupSort": "count",
		"sort":      "probe",
		"dir":       "desc",
	}))

	assert.Equal(t, view.ModeGrouped, st.Mode)
	assert.Equal(t, []string{"Linux", "Windows"}, st.Platforms)
	assert.Equal(t, []string{"gc", "mem"}, st.ProbeTerms)
	assert.Equal(t, view.GroupSort{Column: view.GroupByCount, Direction: view.Desc}, st.GroupSort)
	assert.Equal(t, view.Sort{Column: view.ColumnProbe, Direction: view.Desc}, st.Sort)
}

func TestStateFromRequestDefaults(t *testing.T) {
	st := stateFromRequest(callTool("list_alerts", nil))
	assert.Equal(t, view.Default(), st)
}

func TestHandleListAlerts(t *testing.T) {
	res, err := testServer().HandleListAlerts(context.Background(), callTool("list_alerts", map[string]any{
		"view":      "without-bugs",
		"platforms": "Linux",
		"sort":      "alertId",
		"dir":       "desc",
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var doc render.Document
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &doc))
	assert.Equal(t, view.ModeWithoutBugs, doc.Mode)
	require.Len(t, doc.Alerts, 2)
	assert.Equal(t, int64(3), doc.Alerts[0].AlertID)
	assert.Equal(t, "Total Alerts (Without Bugs): 2", doc.Summary)
}

func TestHandleListAlertsGrouped(t *testing.T) {
	res, err := testServer().HandleListAlerts(context.Background(), callTool("list_alerts", map[string]any{
		"view":                "grouped",
		"groupedWithBugsOnly": "true",
	}))
	require.NoError(t, err)

	var doc render.Document
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &doc))
	require.Len(t, doc.Groups, 1)
	assert.Equal(t, int64(10), doc.Groups[0].SummaryID)
	assert.Equal(t, 2, doc.Groups[0].Count)
}

func TestHandleListPlatforms(t *testing.T) {
	res, err := testServer().HandleListPlatforms(context.Background(), callTool("list_platforms", nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"platforms":["Linux","Windows"]}`, resultText(t, res))
}

func TestHandlersReportLoadFailure(t *testing.T) {
	s := New(&dashboard.Snapshot{Status: dashboard.StatusFailed, Err: errors.New("HTTP error! status: 404")}, nil)

	res, err := s.HandleListAlerts(context.Background(), callTool("list_alerts", nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "Error loading alerts: HTTP error! status: 404", resultText(t, res))

	s = New(&dashboard.Snapshot{Status: dashboard.StatusEmpty, Store: store.New(nil)}, nil)
	res, err = s.HandleListPlatforms(context.Background(), callTool("list_platforms", nil))
	require.NoError(t, err)
	assert.Equal(t, "No alerts found.", resultText(t, res))
}
