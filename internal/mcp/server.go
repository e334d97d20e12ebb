// Package mcp exposes the alert views as Model Context Protocol (MCP) tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"

	"alertdash/internal/dashboard"
	"alertdash/internal/render"
	"alertdash/internal/urlstate"
	"alertdash/internal/view"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server binds a loaded snapshot to MCP tool handlers.
type Server struct {
	snapshot *dashboard.Snapshot
	logger   *slog.Logger
}

// New creates a new MCP server wrapper
func New(snap *dashboard.Snapshot, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{snapshot: snap, logger: logger}
}

// stateParams are the tool arguments that map one to one onto dashboard
// query parameters.
var stateParams = []string{
	urlstate.ParamView,
	urlstate.ParamPlatforms,
	urlstate.ParamProbe,
	urlstate.ParamDateFrom,
	urlstate.ParamDateTo,
	urlstate.ParamGroupedWithBugsOnly,
	urlstate.ParamSort,
	urlstate.ParamDir,
	urlstate.ParamGroupSort,
	urlstate.ParamGroupDir,
}

// RegisterTools registers the alert tools with the MCP server
func (s *Server) RegisterTools(mcpServer *server.MCPServer) {
	listAlerts := mcp.NewTool("list_alerts",
		mcp.WithDescription("Lists telemetry alerts in one of the dashboard views with optional filters and sorting."),
		mcp.WithString(urlstate.ParamView, mcp.Description("View mode: with-bugs (default), without-bugs or grouped")),
		mcp.WithString(urlstate.ParamPlatforms, mcp.Description("Comma separated platforms to keep")),
		mcp.WithString(urlstate.ParamProbe, mcp.Description("Space separated probe search terms, any term may match")),
		mcp.WithString(urlstate.ParamDateFrom, mcp.Description("Earliest push date, YYYY-MM-DD")),
		mcp.WithString(urlstate.ParamDateTo, mcp.Description("Latest push date, YYYY-MM-DD")),
		mcp.WithString(urlstate.ParamGroupedWithBugsOnly, mcp.Description("true to keep only groups with a bug in the grouped view")),
		mcp.WithString(urlstate.ParamSort, mcp.Description("Column of the flat views: alertId, alertSummaryId, bug, bugStatus, probe, platform, pushDate, created")),
		mcp.WithString(urlstate.ParamDir, mcp.Description("Sort direction: asc or desc")),
		mcp.WithString(urlstate.ParamGroupSort, mcp.Description("Group column: summaryId, count, mostRecent, detectionDate")),
		mcp.WithString(urlstate.ParamGroupDir, mcp.Description("Group sort direction: asc or desc")),
	)
	mcpServer.AddTool(listAlerts, s.HandleListAlerts)

	listPlatforms := mcp.NewTool("list_platforms",
		mcp.WithDescription("Lists the platforms present in the loaded alerts."),
	)
	mcpServer.AddTool(listPlatforms, s.HandleListPlatforms)
}

// HandleListAlerts computes a view from the tool arguments and returns it as JSON.
func (s *Server) HandleListAlerts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := s.loadError(); res != nil {
		return res, nil
	}

	st := stateFromRequest(request)
	doc := render.NewDocument(view.Compute(s.snapshot.Store.Alerts(), st))
	s.logger.Debug("Listing alerts", "mode", doc.Mode, "total", doc.Total)

	return jsonResult(doc)
}

// HandleListPlatforms returns the platform filter options.
func (s *Server) HandleListPlatforms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := s.loadError(); res != nil {
		return res, nil
	}
	return jsonResult(map[string][]string{"platforms": s.snapshot.Store.Platforms()})
}

func (s *Server) loadError() *mcp.CallToolResult {
	switch s.snapshot.Status {
	case dashboard.StatusFailed:
		return mcp.NewToolResultError(fmt.Sprintf("Error loading alerts: %v", s.snapshot.Err))
	case dashboard.StatusEmpty:
		return mcp.NewToolResultText("No alerts found.")
	}
	return nil
}

// stateFromRequest routes the tool arguments through the URL codec so tools
// and dashboard links decode identically.
func stateFromRequest(request mcp.CallToolRequest) view.State {
	q := url.Values{}
	for _, name := range stateParams {
		if v := request.GetString(name, ""); v != "" {
			q.Set(name, v)
		}
	}
	return urlstate.DecodeSort(q, urlstate.Decode(q))
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
