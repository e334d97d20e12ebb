// Package main provides the entry point for the alertdash MCP (Model Context Protocol) server.
package main

import (
	"context"
	"log/slog"
	"os"

	"alertdash/internal/config"
	"alertdash/internal/dashboard"
	mcpsrv "alertdash/internal/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to config.yaml")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// stdout carries the protocol, so logs go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.App.SlogLevel()}))

	snap := dashboard.NewRedashLoader(cfg.Redash, nil, logger).Load(context.Background())

	s := server.NewMCPServer(
		"alertdash-mcp",
		"1.0.0",
	)
	mcpsrv.New(snap, logger).RegisterTools(s)

	logger.Info("alertdash MCP server listening on stdio", "snapshot", snap.ID, "status", snap.Status)
	if err := server.ServeStdio(s); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
