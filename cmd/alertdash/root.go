package main

import (
	"fmt"
	"io"
	"log/slog"

	"alertdash/internal/config"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "alertdash",
		Short: "Telemetry alert dashboard",
		Long: `alertdash fetches the pre-computed telemetry alert query once and lets you
view, filter, sort and group the alerts in a browser or in the terminal.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to config.yaml (default: search ., ./config, /etc/alertdash)")

	cmd.AddCommand(
		newServeCmd(opts),
		newShowCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// setup loads the configuration and builds the process logger.
func (o *rootOptions) setup(logOut io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: cfg.App.SlogLevel()}))
	return cfg, logger, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "alertdash "+version)
		},
	}
}
