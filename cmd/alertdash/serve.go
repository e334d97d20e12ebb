package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"alertdash/internal/dashboard"
	"alertdash/internal/metrics"
	"alertdash/internal/server"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the alerts once and serve the dashboard over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.setup(os.Stderr)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.App.Port = port
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			m := metrics.New(reg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// The page is served even when the load failed so that the
			// error is visible to the user.
			snap := dashboard.NewRedashLoader(cfg.Redash, m, logger).Load(ctx)

			srv := server.New(cfg, snap, m, logger)
			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server error: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			if err := srv.Shutdown(context.Background()); err != nil {
				return fmt.Errorf("server shutdown: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "override app.port")
	return cmd
}
