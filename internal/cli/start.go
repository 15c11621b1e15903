package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/syncvisor/syncvisor/internal/api"
	"github.com/syncvisor/syncvisor/internal/config"
	"github.com/syncvisor/syncvisor/internal/metrics"
	"github.com/syncvisor/syncvisor/internal/monitor"
	"github.com/syncvisor/syncvisor/internal/source"
	"github.com/syncvisor/syncvisor/pkg/logger"
)

// NewStartCommand creates the start command
func NewStartCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the sync monitor loop",
		Long: `Start runs the periodic sync check until interrupted. Each cycle queries
the local node with retries, resolves the proven remote height from the
primary RPC or the explorer fallback, and reports the classified sync state.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, cfg, log, err := setup(opts)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return runStart(mgr, cfg, log)
		},
	}

	return cmd
}

func runStart(mgr *config.Manager, cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.NewCollector(log)

		exporter := metrics.NewExporter(collector, cfg.MetricsPort, cfg.MetricsPath, log)
		if err := exporter.Start(); err != nil {
			return fmt.Errorf("failed to start metrics exporter: %w", err)
		}
		defer exporter.Stop()
	}

	mon := newMonitor(cfg, collector, log)

	// Interval and retry settings follow config file edits; source URLs
	// take effect on restart.
	mgr.Watch(func(updated *config.Config) {
		mon.UpdateConfig(updated)
	})

	if cfg.APIEnabled {
		srv := api.NewServer(cfg, mon, log)
		if err := srv.Start(); err != nil {
			return fmt.Errorf("failed to start status API: %w", err)
		}
		defer srv.Stop()
	}

	// Run returns nil on interrupt so the process exits with code 0.
	return mon.Run(ctx)
}

// newMonitor wires the local client and the primary-then-fallback remote
// chain from configuration.
func newMonitor(cfg *config.Config, collector *metrics.Collector, log *logger.Logger) *monitor.Monitor {
	local := source.NewLocalClient(cfg.LocalRPCURL, cfg.RequestTimeout, log)

	var primary, fallback source.HeightSource
	if cfg.RemoteRPCURL != "" {
		primary = source.NewPrimaryClient(cfg.RemoteRPCURL, cfg.RequestTimeout, log)
	}
	if cfg.ExplorerAPIURL != "" {
		explorer := source.NewExplorerClient(cfg.ExplorerAPIURL, cfg.ExplorerAPIKey, cfg.RequestTimeout, log)
		fallback = source.NewResolver(explorer, cfg.WindowSize, log)
	}

	remote := source.NewRemoteResolver(primary, fallback, log)

	return monitor.New(cfg, local, remote, collector, log)
}
