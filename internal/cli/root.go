package cli

import (
	"github.com/spf13/cobra"

	"github.com/syncvisor/syncvisor/internal/config"
	"github.com/syncvisor/syncvisor/pkg/logger"
)

// options carries flag values shared by the subcommands.
type options struct {
	configPath string
}

// NewRootCommand creates the root command for syncvisor
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "syncvisor",
		Short: "L2 node sync monitor",
		Long: `Syncvisor continuously compares a locally-run L2 node's sync height
against the externally proven chain height, using the node RPC as the primary
source and a block-explorer API as fallback, and reports progress on a fixed
interval.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default ./syncvisor.yaml, $HOME/.syncvisor/syncvisor.yaml)")

	cmd.AddCommand(NewStartCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewInitCommand())
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// setup loads the configuration and builds the logger for a command run.
// The returned manager keeps the viper instance for hot-reload watching.
func setup(opts *options) (*config.Manager, *config.Config, *logger.Logger, error) {
	bootLog, err := logger.New(false, false, "")
	if err != nil {
		return nil, nil, nil, err
	}

	mgr := config.NewManager(opts.configPath, bootLog)
	cfg, err := mgr.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	log, err := logger.New(cfg.ColorLogs, cfg.DisableLogs, cfg.TimeFormatLogs)
	if err != nil {
		return nil, nil, nil, err
	}

	return mgr, cfg, log, nil
}
