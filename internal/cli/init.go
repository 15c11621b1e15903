package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syncvisor/syncvisor/internal/config"
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteDefaultConfig(path); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "syncvisor.yaml", "Where to write the config file")

	return cmd
}
