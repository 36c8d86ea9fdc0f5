package cmd

import (
	"github.com/spf13/cobra"

	"dock2pod/internal/migrate"
)

var containersCmd = &cobra.Command{
	Use:   "containers",
	Short: "Migrate containers, preserving their runtime configuration",
	Long: `Migrate every container, stopped ones included. Each container is
committed to a snapshot image, carried across, and recreated with its
mounts, published ports, network attachments and restart policy. A container
that was running is started; one that was stopped is recreated stopped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := passContext()
		defer cancel()

		src, dst, err := newRuntimes(ctx)
		if err != nil {
			return err
		}

		results, err := migrate.NewContainerMigrator(src, dst, cfg.WorkDir).Migrate(ctx)
		if err != nil {
			return err
		}
		report(results)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(containersCmd)
}
