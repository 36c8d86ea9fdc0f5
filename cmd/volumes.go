package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"dock2pod/internal/filesync"
	"dock2pod/internal/migrate"
)

var volumesCmd = &cobra.Command{
	Use:   "volumes",
	Short: "Migrate named volumes and their data",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := passContext()
		defer cancel()

		src, dst, err := newRuntimes(ctx)
		if err != nil {
			return err
		}

		syncer := filesync.NewRsync(cfg.Target.RsyncBinary)
		chown := migrate.OwnershipSpec(os.Geteuid())
		results, err := migrate.NewVolumeMigrator(src, dst, syncer, chown).Migrate(ctx)
		if err != nil {
			return err
		}
		report(results)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(volumesCmd)
}
