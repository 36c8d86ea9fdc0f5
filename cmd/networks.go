package cmd

import (
	"github.com/spf13/cobra"

	"dock2pod/internal/migrate"
)

var networksCmd = &cobra.Command{
	Use:   "networks",
	Short: "Migrate user-defined networks",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := passContext()
		defer cancel()

		src, dst, err := newRuntimes(ctx)
		if err != nil {
			return err
		}

		results, err := migrate.NewNetworkMigrator(src, dst).Migrate(ctx)
		if err != nil {
			return err
		}
		report(results)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(networksCmd)
}
