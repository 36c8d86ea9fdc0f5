package cmd

import (
	"github.com/spf13/cobra"

	"dock2pod/internal/migrate"
)

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Migrate tagged images",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := passContext()
		defer cancel()

		src, dst, err := newRuntimes(ctx)
		if err != nil {
			return err
		}

		results, err := migrate.NewImageMigrator(src, dst, cfg.WorkDir).Migrate(ctx)
		if err != nil {
			return err
		}
		report(results)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(imagesCmd)
}
