package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"dock2pod/internal/filesync"
	"dock2pod/internal/migrate"
)

var assumeYes bool

// migrator is what every resource-kind migrator looks like to the
// orchestrating command.
type migrator interface {
	Migrate(ctx context.Context) ([]migrate.Result, error)
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Migrate images, volumes, networks and containers",
	Long: `Run the four migration passes in dependency order: images before
containers, networks and volumes before anything attaches to them. A pass
that cannot enumerate its inventory is skipped; the remaining passes still
run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !assumeYes {
			var proceed bool
			prompt := &survey.Confirm{
				Message: "Migrate all Docker state (images, volumes, networks, containers) to Podman?",
				Default: false,
			}
			if err := survey.AskOne(prompt, &proceed); err != nil {
				return fmt.Errorf("survey failed: %w", err)
			}
			if !proceed {
				return fmt.Errorf("migration cancelled")
			}
		}

		setupCtx, cancel := passContext()
		src, dst, err := newRuntimes(setupCtx)
		cancel()
		if err != nil {
			return err
		}

		syncer := filesync.NewRsync(cfg.Target.RsyncBinary)
		chown := migrate.OwnershipSpec(os.Geteuid())

		passes := []struct {
			name string
			m    migrator
		}{
			{"images", migrate.NewImageMigrator(src, dst, cfg.WorkDir)},
			{"volumes", migrate.NewVolumeMigrator(src, dst, syncer, chown)},
			{"networks", migrate.NewNetworkMigrator(src, dst)},
			{"containers", migrate.NewContainerMigrator(src, dst, cfg.WorkDir)},
		}

		for _, pass := range passes {
			log.Info("starting migration pass", "kind", pass.name)
			ctx, cancel := passContext()
			results, err := pass.m.Migrate(ctx)
			cancel()
			if err != nil {
				log.Error("migration pass failed", "kind", pass.name, "err", err)
				continue
			}
			report(results)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(allCmd)
	allCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")
}
