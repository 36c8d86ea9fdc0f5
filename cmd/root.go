package cmd

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dock2pod/internal/config"
	"dock2pod/internal/engine"
	"dock2pod/internal/migrate"
	"dock2pod/pkg/runtime"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "dock2pod",
	Short: "One-shot Docker to Podman state migration",
	Long: `dock2pod inventories images, volumes, networks and containers on a
Docker engine and recreates them on Podman, preserving restart policies,
mounts, published ports, network attachments and running state.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		return err
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./dock2pod.yaml)")
}

// passContext bounds one migration pass so an unresponsive engine cannot
// hang the run forever.
func passContext() (context.Context, context.CancelFunc) {
	if cfg.Timeout > 0 {
		return context.WithTimeout(context.Background(), cfg.Timeout)
	}
	return context.WithCancel(context.Background())
}

// newRuntimes builds the source and target adapters and verifies both ends
// are reachable before anything mutates.
func newRuntimes(ctx context.Context) (runtime.Source, runtime.Target, error) {
	src, err := engine.NewDockerSource(cfg.Source.Host)
	if err != nil {
		return nil, nil, err
	}
	if err := src.Ping(ctx); err != nil {
		return nil, nil, err
	}

	dst := engine.NewPodmanTarget(cfg.Target.Binary)
	version, err := dst.Version(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("podman not available: %w", err)
	}
	checkPodmanVersion(version)
	return src, dst, nil
}

var minPodman = semver.MustParse("3.1.0")

// checkPodmanVersion warns when the target predates the :U mount option and
// `network exists`. Migration still proceeds; individual stages will fail
// loudly if the engine really cannot cope.
func checkPodmanVersion(version string) {
	v, err := semver.NewVersion(version)
	if err != nil {
		log.Warn("could not parse podman version", "version", version)
		return
	}
	if v.LessThan(minPodman) {
		log.Warn("podman is older than supported",
			"version", version, "minimum", minPodman.String())
	}
}

// report prints one human-readable status line per migrated resource. The
// operator reads this stream to assess completion; there is no structured
// exit summary.
func report(results []migrate.Result) {
	for _, r := range results {
		switch {
		case r.Err != nil:
			color.Red("✗ %s %s: %v", r.Kind, r.Name, r.Err)
		case r.Skipped:
			color.Yellow("- %s %s: skipped (%s)", r.Kind, r.Name, r.Reason)
		default:
			color.Green("✓ %s %s migrated", r.Kind, r.Name)
		}
	}
}
