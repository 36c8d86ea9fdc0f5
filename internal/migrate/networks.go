package migrate

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"dock2pod/pkg/runtime"
)

// defaultDriver is the fallback for network drivers the target does not
// support.
const defaultDriver = "bridge"

var supportedDrivers = map[string]bool{
	"bridge":  true,
	"macvlan": true,
	"ipvlan":  true,
}

// NetworkMigrator recreates user-defined networks on the target. Existing
// names are never overwritten, and the host/none pseudo-networks have no
// target equivalent.
type NetworkMigrator struct {
	source runtime.Source
	target runtime.Target
}

// NewNetworkMigrator creates a network migrator.
func NewNetworkMigrator(source runtime.Source, target runtime.Target) *NetworkMigrator {
	return &NetworkMigrator{source: source, target: target}
}

// Migrate processes the full network inventory. A failed network is reported
// and the loop continues.
func (m *NetworkMigrator) Migrate(ctx context.Context) ([]Result, error) {
	nets, err := m.source.ListNetworks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate networks: %w", err)
	}

	var results []Result
	for _, def := range nets {
		if def.Name == "host" || def.Name == "none" {
			results = append(results, skip(KindNetwork, def.Name, "pseudo-network"))
			continue
		}

		exists, err := m.target.NetworkExists(ctx, def.Name)
		if err != nil {
			log.Error("network existence check failed", "network", def.Name, "err", err)
			results = append(results, failed(KindNetwork, def.Name, err))
			continue
		}
		if exists {
			log.Info("network already present on target", "network", def.Name)
			results = append(results, skip(KindNetwork, def.Name, "already exists"))
			continue
		}

		if !supportedDrivers[def.Driver] {
			log.Warn("unsupported network driver, falling back",
				"network", def.Name, "driver", def.Driver, "fallback", defaultDriver)
			def.Driver = defaultDriver
		}

		if err := m.target.CreateNetwork(ctx, def); err != nil {
			log.Error("network migration failed", "network", def.Name, "err", err)
			results = append(results, failed(KindNetwork, def.Name, err))
			continue
		}
		log.Info("network migrated", "network", def.Name, "driver", def.Driver)
		results = append(results, ok(KindNetwork, def.Name))
	}
	return results, nil
}
