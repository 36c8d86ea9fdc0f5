package migrate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"dock2pod/pkg/runtime"
)

// FileSyncer copies one directory tree into another, preserving attributes.
// A non-empty chown spec ("uid:gid") remaps ownership on the way.
type FileSyncer interface {
	Sync(ctx context.Context, src, dst, chown string) error
}

// VolumeMigrator recreates named volumes on the target and copies their data
// trees with the configured file syncer.
type VolumeMigrator struct {
	source runtime.Source
	target runtime.Target
	syncer FileSyncer
	chown  string
}

// NewVolumeMigrator creates a volume migrator. chown may be empty to keep
// ownership as-is.
func NewVolumeMigrator(source runtime.Source, target runtime.Target, syncer FileSyncer, chown string) *VolumeMigrator {
	return &VolumeMigrator{source: source, target: target, syncer: syncer, chown: chown}
}

// Migrate processes the full volume inventory. Creation failures are
// terminal for that volume; the loop continues with the next one.
func (m *VolumeMigrator) Migrate(ctx context.Context) ([]Result, error) {
	vols, err := m.source.ListVolumes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate volumes: %w", err)
	}
	if len(vols) == 0 {
		return nil, nil
	}

	root, err := m.target.VolumeRoot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve target volume root: %w", err)
	}

	var results []Result
	for _, vol := range vols {
		if err := m.migrateOne(ctx, vol, root); err != nil {
			log.Error("volume migration failed", "volume", vol.Name, "err", err)
			results = append(results, failed(KindVolume, vol.Name, err))
			continue
		}
		log.Info("volume migrated", "volume", vol.Name)
		results = append(results, ok(KindVolume, vol.Name))
	}
	return results, nil
}

func (m *VolumeMigrator) migrateOne(ctx context.Context, vol runtime.Volume, root string) error {
	if err := m.target.CreateVolume(ctx, vol.Name); err != nil {
		return fmt.Errorf("create: %w", err)
	}
	dst := filepath.Join(root, vol.Name, "_data")
	if err := m.syncer.Sync(ctx, vol.Mountpoint, dst, m.chown); err != nil {
		return fmt.Errorf("copy data: %w", err)
	}
	return nil
}

// OwnershipSpec returns the uid:gid remap for volume data copied on behalf
// of a sudo caller. Root-owned source trees must end up readable by the
// unprivileged principal the target engine runs as.
func OwnershipSpec(euid int) string {
	if euid != 0 {
		return ""
	}
	uid, gid := os.Getenv("SUDO_UID"), os.Getenv("SUDO_GID")
	if uid == "" || gid == "" {
		return ""
	}
	return uid + ":" + gid
}
