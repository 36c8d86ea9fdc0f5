package migrate

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"dock2pod/pkg/bytesize"
	"dock2pod/pkg/runtime"
)

// ContainerMigrator rebuilds containers on the target engine, preserving
// mounts, published ports, network attachments, restart policy and whether
// the container was running. Each container runs through its stages in
// order; a stage failure aborts that container and the overall migration
// moves on to the next one.
type ContainerMigrator struct {
	source  runtime.Source
	target  runtime.Target
	workDir string
}

// NewContainerMigrator creates a container migrator writing image archives
// to workDir.
func NewContainerMigrator(source runtime.Source, target runtime.Target, workDir string) *ContainerMigrator {
	return &ContainerMigrator{source: source, target: target, workDir: workDir}
}

// Migrate processes every container on the source, stopped ones included.
func (m *ContainerMigrator) Migrate(ctx context.Context) ([]Result, error) {
	names, err := m.source.ListContainers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate containers: %w", err)
	}

	var results []Result
	for _, name := range names {
		if err := m.migrateOne(ctx, name); err != nil {
			log.Error("container migration failed", "container", name, "err", err)
			results = append(results, failed(KindContainer, name, err))
			continue
		}
		results = append(results, ok(KindContainer, name))
	}
	return results, nil
}

// migrateOne runs the per-container stages. Capture comes first so the
// desired end state survives the stages that stop the source container.
func (m *ContainerMigrator) migrateOne(ctx context.Context, name string) error {
	detail, err := m.source.InspectContainer(ctx, name)
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}

	imageRef := SnapshotImageRef(detail.Name)
	if err := m.freeze(ctx, name, imageRef); err != nil {
		return err
	}

	spec := BuildContainerSpec(detail, imageRef)

	if detail.Running {
		// free published host ports before the target binds them
		if err := m.source.StopContainer(ctx, name); err != nil {
			return fmt.Errorf("stop source: %w", err)
		}
	}

	if err := m.target.RunContainer(ctx, spec); err != nil {
		return fmt.Errorf("create: %w", err)
	}

	if !detail.Running {
		// run starts detached; match the captured state
		if err := m.target.StopContainer(ctx, detail.Name); err != nil {
			return fmt.Errorf("restore stopped state: %w", err)
		}
	}

	log.Info("container migrated",
		"container", detail.Name, "image", imageRef, "running", detail.Running)
	return nil
}

// freeze commits the container to its snapshot image and carries that image
// across through a transient archive. Without the image there is nothing to
// recreate, so any sub-step failure aborts the container.
func (m *ContainerMigrator) freeze(ctx context.Context, name, imageRef string) error {
	if err := m.source.CommitContainer(ctx, name, imageRef); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	path := ArchivePath(m.workDir, imageRef)
	defer os.Remove(path)

	if err := m.source.ExportImage(ctx, imageRef, path); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if info, err := os.Stat(path); err == nil {
		log.Debug("snapshot exported", "image", imageRef, "size", bytesize.Format(info.Size()))
	}
	if err := m.target.LoadImage(ctx, path); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	return nil
}
