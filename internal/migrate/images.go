package migrate

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"dock2pod/pkg/bytesize"
	"dock2pod/pkg/runtime"
)

// ImageMigrator moves every tagged image from the source engine to the
// target through a transient tar archive in workDir.
type ImageMigrator struct {
	source  runtime.Source
	target  runtime.Target
	workDir string
}

// NewImageMigrator creates an image migrator writing archives to workDir.
func NewImageMigrator(source runtime.Source, target runtime.Target, workDir string) *ImageMigrator {
	return &ImageMigrator{source: source, target: target, workDir: workDir}
}

// Migrate processes the full image inventory, one item at a time. A failed
// image is reported and the loop continues.
func (m *ImageMigrator) Migrate(ctx context.Context) ([]Result, error) {
	refs, err := m.source.ListImages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate images: %w", err)
	}

	var results []Result
	for _, ref := range refs {
		if ref.Untagged() {
			results = append(results, skip(KindImage, ref.String(), "untagged"))
			continue
		}
		if err := m.migrateOne(ctx, ref); err != nil {
			log.Error("image migration failed", "image", ref.String(), "err", err)
			results = append(results, failed(KindImage, ref.String(), err))
			continue
		}
		log.Info("image migrated", "image", ref.String())
		results = append(results, ok(KindImage, ref.String()))
	}
	return results, nil
}

func (m *ImageMigrator) migrateOne(ctx context.Context, ref runtime.ImageRef) error {
	path := ArchivePath(m.workDir, ref.String())
	// the archive is transient whether or not the transfer worked
	defer os.Remove(path)

	if err := m.source.ExportImage(ctx, ref.String(), path); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if info, err := os.Stat(path); err == nil {
		log.Debug("image exported", "image", ref.String(), "size", bytesize.Format(info.Size()))
	}
	if err := m.target.LoadImage(ctx, path); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	return nil
}
