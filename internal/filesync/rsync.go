// Package filesync wraps the external file-sync utility used to move volume
// data between engine storage roots.
package filesync

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Rsync copies directory trees with an archive-preserving recursive copy.
type Rsync struct {
	binary string
	run    func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewRsync creates an rsync-backed syncer. An empty binary means the one on
// PATH.
func NewRsync(binary string) *Rsync {
	if binary == "" {
		binary = "rsync"
	}
	return &Rsync{binary: binary, run: runCommand}
}

// Sync copies the tree rooted at src into dst, creating dst first. A
// non-empty chown spec ("uid:gid") remaps ownership so an unprivileged
// target engine can read files a privileged source engine wrote.
func (r *Rsync) Sync(ctx context.Context, src, dst, chown string) error {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	args := []string{"-a"}
	if chown != "" {
		args = append(args, "--chown="+chown)
	}
	// a trailing slash makes rsync copy the contents, not the directory
	args = append(args, strings.TrimSuffix(src, "/")+"/", dst)

	if _, err := r.run(ctx, r.binary, args...); err != nil {
		return fmt.Errorf("failed to sync %s to %s: %w", src, dst, err)
	}
	return nil
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		var xe *exec.ExitError
		if errors.As(err, &xe) {
			return out, fmt.Errorf("%s exited with %d: %s", name, xe.ExitCode(), strings.TrimSpace(string(out)))
		}
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}
