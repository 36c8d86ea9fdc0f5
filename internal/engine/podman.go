package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"dock2pod/pkg/runtime"
)

// PodmanTarget drives the target engine through the podman CLI. The
// docker-compatible API socket cannot express the :U ownership-fix mount
// suffix or per-network static addresses, so creation goes through the
// binary itself.
type PodmanTarget struct {
	binary string
	run    Runner
}

// NewPodmanTarget creates a podman-backed target runtime.
func NewPodmanTarget(binary string) *PodmanTarget {
	if binary == "" {
		binary = "podman"
	}
	return &PodmanTarget{binary: binary, run: execRunner{}}
}

// Version returns the podman client version.
func (p *PodmanTarget) Version(ctx context.Context) (string, error) {
	out, err := p.run.Run(ctx, p.binary, "version", "--format", "{{.Client.Version}}")
	if err != nil {
		return "", fmt.Errorf("failed to read podman version: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// LoadImage imports a tar archive into the target image store.
func (p *PodmanTarget) LoadImage(ctx context.Context, path string) error {
	if _, err := p.run.Run(ctx, p.binary, "load", "-i", path); err != nil {
		return fmt.Errorf("failed to load image archive %s: %w", path, err)
	}
	return nil
}

// podmanInfo mirrors the store section of `podman info --format json`.
type podmanInfo struct {
	Store struct {
		VolumePath string `json:"volumePath"`
	} `json:"store"`
}

// VolumeRoot resolves the directory the target engine keeps volume data
// under.
func (p *PodmanTarget) VolumeRoot(ctx context.Context) (string, error) {
	out, err := p.run.Run(ctx, p.binary, "info", "--format", "json")
	if err != nil {
		return "", fmt.Errorf("failed to query podman info: %w", err)
	}
	var info podmanInfo
	if err := json.Unmarshal(out, &info); err != nil {
		return "", fmt.Errorf("failed to decode podman info: %w", err)
	}
	if info.Store.VolumePath == "" {
		return "", fmt.Errorf("podman info reported no volume path")
	}
	return info.Store.VolumePath, nil
}

// CreateVolume creates a named volume. Creating an existing name is a no-op.
func (p *PodmanTarget) CreateVolume(ctx context.Context, name string) error {
	if _, err := p.run.Run(ctx, p.binary, "volume", "create", "--ignore", name); err != nil {
		return fmt.Errorf("failed to create volume %s: %w", name, err)
	}
	return nil
}

// NetworkExists queries the target for a network by name.
func (p *PodmanTarget) NetworkExists(ctx context.Context, name string) (bool, error) {
	_, err := p.run.Run(ctx, p.binary, "network", "exists", name)
	if err == nil {
		return true, nil
	}
	if ExitCode(err) == 1 {
		return false, nil
	}
	return false, fmt.Errorf("failed to check network %s: %w", name, err)
}

// CreateNetwork creates a network from the given definition.
func (p *PodmanTarget) CreateNetwork(ctx context.Context, def runtime.NetworkDef) error {
	args := []string{"network", "create", "--driver", def.Driver}
	if def.Subnet != "" {
		args = append(args, "--subnet", def.Subnet)
	}
	if def.Gateway != "" {
		args = append(args, "--gateway", def.Gateway)
	}
	if def.IPRange != "" {
		args = append(args, "--ip-range", def.IPRange)
	}
	args = append(args, def.Name)

	if _, err := p.run.Run(ctx, p.binary, args...); err != nil {
		return fmt.Errorf("failed to create network %s: %w", def.Name, err)
	}
	return nil
}

// RunContainer creates and starts a container from the spec. Every option is
// rendered as its own argv element; the engine rejects space-joined lists.
func (p *PodmanTarget) RunContainer(ctx context.Context, spec runtime.ContainerSpec) error {
	args := []string{"run", "-d", "--name", spec.Name}
	if spec.RestartPolicy != "" {
		args = append(args, "--restart", spec.RestartPolicy)
	}
	for _, m := range spec.Mounts {
		args = append(args, "-v", m.String())
	}
	for _, port := range spec.Ports {
		args = append(args, "-p", port.String())
	}
	for _, n := range spec.Networks {
		args = append(args, "--network="+n.Name)
		if n.IPAddress != "" {
			args = append(args, "--ip="+n.IPAddress)
		}
	}
	args = append(args, spec.Image)

	if _, err := p.run.Run(ctx, p.binary, args...); err != nil {
		return fmt.Errorf("failed to create container %s: %w", spec.Name, err)
	}
	return nil
}

// StopContainer stops a container on the target engine.
func (p *PodmanTarget) StopContainer(ctx context.Context, name string) error {
	if _, err := p.run.Run(ctx, p.binary, "stop", name); err != nil {
		return fmt.Errorf("failed to stop container %s: %w", name, err)
	}
	return nil
}
