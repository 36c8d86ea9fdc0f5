package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/volume"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"

	"dock2pod/pkg/runtime"
)

// DockerSource implements the Source interface using the Docker API.
type DockerSource struct {
	client *client.Client
}

// NewDockerSource creates a Docker-backed source runtime. A non-empty host
// overrides the socket taken from the environment.
func NewDockerSource(host string) (*DockerSource, error) {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}
	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}
	return &DockerSource{client: cli}, nil
}

// Ping checks that the source engine is responsive.
func (d *DockerSource) Ping(ctx context.Context) error {
	if _, err := d.client.Ping(ctx); err != nil {
		return fmt.Errorf("Docker ping failed: %w", err)
	}
	return nil
}

// ListImages returns every repo:tag pair known to the source engine. The
// <none>:<none> sentinel for dangling images is passed through; callers
// decide what to do with it.
func (d *DockerSource) ListImages(ctx context.Context) ([]runtime.ImageRef, error) {
	images, err := d.client.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}

	var refs []runtime.ImageRef
	for _, img := range images {
		for _, tag := range img.RepoTags {
			refs = append(refs, runtime.ParseImageRef(tag))
		}
	}
	return refs, nil
}

// ListVolumes returns the named volumes on the source engine together with
// their data directories.
func (d *DockerSource) ListVolumes(ctx context.Context) ([]runtime.Volume, error) {
	resp, err := d.client.VolumeList(ctx, volume.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list volumes: %w", err)
	}

	var vols []runtime.Volume
	for _, v := range resp.Volumes {
		vols = append(vols, runtime.Volume{Name: v.Name, Mountpoint: v.Mountpoint})
	}
	sort.Slice(vols, func(i, j int) bool { return vols[i].Name < vols[j].Name })
	return vols, nil
}

// ListNetworks returns every network on the source engine. Only the first
// IPAM block of each network carries over.
func (d *DockerSource) ListNetworks(ctx context.Context) ([]runtime.NetworkDef, error) {
	nets, err := d.client.NetworkList(ctx, network.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list networks: %w", err)
	}

	var defs []runtime.NetworkDef
	for _, n := range nets {
		def := runtime.NetworkDef{Name: n.Name, Driver: n.Driver}
		if len(n.IPAM.Config) > 0 {
			def.Subnet = n.IPAM.Config[0].Subnet
			def.Gateway = n.IPAM.Config[0].Gateway
			def.IPRange = n.IPAM.Config[0].IPRange
		}
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs, nil
}

// ListContainers returns the names of all containers, including stopped ones.
func (d *DockerSource) ListContainers(ctx context.Context) ([]string, error) {
	containers, err := d.client.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	var names []string
	for _, c := range containers {
		if len(c.Names) == 0 {
			continue
		}
		names = append(names, strings.TrimPrefix(c.Names[0], "/"))
	}
	sort.Strings(names)
	return names, nil
}

// InspectContainer captures the full runtime configuration of one container.
func (d *DockerSource) InspectContainer(ctx context.Context, name string) (*runtime.ContainerDetail, error) {
	resp, err := d.client.ContainerInspect(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect container %s: %w", name, err)
	}
	return convertInspect(resp), nil
}

// convertInspect maps the engine's inspection response onto the migration
// data model. Map-shaped sections are sorted so captures enumerate
// deterministically.
func convertInspect(resp container.InspectResponse) *runtime.ContainerDetail {
	detail := &runtime.ContainerDetail{}
	if resp.ContainerJSONBase != nil {
		detail.Name = strings.TrimPrefix(resp.Name, "/")
		if resp.State != nil {
			detail.Running = resp.State.Running
		}
		if resp.HostConfig != nil {
			detail.RestartPolicy = string(resp.HostConfig.RestartPolicy.Name)
		}
	}

	for _, m := range resp.Mounts {
		switch m.Type {
		case mount.TypeVolume:
			detail.Mounts = append(detail.Mounts, runtime.MountPoint{
				Kind:        runtime.MountKindVolume,
				Name:        m.Name,
				Source:      m.Source,
				Destination: m.Destination,
				ReadWrite:   m.RW,
			})
		case mount.TypeBind:
			detail.Mounts = append(detail.Mounts, runtime.MountPoint{
				Kind:        runtime.MountKindBind,
				Source:      m.Source,
				Destination: m.Destination,
				ReadWrite:   m.RW,
			})
		}
		// tmpfs and friends carry no migratable data
	}

	if resp.NetworkSettings == nil {
		return detail
	}

	specs := make([]string, 0, len(resp.NetworkSettings.Ports))
	for p := range resp.NetworkSettings.Ports {
		specs = append(specs, string(p))
	}
	sort.Strings(specs)
	for _, spec := range specs {
		bindings := resp.NetworkSettings.Ports[nat.Port(spec)]
		if len(bindings) == 0 {
			// exposed but not published
			continue
		}
		port := runtime.PublishedPort{Spec: spec}
		for _, b := range bindings {
			port.Bindings = append(port.Bindings, runtime.PortBinding{HostIP: b.HostIP, HostPort: b.HostPort})
		}
		detail.Ports = append(detail.Ports, port)
	}

	netNames := make([]string, 0, len(resp.NetworkSettings.Networks))
	for n := range resp.NetworkSettings.Networks {
		netNames = append(netNames, n)
	}
	sort.Strings(netNames)
	for _, n := range netNames {
		ep := resp.NetworkSettings.Networks[n]
		attachment := runtime.NetworkEndpoint{Name: n}
		if ep != nil {
			attachment.IPAddress = ep.IPAddress
		}
		detail.Networks = append(detail.Networks, attachment)
	}

	return detail
}

// CommitContainer freezes the container's current filesystem and config into
// a new image.
func (d *DockerSource) CommitContainer(ctx context.Context, name, imageRef string) error {
	_, err := d.client.ContainerCommit(ctx, name, container.CommitOptions{Reference: imageRef})
	if err != nil {
		return fmt.Errorf("failed to commit container %s: %w", name, err)
	}
	return nil
}

// ExportImage serializes an image into a tar archive at path.
func (d *DockerSource) ExportImage(ctx context.Context, imageRef, path string) error {
	reader, err := d.client.ImageSave(ctx, []string{imageRef})
	if err != nil {
		return fmt.Errorf("failed to save image %s: %w", imageRef, err)
	}
	defer reader.Close()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create archive %s: %w", path, err)
	}
	if _, err := io.Copy(f, reader); err != nil {
		f.Close()
		return fmt.Errorf("failed to write archive %s: %w", path, err)
	}
	return f.Close()
}

// StopContainer stops a container on the source engine.
func (d *DockerSource) StopContainer(ctx context.Context, name string) error {
	timeout := 30 // seconds
	err := d.client.ContainerStop(ctx, name, container.StopOptions{Timeout: &timeout})
	if err != nil {
		return fmt.Errorf("failed to stop container %s: %w", name, err)
	}
	return nil
}
