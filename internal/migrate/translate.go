package migrate

import (
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"dock2pod/pkg/runtime"
)

// imageNamespace prefixes every committed snapshot image so it cannot
// collide with a user image of the same simple name.
const imageNamespace = "dock2pod"

// SnapshotImageRef derives the committed-image reference for a container,
// lower-cased and namespaced.
func SnapshotImageRef(name string) string {
	return imageNamespace + "/" + strings.ToLower(name) + ":latest"
}

// ArchivePath derives the transient tar location for an image reference.
// Path separators in the reference would otherwise nest the file.
func ArchivePath(workDir, imageRef string) string {
	return filepath.Join(workDir, strings.ReplaceAll(imageRef, "/", "_")+".tar")
}

// TranslateRestartPolicy maps a source restart policy onto the target flag
// value. Anything outside the recognized names, the empty string included,
// means no flag at all.
func TranslateRestartPolicy(policy string) string {
	switch policy {
	case "always", "unless-stopped", "on-failure":
		return policy
	default:
		return ""
	}
}

// TranslateMounts converts captured mounts into target mount options. Volume
// mounts always carry the U ownership-fix suffix so the target engine remaps
// the content to the container user. Bind mounts whose host path no longer
// exists are dropped: recreating a bind to a vanished path is meaningless.
func TranslateMounts(mounts []runtime.MountPoint) []runtime.MountOption {
	var opts []runtime.MountOption
	for _, m := range mounts {
		mode := "rw"
		if !m.ReadWrite {
			mode = "ro"
		}
		switch m.Kind {
		case runtime.MountKindVolume:
			opts = append(opts, runtime.MountOption{
				Source:      m.Name,
				Destination: m.Destination,
				Mode:        mode + ",U",
			})
		case runtime.MountKindBind:
			if _, err := os.Stat(m.Source); err != nil {
				log.Warn("bind source missing, dropping mount",
					"source", m.Source, "destination", m.Destination)
				continue
			}
			opts = append(opts, runtime.MountOption{
				Source:      m.Source,
				Destination: m.Destination,
				Mode:        mode,
			})
		}
	}
	return opts
}

// TranslatePorts flattens published ports into one option per host binding.
// The host IP is omitted whenever it is absent or the unspecified address,
// which the target reads as bind-everywhere.
func TranslatePorts(ports []runtime.PublishedPort) []runtime.PortOption {
	var opts []runtime.PortOption
	for _, p := range ports {
		containerPort, proto := splitPortSpec(p.Spec)
		for _, b := range p.Bindings {
			opt := runtime.PortOption{
				HostPort:      b.HostPort,
				ContainerPort: containerPort,
				Protocol:      proto,
			}
			if ip := net.ParseIP(b.HostIP); ip != nil && !ip.IsUnspecified() {
				opt.HostIP = b.HostIP
			}
			opts = append(opts, opt)
		}
	}
	return opts
}

// splitPortSpec takes an introspection port key like "80/tcp" apart. A
// missing or unknown protocol suffix defaults to tcp.
func splitPortSpec(spec string) (port, proto string) {
	port, proto = spec, "tcp"
	if i := strings.IndexByte(spec, '/'); i >= 0 {
		port = spec[:i]
		if strings.EqualFold(spec[i+1:], "udp") {
			proto = "udp"
		}
	}
	return port, proto
}

// TranslateNetworks emits one connect option per attachment, with a static
// address when the source recorded one. Attachments are independent and all
// apply simultaneously.
func TranslateNetworks(endpoints []runtime.NetworkEndpoint) []runtime.NetworkOption {
	var opts []runtime.NetworkOption
	for _, ep := range endpoints {
		opts = append(opts, runtime.NetworkOption{Name: ep.Name, IPAddress: ep.IPAddress})
	}
	return opts
}

// BuildContainerSpec assembles the declarative creation request from a
// captured container and its frozen image.
func BuildContainerSpec(detail *runtime.ContainerDetail, imageRef string) runtime.ContainerSpec {
	return runtime.ContainerSpec{
		Name:          detail.Name,
		Image:         imageRef,
		RestartPolicy: TranslateRestartPolicy(detail.RestartPolicy),
		Mounts:        TranslateMounts(detail.Mounts),
		Ports:         TranslatePorts(detail.Ports),
		Networks:      TranslateNetworks(detail.Networks),
	}
}
