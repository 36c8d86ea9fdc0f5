package runtime

import "strings"

// ImageRef identifies one tagged image on the source engine.
type ImageRef struct {
	Repository string
	Tag        string
}

// ParseImageRef splits a repo:tag pair. The repository may itself contain a
// registry port, so only the last colon separates the tag.
func ParseImageRef(s string) ImageRef {
	if i := strings.LastIndex(s, ":"); i >= 0 && !strings.Contains(s[i+1:], "/") {
		return ImageRef{Repository: s[:i], Tag: s[i+1:]}
	}
	return ImageRef{Repository: s, Tag: "latest"}
}

func (r ImageRef) String() string {
	return r.Repository + ":" + r.Tag
}

// Untagged reports whether the ref is the dangling-image sentinel.
func (r ImageRef) Untagged() bool {
	return r.Repository == "<none>" || r.Tag == "<none>"
}

// Volume is one named volume on the source engine. Mountpoint is the
// directory holding its data tree.
type Volume struct {
	Name       string
	Mountpoint string
}

// NetworkDef describes a source network. Only the first IPAM block is
// carried; multi-block IPAM is not supported.
type NetworkDef struct {
	Name    string
	Driver  string
	Subnet  string
	Gateway string
	IPRange string
}

// MountKind classifies a container mount.
type MountKind string

const (
	MountKindVolume MountKind = "volume"
	MountKindBind   MountKind = "bind"
)

// MountPoint is one mount entry as reported by container inspection.
type MountPoint struct {
	Kind        MountKind
	Name        string // volume name, set when Kind is MountKindVolume
	Source      string // host path for binds, data dir for volumes
	Destination string
	ReadWrite   bool
}

// PortBinding is one host-side binding of a published port.
type PortBinding struct {
	HostIP   string
	HostPort string
}

// PublishedPort is one exposed-port entry keyed by its introspection spec
// ("80/tcp"). A port may carry several host bindings.
type PublishedPort struct {
	Spec     string
	Bindings []PortBinding
}

// NetworkEndpoint is one network attachment of a container.
type NetworkEndpoint struct {
	Name      string
	IPAddress string
}

// ContainerDetail is the full runtime configuration captured from one
// container before anything mutates. Ports and networks are sorted by key so
// repeated captures of the same container enumerate identically.
type ContainerDetail struct {
	Name          string
	Running       bool
	RestartPolicy string
	Mounts        []MountPoint
	Ports         []PublishedPort
	Networks      []NetworkEndpoint
}
