package runtime

// MountOption is one mount entry of a container creation request.
type MountOption struct {
	Source      string
	Destination string
	Mode        string // "rw", "ro", with ",U" appended for volume mounts
}

func (m MountOption) String() string {
	return m.Source + ":" + m.Destination + ":" + m.Mode
}

// PortOption is one port publication of a container creation request. An
// empty HostIP binds to all interfaces.
type PortOption struct {
	HostIP        string
	HostPort      string
	ContainerPort string
	Protocol      string
}

func (p PortOption) String() string {
	s := p.HostPort + ":" + p.ContainerPort + "/" + p.Protocol
	if p.HostIP != "" {
		s = p.HostIP + ":" + s
	}
	return s
}

// NetworkOption attaches the container to one network, optionally with a
// static address.
type NetworkOption struct {
	Name      string
	IPAddress string
}

// ContainerSpec is the declarative creation request handed to the target
// runtime. Option slices keep their insertion order; empty slices are valid.
type ContainerSpec struct {
	Name          string
	Image         string
	RestartPolicy string // empty means no restart flag is emitted
	Mounts        []MountOption
	Ports         []PortOption
	Networks      []NetworkOption
}
