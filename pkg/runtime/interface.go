package runtime

import "context"

// Source is the read side of a migration: the engine whose state is being
// inventoried and captured. Commit, export and stop are the only mutating
// calls, all of them part of the container freeze stage.
type Source interface {
	Ping(ctx context.Context) error

	ListImages(ctx context.Context) ([]ImageRef, error)
	ListVolumes(ctx context.Context) ([]Volume, error)
	ListNetworks(ctx context.Context) ([]NetworkDef, error)
	ListContainers(ctx context.Context) ([]string, error)

	InspectContainer(ctx context.Context, name string) (*ContainerDetail, error)
	CommitContainer(ctx context.Context, name, imageRef string) error
	ExportImage(ctx context.Context, imageRef, path string) error
	StopContainer(ctx context.Context, name string) error
}

// Target is the write side of a migration: the engine state is recreated on.
type Target interface {
	Version(ctx context.Context) (string, error)

	LoadImage(ctx context.Context, path string) error
	VolumeRoot(ctx context.Context) (string, error)
	CreateVolume(ctx context.Context, name string) error
	NetworkExists(ctx context.Context, name string) (bool, error)
	CreateNetwork(ctx context.Context, def NetworkDef) error

	// RunContainer creates and starts the container in one call; callers
	// that captured a stopped container follow up with StopContainer.
	RunContainer(ctx context.Context, spec ContainerSpec) error
	StopContainer(ctx context.Context, name string) error
}
