package migrate

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dock2pod/pkg/runtime"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockSource) ListImages(ctx context.Context) ([]runtime.ImageRef, error) {
	args := m.Called(ctx)
	refs, _ := args.Get(0).([]runtime.ImageRef)
	return refs, args.Error(1)
}

func (m *mockSource) ListVolumes(ctx context.Context) ([]runtime.Volume, error) {
	args := m.Called(ctx)
	vols, _ := args.Get(0).([]runtime.Volume)
	return vols, args.Error(1)
}

func (m *mockSource) ListNetworks(ctx context.Context) ([]runtime.NetworkDef, error) {
	args := m.Called(ctx)
	defs, _ := args.Get(0).([]runtime.NetworkDef)
	return defs, args.Error(1)
}

func (m *mockSource) ListContainers(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

func (m *mockSource) InspectContainer(ctx context.Context, name string) (*runtime.ContainerDetail, error) {
	args := m.Called(ctx, name)
	detail, _ := args.Get(0).(*runtime.ContainerDetail)
	return detail, args.Error(1)
}

func (m *mockSource) CommitContainer(ctx context.Context, name, imageRef string) error {
	return m.Called(ctx, name, imageRef).Error(0)
}

func (m *mockSource) ExportImage(ctx context.Context, imageRef, path string) error {
	return m.Called(ctx, imageRef, path).Error(0)
}

func (m *mockSource) StopContainer(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

type mockTarget struct {
	mock.Mock
}

func (m *mockTarget) Version(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockTarget) LoadImage(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func (m *mockTarget) VolumeRoot(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockTarget) CreateVolume(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *mockTarget) NetworkExists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockTarget) CreateNetwork(ctx context.Context, def runtime.NetworkDef) error {
	return m.Called(ctx, def).Error(0)
}

func (m *mockTarget) RunContainer(ctx context.Context, spec runtime.ContainerSpec) error {
	return m.Called(ctx, spec).Error(0)
}

func (m *mockTarget) StopContainer(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

type mockSyncer struct {
	mock.Mock
}

func (m *mockSyncer) Sync(ctx context.Context, src, dst, chown string) error {
	return m.Called(ctx, src, dst, chown).Error(0)
}
