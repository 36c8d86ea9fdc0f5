package migrate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dock2pod/pkg/runtime"
)

func TestTranslateRestartPolicy(t *testing.T) {
	testCases := []struct {
		name     string
		policy   string
		expected string
	}{
		{name: "always", policy: "always", expected: "always"},
		{name: "unless-stopped", policy: "unless-stopped", expected: "unless-stopped"},
		{name: "on-failure", policy: "on-failure", expected: "on-failure"},
		{name: "docker default no", policy: "no", expected: ""},
		{name: "none", policy: "none", expected: ""},
		{name: "empty", policy: "", expected: ""},
		{name: "garbage", policy: "whenever", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, TranslateRestartPolicy(tc.policy))
		})
	}
}

func TestTranslatePorts(t *testing.T) {
	testCases := []struct {
		name     string
		ports    []runtime.PublishedPort
		expected []string
	}{
		{
			name: "unspecified host ip omitted",
			ports: []runtime.PublishedPort{
				{Spec: "80/tcp", Bindings: []runtime.PortBinding{{HostIP: "0.0.0.0", HostPort: "8080"}}},
			},
			expected: []string{"8080:80/tcp"},
		},
		{
			name: "unspecified ipv6 host ip omitted",
			ports: []runtime.PublishedPort{
				{Spec: "80/tcp", Bindings: []runtime.PortBinding{{HostIP: "::", HostPort: "8080"}}},
			},
			expected: []string{"8080:80/tcp"},
		},
		{
			name: "absent host ip omitted",
			ports: []runtime.PublishedPort{
				{Spec: "53/udp", Bindings: []runtime.PortBinding{{HostPort: "5353"}}},
			},
			expected: []string{"5353:53/udp"},
		},
		{
			name: "concrete host ip kept verbatim",
			ports: []runtime.PublishedPort{
				{Spec: "443/tcp", Bindings: []runtime.PortBinding{{HostIP: "192.168.1.10", HostPort: "8443"}}},
			},
			expected: []string{"192.168.1.10:8443:443/tcp"},
		},
		{
			name: "multiple bindings flatten to one option each",
			ports: []runtime.PublishedPort{
				{Spec: "80/tcp", Bindings: []runtime.PortBinding{
					{HostIP: "0.0.0.0", HostPort: "8080"},
					{HostIP: "10.0.0.1", HostPort: "8081"},
				}},
			},
			expected: []string{"8080:80/tcp", "10.0.0.1:8081:80/tcp"},
		},
		{
			name: "missing protocol defaults to tcp",
			ports: []runtime.PublishedPort{
				{Spec: "9000", Bindings: []runtime.PortBinding{{HostPort: "9000"}}},
			},
			expected: []string{"9000:9000/tcp"},
		},
		{
			name:     "no published ports",
			ports:    nil,
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts := TranslatePorts(tc.ports)
			var rendered []string
			for _, o := range opts {
				rendered = append(rendered, o.String())
			}
			assert.Equal(t, tc.expected, rendered)
		})
	}
}

func TestTranslateMounts_VolumeAlwaysCarriesOwnershipFix(t *testing.T) {
	mounts := []runtime.MountPoint{
		{Kind: runtime.MountKindVolume, Name: "data", Destination: "/var/lib/app", ReadWrite: true},
		{Kind: runtime.MountKindVolume, Name: "conf", Destination: "/etc/app", ReadWrite: false},
	}

	opts := TranslateMounts(mounts)
	require.Len(t, opts, 2)
	assert.Equal(t, "data:/var/lib/app:rw,U", opts[0].String())
	assert.Equal(t, "conf:/etc/app:ro,U", opts[1].String())
}

func TestTranslateMounts_BindRequiresExistingSource(t *testing.T) {
	existing := t.TempDir()
	missing := filepath.Join(existing, "vanished")

	mounts := []runtime.MountPoint{
		{Kind: runtime.MountKindBind, Source: existing, Destination: "/data", ReadWrite: true},
		{Kind: runtime.MountKindBind, Source: missing, Destination: "/gone", ReadWrite: true},
	}

	opts := TranslateMounts(mounts)
	require.Len(t, opts, 1)
	assert.Equal(t, existing+":/data:rw", opts[0].String())
}

func TestTranslateMounts_ReadOnlyBind(t *testing.T) {
	src := t.TempDir()
	opts := TranslateMounts([]runtime.MountPoint{
		{Kind: runtime.MountKindBind, Source: src, Destination: "/ro", ReadWrite: false},
	})
	require.Len(t, opts, 1)
	assert.Equal(t, src+":/ro:ro", opts[0].String())
}

func TestTranslateNetworks(t *testing.T) {
	opts := TranslateNetworks([]runtime.NetworkEndpoint{
		{Name: "app-net", IPAddress: "10.0.0.5"},
		{Name: "backend"},
	})

	require.Len(t, opts, 2)
	assert.Equal(t, runtime.NetworkOption{Name: "app-net", IPAddress: "10.0.0.5"}, opts[0])
	assert.Equal(t, runtime.NetworkOption{Name: "backend"}, opts[1])
}

func TestSnapshotImageRef(t *testing.T) {
	assert.Equal(t, "dock2pod/web1:latest", SnapshotImageRef("Web1"))
	assert.Equal(t, "dock2pod/my-app:latest", SnapshotImageRef("my-app"))
}

func TestArchivePath(t *testing.T) {
	path := ArchivePath("/tmp/work", "registry.example.com/team/app:v1")
	assert.Equal(t, filepath.Join("/tmp/work", "registry.example.com_team_app:v1.tar"), path)
}

func TestBuildContainerSpec_EmptyListsAreValid(t *testing.T) {
	detail := &runtime.ContainerDetail{Name: "lonely", RestartPolicy: "no"}

	spec := BuildContainerSpec(detail, "dock2pod/lonely:latest")

	assert.Equal(t, "lonely", spec.Name)
	assert.Equal(t, "dock2pod/lonely:latest", spec.Image)
	assert.Empty(t, spec.RestartPolicy)
	assert.Empty(t, spec.Mounts)
	assert.Empty(t, spec.Ports)
	assert.Empty(t, spec.Networks)
}

func TestOwnershipSpec(t *testing.T) {
	t.Run("sudo caller gets remapped", func(t *testing.T) {
		t.Setenv("SUDO_UID", "1000")
		t.Setenv("SUDO_GID", "1000")
		assert.Equal(t, "1000:1000", OwnershipSpec(0))
	})

	t.Run("plain root keeps ownership", func(t *testing.T) {
		t.Setenv("SUDO_UID", "")
		t.Setenv("SUDO_GID", "")
		assert.Equal(t, "", OwnershipSpec(0))
	})

	t.Run("unprivileged caller keeps ownership", func(t *testing.T) {
		t.Setenv("SUDO_UID", "1000")
		t.Setenv("SUDO_GID", "1000")
		assert.Equal(t, "", OwnershipSpec(1000))
	})
}

func TestOwnershipSpecRequiresBothIDs(t *testing.T) {
	t.Setenv("SUDO_UID", "1000")
	t.Setenv("SUDO_GID", "")
	assert.Equal(t, "", OwnershipSpec(0))
}
