package hal

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBackends(t *testing.T) {
	tests := []struct {
		in      string
		want    Backends
		wantErr bool
	}{
		{"", BackendsAll, false},
		{"all", BackendsAll, false},
		{"ALL", BackendsAll, false},
		{"opengl", BackendOpenGL, false},
		{"metal, directx", BackendMetal | BackendDirectX, false},
		{" , ", BackendsAll, false},
		{"vulkan", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBackends(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBackends_String(t *testing.T) {
	assert.Equal(t, "all", BackendsAll.String())
	assert.Equal(t, "opengl,metal", (BackendOpenGL | BackendMetal).String())
	assert.Equal(t, "none", Backends(0).String())
}

func TestPresentMode_String(t *testing.T) {
	assert.Equal(t, "Fifo", PresentModeFifo.String())
	assert.Equal(t, "Mailbox", PresentModeMailbox.String())
	assert.Equal(t, "Unknown", PresentMode(7).String())
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("PHANTOM_GRAPHICS_BACKENDS", "opengl")
	t.Setenv("PHANTOM_ADAPTER_NAME", "ebiten")
	t.Setenv("PHANTOM_POWER_PREFERENCE", "low")

	e, err := LoadEnv()
	require.NoError(t, err)

	backends, err := e.BackendSet()
	require.NoError(t, err)
	assert.Equal(t, BackendOpenGL, backends)
	assert.Equal(t, "ebiten", e.AdapterName)
	power, err := e.Power()
	require.NoError(t, err)
	assert.Equal(t, gputypes.PowerPreferenceLowPower, power)
}

func TestLoadEnv_Defaults(t *testing.T) {
	t.Setenv("PHANTOM_GRAPHICS_BACKENDS", "")
	t.Setenv("PHANTOM_POWER_PREFERENCE", "")

	e, err := LoadEnv()
	require.NoError(t, err)

	backends, err := e.BackendSet()
	require.NoError(t, err)
	assert.Equal(t, BackendsAll, backends)
	power, err := e.Power()
	require.NoError(t, err)
	assert.Equal(t, gputypes.PowerPreferenceHighPerformance, power)
}

func TestEnv_PowerInvalid(t *testing.T) {
	_, err := Env{PowerPreference: "turbo"}.Power()
	assert.Error(t, err)
}
