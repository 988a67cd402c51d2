package engine

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDoctor(t *testing.T) {
	result := RunDoctor()

	assert.Equal(t, StatusPass, result.Status)
	assert.Equal(t, "doctor", result.Command)
	assert.Equal(t, "env", result.Target)

	report, ok := result.Data.(DoctorReport)
	require.True(t, ok)
	assert.Equal(t, CurrentOS(), report.OSName)
	assert.Equal(t, runtime.GOARCH, report.Arch)
	assert.NotEmpty(t, report.Kernel)
	assert.NotNil(t, report.ProxyEnv)

	if runtime.GOOS == "linux" || runtime.GOOS == "darwin" {
		require.NotNil(t, report.UserID)
		require.NotNil(t, report.EffectiveUserID)
		assert.Equal(t, *report.EffectiveUserID == 0, report.IsAdmin)
	}
}

func TestDisplayServerPrefersWayland(t *testing.T) {
	t.Setenv("WAYLAND_DISPLAY", "wayland-1")
	t.Setenv("DISPLAY", ":0")

	d := displayServer()
	require.NotNil(t, d)
	assert.Equal(t, "wayland (wayland-1)", *d)
}

func TestDisplayServerX11(t *testing.T) {
	unsetEnv(t, "WAYLAND_DISPLAY")
	t.Setenv("DISPLAY", ":1")

	d := displayServer()
	require.NotNil(t, d)
	assert.Equal(t, "x11 (:1)", *d)
}
