package engine

import (
	"os"
	"runtime"
)

// CurrentOS reports the OS name used in results. Darwin is reported as
// "macos" to keep the output vocabulary user-facing.
func CurrentOS() string {
	if runtime.GOOS == "darwin" {
		return "macos"
	}
	return runtime.GOOS
}

// DetectHeadless heuristically checks for an attached interactive display.
//
//   - linux: headless when neither DISPLAY nor WAYLAND_DISPLAY is set
//   - macos: best-effort, headless when over SSH with no display
//   - other: assumed not headless
func DetectHeadless() bool {
	switch runtime.GOOS {
	case "linux":
		_, x11 := os.LookupEnv("DISPLAY")
		_, wayland := os.LookupEnv("WAYLAND_DISPLAY")
		return !x11 && !wayland
	case "darwin":
		_, ssh := os.LookupEnv("SSH_TTY")
		_, x11 := os.LookupEnv("DISPLAY")
		return ssh && !x11
	default:
		return false
	}
}

// NewEnvSummary computes a fresh environment summary at call time.
func NewEnvSummary() EnvSummary {
	return EnvSummary{
		OS:       CurrentOS(),
		Arch:     runtime.GOARCH,
		Headless: DetectHeadless(),
	}
}

// proxyEnvKeys are the proxy-related environment variables snapshotted by
// the network probe and the doctor report.
var proxyEnvKeys = []string{
	"HTTP_PROXY", "http_proxy",
	"HTTPS_PROXY", "https_proxy",
	"NO_PROXY", "no_proxy",
}

// CollectProxyEnv snapshots the proxy-related environment variables present
// at call time.
func CollectProxyEnv() map[string]string {
	out := make(map[string]string)
	for _, k := range proxyEnvKeys {
		if v, ok := os.LookupEnv(k); ok {
			out[k] = v
		}
	}
	return out
}
