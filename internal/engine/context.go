package engine

import (
	"io"
	"log/slog"

	"github.com/Miyamura80/appctl/internal/capability"
)

// AppContext holds the capability providers and configuration shared by all
// engine operations. It is built once at startup and read-only afterwards;
// no locks are needed for sequential invocations referencing it.
type AppContext struct {
	FS        capability.Filesystem
	Network   capability.Network
	Clipboard capability.Clipboard

	// ProbeURL is the target for the network probe.
	ProbeURL string

	// Headless reflects the display-detection heuristic evaluated once at
	// construction. It decides the clipboard backend and short-circuits the
	// clipboard probe; it is not re-evaluated per call.
	Headless bool

	Logger *slog.Logger
}

// DefaultProbeURL is used when no probe target is configured.
const DefaultProbeURL = "https://httpbin.org/get"

// NewPlatformContext builds a context with real platform backends, choosing
// the clipboard backend from the headless heuristic.
func NewPlatformContext(probeURL string, logger *slog.Logger) *AppContext {
	headless := DetectHeadless()
	var clip capability.Clipboard
	if headless {
		clip = capability.HeadlessClipboard{}
	} else {
		clip = capability.SystemClipboard{}
	}
	return &AppContext{
		FS:        capability.StdFilesystem{},
		Network:   capability.NewHTTPNetwork(),
		Clipboard: clip,
		ProbeURL:  defaultURL(probeURL),
		Headless:  headless,
		Logger:    ensureLogger(logger),
	}
}

// NewHeadlessContext builds a context suitable for CI and other headless
// environments regardless of what the heuristic reports.
func NewHeadlessContext(probeURL string, logger *slog.Logger) *AppContext {
	return &AppContext{
		FS:        capability.StdFilesystem{},
		Network:   capability.NewHTTPNetwork(),
		Clipboard: capability.HeadlessClipboard{},
		ProbeURL:  defaultURL(probeURL),
		Headless:  true,
		Logger:    ensureLogger(logger),
	}
}

func defaultURL(probeURL string) string {
	if probeURL == "" {
		return DefaultProbeURL
	}
	return probeURL
}

func ensureLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger
}
