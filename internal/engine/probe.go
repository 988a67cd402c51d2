package engine

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Miyamura80/appctl/internal/capability"
)

// networkProbeTimeout is the fixed, generous deadline for the probe's
// HTTPS GET.
const networkProbeTimeout = 10 * time.Second

// filesystemProbePayload is the fixed payload round-tripped by the
// filesystem probe.
var filesystemProbePayload = []byte("appctl filesystem probe")

// RunProbe runs a probe by name and returns a full ExecutionResult.
func RunProbe(ctx context.Context, name string, app *AppContext) ExecutionResult {
	switch name {
	case "filesystem":
		return probeFilesystem(app)
	case "network":
		return probeNetwork(ctx, app)
	case "clipboard":
		return probeClipboard(app)
	default:
		return ResultErr("probe", name, NewRunID(), 0, CodeInvalidInput,
			fmt.Sprintf("unknown probe: %s (available: filesystem, network, clipboard)", name))
	}
}

// ---------------------------------------------------------------------------
// Filesystem probe
// ---------------------------------------------------------------------------

// probeFilesystem creates a probe-scoped temp directory, writes a payload,
// reads it back, and cleans up. Cleanup is attempted even when a step fails;
// a cleanup failure alone is not a probe failure.
func probeFilesystem(app *AppContext) ExecutionResult {
	runID := NewRunID()
	start := time.Now()
	steps := make(map[string]int64)

	tmpDir := filepath.Join(app.FS.TempDir(), "appctl_probe_"+runID[:8])

	t0 := time.Now()
	if err := app.FS.CreateDirAll(tmpDir); err != nil {
		return filesystemProbeErr(runID, start, steps, "create_dir", err)
	}
	steps["create_dir"] = time.Since(t0).Milliseconds()

	testFile := filepath.Join(tmpDir, "probe_test.txt")
	t1 := time.Now()
	if err := app.FS.WriteFile(testFile, filesystemProbePayload); err != nil {
		_ = app.FS.RemoveDirAll(tmpDir)
		return filesystemProbeErr(runID, start, steps, "write_file", err)
	}
	steps["write_file"] = time.Since(t1).Milliseconds()

	t2 := time.Now()
	data, err := app.FS.ReadFile(testFile)
	if err != nil {
		_ = app.FS.RemoveDirAll(tmpDir)
		return filesystemProbeErr(runID, start, steps, "read_file", err)
	}
	if !bytes.Equal(data, filesystemProbePayload) {
		_ = app.FS.RemoveDirAll(tmpDir)
		result := ResultErr("probe", "filesystem", runID, time.Since(start).Milliseconds(),
			CodeExternalInterference, "read-back data does not match written data")
		result.Timing.Steps = steps
		return result
	}
	steps["read_verify"] = time.Since(t2).Milliseconds()

	t3 := time.Now()
	_ = app.FS.RemoveDirAll(tmpDir)
	steps["cleanup"] = time.Since(t3).Milliseconds()

	result := ResultOK("probe", "filesystem", runID, time.Since(start).Milliseconds())
	result.Timing.Steps = steps
	result.Data = map[string]any{
		"temp_dir_used": tmpDir,
	}
	return result
}

func filesystemProbeErr(runID string, start time.Time, steps map[string]int64, failedStep string, err error) ExecutionResult {
	var code ErrorCode
	switch capability.KindOf(err) {
	case capability.KindPermissionDenied:
		code = CodePermissionDenied
	case capability.KindIO:
		code = CodeIoError
	default:
		code = CodeInternalError
	}
	result := ResultErr("probe", "filesystem", runID, time.Since(start).Milliseconds(), code,
		fmt.Sprintf("filesystem probe failed at %s: %v", failedStep, err))
	result.Timing.Steps = steps
	return result
}

// ---------------------------------------------------------------------------
// Network probe
// ---------------------------------------------------------------------------

func probeNetwork(ctx context.Context, app *AppContext) ExecutionResult {
	runID := NewRunID()
	start := time.Now()
	steps := make(map[string]int64)

	target := app.ProbeURL
	dnsHost := hostnameOf(target)

	t0 := time.Now()
	addrs, err := app.Network.Resolve(ctx, dnsHost)
	steps["dns_resolve"] = time.Since(t0).Milliseconds()
	if err != nil {
		result := ResultErr("probe", "network", runID, time.Since(start).Milliseconds(),
			CodeNetworkError, fmt.Sprintf("DNS resolution failed: %v", err))
		result.Timing.Steps = steps
		return result
	}

	t1 := time.Now()
	status, _, err := app.Network.Get(ctx, target, networkProbeTimeout)
	steps["https_get"] = time.Since(t1).Milliseconds()
	if err != nil {
		code := CodeNetworkError
		if capability.KindOf(err) == capability.KindTimeout {
			code = CodeTimeout
		}
		result := ResultErr("probe", "network", runID, time.Since(start).Milliseconds(),
			code, fmt.Sprintf("HTTPS GET failed: %v", err))
		result.Timing.Steps = steps
		return result
	}

	result := ResultOK("probe", "network", runID, time.Since(start).Milliseconds())
	result.Timing.Steps = steps
	result.Data = map[string]any{
		"dns_addresses": addrs,
		"http_status":   status,
		"target_url":    target,
		"proxy_env":     CollectProxyEnv(),
	}
	return result
}

// hostnameOf strips the scheme and path from a probe target URL, leaving
// the bare hostname for DNS resolution.
func hostnameOf(target string) string {
	host := strings.TrimPrefix(target, "https://")
	host = strings.TrimPrefix(host, "http://")
	if i := strings.IndexByte(host, '/'); i >= 0 {
		host = host[:i]
	}
	return host
}

// ---------------------------------------------------------------------------
// Clipboard probe
// ---------------------------------------------------------------------------

// probeClipboard round-trips a marker string through the clipboard. Under a
// headless context it short-circuits to Skip without touching the backend.
func probeClipboard(app *AppContext) ExecutionResult {
	runID := NewRunID()
	start := time.Now()
	steps := make(map[string]int64)

	if app.Headless {
		return ResultSkip("probe", "clipboard", runID, time.Since(start).Milliseconds(),
			"clipboard unavailable in headless environment")
	}

	marker := "appctl_clipboard_probe_" + runID[:8]

	t0 := time.Now()
	err := app.Clipboard.WriteText(marker)
	steps["write"] = time.Since(t0).Milliseconds()
	if err != nil {
		return clipboardProbeErr(runID, start, steps, "write", err)
	}

	t1 := time.Now()
	text, err := app.Clipboard.ReadText()
	steps["read"] = time.Since(t1).Milliseconds()
	if err != nil {
		return clipboardProbeErr(runID, start, steps, "read", err)
	}
	if strings.TrimSpace(text) != marker {
		result := ResultErr("probe", "clipboard", runID, time.Since(start).Milliseconds(),
			CodeExternalInterference, "clipboard read-back does not match written text")
		result.Timing.Steps = steps
		return result
	}

	result := ResultOK("probe", "clipboard", runID, time.Since(start).Milliseconds())
	result.Timing.Steps = steps
	return result
}

// clipboardProbeErr maps backend failures onto the result taxonomy. Absent
// clipboard tooling is an expected environment condition, so Unsupported and
// DependencyMissing become Skip rather than Error.
func clipboardProbeErr(runID string, start time.Time, steps map[string]int64, failedStep string, err error) ExecutionResult {
	var code ErrorCode
	switch capability.KindOf(err) {
	case capability.KindUnsupported:
		code = CodeUnsupported
	case capability.KindDependencyMissing:
		code = CodeDependencyMissing
	case capability.KindPermissionDenied:
		code = CodePermissionDenied
	default:
		code = CodeInternalError
	}

	status := StatusError
	if code == CodeUnsupported || code == CodeDependencyMissing {
		status = StatusSkip
	}

	result := ExecutionResult{
		RunID:   runID,
		Command: "probe",
		Target:  "clipboard",
		Status:  status,
		Error: &ErrorInfo{
			Code:    code,
			Message: fmt.Sprintf("clipboard probe failed at %s: %v", failedStep, err),
		},
		Timing:    TimingInfo{Total: time.Since(start).Milliseconds(), Steps: steps},
		Artifacts: []string{},
		Env:       NewEnvSummary(),
	}
	return result
}
