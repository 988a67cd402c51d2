package engine

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// DoctorReport is a superset environment snapshot used for diagnostics.
// User identifiers are platform-dependent and absent on non-unix systems.
type DoctorReport struct {
	OSName          string            `json:"os_name"`
	OSVersion       string            `json:"os_version"`
	Kernel          string            `json:"kernel"`
	Arch            string            `json:"arch"`
	UserID          *int              `json:"user_id"`
	EffectiveUserID *int              `json:"effective_user_id"`
	IsAdmin         bool              `json:"is_admin"`
	Headless        bool              `json:"headless"`
	SessionType     *string           `json:"session_type"`
	DisplayServer   *string           `json:"display_server"`
	ProxyEnv        map[string]string `json:"proxy_env"`
}

// RunDoctor gathers environment facts and returns them as a result.
func RunDoctor() ExecutionResult {
	runID := NewRunID()
	start := time.Now()

	report := gatherReport()

	result := ResultOK("doctor", "env", runID, time.Since(start).Milliseconds())
	result.Data = report
	return result
}

func gatherReport() DoctorReport {
	uid, euid := userIDs()
	return DoctorReport{
		OSName:          CurrentOS(),
		OSVersion:       osVersion(),
		Kernel:          kernelVersion(),
		Arch:            runtime.GOARCH,
		UserID:          uid,
		EffectiveUserID: euid,
		IsAdmin:         isAdmin(euid),
		Headless:        DetectHeadless(),
		SessionType:     sessionType(),
		DisplayServer:   displayServer(),
		ProxyEnv:        CollectProxyEnv(),
	}
}

func osVersion() string {
	switch runtime.GOOS {
	case "darwin":
		if out, ok := runCommand("sw_vers", "-productVersion"); ok {
			return out
		}
	case "linux":
		if content, err := os.ReadFile("/etc/os-release"); err == nil {
			for _, line := range strings.Split(string(content), "\n") {
				if v, ok := strings.CutPrefix(line, "PRETTY_NAME="); ok {
					return strings.Trim(v, `"`)
				}
			}
		}
	}
	return "unknown"
}

func kernelVersion() string {
	if out, ok := runCommand("uname", "-r"); ok {
		return out
	}
	return "unknown"
}

func userIDs() (uid, euid *int) {
	u := os.Getuid()
	e := os.Geteuid()
	// os.Getuid returns -1 where user ids are meaningless (windows).
	if u >= 0 {
		uid = &u
	}
	if e >= 0 {
		euid = &e
	}
	return uid, euid
}

func isAdmin(euid *int) bool {
	return euid != nil && *euid == 0
}

func sessionType() *string {
	if v, ok := os.LookupEnv("XDG_SESSION_TYPE"); ok {
		return &v
	}
	return nil
}

func displayServer() *string {
	if d, ok := os.LookupEnv("WAYLAND_DISPLAY"); ok {
		s := "wayland (" + d + ")"
		return &s
	}
	if d, ok := os.LookupEnv("DISPLAY"); ok {
		s := "x11 (" + d + ")"
		return &s
	}
	if runtime.GOOS == "darwin" {
		s := "quartz"
		return &s
	}
	return nil
}

func runCommand(name string, args ...string) (string, bool) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(out)), true
}
