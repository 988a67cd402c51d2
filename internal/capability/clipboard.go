package capability

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// clipTool describes one external clipboard utility invocation.
type clipTool struct {
	name string
	args []string
}

// SystemClipboard shells out to platform clipboard utilities, trying each
// candidate in a fixed preference order and succeeding on the first that
// works.
//
//   - darwin: pbpaste / pbcopy
//   - linux:  xclip, xsel, wl-paste / wl-copy
type SystemClipboard struct{}

func (SystemClipboard) ReadText() (string, error) {
	tools := readTools(runtime.GOOS)
	if len(tools) == 0 {
		return "", Unsupported("clipboard not implemented for this OS")
	}
	return tryReadTools(tools)
}

func (SystemClipboard) WriteText(text string) error {
	tools := writeTools(runtime.GOOS)
	if len(tools) == 0 {
		return Unsupported("clipboard not implemented for this OS")
	}
	return tryWriteTools(tools, text)
}

func readTools(goos string) []clipTool {
	switch goos {
	case "darwin":
		return []clipTool{{name: "pbpaste"}}
	case "linux":
		return []clipTool{
			{name: "xclip", args: []string{"-selection", "clipboard", "-o"}},
			{name: "xsel", args: []string{"--clipboard", "--output"}},
			{name: "wl-paste"},
		}
	default:
		return nil
	}
}

func writeTools(goos string) []clipTool {
	switch goos {
	case "darwin":
		return []clipTool{{name: "pbcopy"}}
	case "linux":
		return []clipTool{
			{name: "xclip", args: []string{"-selection", "clipboard"}},
			{name: "xsel", args: []string{"--clipboard", "--input"}},
			{name: "wl-copy"},
		}
	default:
		return nil
	}
}

// tryReadTools runs each candidate until one succeeds. A tool that is not
// installed is distinct from a tool that ran and failed: only when every
// candidate is missing does the whole operation report DependencyMissing.
func tryReadTools(tools []clipTool) (string, error) {
	var lastFailure error
	for _, tool := range tools {
		out, err := runClipboardRead(tool)
		if err == nil {
			return out, nil
		}
		if KindOf(err) != KindDependencyMissing {
			lastFailure = err
		}
	}
	if lastFailure != nil {
		return "", lastFailure
	}
	return "", DependencyMissing(fmt.Sprintf("none of %s found", toolNames(tools)))
}

func tryWriteTools(tools []clipTool, text string) error {
	var lastFailure error
	for _, tool := range tools {
		err := runClipboardWrite(tool, text)
		if err == nil {
			return nil
		}
		if KindOf(err) != KindDependencyMissing {
			lastFailure = err
		}
	}
	if lastFailure != nil {
		return lastFailure
	}
	return DependencyMissing(fmt.Sprintf("none of %s found", toolNames(tools)))
}

func toolNames(tools []clipTool) string {
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = t.name
	}
	return strings.Join(names, ", ")
}

func runClipboardRead(tool clipTool) (string, error) {
	out, err := exec.Command(tool.name, tool.args...).Output()
	if err != nil {
		return "", classifyToolError(tool.name, err)
	}
	return string(out), nil
}

func runClipboardWrite(tool clipTool, text string) error {
	cmd := exec.Command(tool.name, tool.args...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return classifyToolError(tool.name, err)
	}
	return nil
}

func classifyToolError(name string, err error) error {
	if errors.Is(err, exec.ErrNotFound) {
		return DependencyMissing(fmt.Sprintf("%s not found", name))
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Otherf("%s exited with %s", name, exitErr.ProcessState)
	}
	return IOError(err)
}

// HeadlessClipboard unconditionally reports the clipboard as unsupported
// without attempting any OS call. Used when no display is attached.
type HeadlessClipboard struct{}

func (HeadlessClipboard) ReadText() (string, error) {
	return "", Unsupported("clipboard unavailable in headless environment")
}

func (HeadlessClipboard) WriteText(string) error {
	return Unsupported("clipboard unavailable in headless environment")
}
