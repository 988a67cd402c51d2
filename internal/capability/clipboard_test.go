package capability

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadlessClipboard(t *testing.T) {
	c := HeadlessClipboard{}

	_, err := c.ReadText()
	require.Error(t, err)
	assert.Equal(t, KindUnsupported, KindOf(err))

	err = c.WriteText("ignored")
	require.Error(t, err)
	assert.Equal(t, KindUnsupported, KindOf(err))
}

func TestClipboardToolOrder(t *testing.T) {
	linuxRead := readTools("linux")
	require.Len(t, linuxRead, 3)
	assert.Equal(t, "xclip", linuxRead[0].name)
	assert.Equal(t, "xsel", linuxRead[1].name)
	assert.Equal(t, "wl-paste", linuxRead[2].name)

	darwinWrite := writeTools("darwin")
	require.Len(t, darwinWrite, 1)
	assert.Equal(t, "pbcopy", darwinWrite[0].name)

	assert.Empty(t, readTools("windows"))
}

func TestClassifyToolError(t *testing.T) {
	missing := classifyToolError("xclip", exec.ErrNotFound)
	assert.Equal(t, KindDependencyMissing, KindOf(missing))
	assert.Contains(t, missing.Error(), "xclip not found")

	other := classifyToolError("xsel", errors.New("broken pipe"))
	assert.Equal(t, KindIO, KindOf(other))
}

func TestTryReadTools_AllMissing(t *testing.T) {
	tools := []clipTool{{name: "appctl-test-no-such-tool-a"}, {name: "appctl-test-no-such-tool-b"}}

	_, err := tryReadTools(tools)
	require.Error(t, err)
	assert.Equal(t, KindDependencyMissing, KindOf(err))
	assert.Contains(t, err.Error(), "none of appctl-test-no-such-tool-a, appctl-test-no-such-tool-b found")
}

func TestTryReadTools_ToolPresentButFailing(t *testing.T) {
	// "false" exists on any POSIX host and always exits nonzero, so the
	// aggregate error must reflect the execution failure, not a missing
	// dependency.
	tools := []clipTool{{name: "false"}, {name: "appctl-test-no-such-tool"}}

	_, err := tryReadTools(tools)
	require.Error(t, err)
	assert.Equal(t, KindOther, KindOf(err))
}
