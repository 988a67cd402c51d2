package capability

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdFilesystem_WriteReadRoundTrip(t *testing.T) {
	fs := StdFilesystem{}
	path := filepath.Join(t.TempDir(), "roundtrip.txt")

	require.NoError(t, fs.WriteFile(path, []byte("hello capability")))

	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello capability"), data)
}

func TestStdFilesystem_WriteCreatesParents(t *testing.T) {
	fs := StdFilesystem{}
	path := filepath.Join(t.TempDir(), "a", "b", "c", "nested.txt")

	require.NoError(t, fs.WriteFile(path, []byte("x")))
	assert.True(t, fs.Exists(path))
}

func TestStdFilesystem_ReadMissingFile(t *testing.T) {
	fs := StdFilesystem{}

	_, err := fs.ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Equal(t, KindIO, KindOf(err))
}

func TestStdFilesystem_RemoveFile(t *testing.T) {
	fs := StdFilesystem{}
	path := filepath.Join(t.TempDir(), "gone.txt")
	require.NoError(t, fs.WriteFile(path, []byte("x")))

	require.NoError(t, fs.RemoveFile(path))
	assert.False(t, fs.Exists(path))
}

func TestStdFilesystem_CreateAndRemoveDirAll(t *testing.T) {
	fs := StdFilesystem{}
	dir := filepath.Join(t.TempDir(), "d1", "d2")

	require.NoError(t, fs.CreateDirAll(dir))
	assert.True(t, fs.Exists(dir))

	require.NoError(t, fs.RemoveDirAll(filepath.Dir(dir)))
	assert.False(t, fs.Exists(dir))
}

func TestStdFilesystem_TempDir(t *testing.T) {
	fs := StdFilesystem{}
	assert.NotEmpty(t, fs.TempDir())
}

func TestStdFilesystem_PermissionDenied(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("running as root, permission checks are not enforced")
	}

	fs := StdFilesystem{}
	dir := filepath.Join(t.TempDir(), "locked")
	require.NoError(t, os.MkdirAll(dir, 0o555))

	err := fs.WriteFile(filepath.Join(dir, "denied.txt"), []byte("x"))
	require.Error(t, err)
	assert.Equal(t, KindPermissionDenied, KindOf(err))
}
