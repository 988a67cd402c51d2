package capability

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// StdFilesystem implements Filesystem on top of the os package.
// It distinguishes permission failures from generic I/O failures by
// inspecting the underlying error.
type StdFilesystem struct{}

func (StdFilesystem) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, PermissionDenied(fmt.Sprintf("cannot read %s", path), err)
		}
		return nil, IOError(err)
	}
	return data, nil
}

func (StdFilesystem) WriteFile(path string, data []byte) error {
	if parent := filepath.Dir(path); parent != "" {
		if _, err := os.Stat(parent); os.IsNotExist(err) {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return IOError(err)
			}
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return PermissionDenied(fmt.Sprintf("cannot write %s", path), err)
		}
		return IOError(err)
	}
	return nil
}

func (StdFilesystem) RemoveFile(path string) error {
	if err := os.Remove(path); err != nil {
		return IOError(err)
	}
	return nil
}

func (StdFilesystem) CreateDirAll(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return IOError(err)
	}
	return nil
}

func (StdFilesystem) RemoveDirAll(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return IOError(err)
	}
	return nil
}

func (StdFilesystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (StdFilesystem) TempDir() string {
	return os.TempDir()
}
