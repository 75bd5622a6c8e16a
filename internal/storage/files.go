package storage

import (
	"os"
	"path/filepath"
)

// writeFileAtomic replaces path with data through a temp file in the same
// directory, so readers never see a partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &IOError{Op: "create directory", Path: dir, Err: err}
	}

	tempFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return &IOError{Op: "create temp file", Path: path, Err: err}
	}
	tempPath := tempFile.Name()
	defer func() {
		_ = os.Remove(tempPath)
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return &IOError{Op: "write", Path: tempPath, Err: err}
	}
	if err := tempFile.Sync(); err != nil {
		_ = tempFile.Close()
		return &IOError{Op: "sync", Path: tempPath, Err: err}
	}
	if err := tempFile.Close(); err != nil {
		return &IOError{Op: "close", Path: tempPath, Err: err}
	}
	if err := os.Chmod(tempPath, 0o644); err != nil {
		return &IOError{Op: "chmod", Path: tempPath, Err: err}
	}
	if err := os.Rename(tempPath, path); err != nil {
		return &IOError{Op: "rename", Path: path, Err: err}
	}
	return nil
}
