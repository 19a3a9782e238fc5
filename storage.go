package intelxaudit

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	exportFilePrefix = "intelx_export_"
	exportFileSuffix = ".zip"
)

// fsStorage keeps export archives in a single flat directory. File names embed the search id,
// so two searches never write to the same file.
type fsStorage struct {
	dataDir string
}

func (f *fsStorage) filePath(handle string) string {
	return filepath.Join(f.dataDir, exportFilePrefix+handle+exportFileSuffix)
}

// Prepare creates the data directory and returns the artifact path for handle.
func (f *fsStorage) Prepare(handle string) (string, error) {
	if handle == "" || strings.ContainsAny(handle, `/\`) || strings.Contains(handle, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidHandle, handle)
	}

	if err := os.MkdirAll(f.dataDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory %q: %w", f.dataDir, err)
	}

	return f.filePath(handle), nil
}

func (f *fsStorage) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	return false, fmt.Errorf("checking %q: %w", path, err)
}

func (f *fsStorage) Create(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("creating %q: %w", path, err)
	}

	return file, nil
}
