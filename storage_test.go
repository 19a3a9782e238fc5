package intelxaudit

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStorage(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "exports")
	storage := &fsStorage{dataDir: dataDir}

	path, err := storage.Prepare("5f1c0c8e-2b1a-4d7e-9d1e-0c7a1e4b2f3a")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "intelx_export_5f1c0c8e-2b1a-4d7e-9d1e-0c7a1e4b2f3a.zip"), path)
	assert.DirExists(t, dataDir)

	exists, err := storage.Exists(path)
	require.NoError(t, err)
	assert.False(t, exists)

	file, err := storage.Create(path)
	require.NoError(t, err)
	require.NoError(t, file.Close())

	exists, err = storage.Exists(path)
	require.NoError(t, err)
	assert.True(t, exists)

	for _, handle := range []string{"", "a/b", `a\b`, ".."} {
		_, err := storage.Prepare(handle)
		assert.ErrorIs(t, err, ErrInvalidHandle, "expected %q to be rejected", handle)
	}
}
