package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	t.Parallel()

	// Arrange: a nested tree with mixed extensions.
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	for _, name := range []string{"b.hcl", "a.hcl", "ignore.txt", filepath.Join("sub", "c.hcl")} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}

	// Act
	files, err := FindFilesByExtension(dir, ".hcl")

	// Assert: only .hcl files, in sorted order.
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, filepath.Join(dir, "a.hcl"), files[0])
	assert.Equal(t, filepath.Join(dir, "b.hcl"), files[1])
	assert.Equal(t, filepath.Join(dir, "sub", "c.hcl"), files[2])
}

func TestFindFilesByExtension_EmptyExtension(t *testing.T) {
	t.Parallel()

	_, err := FindFilesByExtension(t.TempDir(), "")

	assert.Error(t, err)
}
