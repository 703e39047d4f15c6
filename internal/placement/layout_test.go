package placement

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadLayouts_EmptyPathReturnsDefaults tests the default fallback.
func TestLoadLayouts_EmptyPathReturnsDefaults(t *testing.T) {
	layouts, err := LoadLayouts("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLayouts(), layouts)
}

// TestLoadLayouts_ValidFile tests loading an override file.
func TestLoadLayouts_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	content := `top:
  columns: 3
  rows: 2
middle:
  columns: 5
  rows: 5
bottom:
  columns: 6
  rows: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	layouts, err := LoadLayouts(path)
	require.NoError(t, err)
	assert.Equal(t, 6, layouts[TierTop].Capacity())
	assert.Equal(t, 25, layouts[TierMiddle].Capacity())
}

// TestLoadLayouts_MissingTier tests that a file omitting a tier is rejected.
func TestLoadLayouts_MissingTier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	content := `top:
  columns: 4
  rows: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadLayouts(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing layout")
}

// TestLoadLayouts_InvalidDimensions tests rejection of non-positive dims.
func TestLoadLayouts_InvalidDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	content := `top:
  columns: 0
  rows: 5
middle:
  columns: 5
  rows: 5
bottom:
  columns: 6
  rows: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadLayouts(path)
	assert.Error(t, err)
}

// TestLoadLayouts_UnknownTier tests rejection of unrecognized tier names.
func TestLoadLayouts_UnknownTier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	content := `sidebar:
  columns: 2
  rows: 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadLayouts(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tier")
}

// TestLoadLayouts_FileNotFound tests the missing-file error path.
func TestLoadLayouts_FileNotFound(t *testing.T) {
	_, err := LoadLayouts(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
