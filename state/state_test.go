package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/spoolview/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Empty(t, s.Catalogs)
	assert.Empty(t, s.LastSpools("plant.db"))
}

func TestRememberAndReload(t *testing.T) {
	dir := t.TempDir()
	catalog := filepath.Join(dir, "plant.db")
	file := filepath.Join(dir, "state", "state.yml")

	s, err := LoadFrom(file)
	require.NoError(t, err)
	require.NoError(t, s.RememberSpools(catalog, []models.GroupID{"S3", "S1"}))
	require.NoError(t, s.SaveTo(file))

	loaded, err := LoadFrom(file)
	require.NoError(t, err)
	assert.Equal(t, []models.GroupID{"S1", "S3"}, loaded.LastSpools(catalog))
	assert.False(t, loaded.Catalogs[catalog].UpdatedAt.IsZero())

	require.NoError(t, loaded.RememberSpools(catalog, nil))
	assert.Empty(t, loaded.LastSpools(catalog))
}

func TestRelativeAndAbsoluteCatalogShareState(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	s, err := LoadFrom(filepath.Join(dir, "state.yml"))
	require.NoError(t, err)
	require.NoError(t, s.RememberSpools("plant.db", []models.GroupID{"S2"}))

	abs, err := filepath.Abs("plant.db")
	require.NoError(t, err)
	assert.Equal(t, []models.GroupID{"S2"}, s.LastSpools(abs))
}

func TestDefaultFileUsesStateDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SPOOLVIEW_HOME", home)
	assert.Equal(t, filepath.Join(home, "state", "state.yml"), FilePath())

	s, err := Load()
	require.NoError(t, err)
	require.NoError(t, s.RememberSpools(filepath.Join(home, "c.db"), []models.GroupID{"S1"}))
	require.NoError(t, s.Save())

	_, err = os.Stat(FilePath())
	assert.NoError(t, err)
}

func TestLoadRejectsGarbage(t *testing.T) {
	file := filepath.Join(t.TempDir(), "state.yml")
	require.NoError(t, os.WriteFile(file, []byte("catalogs: [unterminated"), 0644))
	_, err := LoadFrom(file)
	assert.Error(t, err)
}
