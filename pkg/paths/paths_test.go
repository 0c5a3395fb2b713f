package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortableHomeWins(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SPOOLVIEW_HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "/elsewhere")

	assert.Equal(t, filepath.Join(home, "config"), ConfigDir())
	assert.Equal(t, filepath.Join(home, "data"), DataDir())
	assert.Equal(t, filepath.Join(home, "state", "logs"), LogDir())
	assert.Equal(t, filepath.Join(home, "data", "catalog.db"), DefaultCatalogPath())
}

func TestXDGVariables(t *testing.T) {
	t.Setenv("SPOOLVIEW_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_STATE_HOME", "/xdg/state")

	assert.Equal(t, "/xdg/config/spoolview", ConfigDir())
	assert.Equal(t, "/xdg/state/spoolview", StateDir())
}

func TestPlatformDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SPOOLVIEW_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".local", "share", "spoolview"), DataDir())
}

func TestEnsureDirs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SPOOLVIEW_HOME", home)

	require.NoError(t, EnsureDirs())
	for _, dir := range []string{ConfigDir(), DataDir(), LogDir()} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
