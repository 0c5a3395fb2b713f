package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/grovetools/spoolview/pkg/paths"
	"github.com/grovetools/spoolview/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args from an empty directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SPOOLVIEW_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestResolveJSON(t *testing.T) {
	path := testutil.NewCatalog(t).Path()

	out, err := execute(t, "resolve", "S1", "S100", "--catalog", path, "--json")
	require.NoError(t, err)

	var got []resolvedSpool
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "S1", string(got[0].Spool))
	assert.Len(t, got[0].Elements, 2)
	assert.Equal(t, "E42", string(got[1].Elements[0]))
}

func TestResolveTable(t *testing.T) {
	path := testutil.NewCatalog(t).Path()

	out, err := execute(t, "resolve", "S3", "--catalog", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Spool")
	assert.Contains(t, out, "E4")
}

func TestResolveRequiresSpool(t *testing.T) {
	_, err := execute(t, "resolve")
	assert.Error(t, err)
}

func TestPickRows(t *testing.T) {
	path := testutil.NewCatalog(t).Path()

	out, err := execute(t, "pick", "E42", "--catalog", path, "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"label":"Element Id: E42"},{"label":"Spool: S100"}]`, out)

	out, err = execute(t, "pick", "E5", "--catalog", path, "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"label":"Element Id: E5"}]`, out)

	out, err = execute(t, "pick", "E42", "--catalog", path)
	require.NoError(t, err)
	assert.Contains(t, out, "S100")
}

func TestCatalogSeedAndSpools(t *testing.T) {
	dir := t.TempDir()
	fixture := testutil.WriteFile(t, dir, "plant.yml", `
view_definitions:
  - {id: v-1, class: SpatialViewDefinition, name: Default}
elements:
  - {id: P1, class: P3DPipe, category: c-pipe, model: m-plant, spool: A7, min: [0, 0, 0], max: [1, 1, 1]}
  - {id: P2, class: P3DPipingComponent, category: c-pipe, model: m-plant, spool: A2, min: [1, 0, 0], max: [2, 1, 1]}
`)
	db := filepath.Join(dir, "seeded.db")

	out, err := execute(t, "catalog", "seed", fixture, "--catalog", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 2 elements")

	out, err = execute(t, "catalog", "spools", "--catalog", db)
	require.NoError(t, err)
	assert.Equal(t, "A2\nA7\n", out)
}

func TestConfigSchema(t *testing.T) {
	out, err := execute(t, "config", "schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"spools_file"`)
	assert.True(t, json.Valid([]byte(out)))
}

func TestPathsJSON(t *testing.T) {
	out, err := execute(t, "paths", "--json")
	require.NoError(t, err)

	var got PathsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, paths.DefaultCatalogPath(), got.Catalog)
	assert.Equal(t, paths.LogDir(), got.LogDir)
}
