package profiling

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledRecorderIgnoresSpans(t *testing.T) {
	var r Recorder
	r.Start("resolve")()
	assert.Empty(t, r.Stats())

	var buf bytes.Buffer
	r.Summarize(&buf)
	assert.Empty(t, buf.String())
}

func TestRecorderAggregates(t *testing.T) {
	var r Recorder
	r.Enable()

	r.observe("resolve", 2*time.Millisecond)
	r.observe("resolve", 5*time.Millisecond)
	r.observe("open", 30*time.Millisecond)
	r.Start("list")()

	stats := r.Stats()
	require.Len(t, stats, 3)
	assert.Equal(t, "open", stats[0].Name)
	assert.Equal(t, Stat{Name: "resolve", Count: 2, Total: 7 * time.Millisecond, Max: 5 * time.Millisecond}, stats[1])
	assert.Equal(t, 1, stats[2].Count)

	var buf bytes.Buffer
	r.Summarize(&buf)
	assert.Contains(t, buf.String(), "Operation")
	assert.Contains(t, buf.String(), "resolve")
	assert.Contains(t, buf.String(), "7ms")
}

func TestCobraProfilerWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.out")
	mem := filepath.Join(dir, "mem.out")

	root := &cobra.Command{Use: "spoolview", RunE: func(*cobra.Command, []string) error { return nil }}
	NewCobraProfiler().Attach(root)

	var stderr bytes.Buffer
	root.SetErr(&stderr)
	root.SetArgs([]string{"--cpu-profile", cpu, "--mem-profile", mem})
	require.NoError(t, root.Execute())

	for _, p := range []string{cpu, mem} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.NotZero(t, info.Size())
	}
	assert.Contains(t, stderr.String(), "CPU profile written")
}
