package watch

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/grovetools/spoolview/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	op     string
	groups []models.GroupID
}

type fakeTarget struct {
	mu       sync.Mutex
	selected []models.GroupID
	calls    []call
}

func (f *fakeTarget) Selection() []models.GroupID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.selected)
}

func (f *fakeTarget) SelectRows(groups ...models.GroupID) <-chan error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{"select", groups})
	for _, g := range groups {
		if !slices.Contains(f.selected, g) {
			f.selected = append(f.selected, g)
		}
	}
	return done()
}

func (f *fakeTarget) DeselectRows(groups ...models.GroupID) <-chan error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{"deselect", groups})
	f.selected = slices.DeleteFunc(f.selected, func(g models.GroupID) bool {
		return slices.Contains(groups, g)
	})
	return done()
}

func (f *fakeTarget) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

func done() <-chan error {
	ch := make(chan error, 1)
	ch <- nil
	return ch
}

func TestParseSpools(t *testing.T) {
	got, err := ParseSpools(strings.NewReader("S1 S2\n# all of area 3\n\nS3 # trailing\nS1\n"))
	require.NoError(t, err)
	assert.Equal(t, []models.GroupID{"S1", "S2", "S3"}, got)
}

func TestSyncDiffsAgainstSelection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spools.txt")
	require.NoError(t, os.WriteFile(path, []byte("S2\nS3\n"), 0644))

	target := &fakeTarget{selected: []models.GroupID{"S1", "S2"}}
	w, err := New(path, target, 0)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Sync(context.Background()))
	assert.Equal(t, []call{
		{"deselect", []models.GroupID{"S1"}},
		{"select", []models.GroupID{"S3"}},
	}, target.Calls())
	assert.Equal(t, []models.GroupID{"S2", "S3"}, target.Selection())

	require.NoError(t, w.Sync(context.Background()))
	assert.Len(t, target.Calls(), 2, "an unchanged file issues no calls")
}

func TestSyncIgnoresMissingFile(t *testing.T) {
	target := &fakeTarget{selected: []models.GroupID{"S1"}}
	w, err := New(filepath.Join(t.TempDir(), "absent.txt"), target, 0)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Sync(context.Background()))
	assert.Empty(t, target.Calls())
}

func TestWatcherFollowsEdits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spools.txt")
	require.NoError(t, os.WriteFile(path, []byte("S1\n"), 0644))

	target := &fakeTarget{}
	w, err := New(path, target, 10*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		w.Start(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-stopped
	})

	require.NoError(t, os.WriteFile(path, []byte("S1 S2\n"), 0644))
	require.Eventually(t, func() bool {
		return slices.Equal(target.Selection(), []models.GroupID{"S1", "S2"})
	}, 2*time.Second, 5*time.Millisecond)

	// Editors often save by renaming a temporary file over the original.
	tmp := filepath.Join(dir, "spools.txt.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("S4\n"), 0644))
	require.NoError(t, os.Rename(tmp, path))
	require.Eventually(t, func() bool {
		return slices.Equal(target.Selection(), []models.GroupID{"S4"})
	}, 2*time.Second, 5*time.Millisecond)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spools.txt")

	target := &fakeTarget{}
	w, err := New(path, target, 5*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("S9\n"), 0644))
	assert.Never(t, func() bool { return len(target.Calls()) > 0 }, 100*time.Millisecond, 10*time.Millisecond)
}
