package readiness

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/grovetools/spoolview/errors"
	"github.com/grovetools/spoolview/internal/loop"
	"github.com/grovetools/spoolview/pkg/models"
	"github.com/grovetools/spoolview/pkg/viewport"
	"github.com/grovetools/spoolview/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrchestrator(t *testing.T) (*Orchestrator, *viewport.Manager, *testutil.Querier) {
	t.Helper()
	q := testutil.NewQuerier(testutil.NewCatalog(t))

	lp := loop.New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = lp.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	views := viewport.NewManager()
	return New(ctx, lp, q, views, nil), views, q
}

func waitReady(t *testing.T, o *Orchestrator) {
	t.Helper()
	select {
	case <-o.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("setup never finished, state %s", o.State())
	}
}

func TestReadinessSequence(t *testing.T) {
	o, views, _ := newOrchestrator(t)
	vp := viewport.NewMemory("vp", nil, nil)

	assert.Equal(t, Idle, o.State())
	o.DocumentOpened()
	assert.Equal(t, AwaitingFirstView, o.State())

	views.Open(vp)
	assert.Equal(t, AwaitingFirstViewChange, o.State())
	assert.Equal(t, models.RenderModeWireframe, vp.State().RenderMode)

	vp.NotifyViewChanged()
	waitReady(t, o)

	require.NoError(t, o.Err())
	assert.Equal(t, Ready, o.State())
	state := vp.State()
	assert.Equal(t, models.RenderModeSmoothShade, state.RenderMode)
	assert.Equal(t, []models.CategoryID{"c-equip", "c-pipe"}, state.Categories)
	assert.Equal(t, []models.ModelID{"m-plant"}, state.Models)
}

func TestViewsOpenedBeforeDocumentAreIgnored(t *testing.T) {
	o, views, q := newOrchestrator(t)
	vp := viewport.NewMemory("vp", nil, nil)

	views.Open(vp)
	vp.NotifyViewChanged()

	assert.Equal(t, Idle, o.State())
	assert.Equal(t, 0, vp.ViewChanged().Len())
	assert.Empty(t, q.Calls())
}

func TestDocumentOpenedTwiceArmsOnce(t *testing.T) {
	o, views, _ := newOrchestrator(t)

	o.DocumentOpened()
	o.DocumentOpened()
	assert.Equal(t, 1, views.OnViewOpen().Len())
}

func TestSetupRunsOnce(t *testing.T) {
	o, views, q := newOrchestrator(t)
	first := viewport.NewMemory("first", nil, nil)
	second := viewport.NewMemory("second", nil, nil)

	o.DocumentOpened()
	views.Open(first)
	assert.Equal(t, 0, views.OnViewOpen().Len(), "view-opened listener is one-shot")

	first.NotifyViewChanged()
	first.NotifyViewChanged()
	waitReady(t, o)

	views.Open(second)
	second.NotifyViewChanged()
	first.NotifyViewChanged()
	time.Sleep(20 * time.Millisecond)

	assert.Len(t, q.Calls(), 2)
	assert.Equal(t, 0, first.ViewChanged().Len())
	assert.Equal(t, models.RenderModeWireframe, second.State().RenderMode)
	assert.Equal(t, Ready, o.State())
}

func TestEveryOpenViewportCanTriggerSetup(t *testing.T) {
	o, views, _ := newOrchestrator(t)
	a := viewport.NewMemory("a", nil, nil)
	b := viewport.NewMemory("b", nil, nil)

	views.Open(a)
	o.DocumentOpened()
	views.Open(b)

	assert.Equal(t, 1, a.ViewChanged().Len())
	assert.Equal(t, 1, b.ViewChanged().Len())

	b.NotifyViewChanged()
	waitReady(t, o)

	assert.Equal(t, models.RenderModeSmoothShade, b.State().RenderMode)
	assert.Equal(t, models.RenderModeWireframe, a.State().RenderMode)
	assert.Equal(t, 0, a.ViewChanged().Len(), "remaining listeners are disarmed")
}

func TestSetupFailureStillEndsReady(t *testing.T) {
	o, views, q := newOrchestrator(t)
	q.Fail(1, stderrors.New("disk I/O error"))
	vp := viewport.NewMemory("vp", nil, nil)

	o.DocumentOpened()
	views.Open(vp)
	vp.NotifyViewChanged()
	waitReady(t, o)

	assert.Equal(t, Ready, o.State())
	assert.True(t, errors.Is(o.Err(), errors.ErrCodeQueryFailure))
	assert.Equal(t, models.RenderModeSmoothShade, vp.State().RenderMode)
	assert.Empty(t, vp.State().Categories)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "awaiting-first-view-change", AwaitingFirstViewChange.String())
	assert.Equal(t, "unknown", State(9).String())
}
