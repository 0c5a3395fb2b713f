package pick

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/grovetools/spoolview/errors"
	"github.com/grovetools/spoolview/internal/loop"
	"github.com/grovetools/spoolview/pkg/catalog"
	"github.com/grovetools/spoolview/pkg/models"
	"github.com/grovetools/spoolview/pkg/popup"
	"github.com/grovetools/spoolview/pkg/resolver"
	"github.com/grovetools/spoolview/pkg/viewport"
	"github.com/grovetools/spoolview/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	picks   *Resolver
	querier *testutil.Querier
	channel *popup.Channel
	sub     chan popup.State
	vp      *viewport.Memory
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.NewCatalog(t)
	q := testutil.NewQuerier(db)
	res, err := resolver.New(q, resolver.Options{}, nil)
	require.NoError(t, err)

	extents, err := catalog.Extents(context.Background(), db)
	require.NoError(t, err)

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

	ch := popup.NewChannel()
	return &harness{
		picks:   New(ctx, lp, res, ch, 8, nil),
		querier: q,
		channel: ch,
		sub:     ch.Subscribe(),
		vp:      viewport.NewMemory("vp", extents, nil),
	}
}

func (h *harness) armed(t *testing.T) {
	t.Helper()
	require.Eventually(t, func() bool { return h.vp.SelectionChanged().Len() == 1 }, time.Second, time.Millisecond)
}

func await(t *testing.T, ch <-chan Result) Result {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("pick never resolved")
		return Result{}
	}
}

func TestPickWithGroup(t *testing.T) {
	h := newHarness(t)

	out := h.picks.OnPick(models.Point{X: 20, Y: 10}, h.vp)
	h.armed(t)
	h.vp.Select("E42")

	res := await(t, out)
	require.NoError(t, res.Err)
	require.NotNil(t, res.State)
	assert.True(t, res.State.Visible)
	assert.Equal(t, []string{"Element Id: E42", "Spool: S100"}, res.State.Labels())
	assert.Equal(t, models.Point{X: 12, Y: 2}, res.State.Position)
	assert.Equal(t, models.GroupID("S100"), res.Context.Group)

	emitted := <-h.sub
	assert.Equal(t, *res.State, emitted)
}

func TestPickWithoutGroup(t *testing.T) {
	h := newHarness(t)

	out := h.picks.OnPick(models.Point{X: 1, Y: 1}, h.vp)
	h.armed(t)
	h.vp.Select("E5")

	res := await(t, out)
	require.NotNil(t, res.State)
	assert.Equal(t, []string{"Element Id: E5"}, res.State.Labels())
	assert.False(t, res.Context.HasGroup)
}

func TestPickFirstSelectedElementWins(t *testing.T) {
	h := newHarness(t)

	out := h.picks.OnPick(models.Point{}, h.vp)
	h.armed(t)
	h.vp.Select("E3", "E1")

	res := await(t, out)
	require.NotNil(t, res.State)
	assert.Equal(t, []string{"Element Id: E3", "Spool: S2"}, res.State.Labels())
}

func TestPickWithNoSelectionEmitsNothing(t *testing.T) {
	h := newHarness(t)

	out := h.picks.OnPick(models.Point{X: 5, Y: 5}, h.vp)
	h.armed(t)
	h.vp.Select()

	res := await(t, out)
	assert.Nil(t, res.State)
	assert.NoError(t, res.Err)
	assert.Len(t, h.sub, 0)
	assert.Empty(t, h.querier.Calls())
}

func TestPickListenerFiresOnce(t *testing.T) {
	h := newHarness(t)

	out := h.picks.OnPick(models.Point{}, h.vp)
	h.armed(t)
	h.vp.Select("E1")
	await(t, out)

	assert.Equal(t, 0, h.vp.SelectionChanged().Len())
	h.vp.Select("E3")
	time.Sleep(20 * time.Millisecond)

	assert.Len(t, h.querier.Calls(), 1)
	assert.Len(t, h.sub, 1)
}

func TestNewPickDisarmsUnfiredListener(t *testing.T) {
	h := newHarness(t)

	first := h.picks.OnPick(models.Point{}, h.vp)
	second := h.picks.OnPick(models.Point{}, h.vp)

	assert.Nil(t, await(t, first).State, "superseded pick yields nothing")
	h.armed(t)

	h.vp.Select("E1")
	res := await(t, second)
	require.NotNil(t, res.State)
	assert.Equal(t, []string{"Element Id: E1", "Spool: S1"}, res.State.Labels())
	assert.Len(t, h.querier.Calls(), 1)
}

func TestLatePickResolutionIsDropped(t *testing.T) {
	h := newHarness(t)
	gate := h.querier.Hold(1)

	first := h.picks.OnPick(models.Point{}, h.vp)
	h.armed(t)
	h.vp.Select("E42")
	require.Eventually(t, func() bool { return len(h.querier.Calls()) == 1 }, time.Second, time.Millisecond)

	second := h.picks.OnPick(models.Point{}, h.vp)
	assert.Nil(t, await(t, first).State)
	h.armed(t)
	h.vp.Select("E1")

	res := await(t, second)
	require.NotNil(t, res.State)
	assert.Equal(t, "Element Id: E1", res.State.Rows[0].Label)

	close(gate)
	require.Eventually(t, func() bool { return len(h.sub) == 1 }, time.Second, time.Millisecond)
	assert.Never(t, func() bool { return len(h.sub) > 1 }, 50*time.Millisecond, 5*time.Millisecond)
	assert.Equal(t, []string{"Element Id: E1", "Spool: S1"}, (<-h.sub).Labels())
}

func TestPickQueryFailure(t *testing.T) {
	h := newHarness(t)
	h.querier.Fail(1, stderrors.New("connection lost"))

	out := h.picks.OnPick(models.Point{}, h.vp)
	h.armed(t)
	h.vp.Select("E1")

	res := await(t, out)
	assert.Nil(t, res.State)
	assert.True(t, errors.Is(res.Err, errors.ErrCodeQueryFailure))
	assert.Len(t, h.sub, 0)
}
