// Package readiness runs the one-time viewport setup that follows opening a
// document: wait for the first view, wait for its first change, then switch
// to smooth shading and enable every spatial category and model in use.
package readiness

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/grovetools/spoolview/errors"
	"github.com/grovetools/spoolview/internal/loop"
	"github.com/grovetools/spoolview/pkg/catalog"
	"github.com/grovetools/spoolview/pkg/event"
	"github.com/grovetools/spoolview/pkg/models"
	"github.com/grovetools/spoolview/pkg/profiling"
	"github.com/grovetools/spoolview/pkg/viewport"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// State is the orchestrator's position in the readiness sequence.
type State int32

const (
	Idle State = iota
	AwaitingFirstView
	AwaitingFirstViewChange
	Ready
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingFirstView:
		return "awaiting-first-view"
	case AwaitingFirstViewChange:
		return "awaiting-first-view-change"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Views is the part of the view manager the orchestrator listens to.
type Views interface {
	ForEach(fn func(viewport.Viewport))
	OnViewOpen() *event.Hub[viewport.Viewport]
}

// Orchestrator is the ViewReadinessOrchestrator. Every listener it registers
// is one-shot and setup runs at most once.
type Orchestrator struct {
	ctx    context.Context
	loop   *loop.Loop
	q      catalog.Querier
	views  Views
	logger *logrus.Entry

	state        atomic.Int32
	setupStarted bool // loop-owned

	mu     sync.Mutex
	disarm []func()
	err    error

	done chan struct{}
}

// New creates an idle orchestrator.
func New(ctx context.Context, lp *loop.Loop, q catalog.Querier, views Views, logger *logrus.Entry) *Orchestrator {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Orchestrator{
		ctx:    ctx,
		loop:   lp,
		q:      q,
		views:  views,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// DocumentOpened starts waiting for the first view. Calls after the first are
// ignored.
func (o *Orchestrator) DocumentOpened() {
	if !o.state.CompareAndSwap(int32(Idle), int32(AwaitingFirstView)) {
		return
	}
	o.logger.Debug("Document opened, waiting for first view")
	o.track(o.views.OnViewOpen().AddOnce(func(viewport.Viewport) {
		o.firstViewOpened()
	}))
}

// Listeners are armed on the emitting goroutine so a view change that follows
// the open immediately is not missed.
func (o *Orchestrator) firstViewOpened() {
	if !o.state.CompareAndSwap(int32(AwaitingFirstView), int32(AwaitingFirstViewChange)) {
		return
	}
	o.views.ForEach(func(vp viewport.Viewport) {
		o.logger.WithField("viewport", vp.ID()).Debug("Waiting for first view change")
		o.track(vp.ViewChanged().AddOnce(func(struct{}) {
			o.loop.Post(func() { o.firstViewChanged(vp) })
		}))
	})
}

func (o *Orchestrator) track(disarm func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.disarm = append(o.disarm, disarm)
}

func (o *Orchestrator) disarmAll() {
	o.mu.Lock()
	fns := o.disarm
	o.disarm = nil
	o.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (o *Orchestrator) firstViewChanged(vp viewport.Viewport) {
	if o.setupStarted {
		return
	}
	o.setupStarted = true
	o.disarmAll()

	o.logger.WithField("viewport", vp.ID()).Info("First view change, running viewport setup")
	vp.SetRenderMode(models.RenderModeSmoothShade)

	go func() {
		categories, modelIDs, err := o.querySetup()
		o.loop.Post(func() { o.finish(vp, categories, modelIDs, err) })
	}()
}

func (o *Orchestrator) querySetup() ([]models.CategoryID, []models.ModelID, error) {
	defer profiling.Start("readiness.setup_queries")()

	var (
		categories []models.CategoryID
		modelIDs   []models.ModelID
	)

	g, ctx := errgroup.WithContext(o.ctx)
	g.Go(func() error {
		rows, err := catalog.Collect(o.q.Query(ctx, catalog.QuerySpatialCategoriesInUse))
		if err != nil {
			return errors.QueryFailure(catalog.QuerySpatialCategoriesInUse, err)
		}
		for _, row := range rows {
			categories = append(categories, models.CategoryID(row.String("id")))
		}
		return nil
	})
	g.Go(func() error {
		rows, err := catalog.Collect(o.q.Query(ctx, catalog.QuerySpatialModels))
		if err != nil {
			return errors.QueryFailure(catalog.QuerySpatialModels, err)
		}
		for _, row := range rows {
			modelIDs = append(modelIDs, models.ModelID(row.String("id")))
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return categories, modelIDs, nil
}

func (o *Orchestrator) finish(vp viewport.Viewport, categories []models.CategoryID, modelIDs []models.ModelID, err error) {
	if err != nil {
		o.logger.WithError(err).Error("Viewport setup failed")
	} else {
		vp.ChangeCategoryDisplay(categories, true)
		vp.AddViewedModels(modelIDs)
		o.logger.WithFields(logrus.Fields{
			"categories": len(categories),
			"models":     len(modelIDs),
		}).Info("Viewport ready")
	}

	o.mu.Lock()
	o.err = err
	o.mu.Unlock()
	o.state.Store(int32(Ready))
	close(o.done)
}

// State returns the current readiness state.
func (o *Orchestrator) State() State {
	return State(o.state.Load())
}

// Done is closed once setup has finished, successfully or not.
func (o *Orchestrator) Done() <-chan struct{} {
	return o.done
}

// Err returns the setup failure, if any. It is only meaningful after Done.
func (o *Orchestrator) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}
