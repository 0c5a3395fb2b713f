// Package selection owns the set of checked spools and keeps the viewport's
// isolation in step with it.
package selection

import (
	"context"
	stderrors "errors"
	"iter"
	"sync/atomic"

	"github.com/grovetools/spoolview/errors"
	"github.com/grovetools/spoolview/internal/loop"
	"github.com/grovetools/spoolview/pkg/event"
	"github.com/grovetools/spoolview/pkg/models"
	"github.com/grovetools/spoolview/pkg/viewport"
	"github.com/sirupsen/logrus"
)

// Resolver turns a selection into the elements it covers.
type Resolver interface {
	Resolve(ctx context.Context, groups []models.GroupID) ([]models.ElementID, error)
}

// Applier pushes a resolved element set into a viewport.
type Applier interface {
	Apply(ctx context.Context, elements []models.ElementID, vp viewport.Viewport, awaitViewportReady bool) error
}

// Views locates the viewport to apply to.
type Views interface {
	Selected() viewport.Viewport
	OnViewOpen() *event.Hub[viewport.Viewport]
}

type waiter struct {
	token uint64 // 0 until the flush covering this call starts
	done  chan error
}

// Store is the GroupSelectionStore. Its state is only touched from loop tasks.
//
// Every flush takes a new token. A resolution is applied only if its token is
// still the latest when it lands, so an older result never overwrites a newer
// one. Calls complete once an apply with a token at least as new as theirs
// has landed, or with the query failure that stopped it.
type Store struct {
	ctx      context.Context
	loop     *loop.Loop
	resolver Resolver
	applier  Applier
	views    Views
	logger   *logrus.Entry

	set          *Set
	token        uint64
	flushPending bool
	waiters      []*waiter

	cancelDeferred context.CancelFunc
	disarmDeferred func()

	snapshot atomic.Pointer[[]models.GroupID]
}

// New creates an empty store. ctx bounds every resolve and apply it starts.
func New(ctx context.Context, lp *loop.Loop, r Resolver, a Applier, views Views, logger *logrus.Entry) *Store {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	s := &Store{
		ctx:      ctx,
		loop:     lp,
		resolver: r,
		applier:  a,
		views:    views,
		logger:   logger,
		set:      NewSet(),
	}
	empty := []models.GroupID{}
	s.snapshot.Store(&empty)
	return s
}

// OnRowsSelected appends each row not already selected, in order. The rows
// are consumed once, on the loop. The returned channel yields a single value
// once the viewport reflects this call.
func (s *Store) OnRowsSelected(rows iter.Seq[models.GroupID]) <-chan error {
	return s.mutate(func() {
		for g := range rows {
			s.set.Add(g)
		}
	})
}

// OnRowsDeselected removes each row that is selected.
func (s *Store) OnRowsDeselected(rows iter.Seq[models.GroupID]) <-chan error {
	return s.mutate(func() {
		for g := range rows {
			s.set.Remove(g)
		}
	})
}

// Selection returns the selected groups in insertion order.
func (s *Store) Selection() []models.GroupID {
	return append([]models.GroupID(nil), *s.snapshot.Load()...)
}

func (s *Store) mutate(apply func()) <-chan error {
	done := make(chan error, 1)
	s.loop.Post(func() {
		apply()
		items := s.set.Items()
		s.snapshot.Store(&items)

		s.waiters = append(s.waiters, &waiter{done: done})
		if !s.flushPending {
			s.flushPending = true
			s.loop.WhenIdle(s.flush)
		}
	})
	return done
}

// flush runs once per burst of mutations.
func (s *Store) flush() {
	s.flushPending = false
	s.token++
	token := s.token
	for _, w := range s.waiters {
		if w.token == 0 {
			w.token = token
		}
	}

	// A pending deferred apply belongs to an older selection.
	s.dropDeferred()

	groups := s.set.Items()
	s.logger.WithFields(logrus.Fields{"token": token, "groups": len(groups)}).Debug("Resolving selection")

	go func() {
		elements, err := s.resolver.Resolve(s.ctx, groups)
		s.loop.Post(func() { s.land(token, elements, err) })
	}()
}

// land runs on the loop when a resolution finishes.
func (s *Store) land(token uint64, elements []models.ElementID, err error) {
	if token != s.token {
		s.logger.WithFields(logrus.Fields{"token": token, "latest": s.token}).Debug("Discarding superseded resolution")
		return
	}
	if err != nil {
		s.logger.WithError(err).Warn("Selection resolve failed, viewport left unchanged")
		s.complete(token, err)
		return
	}

	if vp := s.views.Selected(); vp != nil {
		s.complete(token, s.applier.Apply(s.ctx, elements, vp, false))
		return
	}

	s.logger.WithError(errors.ViewportUnready("isolation")).Debug("Deferring isolation until a view opens")
	ctx, cancel := context.WithCancel(s.ctx)
	s.cancelDeferred = cancel

	fired := false
	fire := func(vp viewport.Viewport) {
		s.loop.Post(func() {
			if fired || token != s.token {
				return
			}
			fired = true
			if s.disarmDeferred != nil {
				s.disarmDeferred()
				s.disarmDeferred = nil
			}
			go func() {
				err := s.applier.Apply(ctx, elements, vp, true)
				s.loop.Post(func() {
					cancel()
					if stderrors.Is(err, context.Canceled) && token != s.token {
						// The newer flush completes these waiters.
						return
					}
					s.complete(token, err)
				})
			}()
		})
	}
	s.disarmDeferred = s.views.OnViewOpen().AddOnce(fire)

	// A view may have opened between the check above and arming the listener.
	if vp := s.views.Selected(); vp != nil {
		fire(vp)
	}
}

func (s *Store) dropDeferred() {
	if s.disarmDeferred != nil {
		s.disarmDeferred()
		s.disarmDeferred = nil
	}
	if s.cancelDeferred != nil {
		s.cancelDeferred()
		s.cancelDeferred = nil
	}
}

// complete resolves every waiter covered by token.
func (s *Store) complete(token uint64, err error) {
	kept := s.waiters[:0]
	for _, w := range s.waiters {
		if w.token != 0 && w.token <= token {
			w.done <- err
			continue
		}
		kept = append(kept, w)
	}
	clear(s.waiters[len(kept):])
	s.waiters = kept
}
