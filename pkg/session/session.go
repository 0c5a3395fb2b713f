// Package session opens a catalog as a document and wires the selection,
// isolation, pick and popup components around a single viewport.
package session

import (
	"context"
	"slices"
	"sync"

	"github.com/grovetools/spoolview/config"
	"github.com/grovetools/spoolview/errors"
	"github.com/grovetools/spoolview/internal/loop"
	"github.com/grovetools/spoolview/logging"
	"github.com/grovetools/spoolview/pkg/catalog"
	"github.com/grovetools/spoolview/pkg/isolation"
	"github.com/grovetools/spoolview/pkg/models"
	"github.com/grovetools/spoolview/pkg/pick"
	"github.com/grovetools/spoolview/pkg/popup"
	"github.com/grovetools/spoolview/pkg/profiling"
	"github.com/grovetools/spoolview/pkg/readiness"
	"github.com/grovetools/spoolview/pkg/resolver"
	"github.com/grovetools/spoolview/pkg/selection"
	"github.com/grovetools/spoolview/pkg/viewport"
	"github.com/sirupsen/logrus"
)

// Options override values from the loaded configuration.
type Options struct {
	// CatalogPath replaces catalog.path when set.
	CatalogPath string
	// Spools replaces the configured initial spools when non-nil.
	Spools []models.GroupID
}

// Session is one opened document.
type Session struct {
	cfg    *config.Config
	logger *logrus.Entry

	ctx    context.Context
	cancel context.CancelFunc

	db        *catalog.DB
	view      catalog.ViewDefinition
	loop      *loop.Loop
	views     *viewport.Manager
	viewport  *viewport.Memory
	resolver  *resolver.Resolver
	store     *selection.Store
	picks     *pick.Resolver
	channel   *popup.Channel
	presenter *popup.Presenter
	readiness *readiness.Orchestrator

	initial   []models.GroupID
	openOnce  sync.Once
	closeOnce sync.Once
}

// Open opens the catalog named by cfg (or opts) and builds every component.
// Nothing runs until Run is called.
func Open(ctx context.Context, cfg *config.Config, opts Options) (*Session, error) {
	defer profiling.Start("session.open")()
	logger := logging.NewLogger("session")

	path := cfg.Catalog.Path
	if opts.CatalogPath != "" {
		path = opts.CatalogPath
	}
	if path == "" {
		return nil, errors.InvalidInput("no catalog path configured")
	}

	db, err := catalog.Open(path)
	if err != nil {
		return nil, err
	}

	view, err := catalog.FirstViewDefinition(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	extents, err := catalog.Extents(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	res, err := resolver.New(db, resolver.Options{
		Categories:     cfg.Catalog.Categories,
		GroupAttribute: cfg.Catalog.GroupAttribute,
	}, logging.NewLogger("resolver"))
	if err != nil {
		db.Close()
		return nil, err
	}

	initial := opts.Spools
	if initial == nil {
		initial = models.GroupIDs(cfg.Spools)
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		cfg:      cfg,
		logger:   logger.WithField("catalog", path),
		ctx:      ctx,
		cancel:   cancel,
		db:       db,
		view:     view,
		loop:     loop.New(logging.NewLogger("loop")),
		views:    viewport.NewManager(),
		viewport: viewport.NewMemory(view.ID, extents, logging.NewLogger("viewport")),
		resolver: res,
		channel:  popup.NewChannel(),
		initial:  initial,
	}
	s.presenter = popup.NewPresenter(s.channel)
	s.store = selection.New(ctx, s.loop, res,
		isolation.New(cfg.SettleDelay(), logging.NewLogger("isolation")),
		s.views, logging.NewLogger("selection"))
	s.picks = pick.New(ctx, s.loop, res, s.channel, cfg.PickOffset(), logging.NewLogger("pick"))
	s.readiness = readiness.New(ctx, s.loop, db, s.views, logging.NewLogger("readiness"))

	s.viewport.SelectionChanged().AddListener(func(ev viewport.SelectionEvent) {
		s.logger.WithField("elements", ev.Elements).Debug("Viewport selection changed")
	})
	s.presenter.Mount()

	s.logger.WithFields(logrus.Fields{
		"view":     view.Name,
		"elements": len(extents),
	}).Info("Document opened")
	return s, nil
}

// Run drives the event loop until ctx is done or the session is closed.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.ctx.Done():
			cancel()
		case <-ctx.Done():
		}
	}()
	return s.loop.Run(ctx)
}

// Start begins readiness and checks the initial spools. The viewport is not
// open yet, so their isolation is deferred until OpenView. With no initial
// spools the channel yields a NO_SPOOLS error.
func (s *Session) Start() <-chan error {
	s.readiness.DocumentOpened()

	if len(s.initial) == 0 {
		done := make(chan error, 1)
		err := errors.NoSpools()
		s.logger.WithError(err).Warn("Opening without spools")
		done <- err
		return done
	}

	s.logger.WithField("spools", s.initial).Info("Checking initial spools")
	return s.store.OnRowsSelected(slices.Values(s.initial))
}

// OpenView opens the session's viewport. Later calls do nothing.
func (s *Session) OpenView() {
	s.openOnce.Do(func() {
		s.views.Open(s.viewport)
	})
}

// ViewChanged reports that the viewport finished drawing.
func (s *Session) ViewChanged() {
	s.viewport.NotifyViewChanged()
}

// SelectRows checks rows in the spool list. groups is copied, so the caller
// may reuse it as soon as SelectRows returns.
func (s *Session) SelectRows(groups ...models.GroupID) <-chan error {
	return s.store.OnRowsSelected(slices.Values(slices.Clone(groups)))
}

// DeselectRows unchecks rows in the spool list. groups is copied.
func (s *Session) DeselectRows(groups ...models.GroupID) <-chan error {
	return s.store.OnRowsDeselected(slices.Values(slices.Clone(groups)))
}

// Selection returns the checked spools in the order they were checked.
func (s *Session) Selection() []models.GroupID {
	return s.store.Selection()
}

// Click handles a pointer press at pos over element, or over empty space
// when element is empty. A click outside an open popup closes it and is then
// resolved as a pick; a click inside the popup is not a pick.
func (s *Session) Click(pos models.Point, element models.ElementID) <-chan pick.Result {
	if s.presenter.State().Visible && !s.presenter.HandleClick(pos) {
		out := make(chan pick.Result, 1)
		out <- pick.Result{}
		return out
	}

	out := s.picks.OnPick(pos, s.viewport)
	s.loop.Post(func() {
		if element == "" {
			s.viewport.Select()
			return
		}
		s.viewport.Select(element)
	})
	return out
}

// ListSpools returns every spool in the catalog.
func (s *Session) ListSpools(ctx context.Context) ([]models.GroupID, error) {
	return s.resolver.ListGroups(ctx)
}

// Resolve returns the elements of groups without touching the selection.
func (s *Session) Resolve(ctx context.Context, groups []models.GroupID) ([]models.ElementID, error) {
	return s.resolver.Resolve(ctx, groups)
}

// ResolveGroupOf returns the spool element belongs to.
func (s *Session) ResolveGroupOf(ctx context.Context, element models.ElementID) (models.GroupID, bool, error) {
	return s.resolver.ResolveGroupOf(ctx, element)
}

func (s *Session) Config() *config.Config { return s.cfg }
func (s *Session) View() catalog.ViewDefinition { return s.view }
func (s *Session) Viewport() *viewport.Memory { return s.viewport }
func (s *Session) Presenter() *popup.Presenter { return s.presenter }
func (s *Session) Popups() *popup.Channel { return s.channel }
func (s *Session) Readiness() *readiness.Orchestrator { return s.readiness }
func (s *Session) Catalog() *catalog.DB { return s.db }

// Close stops the loop and releases the catalog.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.presenter.Unmount()
		s.cancel()
		err = s.db.Close()
	})
	return err
}
