// Package pick resolves a viewport pick back to the spool it belongs to and
// publishes the result as a popup.
package pick

import (
	"context"
	"fmt"

	"github.com/grovetools/spoolview/internal/loop"
	"github.com/grovetools/spoolview/pkg/models"
	"github.com/grovetools/spoolview/pkg/popup"
	"github.com/grovetools/spoolview/pkg/viewport"
	"github.com/sirupsen/logrus"
)

// GroupResolver finds the group an element belongs to.
type GroupResolver interface {
	ResolveGroupOf(ctx context.Context, element models.ElementID) (models.GroupID, bool, error)
}

// Context is what a single pick resolved to.
type Context struct {
	Position models.Point
	Element  models.ElementID
	Group    models.GroupID
	HasGroup bool
}

// Rows builds the popup rows for the pick.
func (c Context) Rows() []popup.Row {
	rows := []popup.Row{{Label: fmt.Sprintf("Element Id: %s", c.Element)}}
	if c.HasGroup {
		rows = append(rows, popup.Row{Label: fmt.Sprintf("Spool: %s", c.Group)})
	}
	return rows
}

// Result is delivered once per pick. A nil State with a nil Err means the
// pick hit nothing or was superseded by a newer pick.
type Result struct {
	State   *popup.State
	Context *Context
	Err     error
}

type pending struct {
	out    chan Result
	sent   bool
	disarm func()
}

func (p *pending) deliver(r Result) {
	if p.sent {
		return
	}
	p.sent = true
	p.out <- r
}

// Resolver is the PickResolver. Its state is only touched from loop tasks.
type Resolver struct {
	ctx     context.Context
	loop    *loop.Loop
	groups  GroupResolver
	channel *popup.Channel
	offset  float64
	logger  *logrus.Entry

	token   uint64
	current *pending
}

// New creates a pick resolver publishing to ch. The popup is placed offset
// cells up-left of the pick position.
func New(ctx context.Context, lp *loop.Loop, groups GroupResolver, ch *popup.Channel, offset float64, logger *logrus.Entry) *Resolver {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Resolver{
		ctx:     ctx,
		loop:    lp,
		groups:  groups,
		channel: ch,
		offset:  offset,
		logger:  logger,
	}
}

// OnPick arms a one-shot listener on vp's next selection change. When it
// fires, the first selected element is resolved to its group and the popup
// is emitted. A newer pick disarms this one and drops its late result.
func (r *Resolver) OnPick(pos models.Point, vp viewport.Viewport) <-chan Result {
	out := make(chan Result, 1)
	r.loop.Post(func() {
		r.supersede()
		r.token++
		token := r.token
		p := &pending{out: out}
		r.current = p

		p.disarm = vp.SelectionChanged().AddOnce(func(viewport.SelectionEvent) {
			r.loop.Post(func() { r.fire(token, p, pos, vp) })
		})
	})
	return out
}

func (r *Resolver) supersede() {
	prev := r.current
	if prev == nil {
		return
	}
	if prev.disarm != nil {
		prev.disarm()
		prev.disarm = nil
	}
	prev.deliver(Result{})
	r.current = nil
}

func (r *Resolver) fire(token uint64, p *pending, pos models.Point, vp viewport.Viewport) {
	p.disarm = nil
	if token != r.token {
		p.deliver(Result{})
		return
	}

	selected := vp.SelectedElements()
	if len(selected) == 0 {
		r.logger.WithField("position", pos.String()).Debug("Pick selected nothing")
		p.deliver(Result{})
		return
	}
	element := selected[0]

	go func() {
		group, ok, err := r.groups.ResolveGroupOf(r.ctx, element)
		r.loop.Post(func() {
			if token != r.token {
				r.logger.WithField("element", element).Debug("Dropping superseded pick")
				p.deliver(Result{})
				return
			}
			if err != nil {
				r.logger.WithError(err).WithField("element", element).Warn("Pick resolution failed")
				p.deliver(Result{Err: err})
				return
			}

			pc := &Context{Position: pos, Element: element, Group: group, HasGroup: ok}
			state := popup.State{
				Visible:  true,
				Position: pos.Sub(r.offset),
				Rows:     pc.Rows(),
			}
			r.channel.Emit(state)
			r.logger.WithFields(logrus.Fields{
				"element": element,
				"spool":   group,
			}).Debug("Pick resolved")
			p.deliver(Result{State: &state, Context: pc})
		})
	}()
}
