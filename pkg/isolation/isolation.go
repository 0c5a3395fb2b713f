// Package isolation applies a resolved element set to a viewport.
package isolation

import (
	"context"
	"sync"
	"time"

	"github.com/grovetools/spoolview/pkg/models"
	"github.com/grovetools/spoolview/pkg/viewport"
	"github.com/sirupsen/logrus"
)

// Controller is the ViewportIsolationController.
type Controller struct {
	settleDelay time.Duration
	logger      *logrus.Entry

	// mu makes each ctx check and the viewport change after it one step, so
	// an apply whose ctx was cancelled never touches the viewport again.
	mu sync.Mutex
}

// New creates a controller that waits settleDelay before the first zoom of a
// freshly opened viewport.
func New(settleDelay time.Duration, logger *logrus.Entry) *Controller {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Controller{settleDelay: settleDelay, logger: logger}
}

// Apply isolates elements in vp, or hides whatever is always drawn when
// elements is empty, then frames the camera on them.
//
// With awaitViewportReady the zoom is issued only after the settle delay. If
// ctx ends first the zoom is skipped and ctx's error returned; isolation has
// already been applied at that point. An apply whose ctx has already ended
// leaves vp untouched.
func (c *Controller) Apply(ctx context.Context, elements []models.ElementID, vp viewport.Viewport, awaitViewportReady bool) error {
	if err := c.isolate(ctx, elements, vp); err != nil {
		c.logger.WithField("viewport", vp.ID()).Debug("Apply cancelled before isolation")
		return err
	}

	if awaitViewportReady && c.settleDelay > 0 {
		timer := time.NewTimer(c.settleDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			c.logger.WithField("viewport", vp.ID()).Debug("Settle wait cancelled, skipping zoom")
			return ctx.Err()
		case <-timer.C:
		}
	}

	if err := c.zoom(ctx, elements, vp); err != nil {
		c.logger.WithField("viewport", vp.ID()).Debug("Apply cancelled before zoom")
		return err
	}

	c.logger.WithFields(logrus.Fields{
		"viewport": vp.ID(),
		"elements": len(elements),
		"awaited":  awaitViewportReady,
	}).Debug("Applied isolation")
	return nil
}

func (c *Controller) isolate(ctx context.Context, elements []models.ElementID, vp viewport.Viewport) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(elements) > 0 {
		vp.ClearHiddenElements()
		vp.IsolateElements(elements, false)
	} else {
		vp.HideElements(vp.AlwaysDrawnElements())
	}
	return nil
}

func (c *Controller) zoom(ctx context.Context, elements []models.ElementID, vp viewport.Viewport) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	vp.ZoomToElements(elements)
	return nil
}
