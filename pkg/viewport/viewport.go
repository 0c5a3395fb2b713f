// Package viewport defines the viewport-control capability the engine drives
// and ships an in-memory implementation that tracks visual state and camera
// framing without rendering anything.
package viewport

import (
	"github.com/grovetools/spoolview/pkg/event"
	"github.com/grovetools/spoolview/pkg/models"
)

// SelectionEvent is emitted whenever the viewport's element selection changes.
type SelectionEvent struct {
	Elements []models.ElementID
}

// Viewport is the control surface of one open view.
type Viewport interface {
	ID() string

	// IsolateElements makes ids the always-drawn set, exclusively. With
	// additive set the ids are added to the current set instead of replacing it.
	IsolateElements(ids []models.ElementID, additive bool)
	HideElements(ids []models.ElementID)
	ClearHiddenElements()
	AlwaysDrawnElements() []models.ElementID
	// ZoomToElements frames ids, or the whole scene when ids is empty.
	ZoomToElements(ids []models.ElementID)
	SelectedElements() []models.ElementID

	SetRenderMode(mode models.RenderMode)
	ChangeCategoryDisplay(ids []models.CategoryID, display bool)
	AddViewedModels(ids []models.ModelID)

	ViewChanged() *event.Hub[struct{}]
	SelectionChanged() *event.Hub[SelectionEvent]
}
