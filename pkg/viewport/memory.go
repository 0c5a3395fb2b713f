package viewport

import (
	"math"
	"slices"
	"sync"

	"github.com/grovetools/spoolview/pkg/event"
	"github.com/grovetools/spoolview/pkg/models"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"
)

// Frame is the camera target after a zoom.
type Frame struct {
	Box    r3.Box
	Center r3.Vec
	Radius float64
}

// VisualState is a snapshot of a Memory viewport.
type VisualState struct {
	AlwaysDrawn []models.ElementID
	Exclusive   bool
	Hidden      []models.ElementID
	Selected    []models.ElementID
	Frame       Frame
	RenderMode  models.RenderMode
	Categories  []models.CategoryID
	Models      []models.ModelID
}

// Memory is an in-memory Viewport over a fixed set of element extents.
type Memory struct {
	id      string
	extents map[models.ElementID]r3.Box
	logger  *logrus.Entry

	mu          sync.RWMutex
	alwaysDrawn []models.ElementID
	exclusive   bool
	hidden      map[models.ElementID]struct{}
	selected    []models.ElementID
	frame       Frame
	renderMode  models.RenderMode
	categories  map[models.CategoryID]bool
	models      []models.ModelID

	viewChanged      event.Hub[struct{}]
	selectionChanged event.Hub[SelectionEvent]
}

// NewMemory creates a viewport framing the whole scene in wireframe mode.
func NewMemory(id string, extents map[models.ElementID]r3.Box, logger *logrus.Entry) *Memory {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	m := &Memory{
		id:         id,
		extents:    extents,
		logger:     logger.WithField("viewport", id),
		hidden:     make(map[models.ElementID]struct{}),
		categories: make(map[models.CategoryID]bool),
		renderMode: models.RenderModeWireframe,
	}
	m.frame = m.frameFor(nil)
	return m
}

func (m *Memory) ID() string { return m.id }

func (m *Memory) IsolateElements(ids []models.ElementID, additive bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if additive {
		for _, id := range ids {
			if !slices.Contains(m.alwaysDrawn, id) {
				m.alwaysDrawn = append(m.alwaysDrawn, id)
			}
		}
	} else {
		m.alwaysDrawn = dedup(ids)
	}
	m.exclusive = true
	m.logger.WithField("count", len(m.alwaysDrawn)).Debug("Isolated elements")
}

func (m *Memory) HideElements(ids []models.ElementID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		m.hidden[id] = struct{}{}
	}
}

func (m *Memory) ClearHiddenElements() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.hidden)
}

func (m *Memory) AlwaysDrawnElements() []models.ElementID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.alwaysDrawn)
}

func (m *Memory) ZoomToElements(ids []models.ElementID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frame = m.frameFor(ids)
}

func (m *Memory) SelectedElements() []models.ElementID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.selected)
}

func (m *Memory) SetRenderMode(mode models.RenderMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.renderMode = mode
}

func (m *Memory) ChangeCategoryDisplay(ids []models.CategoryID, display bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		m.categories[id] = display
	}
}

func (m *Memory) AddViewedModels(ids []models.ModelID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		if !slices.Contains(m.models, id) {
			m.models = append(m.models, id)
		}
	}
}

func (m *Memory) ViewChanged() *event.Hub[struct{}] { return &m.viewChanged }

func (m *Memory) SelectionChanged() *event.Hub[SelectionEvent] { return &m.selectionChanged }

// Select replaces the element selection, as a pick would, and notifies listeners.
func (m *Memory) Select(ids ...models.ElementID) {
	m.mu.Lock()
	m.selected = dedup(ids)
	selected := slices.Clone(m.selected)
	m.mu.Unlock()

	m.selectionChanged.Emit(SelectionEvent{Elements: selected})
}

// NotifyViewChanged signals that the view finished a render pass.
func (m *Memory) NotifyViewChanged() {
	m.viewChanged.Emit(struct{}{})
}

// IsVisible reports whether the element is currently drawn.
func (m *Memory) IsVisible(id models.ElementID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.visible(id)
}

func (m *Memory) visible(id models.ElementID) bool {
	if _, hidden := m.hidden[id]; hidden {
		return false
	}
	return !m.exclusive || slices.Contains(m.alwaysDrawn, id)
}

// VisibleElements returns every known element currently drawn, sorted.
func (m *Memory) VisibleElements() []models.ElementID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.ElementID
	for id := range m.extents {
		if m.visible(id) {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

// Elements returns every known element, sorted.
func (m *Memory) Elements() []models.ElementID {
	out := make([]models.ElementID, 0, len(m.extents))
	for id := range m.extents {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// State returns a snapshot of the visual state.
func (m *Memory) State() VisualState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := VisualState{
		AlwaysDrawn: slices.Clone(m.alwaysDrawn),
		Exclusive:   m.exclusive,
		Selected:    slices.Clone(m.selected),
		Frame:       m.frame,
		RenderMode:  m.renderMode,
		Models:      slices.Clone(m.models),
	}
	for id := range m.hidden {
		s.Hidden = append(s.Hidden, id)
	}
	slices.Sort(s.Hidden)
	for id, on := range m.categories {
		if on {
			s.Categories = append(s.Categories, id)
		}
	}
	slices.Sort(s.Categories)
	return s
}

// frameFor unions the extents of ids. Unknown ids are ignored; when none are
// known the whole scene is framed.
func (m *Memory) frameFor(ids []models.ElementID) Frame {
	var (
		box   r3.Box
		found bool
	)
	add := func(b r3.Box) {
		if !found {
			box, found = b, true
			return
		}
		box.Min = r3.Vec{X: math.Min(box.Min.X, b.Min.X), Y: math.Min(box.Min.Y, b.Min.Y), Z: math.Min(box.Min.Z, b.Min.Z)}
		box.Max = r3.Vec{X: math.Max(box.Max.X, b.Max.X), Y: math.Max(box.Max.Y, b.Max.Y), Z: math.Max(box.Max.Z, b.Max.Z)}
	}

	for _, id := range ids {
		if b, ok := m.extents[id]; ok {
			add(b)
		}
	}
	if !found {
		for _, b := range m.extents {
			add(b)
		}
	}

	return Frame{
		Box:    box,
		Center: r3.Scale(0.5, r3.Add(box.Min, box.Max)),
		Radius: r3.Norm(r3.Sub(box.Max, box.Min)) / 2,
	}
}

func dedup(ids []models.ElementID) []models.ElementID {
	out := make([]models.ElementID, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
