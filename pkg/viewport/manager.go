package viewport

import (
	"slices"
	"sync"

	"github.com/grovetools/spoolview/pkg/event"
)

// Manager tracks open viewports and announces new ones.
type Manager struct {
	mu        sync.RWMutex
	viewports []Viewport
	selected  Viewport
	viewOpen  event.Hub[Viewport]
}

// NewManager creates a manager with no open viewports.
func NewManager() *Manager {
	return &Manager{}
}

// Open registers vp, selects it if nothing is selected yet, and emits "view opened".
func (m *Manager) Open(vp Viewport) {
	m.mu.Lock()
	m.viewports = append(m.viewports, vp)
	if m.selected == nil {
		m.selected = vp
	}
	m.mu.Unlock()

	m.viewOpen.Emit(vp)
}

// Close forgets vp. If it was selected, the next open viewport becomes selected.
func (m *Manager) Close(vp Viewport) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := slices.Index(m.viewports, vp); i >= 0 {
		m.viewports = slices.Delete(m.viewports, i, i+1)
	}
	if m.selected == vp {
		m.selected = nil
		if len(m.viewports) > 0 {
			m.selected = m.viewports[0]
		}
	}
}

// Selected returns the selected viewport, or nil when none is open.
func (m *Manager) Selected() Viewport {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.selected
}

// ForEach calls fn for every open viewport.
func (m *Manager) ForEach(fn func(Viewport)) {
	m.mu.RLock()
	vps := slices.Clone(m.viewports)
	m.mu.RUnlock()

	for _, vp := range vps {
		fn(vp)
	}
}

// OnViewOpen is emitted with each newly opened viewport.
func (m *Manager) OnViewOpen() *event.Hub[Viewport] {
	return &m.viewOpen
}
