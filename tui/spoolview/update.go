package spoolview

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/spoolview/pkg/models"
	"github.com/sahilm/fuzzy"
)

// Update handles messages and updates the model accordingly.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if !m.viewOpened {
			m.viewOpened = true
			m.sess.OpenView()
		}
		m.sess.ViewChanged()
		return m, nil

	case spoolsLoadedMsg:
		if msg.err != nil {
			m.setStatus("error", fmt.Sprintf("Failed to list spools: %v", msg.err))
			return m, nil
		}
		m.spools = msg.spools
		m.applyFilter()
		return m, nil

	case appliedMsg:
		m.pending = max(0, m.pending-1)
		if msg.err != nil {
			m.setStatus("error", fmt.Sprintf("Isolation failed: %v", msg.err))
		} else if m.pending == 0 {
			m.setStatus("success", fmt.Sprintf("%d spools checked, %d elements isolated",
				len(m.sess.Selection()), len(m.elements())))
		}
		m.elemCursor = min(m.elemCursor, max(0, len(m.elements())-1))
		m.sess.ViewChanged()
		return m, nil

	case pickedMsg:
		switch r := msg.result; {
		case r.Err != nil:
			m.setStatus("error", fmt.Sprintf("Pick failed: %v", r.Err))
		case r.State == nil:
			m.setStatus("info", "Nothing picked")
		default:
			m.setStatus("info", strings.Join(r.State.Labels(), ", "))
		}
		return m, nil

	case popupChangedMsg:
		return m, m.waitPopup()

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filter.Focused() {
		switch msg.Type {
		case tea.KeyEsc:
			m.filter.Blur()
			m.filter.SetValue("")
			m.applyFilter()
			return m, nil
		case tea.KeyEnter:
			m.filter.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.applyFilter()
		return m, cmd
	}

	if m.help.ShowAll && (key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Back)) {
		m.help.ShowAll = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.sess.Presenter().HandleKey("esc") {
			return m, nil
		}
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.applyFilter()
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = true

	case key.Matches(msg, m.keys.Search):
		m.focus = spoolPane
		m.filter.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.SwitchPane):
		if m.focus == spoolPane {
			m.focus = elementPane
		} else {
			m.focus = spoolPane
		}

	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.PageUp):
		m.move(-m.listHeight())
	case key.Matches(msg, m.keys.PageDown):
		m.move(m.listHeight())
	case key.Matches(msg, m.keys.Top):
		m.move(-1 << 30)
	case key.Matches(msg, m.keys.Bottom):
		m.move(1 << 30)

	case key.Matches(msg, m.keys.Toggle):
		if m.focus == spoolPane && m.cursor < len(m.visible) {
			return m, m.toggle(m.visible[m.cursor])
		}

	case key.Matches(msg, m.keys.SelectAll):
		if len(m.visible) > 0 {
			return m, m.await(m.sess.SelectRows(m.visible...))
		}

	case key.Matches(msg, m.keys.SelectNone):
		if selected := m.sess.Selection(); len(selected) > 0 {
			return m, m.await(m.sess.DeselectRows(selected...))
		}

	case key.Matches(msg, m.keys.Pick):
		elements := m.elements()
		if m.focus == elementPane && m.elemCursor < len(elements) {
			return m, m.pickAt(m.elementPoint(m.elemCursor), elements[m.elemCursor])
		}

	case key.Matches(msg, m.keys.Copy):
		m.copyFocused()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadSpools()
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	pos := models.Point{X: float64(msg.X), Y: float64(msg.Y)}
	row := msg.Y - bodyTop

	// The popup is drawn over both panes.
	if m.sess.Presenter().Contains(pos) {
		return nil
	}

	if msg.X < spoolWidth {
		// Clicks on the spool list toggle the row; the popup still closes.
		m.sess.Presenter().HandleClick(pos)
		if i := m.offset + row; row >= 0 && row < m.listHeight() && i < len(m.visible) {
			m.focus, m.cursor = spoolPane, i
			return m.toggle(m.visible[i])
		}
		return nil
	}

	var element models.ElementID
	elements := m.elements()
	if i := m.elemOffset + row; row >= 0 && row < m.listHeight() && i < len(elements) {
		m.focus, m.elemCursor = elementPane, i
		element = elements[i]
	}
	return m.pickAt(pos, element)
}

func (m *Model) toggle(g models.GroupID) tea.Cmd {
	if slices.Contains(m.sess.Selection(), g) {
		return m.await(m.sess.DeselectRows(g))
	}
	return m.await(m.sess.SelectRows(g))
}

func (m *Model) pickAt(pos models.Point, element models.ElementID) tea.Cmd {
	return m.awaitPick(m.sess.Click(pos, element))
}

// elementPoint is the cell just after element i's label.
func (m *Model) elementPoint(i int) models.Point {
	label := m.elements()[i]
	return models.Point{
		X: float64(spoolWidth + paneGap + 2 + len(label)),
		Y: float64(bodyTop + i - m.elemOffset),
	}
}

func (m *Model) move(delta int) {
	height := m.listHeight()
	if m.focus == spoolPane {
		m.cursor, m.offset = scroll(m.cursor+delta, m.offset, len(m.visible), height)
		return
	}
	m.elemCursor, m.elemOffset = scroll(m.elemCursor+delta, m.elemOffset, len(m.elements()), height)
}

// scroll clamps cursor to [0, n) and keeps it inside a window of height rows.
func scroll(cursor, offset, n, height int) (int, int) {
	if n == 0 {
		return 0, 0
	}
	cursor = min(max(cursor, 0), n-1)
	if cursor < offset {
		offset = cursor
	}
	if cursor >= offset+height {
		offset = cursor - height + 1
	}
	return cursor, offset
}

func (m *Model) applyFilter() {
	query := strings.TrimSpace(m.filter.Value())
	if query == "" {
		m.visible = slices.Clone(m.spools)
	} else {
		names := make([]string, len(m.spools))
		for i, g := range m.spools {
			names[i] = string(g)
		}
		m.visible = m.visible[:0]
		for _, match := range fuzzy.Find(query, names) {
			m.visible = append(m.visible, m.spools[match.Index])
		}
	}
	m.cursor, m.offset = scroll(m.cursor, 0, len(m.visible), m.listHeight())
}

func (m *Model) copyFocused() {
	var text string
	if m.focus == elementPane {
		if elements := m.elements(); m.elemCursor < len(elements) {
			text = string(elements[m.elemCursor])
		}
	} else if m.cursor < len(m.visible) {
		text = string(m.visible[m.cursor])
	}
	if text == "" {
		return
	}
	if err := m.copy(text); err != nil {
		m.setStatus("error", fmt.Sprintf("Copy failed: %v", err))
		return
	}
	m.setStatus("success", fmt.Sprintf("Copied %s", text))
}
