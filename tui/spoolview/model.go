package spoolview

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/spoolview/pkg/models"
	"github.com/grovetools/spoolview/pkg/pick"
	"github.com/grovetools/spoolview/tui/keymap"
)

type pane int

const (
	spoolPane pane = iota
	elementPane
)

// Screen geometry in cells. The body starts below the header, filter and
// column title lines.
const (
	bodyTop     = 3
	footerLines = 2
	spoolWidth  = 30
	paneGap     = 2
)

// Model is the spool viewer TUI state.
type Model struct {
	ctx  context.Context
	sess Session
	keys keymap.Base
	help help.Model

	filter  textinput.Model
	spools  []models.GroupID
	visible []models.GroupID

	focus       pane
	cursor      int
	offset      int
	elemCursor  int
	elemOffset  int
	pending     int
	viewOpened  bool
	width       int
	height      int
	status      string
	statusLevel string

	popupChanged chan struct{}
	copy         func(string) error
}

type spoolsLoadedMsg struct {
	spools []models.GroupID
	err    error
}

type appliedMsg struct{ err error }

type pickedMsg struct{ result pick.Result }

type popupChangedMsg struct{}

// Init loads the spool list and starts listening for popup changes.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadSpools(), m.waitPopup())
}

func (m *Model) loadSpools() tea.Cmd {
	return func() tea.Msg {
		spools, err := m.sess.ListSpools(m.ctx)
		return spoolsLoadedMsg{spools: spools, err: err}
	}
}

func (m *Model) waitPopup() tea.Cmd {
	return func() tea.Msg {
		<-m.popupChanged
		return popupChangedMsg{}
	}
}

// await turns a store completion into a message.
func (m *Model) await(ch <-chan error) tea.Cmd {
	m.pending++
	return func() tea.Msg {
		return appliedMsg{err: <-ch}
	}
}

func (m *Model) awaitPick(ch <-chan pick.Result) tea.Cmd {
	return func() tea.Msg {
		return pickedMsg{result: <-ch}
	}
}

func (m *Model) listHeight() int {
	return max(1, m.height-bodyTop-footerLines)
}

func (m *Model) elements() []models.ElementID {
	return m.sess.Viewport().VisibleElements()
}

func (m *Model) setStatus(level, text string) {
	m.statusLevel, m.status = level, text
}
