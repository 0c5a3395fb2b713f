// Package spoolview is the terminal front end of a session: a checkable spool
// list, the elements isolated in the viewport, and the pick popup.
package spoolview

import (
	"context"
	"io"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/spoolview/logging"
	"github.com/grovetools/spoolview/pkg/models"
	"github.com/grovetools/spoolview/pkg/pick"
	"github.com/grovetools/spoolview/pkg/popup"
	"github.com/grovetools/spoolview/pkg/viewport"
	"github.com/grovetools/spoolview/tui"
	"github.com/grovetools/spoolview/tui/keymap"
)

// Session is the part of a session.Session the TUI drives.
type Session interface {
	ListSpools(ctx context.Context) ([]models.GroupID, error)
	Selection() []models.GroupID
	SelectRows(groups ...models.GroupID) <-chan error
	DeselectRows(groups ...models.GroupID) <-chan error
	Click(pos models.Point, element models.ElementID) <-chan pick.Result
	Presenter() *popup.Presenter
	Viewport() *viewport.Memory
	OpenView()
	ViewChanged()
}

// New creates the model. The viewport is opened on the first window size.
func New(ctx context.Context, sess Session, keys keymap.Base) *Model {
	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter spools"

	m := &Model{
		ctx:          ctx,
		sess:         sess,
		keys:         keys,
		help:         help.New(),
		filter:       filter,
		popupChanged: make(chan struct{}, 1),
		copy:         clipboard.WriteAll,
	}
	sess.Presenter().OnChange(func(popup.State) {
		select {
		case m.popupChanged <- struct{}{}:
		default:
		}
	})
	return m
}

// Run shows the TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, sess Session, keys keymap.Base) error {
	tui.InitializeTUI()
	restore := logging.SetGlobalOutput(io.Discard)
	defer restore()

	p := tea.NewProgram(New(ctx, sess, keys),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
