package popup

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/grovetools/spoolview/pkg/models"
	"github.com/grovetools/spoolview/tui/theme"
)

// Presenter is the PopupPresenter: it owns the visible popup, fed by a
// Channel while mounted. Closing is local and never emits.
type Presenter struct {
	channel *Channel

	mu       sync.Mutex
	state    State
	sub      chan State
	done     chan struct{}
	onChange func(State)
}

// NewPresenter creates an unmounted presenter with a hidden popup.
func NewPresenter(ch *Channel) *Presenter {
	return &Presenter{channel: ch}
}

// Mount subscribes to the channel. Mounting twice is a no-op.
func (p *Presenter) Mount() {
	p.mu.Lock()
	if p.sub != nil {
		p.mu.Unlock()
		return
	}
	sub := p.channel.Subscribe()
	done := make(chan struct{})
	p.sub, p.done = sub, done
	p.mu.Unlock()

	go func() {
		defer close(done)
		for s := range sub {
			p.show(s)
		}
	}()
}

// Unmount unsubscribes and waits for in-flight deliveries to finish.
func (p *Presenter) Unmount() {
	p.mu.Lock()
	sub, done := p.sub, p.done
	p.sub, p.done = nil, nil
	p.mu.Unlock()

	if sub == nil {
		return
	}
	p.channel.Unsubscribe(sub)
	<-done
}

// OnChange registers fn to run after every state change.
func (p *Presenter) OnChange(fn func(State)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onChange = fn
}

// State returns the current popup state.
func (p *Presenter) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Presenter) show(s State) {
	p.set(State{
		Visible:  s.Visible,
		Position: s.Position,
		Rows:     append([]Row(nil), s.Rows...),
	})
}

// Close hides the popup and clears its rows.
func (p *Presenter) Close() {
	p.mu.Lock()
	visible := p.state.Visible
	p.mu.Unlock()
	if visible {
		p.set(State{})
	}
}

// HandleKey closes the popup on escape and reports whether the key was consumed.
func (p *Presenter) HandleKey(key string) bool {
	if key != "esc" || !p.State().Visible {
		return false
	}
	p.Close()
	return true
}

// HandleClick closes the popup when pos falls outside it and reports whether
// the popup was closed.
func (p *Presenter) HandleClick(pos models.Point) bool {
	s := p.State()
	if !s.Visible {
		return false
	}
	if p.Contains(pos) {
		return false
	}
	p.Close()
	return true
}

// Contains reports whether pos falls on the visible popup.
func (p *Presenter) Contains(pos models.Point) bool {
	x, y, w, h := p.Bounds()
	return pos.X >= float64(x) && pos.X < float64(x+w) &&
		pos.Y >= float64(y) && pos.Y < float64(y+h)
}

// Bounds returns the popup's screen rectangle in cells. Zero when hidden.
func (p *Presenter) Bounds() (x, y, width, height int) {
	s := p.State()
	if !s.Visible {
		return 0, 0, 0, 0
	}
	box := p.menu(s)
	return clampCell(s.Position.X), clampCell(s.Position.Y), lipgloss.Width(box), lipgloss.Height(box)
}

// Render draws the positioned menu, or nothing when hidden.
func (p *Presenter) Render() string {
	s := p.State()
	if !s.Visible {
		return ""
	}
	return lipgloss.NewStyle().
		MarginLeft(clampCell(s.Position.X)).
		MarginTop(clampCell(s.Position.Y)).
		Render(p.menu(s))
}

// Overlay draws the menu over base at the popup position, or returns base
// unchanged when hidden.
func (p *Presenter) Overlay(base string) string {
	s := p.State()
	if !s.Visible {
		return base
	}

	x, y := clampCell(s.Position.X), clampCell(s.Position.Y)
	lines := strings.Split(base, "\n")
	for i, ml := range strings.Split(p.menu(s), "\n") {
		row := y + i
		for len(lines) <= row {
			lines = append(lines, "")
		}
		line := lines[row]
		width := ansi.StringWidth(line)

		left := ansi.Truncate(line, x, "")
		if width < x {
			left += strings.Repeat(" ", x-width)
		}
		var right string
		if end := x + ansi.StringWidth(ml); width > end {
			right = ansi.TruncateLeft(line, end, "")
		}
		lines[row] = left + ml + right
	}
	return strings.Join(lines, "\n")
}

func (p *Presenter) menu(s State) string {
	lines := make([]string, len(s.Rows))
	for i, r := range s.Rows {
		lines[i] = theme.DefaultTheme.PopupLabel.Render(r.Label)
	}
	return theme.DefaultTheme.Popup.Render(strings.Join(lines, "\n"))
}

func (p *Presenter) set(s State) {
	p.mu.Lock()
	p.state = s
	fn := p.onChange
	p.mu.Unlock()

	if fn != nil {
		fn(s)
	}
}

func clampCell(v float64) int {
	if v < 0 {
		return 0
	}
	return int(v)
}
