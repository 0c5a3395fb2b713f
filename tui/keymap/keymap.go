// Package keymap holds the key bindings shared by spoolview TUIs.
package keymap

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/grovetools/spoolview/config"
)

// Base contains the standard key bindings. Vim-style navigation is the default.
type Base struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding

	Toggle     key.Binding
	SelectAll  key.Binding
	SelectNone key.Binding
	Pick       key.Binding
	Copy       key.Binding
	Refresh    key.Binding

	Search     key.Binding
	Back       key.Binding
	SwitchPane key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultVim returns the default vim-style keymap
func DefaultVim() Base {
	return Base{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		PageUp:   key.NewBinding(key.WithKeys("ctrl+u", "pgup"), key.WithHelp("C-u", "page up")),
		PageDown: key.NewBinding(key.WithKeys("ctrl+d", "pgdown"), key.WithHelp("C-d", "page down")),
		Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),

		Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "check spool")),
		SelectAll:  key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("C-a", "check all")),
		SelectNone: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "uncheck all")),
		Pick:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "pick element")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy id")),
		Refresh:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("C-r", "reload spools")),

		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close / clear")),
		SwitchPane: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),

		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// DefaultEmacs returns an emacs-style keymap
func DefaultEmacs() Base {
	b := DefaultVim()
	b.Up = key.NewBinding(key.WithKeys("ctrl+p", "up"), key.WithHelp("C-p", "up"))
	b.Down = key.NewBinding(key.WithKeys("ctrl+n", "down"), key.WithHelp("C-n", "down"))
	b.PageUp = key.NewBinding(key.WithKeys("alt+v", "pgup"), key.WithHelp("M-v", "page up"))
	b.PageDown = key.NewBinding(key.WithKeys("ctrl+v", "pgdown"), key.WithHelp("C-v", "page down"))
	b.Top = key.NewBinding(key.WithKeys("alt+<", "home"), key.WithHelp("M-<", "top"))
	b.Bottom = key.NewBinding(key.WithKeys("alt+>", "end"), key.WithHelp("M->", "bottom"))
	b.Search = key.NewBinding(key.WithKeys("ctrl+s", "/"), key.WithHelp("C-s", "filter"))
	return b
}

// DefaultArrows returns a keymap using only arrow and page keys for navigation
func DefaultArrows() Base {
	b := DefaultVim()
	b.Up = key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up"))
	b.Down = key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down"))
	b.PageUp = key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up"))
	b.PageDown = key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down"))
	b.Top = key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "top"))
	b.Bottom = key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "bottom"))
	return b
}

// Config is the "keys" section of the "tui" config extension.
type Config struct {
	// Style is "vim" (default), "emacs" or "arrows".
	Style string `yaml:"style"`
	// Bindings replaces the keys of named actions, e.g. {"pick": ["enter", "p"]}.
	Bindings map[string][]string `yaml:"bindings"`
}

// Load builds the keymap from the tui.keys config extension. A nil config
// yields the vim keymap.
func Load(cfg *config.Config) Base {
	var ext struct {
		Keys Config `yaml:"keys"`
	}
	if cfg != nil {
		_ = cfg.UnmarshalExtension("tui", &ext)
	}
	return FromConfig(ext.Keys)
}

// FromConfig builds the keymap for c.
func FromConfig(c Config) Base {
	var b Base
	switch strings.ToLower(c.Style) {
	case "emacs":
		b = DefaultEmacs()
	case "arrows":
		b = DefaultArrows()
	default:
		b = DefaultVim()
	}

	actions := b.actions()
	for name, keys := range c.Bindings {
		if binding, ok := actions[normalizeAction(name)]; ok && len(keys) > 0 {
			updateBinding(binding, keys)
		}
	}
	return b
}

func (k *Base) actions() map[string]*key.Binding {
	return map[string]*key.Binding{
		"up":          &k.Up,
		"down":        &k.Down,
		"page_up":     &k.PageUp,
		"page_down":   &k.PageDown,
		"top":         &k.Top,
		"bottom":      &k.Bottom,
		"toggle":      &k.Toggle,
		"select_all":  &k.SelectAll,
		"select_none": &k.SelectNone,
		"pick":        &k.Pick,
		"copy":        &k.Copy,
		"refresh":     &k.Refresh,
		"search":      &k.Search,
		"back":        &k.Back,
		"switch_pane": &k.SwitchPane,
		"help":        &k.Help,
		"quit":        &k.Quit,
	}
}

func normalizeAction(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
}

// updateBinding replaces the keys of a binding and keeps its description.
func updateBinding(binding *key.Binding, keys []string) {
	desc := binding.Help().Desc
	*binding = key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), desc),
	)
}

// ShortHelp returns the bindings shown in the one-line help.
func (k Base) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Pick, k.Search, k.SwitchPane, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the expanded help.
func (k Base) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Toggle, k.SelectAll, k.SelectNone, k.Refresh},
		{k.Pick, k.Copy, k.Back},
		{k.Search, k.SwitchPane, k.Help, k.Quit},
	}
}
