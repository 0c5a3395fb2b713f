package keymap

import (
	"testing"

	"github.com/grovetools/spoolview/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyles(t *testing.T) {
	tests := []struct {
		style string
		up    []string
	}{
		{"", []string{"k", "up"}},
		{"vim", []string{"k", "up"}},
		{"Emacs", []string{"ctrl+p", "up"}},
		{"arrows", []string{"up"}},
	}
	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			assert.Equal(t, tt.up, FromConfig(Config{Style: tt.style}).Up.Keys())
		})
	}
}

func TestBindingOverrides(t *testing.T) {
	b := FromConfig(Config{Bindings: map[string][]string{
		"pick":        {"p", "enter"},
		"Switch-Pane": {"ctrl+w"},
		"unknown":     {"x"},
		"quit":        {},
	}})

	assert.Equal(t, []string{"p", "enter"}, b.Pick.Keys())
	assert.Equal(t, "pick element", b.Pick.Help().Desc)
	assert.Equal(t, "p/enter", b.Pick.Help().Key)
	assert.Equal(t, []string{"ctrl+w"}, b.SwitchPane.Keys())
	assert.Equal(t, []string{"q", "ctrl+c"}, b.Quit.Keys(), "empty overrides are ignored")
}

func TestLoadFromConfigExtension(t *testing.T) {
	cfg, err := config.LoadFromBytes([]byte(`
tui:
  theme: terminal
  keys:
    style: emacs
    bindings:
      copy: [Y]
`), "yaml")
	require.NoError(t, err)

	b := Load(cfg)
	assert.Equal(t, []string{"ctrl+n", "down"}, b.Down.Keys())
	assert.Equal(t, []string{"Y"}, b.Copy.Keys())
	assert.Equal(t, DefaultVim().Up.Keys(), Load(nil).Up.Keys())
}

func TestHelpCoversEveryBinding(t *testing.T) {
	b := DefaultVim()
	seen := 0
	for _, col := range b.FullHelp() {
		for _, binding := range col {
			assert.True(t, binding.Enabled())
			seen++
		}
	}
	assert.Equal(t, len(b.actions()), seen)
	assert.NotEmpty(t, b.ShortHelp())
}
