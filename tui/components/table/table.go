// Package table renders themed lipgloss tables.
package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/grovetools/spoolview/tui/theme"
)

// Options configures a styled table.
type Options struct {
	Bordered      bool
	AlternateRows bool
	Theme         *theme.Theme
}

// DefaultOptions returns the default table options
func DefaultOptions() Options {
	return Options{
		Bordered:      true,
		AlternateRows: true,
		Theme:         theme.DefaultTheme,
	}
}

// New creates a table with headers and rows styled per opts.
func New(opts Options, headers []string, rows [][]string) *ltable.Table {
	t := opts.Theme
	if t == nil {
		t = theme.DefaultTheme
	}

	tbl := ltable.New().Headers(headers...).Rows(rows...)
	if opts.Bordered {
		tbl = tbl.Border(lipgloss.RoundedBorder()).BorderStyle(t.TableBorder)
	} else {
		tbl = tbl.Border(lipgloss.HiddenBorder())
	}

	// Header cells use ltable.HeaderRow; data rows start at 0.
	return tbl.StyleFunc(func(row, col int) lipgloss.Style {
		if row == ltable.HeaderRow {
			return t.TableHeader.Padding(0, 1)
		}
		style := lipgloss.NewStyle().Padding(0, 1)
		if opts.AlternateRows && row%2 == 1 {
			style = style.Background(t.Colors.VerySubtleBackground)
		}
		return style
	})
}

// SimpleTable renders a bordered table with headers and rows.
func SimpleTable(headers []string, rows [][]string) string {
	return New(DefaultOptions(), headers, rows).String()
}

// StatusTable renders label/value pairs without a border.
func StatusTable(items [][2]string) string {
	t := theme.DefaultTheme
	rows := make([][]string, len(items))
	for i, item := range items {
		rows[i] = []string{t.Muted.Render(item[0] + ":"), item[1]}
	}
	return New(Options{Theme: t}, nil, rows).String()
}

// SelectableTable renders a bordered table with an arrow to the left of
// the selected data row. A negative selected index draws no arrow.
func SelectableTable(headers []string, rows [][]string, selected int) string {
	lines := strings.Split(New(DefaultOptions(), headers, rows).String(), "\n")

	// Top border, then the header and its separator when present.
	first := 1
	if len(headers) > 0 {
		first = 3
	}

	arrow := theme.DefaultTheme.Highlight.Render(theme.IconArrow)
	pad := strings.Repeat(" ", lipgloss.Width(arrow))
	for i, line := range lines {
		if selected >= 0 && i == first+selected {
			lines[i] = arrow + " " + line
		} else {
			lines[i] = pad + " " + line
		}
	}
	return strings.Join(lines, "\n")
}
