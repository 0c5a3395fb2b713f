package spoolview

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/spoolview/tui/theme"
)

// View renders the spool list, the element pane and the popup on top.
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}
	lines := []string{
		theme.RenderHeader(theme.IconSpool + " spoolview"),
		m.filterLine(),
		m.columnTitles(),
	}

	left := m.spoolLines()
	right := m.elementLines()
	leftCol := lipgloss.NewStyle().Width(spoolWidth).MaxWidth(spoolWidth)
	gap := strings.Repeat(" ", paneGap)
	for i := range m.listHeight() {
		var l, r string
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		lines = append(lines, leftCol.Render(l)+gap+r)
	}

	lines = append(lines, m.statusLine(), m.help.View(m.keys))
	return m.sess.Presenter().Overlay(strings.Join(lines, "\n"))
}

func (m *Model) filterLine() string {
	if m.filter.Focused() || m.filter.Value() != "" {
		return m.filter.View()
	}
	return theme.DefaultTheme.Muted.Render(theme.IconFilter + " press / to filter")
}

func (m *Model) columnTitles() string {
	t := theme.DefaultTheme
	spools := fmt.Sprintf("Spools (%d/%d)", len(m.sess.Selection()), len(m.spools))
	elements := fmt.Sprintf("%s Elements (%d)", theme.IconElement, len(m.elements()))
	if m.focus == spoolPane {
		spools = t.Selected.Render(spools)
	} else {
		elements = t.Selected.Render(elements)
	}
	state := m.sess.Viewport().State()
	mode := t.Muted.Render(fmt.Sprintf("  %s", state.RenderMode))
	return lipgloss.NewStyle().Width(spoolWidth).Render(spools) + strings.Repeat(" ", paneGap) + elements + mode
}

func (m *Model) spoolLines() []string {
	t := theme.DefaultTheme
	selected := m.sess.Selection()
	end := min(len(m.visible), m.offset+m.listHeight())

	var lines []string
	for i := m.offset; i < end; i++ {
		g := m.visible[i]
		icon := theme.IconUnchecked
		if slices.Contains(selected, g) {
			icon = theme.IconChecked
		}
		marker := "  "
		line := fmt.Sprintf("%s %s", icon, g)
		if i == m.cursor {
			marker = theme.IconArrow + " "
			if m.focus == spoolPane {
				line = t.Selected.Render(line)
			}
		}
		lines = append(lines, marker+line)
	}
	if len(lines) == 0 {
		lines = append(lines, t.Muted.Render("  no spools"))
	}
	return lines
}

func (m *Model) elementLines() []string {
	t := theme.DefaultTheme
	elements := m.elements()
	end := min(len(elements), m.elemOffset+m.listHeight())

	var lines []string
	for i := m.elemOffset; i < end; i++ {
		label := string(elements[i])
		if i == m.elemCursor && m.focus == elementPane {
			lines = append(lines, theme.IconArrow+" "+t.Selected.Render(label))
			continue
		}
		lines = append(lines, "  "+label)
	}
	return lines
}

func (m *Model) statusLine() string {
	t := theme.DefaultTheme
	frame := m.sess.Viewport().State().Frame
	info := t.Muted.Render(fmt.Sprintf("frame (%.1f, %.1f, %.1f) r=%.2f",
		frame.Center.X, frame.Center.Y, frame.Center.Z, frame.Radius))

	var status string
	switch {
	case m.pending > 0:
		status = theme.RenderStatus("warning", theme.IconPending+" applying")
	case m.status != "":
		status = m.status
		if icon := theme.StatusIcon(m.statusLevel); icon != "" {
			status = icon + " " + status
		}
		status = theme.RenderStatus(m.statusLevel, status)
	}
	if status == "" {
		return info
	}
	return status + "  " + info
}
