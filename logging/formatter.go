package logging

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/spoolview/tui/theme"
	"github.com/sirupsen/logrus"
)

// TextFormatter is a custom logrus formatter.
type TextFormatter struct {
	Config FormatConfig
}

// Format renders a single log entry.
func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b strings.Builder

	if !f.Config.DisableTimestamp {
		b.WriteString(entry.Time.Format("2006-01-02 15:04:05"))
		b.WriteString(" ")
	}

	b.WriteString(levelStyle(entry.Level).Render(fmt.Sprintf("[%s]", levelName(entry.Level))))

	if component, ok := entry.Data["component"]; ok && !f.Config.DisableComponent {
		componentStr := fmt.Sprintf("%v", component)
		b.WriteString(fmt.Sprintf(" [%s]", theme.DefaultTheme.Accent.Render(componentStr)))
	}

	if entry.HasCaller() {
		fileName := filepath.Base(entry.Caller.File)
		funcName := filepath.Base(entry.Caller.Function)
		b.WriteString(fmt.Sprintf(" [%s:%d %s]", fileName, entry.Caller.Line, funcName))
	}

	b.WriteString(" ")
	b.WriteString(entry.Message)

	// Stable field order keeps log lines diffable.
	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		if key != "component" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	muted := theme.DefaultTheme.Muted
	for _, key := range keys {
		b.WriteString(fmt.Sprintf(" %s%v", muted.Render(key+"="), entry.Data[key]))
	}

	b.WriteString("\n")
	return []byte(b.String()), nil
}

func levelName(l logrus.Level) string {
	if l == logrus.WarnLevel {
		return "WARN"
	}
	return strings.ToUpper(l.String())
}

func levelStyle(l logrus.Level) lipgloss.Style {
	t := theme.DefaultTheme
	switch {
	case l <= logrus.ErrorLevel:
		return t.Error
	case l == logrus.WarnLevel:
		return t.Warning
	case l >= logrus.DebugLevel:
		return t.Muted
	default:
		return lipgloss.NewStyle()
	}
}
