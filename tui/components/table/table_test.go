package table

import (
	"strings"
	"testing"

	"github.com/grovetools/spoolview/tui/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleTable(t *testing.T) {
	out := SimpleTable([]string{"Spool", "Elements"}, [][]string{{"S1", "2"}, {"S2", "1"}})
	assert.Contains(t, out, "Spool")
	assert.Contains(t, out, "S2")
	assert.Len(t, strings.Split(out, "\n"), 6)
}

func TestSelectableTableMarksRow(t *testing.T) {
	out := SelectableTable([]string{"Spool"}, [][]string{{"S1"}, {"S2"}, {"S3"}}, 1)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 7)

	marked := lines[4]
	assert.Contains(t, marked, "S2")
	assert.True(t, strings.HasPrefix(marked, theme.DefaultTheme.Highlight.Render(theme.IconArrow)))
	assert.False(t, strings.Contains(lines[3], theme.IconArrow))
}

func TestSelectableTableWithoutSelection(t *testing.T) {
	out := SelectableTable(nil, [][]string{{"S1"}}, -1)
	assert.NotContains(t, out, theme.IconArrow)
}

func TestStatusTable(t *testing.T) {
	out := StatusTable([][2]string{{"Spool", "S100"}, {"Element", "E42"}})
	assert.Contains(t, out, "Spool:")
	assert.Contains(t, out, "E42")
}
