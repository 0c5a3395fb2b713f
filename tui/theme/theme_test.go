package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveThemeColors(t *testing.T) {
	assert.Equal(t, newTerminalColors(), resolveThemeColors("ANSI"))
	assert.Equal(t, newKanagawaColors(), resolveThemeColors("Kanagawa Dragon"))
	assert.Equal(t, newKanagawaColors(), resolveThemeColors("unknown"))
}

func TestNormalizeThemeName(t *testing.T) {
	assert.Equal(t, "kanagawa-wave", normalizeThemeName("  Kanagawa_Wave "))
}

func TestRenderStatusUnknownPassesThrough(t *testing.T) {
	assert.Equal(t, "plain", RenderStatus("other", "plain"))
}

func TestRenderHeaderIsOneLine(t *testing.T) {
	out := RenderHeader("spoolview")
	assert.Contains(t, out, "spoolview")
	assert.NotContains(t, out, "\n")
}

func TestStatusIcon(t *testing.T) {
	assert.Equal(t, IconSuccess, StatusIcon("success"))
	assert.Equal(t, IconError, StatusIcon("error"))
	assert.Equal(t, IconInfo, StatusIcon("info"))
	assert.Equal(t, IconPending, StatusIcon("warning"))
	assert.Empty(t, StatusIcon("other"))
}

func TestIconsPopulated(t *testing.T) {
	assert.NotEmpty(t, IconChecked)
	assert.NotEmpty(t, IconUnchecked)
	assert.NotEqual(t, IconChecked, IconUnchecked)
}
