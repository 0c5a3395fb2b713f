// Package tui holds setup shared by the spoolview terminal UIs.
package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// InitializeTUI sets the lipgloss color profile from the environment.
//
// NO_COLOR or SPOOLVIEW_COLOR=never force plain output. CLICOLOR_FORCE=1,
// COLORTERM=truecolor or SPOOLVIEW_COLOR=always force true color, which keeps
// styling stable when output is captured. Otherwise lipgloss detects the
// terminal as usual.
func InitializeTUI() {
	lipgloss.SetColorProfile(colorProfile(lipgloss.ColorProfile()))
}

func colorProfile(detected termenv.Profile) termenv.Profile {
	mode := strings.ToLower(os.Getenv("SPOOLVIEW_COLOR"))
	switch {
	case os.Getenv("NO_COLOR") != "" || mode == "never":
		return termenv.Ascii
	case mode == "always" || os.Getenv("CLICOLOR_FORCE") == "1" || os.Getenv("COLORTERM") == "truecolor":
		return termenv.TrueColor
	default:
		return detected
	}
}
