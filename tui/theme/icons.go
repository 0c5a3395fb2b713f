package theme

import "os"

// Nerd Font Icons (Private Constants)
const (
	nerdIconChecked   = "󰄲" // md-checkbox_marked (U+F0132)
	nerdIconUnchecked = "󰄱" // md-checkbox_blank_outline (U+F0131)
	nerdIconSpool     = "󰟥" // md-pipe (U+F07E5)
	nerdIconElement   = "󰆧" // md-cube_outline (U+F01A7)
	nerdIconFilter    = "󱣬" // md-filter_check (U+F18EC)
	nerdIconSuccess   = "󰄬" // md-check (U+F012C)
	nerdIconError     = "" // cod-error (U+EA87)
	nerdIconInfo      = "󰋼" // md-information (U+F02FC)
	nerdIconPending   = "󰦖" // md-progress_clock (U+F0996)
	nerdIconArrow     = "󰁔" // md-arrow_right (U+F0054)
)

// ASCII Icons (Private Constants)
const (
	asciiIconChecked   = "[x]"
	asciiIconUnchecked = "[ ]"
	asciiIconSpool     = "#"
	asciiIconElement   = "*"
	asciiIconFilter    = "/"
	asciiIconSuccess   = "ok"
	asciiIconError     = "!"
	asciiIconInfo      = "i"
	asciiIconPending   = "~"
	asciiIconArrow     = ">"
)

var (
	IconChecked   string
	IconUnchecked string
	IconSpool     string
	IconElement   string
	IconFilter    string
	IconSuccess   string
	IconError     string
	IconInfo      string
	IconPending   string
	IconArrow     string
)

// init picks the icon set: SPOOLVIEW_ICONS=ascii or tui.icons: ascii selects
// plain ASCII, anything else Nerd Font glyphs.
func init() {
	useASCII := os.Getenv("SPOOLVIEW_ICONS") == "ascii"
	if !useASCII && os.Getenv("SPOOLVIEW_ICONS") == "" {
		useASCII = loadTUIConfig().Icons == "ascii"
	}

	if useASCII {
		IconChecked = asciiIconChecked
		IconUnchecked = asciiIconUnchecked
		IconSpool = asciiIconSpool
		IconElement = asciiIconElement
		IconFilter = asciiIconFilter
		IconSuccess = asciiIconSuccess
		IconError = asciiIconError
		IconInfo = asciiIconInfo
		IconPending = asciiIconPending
		IconArrow = asciiIconArrow
		return
	}

	IconChecked = nerdIconChecked
	IconUnchecked = nerdIconUnchecked
	IconSpool = nerdIconSpool
	IconElement = nerdIconElement
	IconFilter = nerdIconFilter
	IconSuccess = nerdIconSuccess
	IconError = nerdIconError
	IconInfo = nerdIconInfo
	IconPending = nerdIconPending
	IconArrow = nerdIconArrow
}
