package tui

import (
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestColorProfile(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want termenv.Profile
	}{
		{"detected", nil, termenv.ANSI256},
		{"no color", map[string]string{"NO_COLOR": "1"}, termenv.Ascii},
		{"never", map[string]string{"SPOOLVIEW_COLOR": "never"}, termenv.Ascii},
		{"always", map[string]string{"SPOOLVIEW_COLOR": "Always"}, termenv.TrueColor},
		{"forced", map[string]string{"CLICOLOR_FORCE": "1"}, termenv.TrueColor},
		{"no color wins", map[string]string{"NO_COLOR": "1", "COLORTERM": "truecolor"}, termenv.Ascii},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"NO_COLOR", "SPOOLVIEW_COLOR", "CLICOLOR_FORCE", "COLORTERM"} {
				t.Setenv(k, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, tt.want, colorProfile(termenv.ANSI256))
		})
	}
}
