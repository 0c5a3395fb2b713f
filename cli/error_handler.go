package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/spoolview/errors"
	"github.com/grovetools/spoolview/tui/theme"
)

// ErrorHandler turns spoolview errors into user-facing messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler writing to stderr
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle prints a message for err based on its code and returns err.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	t := theme.DefaultTheme
	prefix := t.Error.Render(theme.IconError)

	var spoolErr *errors.SpoolError
	if e, ok := err.(*errors.SpoolError); ok {
		spoolErr = e
	}

	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(h.Out, "%s Configuration not found. Create spoolview.yml or pass --config.\n", prefix)

	case errors.ErrCodeConfigInvalid:
		fmt.Fprintf(h.Out, "%s Invalid configuration: %v\n", prefix, err)

	case errors.ErrCodeCatalogOpen:
		if spoolErr != nil {
			fmt.Fprintf(h.Out, "%s Cannot open catalog %v\n", prefix, spoolErr.Details["path"])
		}
		fmt.Fprintf(h.Out, "%s\n", t.Muted.Render("Seed one with 'spoolview catalog seed <fixture.yml>'."))

	case errors.ErrCodeNoViewDefinition:
		fmt.Fprintf(h.Out, "%s The catalog has no spatial or drawing view definition to open.\n", prefix)

	case errors.ErrCodeNoSpools:
		fmt.Fprintf(h.Out, "%s No spools given. Pass --spools \"S1 S2\" or set 'spools' in spoolview.yml.\n", prefix)

	case errors.ErrCodeQueryFailure:
		fmt.Fprintf(h.Out, "%s Catalog query failed: %v\n", prefix, err)

	default:
		fmt.Fprintf(h.Out, "%s Error: %v\n", prefix, err)
	}

	if h.Verbose && spoolErr != nil {
		fmt.Fprintf(h.Out, "\nError details:\n%s\n", spoolErr.ToJSON())
	}
	return err
}
