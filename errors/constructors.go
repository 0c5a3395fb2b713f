package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *SpoolError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *SpoolError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// QueryFailure wraps an error raised by the document's query capability.
func QueryFailure(query string, err error) *SpoolError {
	return Wrap(err, ErrCodeQueryFailure, "catalog query failed").
		WithDetail("query", query)
}

// CatalogOpen creates a catalog open failure error
func CatalogOpen(path string, err error) *SpoolError {
	return Wrap(err, ErrCodeCatalogOpen, fmt.Sprintf("failed to open catalog: %s", path)).
		WithDetail("path", path)
}

// NoSpools is returned when a document is opened without any spool list.
func NoSpools() *SpoolError {
	return New(ErrCodeNoSpools, "cannot find spool data; pass --spools or set 'spools' in spoolview.yml")
}

// NoViewDefinition is returned when the catalog has no usable view definition.
func NoViewDefinition() *SpoolError {
	return New(ErrCodeNoViewDefinition, "no valid view definitions in catalog")
}

// ViewportUnready creates an error for operations needing an open viewport.
func ViewportUnready(op string) *SpoolError {
	return New(ErrCodeViewportUnready, fmt.Sprintf("%s requires an open viewport", op)).
		WithDetail("operation", op)
}

// InvalidInput creates an invalid input error
func InvalidInput(reason string) *SpoolError {
	return New(ErrCodeInvalidInput, reason)
}
