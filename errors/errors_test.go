package errors

import (
	"fmt"
	"testing"
)

func TestSpoolError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeNoSpools, "no spools")
	if err.Code != ErrCodeNoSpools {
		t.Errorf("expected code %s, got %s", ErrCodeNoSpools, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("connection lost")
	wrapped := Wrap(cause, ErrCodeQueryFailure, "query failed")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	// Test Is function
	if !Is(wrapped, ErrCodeQueryFailure) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeNoSpools) {
		t.Error("Is should return false for non-matching code")
	}

	// Test WithDetail
	detailed := err.WithDetail("path", "plant.db").WithDetail("count", 3)
	if detailed.Details["path"] != "plant.db" {
		t.Error("WithDetail should add details")
	}
}

func TestIsLooksThroughNestedSpoolErrors(t *testing.T) {
	inner := QueryFailure("SELECT 1", fmt.Errorf("disk I/O error"))
	outer := Wrap(inner, ErrCodeInternal, "resolve failed")

	if !Is(outer, ErrCodeQueryFailure) {
		t.Error("Is should find a wrapped query failure")
	}
	if GetCode(outer) != ErrCodeInternal {
		t.Errorf("GetCode should report the outermost code, got %s", GetCode(outer))
	}
	if GetCode(fmt.Errorf("context: %w", inner)) != ErrCodeQueryFailure {
		t.Error("GetCode should unwrap fmt wrapped errors")
	}
}

func TestErrorConstructors(t *testing.T) {
	err := CatalogOpen("plant.db", fmt.Errorf("no such file"))
	if err.Code != ErrCodeCatalogOpen {
		t.Errorf("expected code %s, got %s", ErrCodeCatalogOpen, err.Code)
	}
	if err.Details["path"] != "plant.db" {
		t.Error("CatalogOpen should include path detail")
	}

	err = ViewportUnready("zoom")
	if err.Details["operation"] != "zoom" {
		t.Error("ViewportUnready should include operation detail")
	}
}
