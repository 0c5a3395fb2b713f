// Package models holds the identifiers and value types shared by the
// spool synchronization engine.
package models

import "fmt"

// GroupID identifies a domain group (a spool). Opaque and unique within a document.
type GroupID string

// ElementID identifies a spatial element. Many elements map to one GroupID.
type ElementID string

// CategoryID identifies a spatial category.
type CategoryID string

// ModelID identifies a spatial model.
type ModelID string

// Point is a screen-space position.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Sub returns p shifted up-left by d on both axes.
func (p Point) Sub(d float64) Point {
	return Point{X: p.X - d, Y: p.Y - d}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// RenderMode is a viewport shading mode.
type RenderMode string

const (
	RenderModeWireframe   RenderMode = "wireframe"
	RenderModeSmoothShade RenderMode = "smooth-shade"
)

// GroupIDs converts plain strings, dropping empty entries.
func GroupIDs(values []string) []GroupID {
	out := make([]GroupID, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		out = append(out, GroupID(v))
	}
	return out
}
