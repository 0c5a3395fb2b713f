package catalog

import (
	"context"

	"github.com/grovetools/spoolview/errors"
	"github.com/grovetools/spoolview/pkg/models"
	"gonum.org/v1/gonum/spatial/r3"
)

// Queries issued by the readiness orchestrator after the first view change.
const (
	QuerySpatialCategoriesInUse = `SELECT c.id AS id FROM spatial_categories c
		WHERE c.id IN (SELECT DISTINCT category_id FROM elements)
		ORDER BY c.id`
	QuerySpatialModels = `SELECT id FROM models
		WHERE class = 'SpatialModel' AND private = 0
		ORDER BY id`
)

const (
	queryViewDefinitions = `SELECT id, class, name FROM view_definitions ORDER BY id`
	queryExtents         = `SELECT id, min_x, min_y, min_z, max_x, max_y, max_z FROM elements`
)

// View definition classes, in order of preference.
const (
	SpatialViewDefinition = "SpatialViewDefinition"
	DrawingViewDefinition = "DrawingViewDefinition"
)

// ViewDefinition describes a stored view a viewport can be opened on.
type ViewDefinition struct {
	ID    string `json:"id" yaml:"id"`
	Class string `json:"class" yaml:"class"`
	Name  string `json:"name" yaml:"name"`
}

// FirstViewDefinition returns the first spatial view definition, falling back
// to the first drawing view definition.
func FirstViewDefinition(ctx context.Context, q Querier) (ViewDefinition, error) {
	var drawing *ViewDefinition
	for row, err := range q.Query(ctx, queryViewDefinitions) {
		if err != nil {
			return ViewDefinition{}, errors.QueryFailure(queryViewDefinitions, err)
		}
		vd := ViewDefinition{ID: row.String("id"), Class: row.String("class"), Name: row.String("name")}
		switch vd.Class {
		case SpatialViewDefinition:
			return vd, nil
		case DrawingViewDefinition:
			if drawing == nil {
				drawing = &vd
			}
		}
	}
	if drawing != nil {
		return *drawing, nil
	}
	return ViewDefinition{}, errors.NoViewDefinition()
}

// Extents loads the bounding box of every element.
func Extents(ctx context.Context, q Querier) (map[models.ElementID]r3.Box, error) {
	out := make(map[models.ElementID]r3.Box)
	for row, err := range q.Query(ctx, queryExtents) {
		if err != nil {
			return nil, errors.QueryFailure(queryExtents, err)
		}
		out[models.ElementID(row.String("id"))] = r3.Box{
			Min: r3.Vec{X: row.Float("min_x"), Y: row.Float("min_y"), Z: row.Float("min_z")},
			Max: r3.Vec{X: row.Float("max_x"), Y: row.Float("max_y"), Z: row.Float("max_z")},
		}
	}
	return out, nil
}
