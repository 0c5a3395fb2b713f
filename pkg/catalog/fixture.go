package catalog

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/grovetools/spoolview/errors"
	"gopkg.in/yaml.v3"
)

// Fixture is a YAML description of a catalog's contents.
type Fixture struct {
	SpatialCategories []FixtureCategory `yaml:"spatial_categories"`
	Models            []FixtureModel    `yaml:"models"`
	ViewDefinitions   []ViewDefinition  `yaml:"view_definitions"`
	Elements          []FixtureElement  `yaml:"elements"`
}

// FixtureCategory is a spatial category row.
type FixtureCategory struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// FixtureModel is a model row. Class defaults to SpatialModel.
type FixtureModel struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Class   string `yaml:"class,omitempty"`
	Private bool   `yaml:"private,omitempty"`
}

// FixtureElement is one element. Spool is only stored for grouped classes.
type FixtureElement struct {
	ID       string     `yaml:"id"`
	Class    string     `yaml:"class"`
	Category string     `yaml:"category"`
	Model    string     `yaml:"model"`
	Spool    string     `yaml:"spool,omitempty"`
	Min      [3]float64 `yaml:"min,flow"`
	Max      [3]float64 `yaml:"max,flow"`
}

// LoadFixture reads a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to read fixture").
			WithDetail("path", path)
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to parse fixture").
			WithDetail("path", path)
	}
	for i, el := range f.Elements {
		if el.ID == "" || el.Class == "" {
			return nil, errors.InvalidInput(fmt.Sprintf("elements[%d]: id and class are required", i))
		}
	}
	return &f, nil
}

// Seed writes the fixture into the catalog in a single transaction. Elements
// whose class is one of categories also get a row in that class's table with
// their spool stored under attribute.
func (c *DB) Seed(ctx context.Context, f *Fixture, categories []string, attribute string) error {
	for _, category := range categories {
		if err := c.EnsureCategory(ctx, category, attribute); err != nil {
			return err
		}
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeQueryFailure, "failed to begin seed transaction")
	}
	defer tx.Rollback()

	for _, cat := range f.SpatialCategories {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO spatial_categories (id, name) VALUES (?, ?)`, cat.ID, cat.Name); err != nil {
			return errors.QueryFailure("insert spatial_categories", err)
		}
	}

	for _, m := range f.Models {
		class := m.Class
		if class == "" {
			class = "SpatialModel"
		}
		private := 0
		if m.Private {
			private = 1
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO models (id, name, class, private) VALUES (?, ?, ?, ?)`,
			m.ID, m.Name, class, private); err != nil {
			return errors.QueryFailure("insert models", err)
		}
	}

	for _, vd := range f.ViewDefinitions {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO view_definitions (id, class, name) VALUES (?, ?, ?)`,
			vd.ID, vd.Class, vd.Name); err != nil {
			return errors.QueryFailure("insert view_definitions", err)
		}
	}

	for _, el := range f.Elements {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO elements (id, class, category_id, model_id, min_x, min_y, min_z, max_x, max_y, max_z)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			el.ID, el.Class, el.Category, el.Model,
			el.Min[0], el.Min[1], el.Min[2], el.Max[0], el.Max[1], el.Max[2]); err != nil {
			return errors.QueryFailure("insert elements", err)
		}

		if !slices.Contains(categories, el.Class) {
			continue
		}
		var spool any
		if el.Spool != "" {
			spool = el.Spool
		}
		stmt := fmt.Sprintf(`INSERT OR REPLACE INTO %s (id, %s) VALUES (?, ?)`,
			QuoteIdent(el.Class), QuoteIdent(attribute))
		if _, err := tx.ExecContext(ctx, stmt, el.ID, spool); err != nil {
			return errors.QueryFailure(stmt, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, errors.ErrCodeQueryFailure, "failed to commit seed transaction")
	}
	return nil
}
