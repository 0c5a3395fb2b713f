// Package catalog implements the element catalog a document is opened from.
//
// The catalog is a SQLite database holding every spatial element, its
// category, model and bounding box, plus one table per grouped element class
// carrying the group attribute. It is the query capability the resolver and
// the readiness orchestrator run against.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strconv"

	"github.com/grovetools/spoolview/errors"
	_ "modernc.org/sqlite"
)

// Row is one result row keyed by column name.
type Row map[string]any

// String returns the column value as a string. Missing and NULL columns are empty.
func (r Row) String(column string) string {
	switch v := r[column].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Float returns the column value as a float64, or 0 when it is not numeric.
func (r Row) Float(column string) float64 {
	switch v := r[column].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}

// Querier is the query capability consumed by the engine. The returned
// sequence is lazy, finite and single-pass; a failure is yielded as the
// final element.
type Querier interface {
	Query(ctx context.Context, query string, args ...any) iter.Seq2[Row, error]
}

// DB is a SQLite-backed catalog.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens or creates the catalog at path and ensures the base schema exists.
func Open(path string) (*DB, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, errors.CatalogOpen(path, err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.CatalogOpen(path, err)
	}
	if path == ":memory:" {
		// Every pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	c := &DB{db: db, path: path}
	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, errors.CatalogOpen(path, err)
	}
	return c, nil
}

// Close closes the database connection
func (c *DB) Close() error {
	return c.db.Close()
}

// Path returns the path the catalog was opened from.
func (c *DB) Path() string {
	return c.path
}

func (c *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS elements (
		id TEXT PRIMARY KEY,
		class TEXT NOT NULL,
		category_id TEXT NOT NULL DEFAULT '',
		model_id TEXT NOT NULL DEFAULT '',
		min_x REAL NOT NULL DEFAULT 0,
		min_y REAL NOT NULL DEFAULT 0,
		min_z REAL NOT NULL DEFAULT 0,
		max_x REAL NOT NULL DEFAULT 0,
		max_y REAL NOT NULL DEFAULT 0,
		max_z REAL NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_elements_category ON elements(category_id);

	CREATE TABLE IF NOT EXISTS spatial_categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS models (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		class TEXT NOT NULL DEFAULT 'SpatialModel',
		private INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS view_definitions (
		id TEXT PRIMARY KEY,
		class TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT ''
	);
	`

	_, err := c.db.Exec(schema)
	return err
}

// EnsureCategory creates the per-class table carrying the group attribute.
// Both names must already be validated identifiers.
func (c *DB) EnsureCategory(ctx context.Context, category, attribute string) error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (id TEXT PRIMARY KEY, %s TEXT)`,
		QuoteIdent(category), QuoteIdent(attribute))
	if _, err := c.db.ExecContext(ctx, stmt); err != nil {
		return errors.QueryFailure(stmt, err)
	}
	return nil
}

// Query runs query and yields its rows one at a time. Rows are released when
// the consumer stops early.
func (c *DB) Query(ctx context.Context, query string, args ...any) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		rows, err := c.db.QueryContext(ctx, query, args...)
		if err != nil {
			yield(nil, err)
			return
		}
		defer rows.Close()

		cols, err := rows.Columns()
		if err != nil {
			yield(nil, err)
			return
		}

		for rows.Next() {
			values := make([]any, len(cols))
			ptrs := make([]any, len(cols))
			for i := range values {
				ptrs[i] = &values[i]
			}
			if err := rows.Scan(ptrs...); err != nil {
				yield(nil, err)
				return
			}

			row := make(Row, len(cols))
			for i, col := range cols {
				if b, ok := values[i].([]byte); ok {
					row[col] = string(b)
					continue
				}
				row[col] = values[i]
			}
			if !yield(row, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(nil, err)
		}
	}
}

// QuoteIdent quotes a validated SQL identifier.
func QuoteIdent(name string) string {
	return `"` + name + `"`
}

// Collect drains a row sequence into a slice, stopping at the first error.
func Collect(seq iter.Seq2[Row, error]) ([]Row, error) {
	var out []Row
	for row, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}
