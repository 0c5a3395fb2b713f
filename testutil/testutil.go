// Package testutil holds catalog fixtures and query doubles shared by package tests.
package testutil

import (
	"context"
	"iter"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/grovetools/spoolview/config"
	"github.com/grovetools/spoolview/pkg/catalog"
	"github.com/stretchr/testify/require"
)

// PlantFixture returns a small plant: three spools over the default grouped
// classes, one ungrouped pipe and one element of an ungrouped class.
func PlantFixture() *catalog.Fixture {
	return &catalog.Fixture{
		SpatialCategories: []catalog.FixtureCategory{
			{ID: "c-pipe", Name: "Piping"},
			{ID: "c-equip", Name: "Equipment"},
			{ID: "c-unused", Name: "Unused"},
		},
		Models: []catalog.FixtureModel{
			{ID: "m-plant", Name: "Plant"},
			{ID: "m-hidden", Name: "Scratch", Private: true},
			{ID: "m-sheet", Name: "Sheet", Class: "DrawingModel"},
		},
		ViewDefinitions: []catalog.ViewDefinition{
			{ID: "v-1", Class: catalog.DrawingViewDefinition, Name: "Plan"},
			{ID: "v-2", Class: catalog.SpatialViewDefinition, Name: "Default"},
		},
		Elements: []catalog.FixtureElement{
			{ID: "E1", Class: "P3DPipe", Category: "c-pipe", Model: "m-plant", Spool: "S1", Min: [3]float64{0, 0, 0}, Max: [3]float64{1, 1, 1}},
			{ID: "E2", Class: "P3DPipeInstrument", Category: "c-pipe", Model: "m-plant", Spool: "S1", Min: [3]float64{1, 0, 0}, Max: [3]float64{2, 1, 1}},
			{ID: "E3", Class: "P3DPipe", Category: "c-pipe", Model: "m-plant", Spool: "S2", Min: [3]float64{5, 5, 0}, Max: [3]float64{6, 6, 1}},
			{ID: "E4", Class: "P3DPipingComponent", Category: "c-pipe", Model: "m-plant", Spool: "S3", Min: [3]float64{-2, -2, -2}, Max: [3]float64{-1, -1, -1}},
			{ID: "E42", Class: "P3DPipingComponent", Category: "c-pipe", Model: "m-plant", Spool: "S100", Min: [3]float64{10, 10, 10}, Max: [3]float64{11, 11, 11}},
			{ID: "E5", Class: "P3DPipe", Category: "c-pipe", Model: "m-plant", Min: [3]float64{3, 3, 3}, Max: [3]float64{4, 4, 4}},
			{ID: "E6", Class: "Pump", Category: "c-equip", Model: "m-plant", Min: [3]float64{0, 8, 0}, Max: [3]float64{2, 9, 2}},
		},
	}
}

// NewCatalog opens a catalog in a temporary directory seeded with PlantFixture.
func NewCatalog(t *testing.T) *catalog.DB {
	t.Helper()

	db, err := catalog.Open(filepath.Join(t.TempDir(), "plant.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Seed(context.Background(), PlantFixture(), config.DefaultCategories, config.DefaultGroupAttribute))
	return db
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// Call records one query issued through a Querier.
type Call struct {
	Query string
	Args  []any
}

// Querier wraps a catalog.Querier, recording calls and optionally holding or
// failing them.
type Querier struct {
	Inner catalog.Querier

	mu    sync.Mutex
	calls []Call
	gates map[int]chan struct{}
	fail  map[int]error
}

// NewQuerier wraps inner.
func NewQuerier(inner catalog.Querier) *Querier {
	return &Querier{
		Inner: inner,
		gates: make(map[int]chan struct{}),
		fail:  make(map[int]error),
	}
}

// Hold makes the nth call (1-based) wait until the returned channel is closed.
func (q *Querier) Hold(n int) chan struct{} {
	q.mu.Lock()
	defer q.mu.Unlock()
	ch := make(chan struct{})
	q.gates[n] = ch
	return ch
}

// Fail makes the nth call (1-based) yield err.
func (q *Querier) Fail(n int, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.fail[n] = err
}

// Calls returns a copy of the recorded calls.
func (q *Querier) Calls() []Call {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Call(nil), q.calls...)
}

// Query implements catalog.Querier.
func (q *Querier) Query(ctx context.Context, query string, args ...any) iter.Seq2[catalog.Row, error] {
	q.mu.Lock()
	q.calls = append(q.calls, Call{Query: query, Args: args})
	n := len(q.calls)
	gate := q.gates[n]
	failErr := q.fail[n]
	q.mu.Unlock()

	return func(yield func(catalog.Row, error) bool) {
		if gate != nil {
			select {
			case <-gate:
			case <-ctx.Done():
				yield(nil, ctx.Err())
				return
			}
		}
		if failErr != nil {
			yield(nil, failErr)
			return
		}
		for row, err := range q.Inner.Query(ctx, query, args...) {
			if !yield(row, err) {
				return
			}
		}
	}
}
