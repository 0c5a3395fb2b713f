// Package resolver translates between spools and the spatial elements that
// belong to them by querying the element catalog.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/grovetools/spoolview/config"
	"github.com/grovetools/spoolview/errors"
	"github.com/grovetools/spoolview/pkg/catalog"
	"github.com/grovetools/spoolview/pkg/models"
	"github.com/grovetools/spoolview/pkg/profiling"
	"github.com/sirupsen/logrus"
)

// Options selects the element classes and column that carry the group attribute.
type Options struct {
	Categories     []string
	GroupAttribute string
}

// Resolver is the GroupElementResolver. It is read-only and holds no cache.
type Resolver struct {
	q          catalog.Querier
	categories []string
	attribute  string
	logger     *logrus.Entry
}

// New validates opts and returns a resolver over q. Empty options fall back
// to the configured defaults.
func New(q catalog.Querier, opts Options, logger *logrus.Entry) (*Resolver, error) {
	categories := opts.Categories
	if len(categories) == 0 {
		categories = config.DefaultCategories
	}
	attribute := opts.GroupAttribute
	if attribute == "" {
		attribute = config.DefaultGroupAttribute
	}

	for _, c := range categories {
		if err := config.ValidateIdentifier("categories", c); err != nil {
			return nil, err
		}
	}
	if err := config.ValidateIdentifier("group_attribute", attribute); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Resolver{
		q:          q,
		categories: append([]string(nil), categories...),
		attribute:  attribute,
		logger:     logger,
	}, nil
}

// Categories returns the element classes searched.
func (r *Resolver) Categories() []string {
	return append([]string(nil), r.categories...)
}

// Resolve returns every element belonging to any of groups. An empty input
// returns an empty result without querying. Result order is unspecified and
// duplicates are collapsed.
func (r *Resolver) Resolve(ctx context.Context, groups []models.GroupID) ([]models.ElementID, error) {
	args := uniqueArgs(groups)
	if len(args) == 0 {
		return nil, nil
	}

	defer profiling.Start("resolver.resolve")()

	query := r.forwardQuery(len(args))
	bound := make([]any, 0, len(args)*len(r.categories))
	for range r.categories {
		bound = append(bound, args...)
	}

	var (
		out  []models.ElementID
		seen = make(map[models.ElementID]struct{})
	)
	for row, err := range r.q.Query(ctx, query, bound...) {
		if err != nil {
			return nil, errors.QueryFailure(query, err)
		}
		id := models.ElementID(row.String("id"))
		if _, dup := seen[id]; dup || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	r.logger.WithFields(logrus.Fields{
		"groups":   len(args),
		"elements": len(out),
	}).Debug("Resolved groups to elements")
	return out, nil
}

// ResolveGroupOf returns the group the element belongs to. The boolean is
// false when the element carries no group attribute.
func (r *Resolver) ResolveGroupOf(ctx context.Context, element models.ElementID) (models.GroupID, bool, error) {
	defer profiling.Start("resolver.resolve_group_of")()

	query := r.reverseQuery()
	bound := make([]any, len(r.categories))
	for i := range bound {
		bound[i] = string(element)
	}

	for row, err := range r.q.Query(ctx, query, bound...) {
		if err != nil {
			return "", false, errors.QueryFailure(query, err)
		}
		if g := row.String(r.attribute); g != "" {
			return models.GroupID(g), true, nil
		}
	}
	return "", false, nil
}

// ListGroups returns every group present in the catalog, sorted.
func (r *Resolver) ListGroups(ctx context.Context) ([]models.GroupID, error) {
	defer profiling.Start("resolver.list_groups")()

	attr := catalog.QuoteIdent(r.attribute)
	parts := make([]string, len(r.categories))
	for i, c := range r.categories {
		parts[i] = fmt.Sprintf("SELECT %s AS %s FROM %s WHERE %s IS NOT NULL AND %s <> ''",
			attr, attr, catalog.QuoteIdent(c), attr, attr)
	}
	query := strings.Join(parts, " UNION ") + " ORDER BY 1"

	var out []models.GroupID
	for row, err := range r.q.Query(ctx, query) {
		if err != nil {
			return nil, errors.QueryFailure(query, err)
		}
		out = append(out, models.GroupID(row.String(r.attribute)))
	}
	return out, nil
}

// forwardQuery unions "id where attribute in (...)" over every category.
func (r *Resolver) forwardQuery(n int) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", n), ",")
	attr := catalog.QuoteIdent(r.attribute)
	parts := make([]string, len(r.categories))
	for i, c := range r.categories {
		parts[i] = fmt.Sprintf("SELECT id AS id FROM %s WHERE %s IN (%s)",
			catalog.QuoteIdent(c), attr, placeholders)
	}
	return strings.Join(parts, " UNION ")
}

// reverseQuery unions "attribute where id = ?" over every category.
func (r *Resolver) reverseQuery() string {
	attr := catalog.QuoteIdent(r.attribute)
	parts := make([]string, len(r.categories))
	for i, c := range r.categories {
		parts[i] = fmt.Sprintf("SELECT %s AS %s FROM %s WHERE id = ?",
			attr, attr, catalog.QuoteIdent(c))
	}
	return strings.Join(parts, " UNION ")
}

func uniqueArgs(groups []models.GroupID) []any {
	seen := make(map[models.GroupID]struct{}, len(groups))
	out := make([]any, 0, len(groups))
	for _, g := range groups {
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, string(g))
	}
	return out
}
