// Package services – IngredientService
//
// This file implements the tiered prefix search over the ingredient catalog.
// The matching runs in the service rather than in SQL: SQLite's LIKE and
// LOWER() fold only ASCII, and the seeded catalog is largely non-ASCII, so a
// SQL-side case-insensitive tier would silently miss rows. The catalog is a
// bounded seed set, which keeps the in-process pass cheap.
package services

import (
	"context"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"golang.org/x/text/cases"
	"gorm.io/gorm"

	"github.com/avoronkov/go-recipe-backend/internal/domain"
	"github.com/avoronkov/go-recipe-backend/internal/repo"
)

// IngredientService answers ingredient lookups: the two-tier prefix search
// and point reads. It is stateless apart from the GORM handle and safe for
// concurrent use.
type IngredientService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// foldCaser performs full Unicode case folding for the case-insensitive
// search tier.
var foldCaser = cases.Fold()

// Search returns ingredients matching the query.
//
// Contract:
//   - The query is trimmed first. An empty (or whitespace-only) query
//     returns the whole catalog with no name filter and no extra ordering.
//   - Otherwise the case-sensitive prefix tier wins: every ingredient whose
//     name starts with the exact trimmed query, sorted by name ascending.
//   - Only when that tier is empty does the case-insensitive (Unicode
//     folded) prefix tier apply, also sorted by name ascending. The result
//     may be empty.
//
// The two tiers are deliberate: exact-case hits are fewer and more
// specific, while the fallback keeps the search usable after a mistyped
// case without diluting exact matches.
func (s *IngredientService) Search(ctx context.Context, query string) ([]domain.Ingredient, error) {
	tr := otel.Tracer("services/IngredientService")
	ctx, span := tr.Start(ctx, "Search",
		trace.WithAttributes(attribute.String("query", query)),
	)
	defer span.End()

	all, err := repo.ListIngredients(ctx, s.DB)
	if err != nil {
		return nil, err
	}

	q := strings.TrimSpace(query)
	if q == "" {
		return all, nil
	}

	exact := make([]domain.Ingredient, 0, len(all))
	for _, ing := range all {
		if strings.HasPrefix(ing.Name, q) {
			exact = append(exact, ing)
		}
	}
	if len(exact) > 0 {
		sortByName(exact)
		return exact, nil
	}

	folded := foldCaser.String(q)
	loose := make([]domain.Ingredient, 0, len(all))
	for _, ing := range all {
		if strings.HasPrefix(foldCaser.String(ing.Name), folded) {
			loose = append(loose, ing)
		}
	}
	sortByName(loose)
	return loose, nil
}

// Get fetches a single ingredient by ID.
func (s *IngredientService) Get(ctx context.Context, id string) (*domain.Ingredient, error) {
	ing, err := repo.GetIngredient(ctx, s.DB, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	return ing, nil
}

// sortByName orders ingredients by name ascending using ordinal (byte-wise)
// comparison, matching the collation of the shopping-list aggregation.
func sortByName(items []domain.Ingredient) {
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
}
