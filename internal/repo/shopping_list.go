// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the aggregate query behind the
// downloadable shopping list: the join from a user's cart through recipes
// to summed ingredient amounts.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/avoronkov/go-recipe-backend/internal/domain"
)

// IngredientTotal is one consolidated shopping-list line: an ingredient
// identity with the amount summed across every recipe in the cart.
type IngredientTotal struct {
	Name            string
	MeasurementUnit string
	Total           int64
}

// SumCartIngredients joins cart → recipe_ingredients → ingredients for the
// given user, groups by ingredient identity, and sums the amounts. Rows come
// back ordered by ingredient name ascending; SQLite's default BINARY
// collation gives the ordinal ordering the rendered document requires.
//
// The whole aggregation is a single consistent read — no transaction needed.
func SumCartIngredients(ctx context.Context, db *gorm.DB, userID string) ([]IngredientTotal, error) {
	var out []IngredientTotal
	err := db.WithContext(ctx).
		Model(&domain.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_cart_items ON shopping_cart_items.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_cart_items.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name ASC").
		Scan(&out).Error
	return out, err
}
