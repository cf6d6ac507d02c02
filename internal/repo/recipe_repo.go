// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Recipe
// model and its RecipeIngredient links.
//
// Error semantics:
//   - When a recipe is not found, functions return gorm.ErrRecordNotFound
//     (exported as ErrNotFound).
//   - On DB errors the raw gorm error is propagated.
//
// The ingredient set of a recipe is replaced wholesale on update: the
// service wraps DeleteRecipeIngredients + InsertRecipeIngredients in one
// transaction so a concurrent reader never sees a recipe with no rows.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avoronkov/go-recipe-backend/internal/domain"
)

// IngredientAmount pairs an ingredient ID with the amount used by a recipe.
// It is the write-side shape for attaching ingredients.
type IngredientAmount struct {
	IngredientID string
	Amount       int
}

// RecipeFilter narrows recipe listings. Zero-valued fields are ignored.
// FavoritedBy and InCartOf are user IDs: when set, only recipes present in
// that user's favorites / shopping cart are returned.
type RecipeFilter struct {
	AuthorID    string
	FavoritedBy string
	InCartOf    string
}

// CreateRecipe inserts a new Recipe row owned by authorID. Ingredient links
// are attached separately (see InsertRecipeIngredients) inside the same
// transaction.
func CreateRecipe(ctx context.Context, db *gorm.DB, authorID, name, text, imageURL string, cookingTime int) (*domain.Recipe, error) {
	r := &domain.Recipe{
		ID:          uuid.NewString(),
		AuthorID:    authorID,
		Name:        name,
		Text:        text,
		ImageURL:    imageURL,
		CookingTime: cookingTime,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// GetRecipe fetches a single recipe by ID with its author preloaded, or
// ErrNotFound if missing.
func GetRecipe(ctx context.Context, db *gorm.DB, id string) (*domain.Recipe, error) {
	var r domain.Recipe
	err := db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", id).
		First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateRecipe overwrites the mutable fields of a recipe.
func UpdateRecipe(ctx context.Context, db *gorm.DB, id, name, text, imageURL string, cookingTime int) error {
	res := db.WithContext(ctx).
		Model(&domain.Recipe{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":         name,
			"text":         text,
			"image_url":    imageURL,
			"cooking_time": cookingTime,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteRecipe removes a recipe row. FK constraints cascade to ingredient
// links, memberships, and the short link. Returns ErrNotFound when nothing
// was deleted.
func DeleteRecipe(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Recipe{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountRecipes returns the number of recipes matching the filter.
func CountRecipes(ctx context.Context, db *gorm.DB, f RecipeFilter) (int64, error) {
	var total int64
	err := applyRecipeFilter(db.WithContext(ctx).Model(&domain.Recipe{}), f).
		Count(&total).Error
	return total, err
}

// ListRecipesPage returns a page of recipes matching the filter, newest
// first (ties broken by name), with authors preloaded.
func ListRecipesPage(ctx context.Context, db *gorm.DB, f RecipeFilter, offset, limit int) ([]domain.Recipe, error) {
	var out []domain.Recipe
	err := applyRecipeFilter(db.WithContext(ctx), f).
		Preload("Author").
		Order("created_at DESC, name ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// applyRecipeFilter composes the membership subqueries for listing filters.
func applyRecipeFilter(q *gorm.DB, f RecipeFilter) *gorm.DB {
	if f.AuthorID != "" {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if f.FavoritedBy != "" {
		q = q.Where("id IN (?)",
			q.Session(&gorm.Session{NewDB: true}).
				Model(&domain.Favorite{}).
				Select("recipe_id").
				Where("user_id = ?", f.FavoritedBy))
	}
	if f.InCartOf != "" {
		q = q.Where("id IN (?)",
			q.Session(&gorm.Session{NewDB: true}).
				Model(&domain.ShoppingCartItem{}).
				Select("recipe_id").
				Where("user_id = ?", f.InCartOf))
	}
	return q
}

// ListRecipesByAuthor returns the author's recipes newest first. A limit of
// 0 (or below) returns all of them.
func ListRecipesByAuthor(ctx context.Context, db *gorm.DB, authorID string, limit int) ([]domain.Recipe, error) {
	var out []domain.Recipe
	q := db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC, name ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

// CountRecipesByAuthor returns the author's total recipe count, independent
// of any preview cap.
func CountRecipesByAuthor(ctx context.Context, db *gorm.DB, authorID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&total).Error
	return total, err
}

// InsertRecipeIngredients bulk-inserts the ingredient links for a recipe.
// The unique (recipe, ingredient) index rejects duplicated ingredients.
func InsertRecipeIngredients(ctx context.Context, db *gorm.DB, recipeID string, items []IngredientAmount) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]domain.RecipeIngredient, 0, len(items))
	for _, it := range items {
		rows = append(rows, domain.RecipeIngredient{
			ID:           uuid.NewString(),
			RecipeID:     recipeID,
			IngredientID: it.IngredientID,
			Amount:       it.Amount,
		})
	}
	return db.WithContext(ctx).Create(&rows).Error
}

// DeleteRecipeIngredients removes every ingredient link of a recipe.
// Callers replacing the set must run this and the matching insert inside
// one transaction.
func DeleteRecipeIngredients(ctx context.Context, db *gorm.DB, recipeID string) error {
	return db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Delete(&domain.RecipeIngredient{}).Error
}

// ListRecipeIngredients returns a recipe's ingredient links with the
// ingredient rows preloaded, in insertion order.
func ListRecipeIngredients(ctx context.Context, db *gorm.DB, recipeID string) ([]domain.RecipeIngredient, error) {
	var out []domain.RecipeIngredient
	err := db.WithContext(ctx).
		Preload("Ingredient").
		Where("recipe_id = ?", recipeID).
		Find(&out).Error
	return out, err
}
