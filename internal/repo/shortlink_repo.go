// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the ShortLink
// model.
//
// Two unique indexes do the heavy lifting: one on recipe_id (the one-to-one
// side, so concurrent get-or-create for a recipe converges on a single row)
// and one on code (so the generator's collision check plus the index keep
// codes globally unique).
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avoronkov/go-recipe-backend/internal/domain"
)

// CreateShortLink inserts the (recipe, code) row. Violating either unique
// index surfaces as a raw DB error for the service layer to act on.
func CreateShortLink(ctx context.Context, db *gorm.DB, recipeID, code string) (*domain.ShortLink, error) {
	sl := &domain.ShortLink{
		ID:        uuid.NewString(),
		RecipeID:  recipeID,
		Code:      code,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(sl).Error; err != nil {
		return nil, err
	}
	return sl, nil
}

// GetShortLinkByRecipe fetches the link row for a recipe, or ErrNotFound.
func GetShortLinkByRecipe(ctx context.Context, db *gorm.DB, recipeID string) (*domain.ShortLink, error) {
	var sl domain.ShortLink
	if err := db.WithContext(ctx).Where("recipe_id = ?", recipeID).First(&sl).Error; err != nil {
		return nil, err
	}
	return &sl, nil
}

// GetShortLinkByCode fetches the link row for a code, or ErrNotFound.
func GetShortLinkByCode(ctx context.Context, db *gorm.DB, code string) (*domain.ShortLink, error) {
	var sl domain.ShortLink
	if err := db.WithContext(ctx).Where("code = ?", code).First(&sl).Error; err != nil {
		return nil, err
	}
	return &sl, nil
}

// ShortCodeExists reports whether any short link already uses code.
func ShortCodeExists(ctx context.Context, db *gorm.DB, code string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.ShortLink{}).
		Where("code = ?", code).
		Count(&n).Error
	return n > 0, err
}
