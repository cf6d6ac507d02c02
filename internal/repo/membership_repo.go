// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the two
// membership collections, Favorite and ShoppingCartItem.
//
// Both collections share identical persistence semantics over distinct
// tables, each with its own (user, recipe) unique index:
//
//   - Create*: single INSERT; a duplicate pair violates the unique index and
//     surfaces as a raw DB error. There is deliberately no existence
//     pre-check here — under concurrent identical requests exactly one
//     INSERT wins and the other observes the constraint violation, which
//     the service layer translates into its duplicate-membership error.
//   - Delete*: single DELETE by pair; the returned row count lets the
//     service distinguish "removed" from "was never there".
//   - *Exists: read-side flags for recipe serialization.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avoronkov/go-recipe-backend/internal/domain"
)

// CreateFavorite inserts a favorite membership row for (userID, recipeID).
func CreateFavorite(ctx context.Context, db *gorm.DB, userID, recipeID string) (*domain.Favorite, error) {
	f := &domain.Favorite{
		ID:       uuid.NewString(),
		UserID:   userID,
		RecipeID: recipeID,
		AddedAt:  time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

// DeleteFavorite removes the favorite row for (userID, recipeID) and
// returns how many rows were deleted (0 or 1 by construction).
func DeleteFavorite(ctx context.Context, db *gorm.DB, userID, recipeID string) (int64, error) {
	res := db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&domain.Favorite{})
	return res.RowsAffected, res.Error
}

// FavoriteExists reports whether userID has favorited recipeID.
func FavoriteExists(ctx context.Context, db *gorm.DB, userID, recipeID string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&n).Error
	return n > 0, err
}

// CreateCartItem inserts a shopping-cart membership row for (userID, recipeID).
func CreateCartItem(ctx context.Context, db *gorm.DB, userID, recipeID string) (*domain.ShoppingCartItem, error) {
	it := &domain.ShoppingCartItem{
		ID:       uuid.NewString(),
		UserID:   userID,
		RecipeID: recipeID,
		AddedAt:  time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(it).Error; err != nil {
		return nil, err
	}
	return it, nil
}

// DeleteCartItem removes the cart row for (userID, recipeID) and returns
// how many rows were deleted (0 or 1 by construction).
func DeleteCartItem(ctx context.Context, db *gorm.DB, userID, recipeID string) (int64, error) {
	res := db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&domain.ShoppingCartItem{})
	return res.RowsAffected, res.Error
}

// CartItemExists reports whether recipeID is in userID's shopping cart.
func CartItemExists(ctx context.Context, db *gorm.DB, userID, recipeID string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.ShoppingCartItem{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&n).Error
	return n > 0, err
}
