// Package services – CollectionService
//
// This file implements add/remove membership for the two named collections
// (favorites and the shopping cart). Both collections share one code path
// parameterized by domain.CollectionKind, mapped to a small repository
// function table — there is no shared table and no reflection.
//
// Exactly-once semantics come from the storage layer: Add performs a single
// INSERT and relies on the (user, recipe) unique index, so of two identical
// concurrent requests one wins and the other sees a constraint violation
// translated into ErrDuplicateMembership. Remove is a single DELETE whose
// row count distinguishes success from ErrMembershipNotFound.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/avoronkov/go-recipe-backend/internal/domain"
	"github.com/avoronkov/go-recipe-backend/internal/repo"
)

// collectionOps binds one CollectionKind to its repository functions.
type collectionOps struct {
	add    func(ctx context.Context, db *gorm.DB, userID, recipeID string) error
	remove func(ctx context.Context, db *gorm.DB, userID, recipeID string) (int64, error)
	exists func(ctx context.Context, db *gorm.DB, userID, recipeID string) (bool, error)
}

// collectionTable maps each kind to its table-specific operations.
var collectionTable = map[domain.CollectionKind]collectionOps{
	domain.KindFavorite: {
		add: func(ctx context.Context, db *gorm.DB, userID, recipeID string) error {
			_, err := repo.CreateFavorite(ctx, db, userID, recipeID)
			return err
		},
		remove: repo.DeleteFavorite,
		exists: repo.FavoriteExists,
	},
	domain.KindShoppingCart: {
		add: func(ctx context.Context, db *gorm.DB, userID, recipeID string) error {
			_, err := repo.CreateCartItem(ctx, db, userID, recipeID)
			return err
		},
		remove: repo.DeleteCartItem,
		exists: repo.CartItemExists,
	},
}

// CollectionService implements idempotent membership management for the
// favorites and shopping-cart collections.
type CollectionService struct {
	// DB is the GORM handle used for all membership operations.
	DB *gorm.DB
}

// Add puts recipeID into userID's collection of the given kind and returns
// the recipe (the transport answers membership adds with a compact recipe
// representation).
//
// Errors:
//   - ErrUnknownCollection for an unrecognized kind.
//   - ErrRecipeNotFound / ErrUserNotFound when either side is missing.
//   - ErrDuplicateMembership when the pair already exists; this is the
//     unique index speaking, never a pre-check, so concurrent duplicates
//     cannot slip through.
func (s *CollectionService) Add(ctx context.Context, userID, recipeID string, kind domain.CollectionKind) (*domain.Recipe, error) {
	ops, ok := collectionTable[kind]
	if !ok {
		return nil, ErrUnknownCollection
	}

	recipe, err := repo.GetRecipe(ctx, s.DB, recipeID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if _, err := repo.GetUser(ctx, s.DB, userID); err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := ops.add(ctx, s.DB, userID, recipeID); err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicateMembership
		}
		return nil, err
	}
	return recipe, nil
}

// Remove deletes recipeID from userID's collection of the given kind.
// Removing a pair that is not present yields ErrMembershipNotFound; a
// successful removal deletes exactly one row (the pair is unique by
// construction).
func (s *CollectionService) Remove(ctx context.Context, userID, recipeID string, kind domain.CollectionKind) error {
	ops, ok := collectionTable[kind]
	if !ok {
		return ErrUnknownCollection
	}

	if _, err := repo.GetRecipe(ctx, s.DB, recipeID); err != nil {
		if isNotFound(err) {
			return ErrRecipeNotFound
		}
		return err
	}

	deleted, err := ops.remove(ctx, s.DB, userID, recipeID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrMembershipNotFound
	}
	return nil
}

// Contains reports whether recipeID is in userID's collection of the given
// kind. Used for the read-side is_favorited / is_in_shopping_cart flags.
func (s *CollectionService) Contains(ctx context.Context, userID, recipeID string, kind domain.CollectionKind) (bool, error) {
	ops, ok := collectionTable[kind]
	if !ok {
		return false, ErrUnknownCollection
	}
	return ops.exists(ctx, s.DB, userID, recipeID)
}
