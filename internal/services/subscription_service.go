// Package services – SubscriptionService
//
// This file implements directed follow relationships between users. The two
// standing invariants — no self-follow, no duplicate edge — live in the
// schema (CHECK constraint and unique index) and are merely translated here
// into sentinel errors, so they hold even against concurrent writers. The
// follow listing attaches bounded recipe previews per author together with
// the author's unbounded recipe count.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/avoronkov/go-recipe-backend/internal/domain"
	"github.com/avoronkov/go-recipe-backend/internal/repo"
)

// AuthorPreview is one entry of the followed-authors listing: the author,
// up to a capped number of their newest recipes, and the true total.
type AuthorPreview struct {
	Author       domain.User
	Recipes      []domain.Recipe
	RecipesCount int64
}

// SubscriptionService manages follow edges and the followed-authors view.
type SubscriptionService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// Follow creates the edge userID → authorID.
//
// Errors:
//   - ErrUserNotFound when either the follower or the author does not exist.
//   - ErrSelfSubscription when userID equals authorID (also caught by the
//     schema CHECK should the input check ever be bypassed).
//   - ErrDuplicateSubscription when the edge already exists; the unique
//     (user, author) index makes this race-safe.
func (s *SubscriptionService) Follow(ctx context.Context, userID, authorID string) (*domain.Subscription, error) {
	if userID == authorID {
		return nil, ErrSelfSubscription
	}
	if _, err := repo.GetUser(ctx, s.DB, authorID); err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if _, err := repo.GetUser(ctx, s.DB, userID); err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	sub, err := repo.CreateSubscription(ctx, s.DB, userID, authorID)
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicateSubscription
		}
		if isCheckViolation(err) {
			return nil, ErrSelfSubscription
		}
		return nil, err
	}
	return sub, nil
}

// Unfollow deletes the edge userID → authorID. It removes exactly one edge
// on success and returns ErrSubscriptionNotFound when there was none.
func (s *SubscriptionService) Unfollow(ctx context.Context, userID, authorID string) error {
	if _, err := repo.GetUser(ctx, s.DB, authorID); err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}

	deleted, err := repo.DeleteSubscription(ctx, s.DB, userID, authorID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

// IsFollowing reports whether userID follows authorID (read-side flag).
func (s *SubscriptionService) IsFollowing(ctx context.Context, userID, authorID string) (bool, error) {
	return repo.SubscriptionExists(ctx, s.DB, userID, authorID)
}

// Preview builds the followed-authors entry for a single author: the author
// row, up to recipesLimit newest recipes (0 means no cap), and the true
// recipe total.
func (s *SubscriptionService) Preview(ctx context.Context, authorID string, recipesLimit int) (*AuthorPreview, error) {
	author, err := repo.GetUser(ctx, s.DB, authorID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	recipes, err := repo.ListRecipesByAuthor(ctx, s.DB, authorID, recipesLimit)
	if err != nil {
		return nil, err
	}
	count, err := repo.CountRecipesByAuthor(ctx, s.DB, authorID)
	if err != nil {
		return nil, err
	}
	return &AuthorPreview{Author: *author, Recipes: recipes, RecipesCount: count}, nil
}

// ListFollowed returns a page of the authors userID follows, ordered by the
// author's email ascending, each with a recipe preview and total count.
//
// recipesLimit caps the preview at that many newest recipes per author; a
// value of 0 means no cap (all recipes). The count always reports the true
// total regardless of the cap. Validation of the raw limit parameter
// happens at the transport boundary, so the value here is already 0 or
// positive.
func (s *SubscriptionService) ListFollowed(ctx context.Context, userID string, page, pageSize, recipesLimit int) ([]AuthorPreview, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountFollowedAuthors(ctx, s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []AuthorPreview{}, 0, nil
	}

	authors, err := repo.ListFollowedAuthorsPage(ctx, s.DB, userID, offset, pageSize)
	if err != nil {
		return nil, 0, err
	}

	out := make([]AuthorPreview, 0, len(authors))
	for _, a := range authors {
		recipes, err := repo.ListRecipesByAuthor(ctx, s.DB, a.ID, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		count, err := repo.CountRecipesByAuthor(ctx, s.DB, a.ID)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, AuthorPreview{Author: a, Recipes: recipes, RecipesCount: count})
	}
	return out, total, nil
}
