// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// Subscription (follow edge) model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avoronkov/go-recipe-backend/internal/domain"
)

// CreateSubscription inserts a follow edge from userID to authorID. The
// unique (user, author) index and the no-self-follow CHECK both live in the
// schema; violations surface as raw DB errors.
func CreateSubscription(ctx context.Context, db *gorm.DB, userID, authorID string) (*domain.Subscription, error) {
	s := &domain.Subscription{
		ID:        uuid.NewString(),
		UserID:    userID,
		AuthorID:  authorID,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// DeleteSubscription removes the follow edge and returns how many rows were
// deleted (0 or 1 by construction).
func DeleteSubscription(ctx context.Context, db *gorm.DB, userID, authorID string) (int64, error) {
	res := db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&domain.Subscription{})
	return res.RowsAffected, res.Error
}

// SubscriptionExists reports whether userID follows authorID.
func SubscriptionExists(ctx context.Context, db *gorm.DB, userID, authorID string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&n).Error
	return n > 0, err
}

// CountFollowedAuthors returns how many authors userID follows.
func CountFollowedAuthors(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Subscription{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}

// ListFollowedAuthorsPage returns a page of the authors userID follows,
// ordered by the author's email ascending.
func ListFollowedAuthorsPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.User, error) {
	var out []domain.User
	err := db.WithContext(ctx).
		Model(&domain.User{}).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.user_id = ?", userID).
		Order("users.email ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
