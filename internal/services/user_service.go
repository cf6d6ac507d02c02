// Package services – UserService
//
// This file implements the minimal user surface this backend owns: creating
// accounts as foreign-key targets and reading them back. Authentication,
// sessions, and avatar uploads belong to the surrounding infrastructure.
package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/avoronkov/go-recipe-backend/internal/domain"
	"github.com/avoronkov/go-recipe-backend/internal/repo"
)

// UserService provides user creation and lookup.
type UserService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// Create registers a new user. Email and username are trimmed; the email is
// lowercased so uniqueness is case-insensitive across registrations.
// Duplicate email or username surfaces as ErrDuplicateUser via the unique
// indexes.
func (s *UserService) Create(ctx context.Context, email, username, firstName, lastName string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)
	if email == "" || username == "" {
		return nil, ErrInvalidUser
	}

	u, err := repo.CreateUser(ctx, s.DB, email, username, strings.TrimSpace(firstName), strings.TrimSpace(lastName))
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return u, nil
}

// Get fetches a user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := repo.GetUser(ctx, s.DB, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// ListPage returns a page of users ordered by email ascending plus the
// total count.
func (s *UserService) ListPage(ctx context.Context, page, pageSize int) ([]domain.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountUsers(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.User{}, 0, nil
	}

	items, err := repo.ListUsersPage(ctx, s.DB, offset, pageSize)
	return items, total, err
}
