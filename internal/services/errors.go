// Package services defines the business logic for ingredients, recipes,
// collection memberships, shopping lists, short links, and subscriptions.
// This file centralizes common service-level error values so that they can
// be consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/avoronkov/go-recipe-backend/internal/repo"
)

// Entity lookup errors.
var (
	// ErrUserNotFound indicates that the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrRecipeNotFound indicates that the referenced recipe does not exist.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrIngredientNotFound indicates that a referenced ingredient does not
	// exist (by id, in a lookup or inside a recipe payload).
	ErrIngredientNotFound = errors.New("ingredient not found")

	// ErrShortLinkNotFound indicates that no short link carries the given code.
	ErrShortLinkNotFound = errors.New("short link not found")
)

// Collection membership errors.
var (
	// ErrDuplicateMembership is returned when the (user, recipe) pair is
	// already present in the targeted collection.
	ErrDuplicateMembership = errors.New("recipe already added to collection")

	// ErrMembershipNotFound is returned when removing a (user, recipe) pair
	// that is not in the targeted collection.
	ErrMembershipNotFound = errors.New("recipe not found in collection")

	// ErrUnknownCollection is returned for a collection kind outside
	// {favorite, shopping_cart}.
	ErrUnknownCollection = errors.New("unknown collection kind")
)

// Subscription errors.
var (
	// ErrSelfSubscription is returned when a user attempts to follow
	// themselves.
	ErrSelfSubscription = errors.New("cannot subscribe to yourself")

	// ErrDuplicateSubscription is returned when the follow edge already
	// exists.
	ErrDuplicateSubscription = errors.New("subscription already exists")

	// ErrSubscriptionNotFound is returned when unfollowing an author the
	// user does not follow.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrInvalidRecipesLimit is returned when the recipes_limit parameter is
	// not a positive integer.
	ErrInvalidRecipesLimit = errors.New("recipes_limit must be a positive integer")
)

// Recipe validation errors.
var (
	// ErrEmptyIngredients is returned when a recipe payload lists no
	// ingredients.
	ErrEmptyIngredients = errors.New("recipe must list at least one ingredient")

	// ErrDuplicateIngredient is returned when a recipe payload lists the
	// same ingredient more than once.
	ErrDuplicateIngredient = errors.New("recipe ingredients must not repeat")

	// ErrInvalidAmount is returned when an ingredient amount is outside the
	// allowed range.
	ErrInvalidAmount = errors.New("ingredient amount out of range")

	// ErrInvalidCookingTime is returned when the cooking time is outside the
	// allowed range.
	ErrInvalidCookingTime = errors.New("cooking time out of range")

	// ErrNotRecipeAuthor is returned when a user modifies a recipe they do
	// not own.
	ErrNotRecipeAuthor = errors.New("only the author can modify this recipe")
)

// User errors.
var (
	// ErrDuplicateUser is returned when the email or username is already
	// registered.
	ErrDuplicateUser = errors.New("email or username already registered")

	// ErrInvalidUser is returned when required user fields are blank.
	ErrInvalidUser = errors.New("email and username are required")
)

// isNotFound treats repo-level not found sentinels as "not found" in a
// driver-agnostic way. It also checks gorm.ErrRecordNotFound for safety.
func isNotFound(err error) bool {
	if errors.Is(err, repo.ErrNotFound) {
		return true
	}
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isDuplicate attempts to detect unique-constraint violations across drivers
// that may not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}

// isCheckViolation detects CHECK constraint violations (SQLite phrasing
// "CHECK constraint failed", Postgres "violates check constraint").
func isCheckViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "check constraint")
}
