// Package services – RecipeService
//
// This file implements the recipe lifecycle: create, read, list with
// membership filters, update, and delete, with author ownership enforced on
// writes. A recipe's ingredient set is validated up front (non-empty, no
// repeats, amounts in range, every ingredient known) and written atomically
// with the recipe row. Updates replace the whole set — delete-all then
// insert-all inside a single transaction — so a concurrent reader never
// observes a recipe with no ingredients mid-update.
package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gorm.io/gorm"

	"github.com/avoronkov/go-recipe-backend/internal/domain"
	"github.com/avoronkov/go-recipe-backend/internal/repo"
)

// Validation bounds for recipe payloads.
const (
	// MinIngredientAmount and MaxIngredientAmount bound a single ingredient
	// amount within a recipe.
	MinIngredientAmount = 1
	MaxIngredientAmount = 32000

	// MinCookingTime and MaxCookingTime bound the cooking time in minutes.
	MinCookingTime = 1
	MaxCookingTime = 32000
)

// RecipeIngredientInput is one (ingredient, amount) entry of a write payload.
type RecipeIngredientInput struct {
	IngredientID string
	Amount       int
}

// RecipeInput is the write payload for creating or updating a recipe.
type RecipeInput struct {
	Name        string
	Text        string
	ImageURL    string
	CookingTime int
	Ingredients []RecipeIngredientInput
}

// RecipeService implements recipe CRUD with ownership rules and atomic
// ingredient replacement.
type RecipeService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// Create publishes a new recipe owned by authorID.
//
// The recipe row and its ingredient links are written in one transaction;
// either everything lands or nothing does.
func (s *RecipeService) Create(ctx context.Context, authorID string, in RecipeInput) (*domain.Recipe, error) {
	tr := otel.Tracer("services/RecipeService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(attribute.String("user.id", authorID)),
	)
	defer span.End()

	if _, err := repo.GetUser(ctx, s.DB, authorID); err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := s.validateInput(ctx, in); err != nil {
		return nil, err
	}

	var recipe *domain.Recipe
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := repo.CreateRecipe(ctx, tx, authorID, in.Name, in.Text, in.ImageURL, in.CookingTime)
		if err != nil {
			return err
		}
		if err := repo.InsertRecipeIngredients(ctx, tx, r.ID, toAmounts(in.Ingredients)); err != nil {
			return err
		}
		recipe = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// Get returns a recipe with its ingredient links (ingredients preloaded).
func (s *RecipeService) Get(ctx context.Context, recipeID string) (*domain.Recipe, []domain.RecipeIngredient, error) {
	recipe, err := repo.GetRecipe(ctx, s.DB, recipeID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, ErrRecipeNotFound
		}
		return nil, nil, err
	}
	links, err := repo.ListRecipeIngredients(ctx, s.DB, recipeID)
	if err != nil {
		return nil, nil, err
	}
	return recipe, links, nil
}

// ListPage returns a page of recipes matching the filter, newest first,
// along with the total count.
func (s *RecipeService) ListPage(ctx context.Context, f repo.RecipeFilter, page, pageSize int) ([]domain.Recipe, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountRecipes(ctx, s.DB, f)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Recipe{}, 0, nil
	}

	items, err := repo.ListRecipesPage(ctx, s.DB, f, offset, pageSize)
	return items, total, err
}

// Update rewrites a recipe owned by userID, replacing its ingredient set
// atomically (delete-all then insert-all in one transaction).
//
// Errors: ErrRecipeNotFound, ErrNotRecipeAuthor, plus the payload
// validation sentinels.
func (s *RecipeService) Update(ctx context.Context, userID, recipeID string, in RecipeInput) (*domain.Recipe, error) {
	recipe, err := repo.GetRecipe(ctx, s.DB, recipeID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.AuthorID != userID {
		return nil, ErrNotRecipeAuthor
	}
	if err := s.validateInput(ctx, in); err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.UpdateRecipe(ctx, tx, recipeID, in.Name, in.Text, in.ImageURL, in.CookingTime); err != nil {
			return err
		}
		if err := repo.DeleteRecipeIngredients(ctx, tx, recipeID); err != nil {
			return err
		}
		return repo.InsertRecipeIngredients(ctx, tx, recipeID, toAmounts(in.Ingredients))
	})
	if err != nil {
		return nil, err
	}
	return repo.GetRecipe(ctx, s.DB, recipeID)
}

// Delete removes a recipe owned by userID. FK cascades clean up ingredient
// links, memberships, and the short link.
func (s *RecipeService) Delete(ctx context.Context, userID, recipeID string) error {
	recipe, err := repo.GetRecipe(ctx, s.DB, recipeID)
	if err != nil {
		if isNotFound(err) {
			return ErrRecipeNotFound
		}
		return err
	}
	if recipe.AuthorID != userID {
		return ErrNotRecipeAuthor
	}
	return repo.DeleteRecipe(ctx, s.DB, recipeID)
}

// validateInput checks the write payload: cooking time and amounts within
// bounds, at least one ingredient, no repeated ingredient ids, and every
// referenced ingredient present in the catalog.
func (s *RecipeService) validateInput(ctx context.Context, in RecipeInput) error {
	if in.CookingTime < MinCookingTime || in.CookingTime > MaxCookingTime {
		return ErrInvalidCookingTime
	}
	if len(in.Ingredients) == 0 {
		return ErrEmptyIngredients
	}

	ids := make([]string, 0, len(in.Ingredients))
	seen := make(map[string]struct{}, len(in.Ingredients))
	for _, item := range in.Ingredients {
		if item.Amount < MinIngredientAmount || item.Amount > MaxIngredientAmount {
			return ErrInvalidAmount
		}
		if _, dup := seen[item.IngredientID]; dup {
			return ErrDuplicateIngredient
		}
		seen[item.IngredientID] = struct{}{}
		ids = append(ids, item.IngredientID)
	}

	found, err := repo.GetIngredientsByIDs(ctx, s.DB, ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		return ErrIngredientNotFound
	}
	return nil
}

// toAmounts converts the input entries to the repository's write shape.
func toAmounts(items []RecipeIngredientInput) []repo.IngredientAmount {
	out := make([]repo.IngredientAmount, 0, len(items))
	for _, it := range items {
		out = append(out, repo.IngredientAmount{IngredientID: it.IngredientID, Amount: it.Amount})
	}
	return out
}
