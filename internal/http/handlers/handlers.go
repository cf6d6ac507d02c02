// Shared handler wiring, service contracts, DTOs, and serialization helpers.
//
// Handlers are transport-thin: they validate input, delegate to application
// services, and translate domain/service errors into HTTP results. Service
// dependencies are expressed as interfaces so the transport stays decoupled
// from concrete implementations.
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/avoronkov/go-recipe-backend/internal/domain"
	"github.com/avoronkov/go-recipe-backend/internal/repo"
	"github.com/avoronkov/go-recipe-backend/internal/services"
	"github.com/avoronkov/go-recipe-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// IngredientService defines ingredient lookups consumed by HTTP handlers.
type IngredientService interface {
	// Search runs the tiered prefix search; an empty query returns everything.
	Search(ctx context.Context, query string) ([]domain.Ingredient, error)
	// Get fetches one ingredient by id.
	Get(ctx context.Context, id string) (*domain.Ingredient, error)
}

// RecipeService defines the recipe lifecycle operations.
type RecipeService interface {
	Create(ctx context.Context, authorID string, in services.RecipeInput) (*domain.Recipe, error)
	Get(ctx context.Context, recipeID string) (*domain.Recipe, []domain.RecipeIngredient, error)
	ListPage(ctx context.Context, f repo.RecipeFilter, page, pageSize int) ([]domain.Recipe, int64, error)
	Update(ctx context.Context, userID, recipeID string, in services.RecipeInput) (*domain.Recipe, error)
	Delete(ctx context.Context, userID, recipeID string) error
}

// CollectionService defines membership toggling for favorites and the cart.
type CollectionService interface {
	Add(ctx context.Context, userID, recipeID string, kind domain.CollectionKind) (*domain.Recipe, error)
	Remove(ctx context.Context, userID, recipeID string, kind domain.CollectionKind) error
	Contains(ctx context.Context, userID, recipeID string, kind domain.CollectionKind) (bool, error)
}

// ShoppingListService renders the consolidated shopping list document.
type ShoppingListService interface {
	Aggregate(ctx context.Context, userID string) (string, error)
}

// ShortLinkService creates and resolves recipe share codes.
type ShortLinkService interface {
	GetOrCreate(ctx context.Context, recipeID string) (*domain.ShortLink, error)
	Resolve(ctx context.Context, code string) (*domain.ShortLink, error)
}

// SubscriptionService manages follow edges and the followed-authors view.
type SubscriptionService interface {
	Follow(ctx context.Context, userID, authorID string) (*domain.Subscription, error)
	Unfollow(ctx context.Context, userID, authorID string) error
	IsFollowing(ctx context.Context, userID, authorID string) (bool, error)
	ListFollowed(ctx context.Context, userID string, page, pageSize, recipesLimit int) ([]services.AuthorPreview, int64, error)
	Preview(ctx context.Context, authorID string, recipesLimit int) (*services.AuthorPreview, error)
}

// UserService provides user creation and lookup.
type UserService interface {
	Create(ctx context.Context, email, username, firstName, lastName string) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	ListPage(ctx context.Context, page, pageSize int) ([]domain.User, int64, error)
}

//
// Handler wiring
//

// Config carries the transport-level constants handlers need.
type Config struct {
	// ShoppingListFilename is the attachment filename for the cart download.
	ShoppingListFilename string
	// ShortLinkBase optionally prefixes generated short links with an
	// absolute base URL; when empty the request host is used.
	ShortLinkBase string
}

// Handlers groups the HTTP endpoints for ingredients, recipes, collections,
// short links, subscriptions, and users.
type Handlers struct {
	ingSvc  IngredientService
	rcpSvc  RecipeService
	colSvc  CollectionService
	listSvc ShoppingListService
	linkSvc ShortLinkService
	subSvc  SubscriptionService
	usrSvc  UserService
	cfg     Config
}

// New constructs a Handlers instance bound to the given services.
func New(
	ingSvc IngredientService,
	rcpSvc RecipeService,
	colSvc CollectionService,
	listSvc ShoppingListService,
	linkSvc ShortLinkService,
	subSvc SubscriptionService,
	usrSvc UserService,
	cfg Config,
) *Handlers {
	return &Handlers{
		ingSvc:  ingSvc,
		rcpSvc:  rcpSvc,
		colSvc:  colSvc,
		listSvc: listSvc,
		linkSvc: linkSvc,
		subSvc:  subSvc,
		usrSvc:  usrSvc,
		cfg:     cfg,
	}
}

// userID extracts the authenticated user id from Gin context (set by upstream
// middleware). If absent, it falls back to "X-User-ID" header (tests use it),
// and finally to "demo-user". It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

//
// DTOs
//

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// newPagination fills the envelope from the page inputs and total count.
func newPagination(page, pageSize int, total int64) Pagination {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

// UserResponse is the public user representation, including whether the
// requesting user follows them.
type UserResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Avatar       string `json:"avatar"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// RecipeCompact is the short recipe representation used in membership
// responses and author previews.
type RecipeCompact struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// IngredientAmountResponse is one ingredient line of a full recipe view.
type IngredientAmountResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeResponse is the full recipe representation.
type RecipeResponse struct {
	ID                string                     `json:"id"`
	Author            UserResponse               `json:"author"`
	Ingredients       []IngredientAmountResponse `json:"ingredients"`
	IsFavorited       bool                       `json:"is_favorited"`
	IsInShoppingCart  bool                       `json:"is_in_shopping_cart"`
	Name              string                     `json:"name"`
	Image             string                     `json:"image"`
	Text              string                     `json:"text"`
	CookingTime       int                        `json:"cooking_time"`
}

// AuthorWithRecipes extends UserResponse with a bounded recipe preview and
// the author's true recipe total.
type AuthorWithRecipes struct {
	UserResponse
	Recipes      []RecipeCompact `json:"recipes"`
	RecipesCount int64           `json:"recipes_count"`
}

//
// Serialization helpers
//

// toUserResponse builds the public user view. isSubscribed is resolved by
// the caller (it depends on the requesting identity).
func toUserResponse(u *domain.User, isSubscribed bool) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Avatar:       u.AvatarURL,
		IsSubscribed: isSubscribed,
	}
}

// toRecipeCompact builds the short recipe view.
func toRecipeCompact(r *domain.Recipe) RecipeCompact {
	return RecipeCompact{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.ImageURL,
		CookingTime: r.CookingTime,
	}
}

// toRecipeResponse builds the full recipe view from the recipe, its
// ingredient links, and the requester-dependent flags.
func toRecipeResponse(r *domain.Recipe, links []domain.RecipeIngredient, author UserResponse, favorited, inCart bool) RecipeResponse {
	ingredients := make([]IngredientAmountResponse, 0, len(links))
	for _, l := range links {
		ingredients = append(ingredients, IngredientAmountResponse{
			ID:              l.Ingredient.ID,
			Name:            l.Ingredient.Name,
			MeasurementUnit: l.Ingredient.MeasurementUnit,
			Amount:          l.Amount,
		})
	}
	return RecipeResponse{
		ID:               r.ID,
		Author:           author,
		Ingredients:      ingredients,
		IsFavorited:      favorited,
		IsInShoppingCart: inCart,
		Name:             r.Name,
		Image:            r.ImageURL,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// parseRecipesLimit reads the optional recipes_limit query parameter.
// Absence means "no cap" (0). A present value must be a strictly positive
// integer; anything else is a validation failure, never clamped.
func parseRecipesLimit(c *gin.Context) (int, bool) {
	raw := c.Query("recipes_limit")
	if raw == "" {
		return 0, true
	}
	n, okv := utils.ParsePositiveInt(raw)
	if !okv {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "recipes_limit must be a positive integer")
		return 0, false
	}
	return n, true
}
