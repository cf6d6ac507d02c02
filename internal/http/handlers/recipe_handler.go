// Recipe HTTP handlers.
//
// This file exposes REST endpoints for the recipe lifecycle:
//   - POST   /recipes        (create)
//   - GET    /recipes        (list, paginated, filterable)
//   - GET    /recipes/{id}   (read)
//   - PATCH  /recipes/{id}   (update, author only)
//   - DELETE /recipes/{id}   (delete, author only)
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avoronkov/go-recipe-backend/internal/domain"
	"github.com/avoronkov/go-recipe-backend/internal/repo"
	"github.com/avoronkov/go-recipe-backend/internal/services"
)

//
// DTOs
//

// RecipeIngredientRequest is one ingredient line of a create/update payload.
type RecipeIngredientRequest struct {
	// ID references an existing ingredient.
	ID string `json:"id" binding:"required" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	// Amount is the quantity in the ingredient's measurement unit.
	Amount int `json:"amount" binding:"required" example:"100"`
}

// RecipeRequest is the JSON payload for creating or updating a recipe.
type RecipeRequest struct {
	Name        string                    `json:"name" binding:"required,min=1,max=256" example:"Шарлотка"`
	Text        string                    `json:"text" binding:"required" example:"Нарезать яблоки..."`
	Image       string                    `json:"image" example:"https://cdn.example.com/i/abc.png"`
	CookingTime int                       `json:"cooking_time" binding:"required" example:"45"`
	Ingredients []RecipeIngredientRequest `json:"ingredients" binding:"required"`
}

// ListRecipesResponse wraps a page of recipes and pagination information.
type ListRecipesResponse struct {
	Recipes    []RecipeResponse `json:"recipes"`
	Pagination Pagination       `json:"pagination"`
}

// toInput converts the transport payload into the service input.
func (r RecipeRequest) toInput() services.RecipeInput {
	ings := make([]services.RecipeIngredientInput, 0, len(r.Ingredients))
	for _, it := range r.Ingredients {
		ings = append(ings, services.RecipeIngredientInput{
			IngredientID: it.ID,
			Amount:       it.Amount,
		})
	}
	return services.RecipeInput{
		Name:        strings.TrimSpace(r.Name),
		Text:        r.Text,
		ImageURL:    strings.TrimSpace(r.Image),
		CookingTime: r.CookingTime,
		Ingredients: ings,
	}
}

//
// Helpers
//

// renderRecipe assembles the full recipe view for the requesting user.
func (h *Handlers) renderRecipe(c *gin.Context, rec *domain.Recipe, links []domain.RecipeIngredient) (RecipeResponse, error) {
	ctx := c.Request.Context()
	uid := userID(c)

	favorited, err := h.colSvc.Contains(ctx, uid, rec.ID, domain.KindFavorite)
	if err != nil {
		return RecipeResponse{}, err
	}
	inCart, err := h.colSvc.Contains(ctx, uid, rec.ID, domain.KindShoppingCart)
	if err != nil {
		return RecipeResponse{}, err
	}
	subscribed, err := h.subSvc.IsFollowing(ctx, uid, rec.AuthorID)
	if err != nil {
		return RecipeResponse{}, err
	}

	author := toUserResponse(&rec.Author, subscribed)
	return toRecipeResponse(rec, links, author, favorited, inCart), nil
}

// recipeErrStatus maps recipe service errors to (status, code, message).
func recipeErrStatus(err error) (int, string, string) {
	switch {
	case errors.Is(err, services.ErrRecipeNotFound):
		return http.StatusNotFound, ErrCodeNotFound, "recipe not found"
	case errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound, ErrCodeNotFound, "user not found"
	case errors.Is(err, services.ErrNotRecipeAuthor):
		return http.StatusForbidden, ErrCodeForbidden, "only the author can modify this recipe"
	case errors.Is(err, services.ErrEmptyIngredients):
		return http.StatusBadRequest, ErrCodeValidation, "at least one ingredient is required"
	case errors.Is(err, services.ErrDuplicateIngredient):
		return http.StatusBadRequest, ErrCodeValidation, "duplicate ingredient in recipe"
	case errors.Is(err, services.ErrInvalidAmount):
		return http.StatusBadRequest, ErrCodeValidation, "ingredient amount out of range"
	case errors.Is(err, services.ErrInvalidCookingTime):
		return http.StatusBadRequest, ErrCodeValidation, "cooking time out of range"
	case errors.Is(err, services.ErrIngredientNotFound):
		return http.StatusBadRequest, ErrCodeValidation, "unknown ingredient referenced"
	default:
		return http.StatusInternalServerError, ErrCodeInternal, err.Error()
	}
}

//
// Handlers
//

// CreateRecipe godoc
// @ID          createRecipe
// @Summary     Create a recipe
// @Description Creates a recipe owned by the current user, with its ingredient amounts written atomically.
// @Tags        Recipes
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.RecipeRequest  true  "Recipe payload"
//
// @Success     201  {object}  handlers.RecipeResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Validation error"
// @Failure     404  {object}  handlers.ErrorResponse  "Author not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /recipes [post]
func (h *Handlers) CreateRecipe(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	rec, err := h.rcpSvc.Create(c.Request.Context(), userID(c), req.toInput())
	if err != nil {
		status, code, msg := recipeErrStatus(err)
		fail(c, status, code, msg)
		return
	}

	full, links, err := h.rcpSvc.Get(c.Request.Context(), rec.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	resp, err := h.renderRecipe(c, full, links)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusCreated, resp)
}

// ListRecipes godoc
// @ID          listRecipes
// @Summary     List recipes (paginated)
// @Description Returns a page of recipes, newest first. Supports filtering by author and by membership in the current user's favorites or shopping cart.
// @Tags        Recipes
// @Produce     json
//
// @Param       X-User-ID            header  string  false "User ID (demo header)"            example(user123)
// @Param       page                 query   int     false "Page number"                       minimum(1) default(1)
// @Param       page_size            query   int     false "Items per page"                    minimum(1) maximum(100) default(20)
// @Param       author               query   string  false "Filter by author id"
// @Param       is_favorited         query   bool    false "Only the current user's favorites"
// @Param       is_in_shopping_cart  query   bool    false "Only the current user's cart"
//
// @Success     200  {object}  handlers.ListRecipesResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /recipes [get]
func (h *Handlers) ListRecipes(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)
	page, pageSize := clampPagination(c)

	var f repo.RecipeFilter
	f.AuthorID = strings.TrimSpace(c.Query("author"))
	if c.Query("is_favorited") == "1" || c.Query("is_favorited") == "true" {
		f.FavoritedBy = uid
	}
	if c.Query("is_in_shopping_cart") == "1" || c.Query("is_in_shopping_cart") == "true" {
		f.InCartOf = uid
	}

	items, total, err := h.rcpSvc.ListPage(ctx, f, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	recipes := make([]RecipeResponse, 0, len(items))
	for i := range items {
		full, links, err := h.rcpSvc.Get(ctx, items[i].ID)
		if err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
			return
		}
		resp, err := h.renderRecipe(c, full, links)
		if err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
			return
		}
		recipes = append(recipes, resp)
	}

	ok(c, http.StatusOK, ListRecipesResponse{
		Recipes:    recipes,
		Pagination: newPagination(page, pageSize, total),
	})
}

// GetRecipe godoc
// @ID          getRecipe
// @Summary     Get a recipe
// @Description Returns one recipe with ingredient amounts and requester-specific flags.
// @Tags        Recipes
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Recipe ID (UUID)"       format(uuid)
//
// @Success     200  {object}  handlers.RecipeResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Recipe not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /recipes/{id} [get]
func (h *Handlers) GetRecipe(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "recipe id must be a UUID")
		return
	}

	rec, links, err := h.rcpSvc.Get(c.Request.Context(), id)
	if err != nil {
		status, code, msg := recipeErrStatus(err)
		fail(c, status, code, msg)
		return
	}
	resp, err := h.renderRecipe(c, rec, links)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, resp)
}

// UpdateRecipe godoc
// @ID          updateRecipe
// @Summary     Update a recipe
// @Description Updates a recipe owned by the current user; the ingredient set is replaced atomically.
// @Tags        Recipes
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Recipe ID (UUID)"       format(uuid)
// @Param       body       body    handlers.RecipeRequest  true  "Recipe payload"
//
// @Success     200  {object}  handlers.RecipeResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Validation error"
// @Failure     403  {object}  handlers.ErrorResponse  "Not the author"
// @Failure     404  {object}  handlers.ErrorResponse  "Recipe not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /recipes/{id} [patch]
func (h *Handlers) UpdateRecipe(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "recipe id must be a UUID")
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	rec, err := h.rcpSvc.Update(c.Request.Context(), userID(c), id, req.toInput())
	if err != nil {
		status, code, msg := recipeErrStatus(err)
		fail(c, status, code, msg)
		return
	}

	full, links, err := h.rcpSvc.Get(c.Request.Context(), rec.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	resp, err := h.renderRecipe(c, full, links)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, resp)
}

// DeleteRecipe godoc
// @ID          deleteRecipe
// @Summary     Delete a recipe
// @Description Deletes a recipe owned by the current user. Memberships, ingredient links, and the short link go with it.
// @Tags        Recipes
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Recipe ID (UUID)"       format(uuid)
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     403  {object}  handlers.ErrorResponse  "Not the author"
// @Failure     404  {object}  handlers.ErrorResponse  "Recipe not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /recipes/{id} [delete]
func (h *Handlers) DeleteRecipe(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "recipe id must be a UUID")
		return
	}

	if err := h.rcpSvc.Delete(c.Request.Context(), userID(c), id); err != nil {
		status, code, msg := recipeErrStatus(err)
		fail(c, status, code, msg)
		return
	}
	noContent(c)
}
