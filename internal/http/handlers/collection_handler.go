// Favorite and shopping-cart membership handlers.
//
// This file exposes REST endpoints for the two per-user recipe collections:
//   - POST   /recipes/{id}/favorite          (add to favorites)
//   - DELETE /recipes/{id}/favorite          (remove from favorites)
//   - POST   /recipes/{id}/shopping_cart     (add to cart)
//   - DELETE /recipes/{id}/shopping_cart     (remove from cart)
//   - GET    /recipes/download_shopping_cart (aggregated shopping list)
//
// Both collections share one add/remove implementation parameterized by the
// collection kind; each kind keeps its own uniqueness in its own table.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avoronkov/go-recipe-backend/internal/domain"
	"github.com/avoronkov/go-recipe-backend/internal/services"
)

// addToCollection runs the shared membership-add flow for the given kind.
func (h *Handlers) addToCollection(c *gin.Context, kind domain.CollectionKind) {
	recipeID := c.Param("id")
	if _, err := uuid.Parse(recipeID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "recipe id must be a UUID")
		return
	}

	rec, err := h.colSvc.Add(c.Request.Context(), userID(c), recipeID, kind)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRecipeNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "recipe not found")
		case errors.Is(err, services.ErrUserNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		case errors.Is(err, services.ErrDuplicateMembership):
			fail(c, http.StatusConflict, ErrCodeConflict, "recipe already added")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, toRecipeCompact(rec))
}

// removeFromCollection runs the shared membership-remove flow for the kind.
func (h *Handlers) removeFromCollection(c *gin.Context, kind domain.CollectionKind) {
	recipeID := c.Param("id")
	if _, err := uuid.Parse(recipeID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "recipe id must be a UUID")
		return
	}

	if err := h.colSvc.Remove(c.Request.Context(), userID(c), recipeID, kind); err != nil {
		switch {
		case errors.Is(err, services.ErrRecipeNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "recipe not found")
		case errors.Is(err, services.ErrMembershipNotFound):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "recipe is not in the collection")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	noContent(c)
}

// AddFavorite godoc
// @ID          addFavorite
// @Summary     Add a recipe to favorites
// @Description Marks the recipe as a favorite of the current user. Adding twice is a conflict.
// @Tags        Collections
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Recipe ID (UUID)"       format(uuid)
//
// @Success     201  {object}  handlers.RecipeCompact
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Recipe not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Already favorited"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /recipes/{id}/favorite [post]
func (h *Handlers) AddFavorite(c *gin.Context) {
	h.addToCollection(c, domain.KindFavorite)
}

// RemoveFavorite godoc
// @ID          removeFavorite
// @Summary     Remove a recipe from favorites
// @Description Removes the recipe from the current user's favorites. Removing an absent entry is a client error.
// @Tags        Collections
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Recipe ID (UUID)"       format(uuid)
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Not in favorites"
// @Failure     404  {object}  handlers.ErrorResponse  "Recipe not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /recipes/{id}/favorite [delete]
func (h *Handlers) RemoveFavorite(c *gin.Context) {
	h.removeFromCollection(c, domain.KindFavorite)
}

// AddToCart godoc
// @ID          addToCart
// @Summary     Add a recipe to the shopping cart
// @Description Puts the recipe into the current user's shopping cart. Adding twice is a conflict.
// @Tags        Collections
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Recipe ID (UUID)"       format(uuid)
//
// @Success     201  {object}  handlers.RecipeCompact
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Recipe not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Already in cart"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /recipes/{id}/shopping_cart [post]
func (h *Handlers) AddToCart(c *gin.Context) {
	h.addToCollection(c, domain.KindShoppingCart)
}

// RemoveFromCart godoc
// @ID          removeFromCart
// @Summary     Remove a recipe from the shopping cart
// @Description Removes the recipe from the current user's shopping cart. Removing an absent entry is a client error.
// @Tags        Collections
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Recipe ID (UUID)"       format(uuid)
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Not in cart"
// @Failure     404  {object}  handlers.ErrorResponse  "Recipe not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /recipes/{id}/shopping_cart [delete]
func (h *Handlers) RemoveFromCart(c *gin.Context) {
	h.removeFromCollection(c, domain.KindShoppingCart)
}

// DownloadShoppingCart godoc
// @ID          downloadShoppingCart
// @Summary     Download the aggregated shopping list
// @Description Sums ingredient amounts across every recipe in the current user's cart, merging equal (name, unit) pairs, and returns a plain-text document sorted by ingredient name.
// @Tags        Collections
// @Produce     plain
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     200  {string}  string "Shopping list document"
// @Header      200  {string}  Content-Disposition  "attachment; filename=shopping_list.txt"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /recipes/download_shopping_cart [get]
func (h *Handlers) DownloadShoppingCart(c *gin.Context) {
	doc, err := h.listSvc.Aggregate(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+h.cfg.ShoppingListFilename+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(doc))
}
