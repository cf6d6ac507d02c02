// Ingredient HTTP handlers.
//
// This file exposes REST endpoints for ingredient lookup:
//   - GET /ingredients         (tiered prefix search)
//   - GET /ingredients/{id}    (single ingredient)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avoronkov/go-recipe-backend/internal/services"
)

// SearchIngredients godoc
// @ID          searchIngredients
// @Summary     Search ingredients by name prefix
// @Description Returns ingredients matching the name prefix. Exact-case prefix matches win; when none exist, case-insensitive matches are returned instead. An empty query returns all ingredients.
// @Tags        Ingredients
// @Produce     json
//
// @Param       name  query  string  false "Name prefix"  example(абри)
//
// @Success     200  {array}   domain.Ingredient
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /ingredients [get]
func (h *Handlers) SearchIngredients(c *gin.Context) {
	items, err := h.ingSvc.Search(c.Request.Context(), c.Query("name"))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// GetIngredient godoc
// @ID          getIngredient
// @Summary     Get a single ingredient
// @Description Returns one ingredient by its id.
// @Tags        Ingredients
// @Produce     json
//
// @Param       id  path  string  true "Ingredient ID (UUID)"  format(uuid)
//
// @Success     200  {object}  domain.Ingredient
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Ingredient not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /ingredients/{id} [get]
func (h *Handlers) GetIngredient(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "ingredient id must be a UUID")
		return
	}

	ing, err := h.ingSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrIngredientNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "ingredient not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, ing)
}
