// Short-link handlers.
//
// This file exposes REST endpoints for recipe share links:
//   - GET /recipes/{id}/get-link  (get or lazily create the link)
//   - GET /s/{code}               (redirect to the recipe page)
//
// A recipe has at most one code, created on first request and kept for the
// recipe's lifetime.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avoronkov/go-recipe-backend/internal/services"
)

// ShortLinkResponse carries the absolute short URL for a recipe.
type ShortLinkResponse struct {
	ShortLink string `json:"short-link" example:"https://food.example.com/s/xK3fA9"`
}

// shortURL builds the absolute short URL for code, preferring the configured
// base and falling back to the request's host.
func (h *Handlers) shortURL(c *gin.Context, code string) string {
	base := strings.TrimRight(h.cfg.ShortLinkBase, "/")
	if base == "" {
		scheme := "http"
		if c.Request != nil && c.Request.TLS != nil {
			scheme = "https"
		}
		host := ""
		if c.Request != nil {
			host = c.Request.Host
		}
		base = scheme + "://" + host
	}
	return base + "/s/" + code
}

// GetRecipeLink godoc
// @ID          getRecipeLink
// @Summary     Get a recipe's short link
// @Description Returns the recipe's short link, creating it on first request. Repeated calls return the same link.
// @Tags        ShortLinks
// @Produce     json
//
// @Param       id  path  string  true "Recipe ID (UUID)"  format(uuid)
//
// @Success     200  {object}  handlers.ShortLinkResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Recipe not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /recipes/{id}/get-link [get]
func (h *Handlers) GetRecipeLink(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "recipe id must be a UUID")
		return
	}

	link, err := h.linkSvc.GetOrCreate(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrRecipeNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "recipe not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, ShortLinkResponse{ShortLink: h.shortURL(c, link.Code)})
}

// ResolveShortLink godoc
// @ID          resolveShortLink
// @Summary     Resolve a short link
// @Description Redirects to the recipe page for a known code; unknown codes are 404.
// @Tags        ShortLinks
// @Produce     json
//
// @Param       code  path  string  true "Short code"  example(xK3fA9)
//
// @Success     302  {string}  string "Found"
// @Header      302  {string}  Location  "/recipes/{id}/"
// @Failure     404  {object}  handlers.ErrorResponse  "Unknown code"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /s/{code} [get]
func (h *Handlers) ResolveShortLink(c *gin.Context) {
	link, err := h.linkSvc.Resolve(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, services.ErrShortLinkNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "unknown short link")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	c.Redirect(http.StatusFound, "/recipes/"+link.RecipeID+"/")
}
