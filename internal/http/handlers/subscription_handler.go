// Subscription handlers.
//
// This file exposes REST endpoints for following authors:
//   - POST   /users/{id}/subscribe  (follow)
//   - DELETE /users/{id}/subscribe  (unfollow)
//   - GET    /users/subscriptions   (followed authors with recipe previews)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avoronkov/go-recipe-backend/internal/services"
)

// SubscriptionsResponse wraps a page of followed authors and pagination
// information.
type SubscriptionsResponse struct {
	Authors    []AuthorWithRecipes `json:"authors"`
	Pagination Pagination          `json:"pagination"`
}

// toAuthorWithRecipes builds the author preview view. The author is by
// definition followed by the requester on this endpoint.
func toAuthorWithRecipes(p *services.AuthorPreview) AuthorWithRecipes {
	recipes := make([]RecipeCompact, 0, len(p.Recipes))
	for i := range p.Recipes {
		recipes = append(recipes, toRecipeCompact(&p.Recipes[i]))
	}
	return AuthorWithRecipes{
		UserResponse: toUserResponse(&p.Author, true),
		Recipes:      recipes,
		RecipesCount: p.RecipesCount,
	}
}

// Subscribe godoc
// @ID          subscribe
// @Summary     Follow an author
// @Description Creates a follow edge from the current user to the author. Following yourself or following twice is rejected.
// @Tags        Subscriptions
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Author ID (UUID)"       format(uuid)
//
// @Success     201  {object}  handlers.AuthorWithRecipes
// @Failure     400  {object}  handlers.ErrorResponse  "Self-subscription"
// @Failure     404  {object}  handlers.ErrorResponse  "Author not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Already subscribed"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/{id}/subscribe [post]
func (h *Handlers) Subscribe(c *gin.Context) {
	authorID := c.Param("id")
	if _, err := uuid.Parse(authorID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "author id must be a UUID")
		return
	}
	limit, okv := parseRecipesLimit(c)
	if !okv {
		return
	}

	ctx := c.Request.Context()
	uid := userID(c)

	if _, err := h.subSvc.Follow(ctx, uid, authorID); err != nil {
		switch {
		case errors.Is(err, services.ErrSelfSubscription):
			fail(c, http.StatusBadRequest, ErrCodeValidation, "cannot subscribe to yourself")
		case errors.Is(err, services.ErrUserNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "author not found")
		case errors.Is(err, services.ErrDuplicateSubscription):
			fail(c, http.StatusConflict, ErrCodeConflict, "already subscribed")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	preview, err := h.subSvc.Preview(ctx, authorID, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusCreated, toAuthorWithRecipes(preview))
}

// Unsubscribe godoc
// @ID          unsubscribe
// @Summary     Unfollow an author
// @Description Removes the follow edge from the current user to the author.
// @Tags        Subscriptions
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Author ID (UUID)"       format(uuid)
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Not subscribed"
// @Failure     404  {object}  handlers.ErrorResponse  "Author not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/{id}/subscribe [delete]
func (h *Handlers) Unsubscribe(c *gin.Context) {
	authorID := c.Param("id")
	if _, err := uuid.Parse(authorID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "author id must be a UUID")
		return
	}

	if err := h.subSvc.Unfollow(c.Request.Context(), userID(c), authorID); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "author not found")
		case errors.Is(err, services.ErrSubscriptionNotFound):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "not subscribed to this author")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	noContent(c)
}

// ListSubscriptions godoc
// @ID          listSubscriptions
// @Summary     List followed authors (paginated)
// @Description Returns the authors the current user follows, each with a recipe preview capped by recipes_limit and the author's true recipe total.
// @Tags        Subscriptions
// @Produce     json
//
// @Param       X-User-ID      header  string  false "User ID (demo header)"            example(user123)
// @Param       page           query   int     false "Page number"                       minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"                    minimum(1) maximum(100) default(20)
// @Param       recipes_limit  query   int     false "Max preview recipes per author"    minimum(1)
//
// @Success     200  {object}  handlers.SubscriptionsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid recipes_limit"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/subscriptions [get]
func (h *Handlers) ListSubscriptions(c *gin.Context) {
	limit, okv := parseRecipesLimit(c)
	if !okv {
		return
	}
	page, pageSize := clampPagination(c)

	previews, total, err := h.subSvc.ListFollowed(c.Request.Context(), userID(c), page, pageSize, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	authors := make([]AuthorWithRecipes, 0, len(previews))
	for i := range previews {
		authors = append(authors, toAuthorWithRecipes(&previews[i]))
	}
	ok(c, http.StatusOK, SubscriptionsResponse{
		Authors:    authors,
		Pagination: newPagination(page, pageSize, total),
	})
}
