// User HTTP handlers.
//
// This file exposes REST endpoints for accounts:
//   - POST /users       (register)
//   - GET  /users       (list, paginated)
//   - GET  /users/{id}  (profile)
//   - GET  /users/me    (current user's profile)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avoronkov/go-recipe-backend/internal/services"
)

// CreateUserRequest is the JSON payload for registering a user.
type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email,max=254" example:"vpupkin@yandex.ru"`
	Username  string `json:"username" binding:"required,min=1,max=150" example:"vasya.pupkin"`
	FirstName string `json:"first_name" binding:"required,min=1,max=150" example:"Вася"`
	LastName  string `json:"last_name" binding:"required,min=1,max=150" example:"Пупкин"`
}

// ListUsersResponse wraps a page of users and pagination information.
type ListUsersResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination Pagination     `json:"pagination"`
}

// CreateUser godoc
// @ID          createUser
// @Summary     Register a user
// @Description Creates an account. Email and username must be unique.
// @Tags        Users
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateUserRequest  true  "Registration payload"
//
// @Success     201  {object}  handlers.UserResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Validation error"
// @Failure     409  {object}  handlers.ErrorResponse  "Email or username taken"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users [post]
func (h *Handlers) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	u, err := h.usrSvc.Create(c.Request.Context(), req.Email, req.Username, req.FirstName, req.LastName)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidUser):
			fail(c, http.StatusBadRequest, ErrCodeValidation, "email and username are required")
		case errors.Is(err, services.ErrDuplicateUser):
			fail(c, http.StatusConflict, ErrCodeConflict, "email or username already taken")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, toUserResponse(u, false))
}

// ListUsers godoc
// @ID          listUsers
// @Summary     List users (paginated)
// @Description Returns a page of users ordered by email.
// @Tags        Users
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       page       query   int     false "Page number"            minimum(1) default(1)
// @Param       page_size  query   int     false "Items per page"         minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.ListUsersResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)
	page, pageSize := clampPagination(c)

	items, total, err := h.usrSvc.ListPage(ctx, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	users := make([]UserResponse, 0, len(items))
	for i := range items {
		subscribed, err := h.subSvc.IsFollowing(ctx, uid, items[i].ID)
		if err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
			return
		}
		users = append(users, toUserResponse(&items[i], subscribed))
	}

	ok(c, http.StatusOK, ListUsersResponse{
		Users:      users,
		Pagination: newPagination(page, pageSize, total),
	})
}

// GetUser godoc
// @ID          getUser
// @Summary     Get a user profile
// @Description Returns one user's public profile with the requester's follow flag.
// @Tags        Users
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "User ID (UUID)"         format(uuid)
//
// @Success     200  {object}  handlers.UserResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/{id} [get]
func (h *Handlers) GetUser(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user id must be a UUID")
		return
	}

	u, err := h.usrSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	subscribed, err := h.subSvc.IsFollowing(c.Request.Context(), userID(c), u.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, toUserResponse(u, subscribed))
}

// Me godoc
// @ID          me
// @Summary     Get the current user's profile
// @Description Returns the profile of the requesting user.
// @Tags        Users
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     200  {object}  handlers.UserResponse
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/me [get]
func (h *Handlers) Me(c *gin.Context) {
	u, err := h.usrSvc.Get(c.Request.Context(), userID(c))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, toUserResponse(u, false))
}
