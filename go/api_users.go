package bookstoreserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userhttpmapper "github.com/bookworks/bookstore-api/internal/domains/users/adapters/http/mapper"
	userports "github.com/bookworks/bookstore-api/internal/domains/users/ports"
)

// UsersAPI wires HTTP transport with the users bounded context service.
type UsersAPI struct {
	service userports.Service
}

// NewUsersAPI creates a UsersAPI backed by the provided service.
func NewUsersAPI(service userports.Service) UsersAPI {
	return UsersAPI{service: service}
}

// Post /api/users
// Register a new user account
func (api *UsersAPI) CreateUser(c *gin.Context) {
	var payload userhttpmapper.MutationUser
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := userhttpmapper.ToDomainUser(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	created, err := api.service.CreateUser(c.Request.Context(), user)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userhttpmapper.FromDomainUser(created))
}

// Get /api/users
// List all user accounts
func (api *UsersAPI) ListUsers(c *gin.Context) {
	users, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUsers(users))
}

// Get /api/users/:userId
// Find user by ID
func (api *UsersAPI) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	user, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUser(user))
}

// Get /api/users/username/:username
// Find user by username
func (api *UsersAPI) GetUserByUsername(c *gin.Context) {
	user, err := api.service.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUser(user))
}

// Put /api/users/:userId
// Update a user account
func (api *UsersAPI) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	var payload userhttpmapper.MutationUser
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := userhttpmapper.ToDomainUser(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.Update(c.Request.Context(), id, user)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUser(updated))
}

// Delete /api/users/:userId
// Remove a user account
func (api *UsersAPI) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
