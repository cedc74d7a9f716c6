package bookstoreserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cataloghttpmapper "github.com/bookworks/bookstore-api/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/bookworks/bookstore-api/internal/domains/catalog/ports"
)

// AuthorsAPI wires HTTP transport with the catalog's author operations.
type AuthorsAPI struct {
	service catalogports.Service
}

// NewAuthorsAPI creates an AuthorsAPI backed by the provided service.
func NewAuthorsAPI(service catalogports.Service) AuthorsAPI {
	return AuthorsAPI{service: service}
}

// Post /api/authors
// Add a new author
func (api *AuthorsAPI) CreateAuthor(c *gin.Context) {
	var payload cataloghttpmapper.MutationAuthor
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	author, err := api.service.CreateAuthor(c.Request.Context(), payload.Name, payload.Biography)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cataloghttpmapper.FromDomainAuthor(author))
}

// Get /api/authors
// List all authors
func (api *AuthorsAPI) ListAuthors(c *gin.Context) {
	authors, err := api.service.ListAuthors(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainAuthors(authors))
}

// Get /api/authors/:authorId
// Find author by ID
func (api *AuthorsAPI) GetAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "authorId")
	if !ok {
		return
	}
	author, err := api.service.GetAuthor(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainAuthor(author))
}

// Put /api/authors/:authorId
// Update an existing author
func (api *AuthorsAPI) UpdateAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "authorId")
	if !ok {
		return
	}
	var payload cataloghttpmapper.MutationAuthor
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	author, err := api.service.UpdateAuthor(c.Request.Context(), id, payload.Name, payload.Biography)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainAuthor(author))
}

// Delete /api/authors/:authorId
// Remove an author
func (api *AuthorsAPI) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "authorId")
	if !ok {
		return
	}
	if err := api.service.DeleteAuthor(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
