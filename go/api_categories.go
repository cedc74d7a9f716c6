package bookstoreserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cataloghttpmapper "github.com/bookworks/bookstore-api/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/bookworks/bookstore-api/internal/domains/catalog/ports"
)

// CategoriesAPI wires HTTP transport with the catalog's category operations.
type CategoriesAPI struct {
	service catalogports.Service
}

// NewCategoriesAPI creates a CategoriesAPI backed by the provided service.
func NewCategoriesAPI(service catalogports.Service) CategoriesAPI {
	return CategoriesAPI{service: service}
}

// Post /api/categories
// Add a new category
func (api *CategoriesAPI) CreateCategory(c *gin.Context) {
	var payload cataloghttpmapper.MutationCategory
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	category, err := api.service.CreateCategory(c.Request.Context(), payload.Name, payload.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cataloghttpmapper.FromDomainCategory(category))
}

// Get /api/categories
// List all categories
func (api *CategoriesAPI) ListCategories(c *gin.Context) {
	categories, err := api.service.ListCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainCategories(categories))
}

// Get /api/categories/:categoryId
// Find category by ID
func (api *CategoriesAPI) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "categoryId")
	if !ok {
		return
	}
	category, err := api.service.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainCategory(category))
}

// Put /api/categories/:categoryId
// Update an existing category
func (api *CategoriesAPI) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "categoryId")
	if !ok {
		return
	}
	var payload cataloghttpmapper.MutationCategory
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	category, err := api.service.UpdateCategory(c.Request.Context(), id, payload.Name, payload.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainCategory(category))
}

// Delete /api/categories/:categoryId
// Remove a category
func (api *CategoriesAPI) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "categoryId")
	if !ok {
		return
	}
	if err := api.service.DeleteCategory(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
