package bookstoreserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cataloghttpmapper "github.com/bookworks/bookstore-api/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/bookworks/bookstore-api/internal/domains/catalog/ports"
)

// BooksAPI wires HTTP transport with the catalog bounded context service.
type BooksAPI struct {
	service catalogports.Service
}

// NewBooksAPI creates a BooksAPI backed by the provided service.
func NewBooksAPI(service catalogports.Service) BooksAPI {
	return BooksAPI{service: service}
}

// Post /api/books
// Add a new book to the catalog
func (api *BooksAPI) CreateBook(c *gin.Context) {
	var payload cataloghttpmapper.MutationBook
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	book, err := api.service.CreateBook(c.Request.Context(), cataloghttpmapper.ToBookMutation(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cataloghttpmapper.FromDomainBook(book))
}

// Get /api/books
// List the whole catalog
func (api *BooksAPI) ListBooks(c *gin.Context) {
	books, err := api.service.ListBooks(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainBooks(books))
}

// Get /api/books/:bookId
// Find book by ID
func (api *BooksAPI) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}
	book, err := api.service.GetBook(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainBook(book))
}

// Put /api/books/:bookId
// Update an existing book
func (api *BooksAPI) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}
	var payload cataloghttpmapper.MutationBook
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	book, err := api.service.UpdateBook(c.Request.Context(), id, cataloghttpmapper.ToBookMutation(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainBook(book))
}

// Delete /api/books/:bookId
// Remove a book from the catalog
func (api *BooksAPI) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}
	if err := api.service.DeleteBook(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /api/books/search?title=go
// Search the catalog by title fragment
func (api *BooksAPI) SearchBooks(c *gin.Context) {
	books, err := api.service.SearchBooks(c.Request.Context(), c.Query("title"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainBooks(books))
}

// Get /api/books/author/:authorId
// List books written by one author
func (api *BooksAPI) ListBooksByAuthor(c *gin.Context) {
	authorID, ok := parseIDParam(c, "authorId")
	if !ok {
		return
	}
	books, err := api.service.ListBooksByAuthor(c.Request.Context(), authorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainBooks(books))
}

// Get /api/books/category/:categoryId
// List books shelved under one category
func (api *BooksAPI) ListBooksByCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "categoryId")
	if !ok {
		return
	}
	books, err := api.service.ListBooksByCategory(c.Request.Context(), categoryID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainBooks(books))
}

// Get /api/books/available
// List books with stock on hand
func (api *BooksAPI) ListAvailableBooks(c *gin.Context) {
	books, err := api.service.ListAvailableBooks(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainBooks(books))
}
