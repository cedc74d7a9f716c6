package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/bookworks/bookstore-api/internal/domains/catalog/domain"
	catalogports "github.com/bookworks/bookstore-api/internal/domains/catalog/ports"
)

// MutationBook carries optional transport fields for create and partial update.
type MutationBook struct {
	Title           *string          `json:"title"`
	Description     *string          `json:"description"`
	ISBN            *string          `json:"isbn"`
	Price           *decimal.Decimal `json:"price"`
	Stock           *int             `json:"stock"`
	PublicationDate *time.Time       `json:"publicationDate"`
	ImageURL        *string          `json:"imageUrl"`
	AuthorID        *int64           `json:"authorId"`
	CategoryIDs     *[]int64         `json:"categoryIds"`
}

// Book is the transport shape of a catalog entry.
type Book struct {
	ID              int64           `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	ISBN            string          `json:"isbn"`
	Price           decimal.Decimal `json:"price"`
	Stock           int             `json:"stock"`
	PublicationDate *time.Time      `json:"publicationDate,omitempty"`
	ImageURL        string          `json:"imageUrl"`
	AuthorID        int64           `json:"authorId"`
	AuthorName      string          `json:"authorName"`
	CategoryIDs     []int64         `json:"categoryIds"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Author is the transport shape of an author.
type Author struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Biography string    `json:"biography"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MutationAuthor carries the writable author fields.
type MutationAuthor struct {
	Name      string `json:"name"`
	Biography string `json:"biography"`
}

// Category is the transport shape of a category.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MutationCategory carries the writable category fields.
type MutationCategory struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ToBookMutation converts the transport payload into the service input.
func ToBookMutation(payload MutationBook) catalogports.BookMutation {
	return catalogports.BookMutation{
		Title:           payload.Title,
		Description:     payload.Description,
		ISBN:            payload.ISBN,
		Price:           payload.Price,
		Stock:           payload.Stock,
		PublicationDate: payload.PublicationDate,
		ImageURL:        payload.ImageURL,
		AuthorID:        payload.AuthorID,
		CategoryIDs:     payload.CategoryIDs,
	}
}

// FromDomainBook converts a domain book to the transport representation.
func FromDomainBook(book *catalogdomain.Book) Book {
	if book == nil {
		return Book{}
	}
	result := Book{
		ID:          book.ID,
		Title:       book.Title,
		Description: book.Description,
		ISBN:        book.ISBN,
		Price:       book.Price,
		Stock:       book.Stock,
		ImageURL:    book.ImageURL,
		AuthorID:    book.AuthorID,
		AuthorName:  book.AuthorName,
		CreatedAt:   book.CreatedAt,
		UpdatedAt:   book.UpdatedAt,
	}
	if book.PublicationDate != nil {
		date := *book.PublicationDate
		result.PublicationDate = &date
	}
	if len(book.CategoryIDs) > 0 {
		result.CategoryIDs = append([]int64{}, book.CategoryIDs...)
	}
	return result
}

// FromDomainBooks converts a slice of domain books to transport representation.
func FromDomainBooks(books []*catalogdomain.Book) []Book {
	result := make([]Book, 0, len(books))
	for _, book := range books {
		result = append(result, FromDomainBook(book))
	}
	return result
}

// FromDomainAuthor converts a domain author to the transport representation.
func FromDomainAuthor(author *catalogdomain.Author) Author {
	if author == nil {
		return Author{}
	}
	return Author{
		ID:        author.ID,
		Name:      author.Name,
		Biography: author.Biography,
		CreatedAt: author.CreatedAt,
		UpdatedAt: author.UpdatedAt,
	}
}

// FromDomainAuthors converts a slice of domain authors to transport representation.
func FromDomainAuthors(authors []*catalogdomain.Author) []Author {
	result := make([]Author, 0, len(authors))
	for _, author := range authors {
		result = append(result, FromDomainAuthor(author))
	}
	return result
}

// FromDomainCategory converts a domain category to the transport representation.
func FromDomainCategory(category *catalogdomain.Category) Category {
	if category == nil {
		return Category{}
	}
	return Category{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

// FromDomainCategories converts a slice of domain categories to transport representation.
func FromDomainCategories(categories []*catalogdomain.Category) []Category {
	result := make([]Category, 0, len(categories))
	for _, category := range categories {
		result = append(result, FromDomainCategory(category))
	}
	return result
}
