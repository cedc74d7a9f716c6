package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookworks/bookstore-api/internal/domains/catalog/domain"
)

// BookMutation carries optional fields for create and partial update.
type BookMutation struct {
	Title           *string
	Description     *string
	ISBN            *string
	Price           *decimal.Decimal
	Stock           *int
	PublicationDate *time.Time
	ImageURL        *string
	AuthorID        *int64
	CategoryIDs     *[]int64
}

// Service exposes catalog use cases to adapters.
type Service interface {
	CreateBook(ctx context.Context, input BookMutation) (*domain.Book, error)
	UpdateBook(ctx context.Context, id int64, input BookMutation) (*domain.Book, error)
	GetBook(ctx context.Context, id int64) (*domain.Book, error)
	DeleteBook(ctx context.Context, id int64) error
	ListBooks(ctx context.Context) ([]*domain.Book, error)
	SearchBooks(ctx context.Context, title string) ([]*domain.Book, error)
	ListBooksByAuthor(ctx context.Context, authorID int64) ([]*domain.Book, error)
	ListBooksByCategory(ctx context.Context, categoryID int64) ([]*domain.Book, error)
	ListAvailableBooks(ctx context.Context) ([]*domain.Book, error)

	CreateAuthor(ctx context.Context, name, biography string) (*domain.Author, error)
	UpdateAuthor(ctx context.Context, id int64, name, biography string) (*domain.Author, error)
	GetAuthor(ctx context.Context, id int64) (*domain.Author, error)
	DeleteAuthor(ctx context.Context, id int64) error
	ListAuthors(ctx context.Context) ([]*domain.Author, error)

	CreateCategory(ctx context.Context, name, description string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id int64, name, description string) (*domain.Category, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}
