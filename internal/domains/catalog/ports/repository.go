package ports

import (
	"context"
	"errors"

	"github.com/bookworks/bookstore-api/internal/domains/catalog/domain"
)

var (
	ErrBookNotFound     = errors.New("book not found")
	ErrAuthorNotFound   = errors.New("author not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// BookRepository persists catalog entries.
type BookRepository interface {
	Save(ctx context.Context, book *domain.Book) (*domain.Book, error)
	GetByID(ctx context.Context, id int64) (*domain.Book, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Book, error)
	SearchByTitle(ctx context.Context, title string) ([]*domain.Book, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]*domain.Book, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*domain.Book, error)
	ListInStock(ctx context.Context) ([]*domain.Book, error)
}

// AuthorRepository persists authors.
type AuthorRepository interface {
	Save(ctx context.Context, author *domain.Author) (*domain.Author, error)
	GetByID(ctx context.Context, id int64) (*domain.Author, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Author, error)
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	Save(ctx context.Context, category *domain.Category) (*domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Category, error)
}
