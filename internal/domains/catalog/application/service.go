package application

import (
	"context"

	"github.com/bookworks/bookstore-api/internal/domains/catalog/domain"
	"github.com/bookworks/bookstore-api/internal/domains/catalog/ports"
)

// Service orchestrates catalog use cases.
type Service struct {
	books      ports.BookRepository
	authors    ports.AuthorRepository
	categories ports.CategoryRepository
}

func NewService(books ports.BookRepository, authors ports.AuthorRepository, categories ports.CategoryRepository) *Service {
	return &Service{books: books, authors: authors, categories: categories}
}

// CreateBook validates the referenced author and categories before persisting.
func (s *Service) CreateBook(ctx context.Context, input ports.BookMutation) (*domain.Book, error) {
	if input.Title == nil {
		return nil, mapError(domain.ErrEmptyTitle)
	}
	if input.AuthorID == nil {
		return nil, mapError(domain.ErrInvalidAuthor)
	}
	price := zeroIfNilDecimal(input.Price)
	stock := zeroIfNilInt(input.Stock)
	book, err := domain.NewBook(*input.Title, price, stock, *input.AuthorID)
	if err != nil {
		return nil, mapError(err)
	}
	applyOptional(book, input)
	if err := s.resolveRefs(ctx, book); err != nil {
		return nil, err
	}
	return s.books.Save(ctx, book)
}

// UpdateBook applies a partial mutation to an existing book.
func (s *Service) UpdateBook(ctx context.Context, id int64, input ports.BookMutation) (*domain.Book, error) {
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		if err := book.Rename(*input.Title); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Price != nil {
		if err := book.Reprice(*input.Price); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Stock != nil {
		if err := book.Restock(*input.Stock); err != nil {
			return nil, mapError(err)
		}
	}
	if input.AuthorID != nil {
		book.AuthorID = *input.AuthorID
	}
	applyOptional(book, input)
	if err := s.resolveRefs(ctx, book); err != nil {
		return nil, err
	}
	return s.books.Save(ctx, book)
}

func (s *Service) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	return s.books.GetByID(ctx, id)
}

func (s *Service) DeleteBook(ctx context.Context, id int64) error {
	return s.books.Delete(ctx, id)
}

func (s *Service) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	return s.books.List(ctx)
}

func (s *Service) SearchBooks(ctx context.Context, title string) ([]*domain.Book, error) {
	return s.books.SearchByTitle(ctx, title)
}

func (s *Service) ListBooksByAuthor(ctx context.Context, authorID int64) ([]*domain.Book, error) {
	return s.books.ListByAuthor(ctx, authorID)
}

func (s *Service) ListBooksByCategory(ctx context.Context, categoryID int64) ([]*domain.Book, error) {
	return s.books.ListByCategory(ctx, categoryID)
}

func (s *Service) ListAvailableBooks(ctx context.Context) ([]*domain.Book, error) {
	return s.books.ListInStock(ctx)
}

func (s *Service) CreateAuthor(ctx context.Context, name, biography string) (*domain.Author, error) {
	author, err := domain.NewAuthor(name, biography)
	if err != nil {
		return nil, mapError(err)
	}
	return s.authors.Save(ctx, author)
}

func (s *Service) UpdateAuthor(ctx context.Context, id int64, name, biography string) (*domain.Author, error) {
	author, err := s.authors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := domain.NewAuthor(name, biography)
	if err != nil {
		return nil, mapError(err)
	}
	updated.ID = author.ID
	return s.authors.Save(ctx, updated)
}

func (s *Service) GetAuthor(ctx context.Context, id int64) (*domain.Author, error) {
	return s.authors.GetByID(ctx, id)
}

func (s *Service) DeleteAuthor(ctx context.Context, id int64) error {
	return s.authors.Delete(ctx, id)
}

func (s *Service) ListAuthors(ctx context.Context) ([]*domain.Author, error) {
	return s.authors.List(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, name, description string) (*domain.Category, error) {
	category, err := domain.NewCategory(name, description)
	if err != nil {
		return nil, mapError(err)
	}
	return s.categories.Save(ctx, category)
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, name, description string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := domain.NewCategory(name, description)
	if err != nil {
		return nil, mapError(err)
	}
	updated.ID = category.ID
	return s.categories.Save(ctx, updated)
}

func (s *Service) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	return s.categories.Delete(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

// resolveRefs verifies the author and every category exist and denormalizes
// the author name for read models.
func (s *Service) resolveRefs(ctx context.Context, book *domain.Book) error {
	author, err := s.authors.GetByID(ctx, book.AuthorID)
	if err != nil {
		return err
	}
	book.AuthorName = author.Name
	for _, categoryID := range book.CategoryIDs {
		if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
			return err
		}
	}
	return nil
}

func applyOptional(book *domain.Book, input ports.BookMutation) {
	if input.Description != nil {
		book.Description = *input.Description
	}
	if input.ISBN != nil {
		book.ISBN = *input.ISBN
	}
	if input.PublicationDate != nil {
		book.PublicationDate = input.PublicationDate
	}
	if input.ImageURL != nil {
		book.ImageURL = *input.ImageURL
	}
	if input.CategoryIDs != nil {
		book.CategoryIDs = append([]int64(nil), (*input.CategoryIDs)...)
	}
}

var _ ports.Service = (*Service)(nil)
