package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bookworks/bookstore-api/internal/domains/catalog/domain"
	"github.com/bookworks/bookstore-api/internal/domains/catalog/ports"
)

var (
	_ ports.BookRepository     = (*BookRepository)(nil)
	_ ports.AuthorRepository   = (*AuthorRepository)(nil)
	_ ports.CategoryRepository = (*CategoryRepository)(nil)
)

// BookRepository is an in-memory catalog persistence adapter.
type BookRepository struct {
	mu     sync.RWMutex
	books  map[int64]*domain.Book
	nextID int64
}

func NewBookRepository() *BookRepository {
	return &BookRepository{books: map[int64]*domain.Book{}}
}

func (r *BookRepository) Save(_ context.Context, book *domain.Book) (*domain.Book, error) {
	if book == nil {
		return nil, errors.New("book is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := cloneBook(book)
	now := time.Now()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now
	r.books[clone.ID] = clone
	return cloneBook(clone), nil
}

func (r *BookRepository) GetByID(_ context.Context, id int64) (*domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	book, ok := r.books[id]
	if !ok {
		return nil, ports.ErrBookNotFound
	}
	return cloneBook(book), nil
}

func (r *BookRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return ports.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *BookRepository) List(_ context.Context) ([]*domain.Book, error) {
	return r.filter(func(*domain.Book) bool { return true }), nil
}

func (r *BookRepository) SearchByTitle(_ context.Context, title string) ([]*domain.Book, error) {
	needle := strings.ToLower(strings.TrimSpace(title))
	return r.filter(func(b *domain.Book) bool {
		return strings.Contains(strings.ToLower(b.Title), needle)
	}), nil
}

func (r *BookRepository) ListByAuthor(_ context.Context, authorID int64) ([]*domain.Book, error) {
	return r.filter(func(b *domain.Book) bool { return b.AuthorID == authorID }), nil
}

func (r *BookRepository) ListByCategory(_ context.Context, categoryID int64) ([]*domain.Book, error) {
	return r.filter(func(b *domain.Book) bool {
		for _, id := range b.CategoryIDs {
			if id == categoryID {
				return true
			}
		}
		return false
	}), nil
}

func (r *BookRepository) ListInStock(_ context.Context) ([]*domain.Book, error) {
	return r.filter(func(b *domain.Book) bool { return b.InStock() }), nil
}

func (r *BookRepository) filter(keep func(*domain.Book) bool) []*domain.Book {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.Book, 0, len(r.books))
	for _, book := range r.books {
		if keep(book) {
			result = append(result, cloneBook(book))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func cloneBook(book *domain.Book) *domain.Book {
	clone := *book
	clone.CategoryIDs = append([]int64(nil), book.CategoryIDs...)
	return &clone
}

// AuthorRepository is an in-memory author persistence adapter.
type AuthorRepository struct {
	mu      sync.RWMutex
	authors map[int64]*domain.Author
	nextID  int64
}

func NewAuthorRepository() *AuthorRepository {
	return &AuthorRepository{authors: map[int64]*domain.Author{}}
}

func (r *AuthorRepository) Save(_ context.Context, author *domain.Author) (*domain.Author, error) {
	if author == nil {
		return nil, errors.New("author is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *author
	now := time.Now()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now
	r.authors[clone.ID] = &clone
	copied := clone
	return &copied, nil
}

func (r *AuthorRepository) GetByID(_ context.Context, id int64) (*domain.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	author, ok := r.authors[id]
	if !ok {
		return nil, ports.ErrAuthorNotFound
	}
	clone := *author
	return &clone, nil
}

func (r *AuthorRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.authors[id]; !ok {
		return ports.ErrAuthorNotFound
	}
	delete(r.authors, id)
	return nil
}

func (r *AuthorRepository) List(_ context.Context) ([]*domain.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.Author, 0, len(r.authors))
	for _, author := range r.authors {
		clone := *author
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// CategoryRepository is an in-memory category persistence adapter.
type CategoryRepository struct {
	mu         sync.RWMutex
	categories map[int64]*domain.Category
	nextID     int64
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: map[int64]*domain.Category{}}
}

func (r *CategoryRepository) Save(_ context.Context, category *domain.Category) (*domain.Category, error) {
	if category == nil {
		return nil, errors.New("category is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *category
	now := time.Now()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now
	r.categories[clone.ID] = &clone
	copied := clone
	return &copied, nil
}

func (r *CategoryRepository) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	category, ok := r.categories[id]
	if !ok {
		return nil, ports.ErrCategoryNotFound
	}
	clone := *category
	return &clone, nil
}

func (r *CategoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return ports.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *CategoryRepository) List(_ context.Context) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.Category, 0, len(r.categories))
	for _, category := range r.categories {
		clone := *category
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
