package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bookworks/bookstore-api/internal/domains/catalog/adapters/memory"
	"github.com/bookworks/bookstore-api/internal/domains/catalog/domain"
	"github.com/bookworks/bookstore-api/internal/domains/catalog/ports"
)

func newCatalog(t *testing.T) (*Service, *domain.Author, *domain.Category) {
	t.Helper()
	svc := NewService(memory.NewBookRepository(), memory.NewAuthorRepository(), memory.NewCategoryRepository())
	author, err := svc.CreateAuthor(context.Background(), "Donovan", "Co-author of the Go book")
	require.NoError(t, err)
	category, err := svc.CreateCategory(context.Background(), "Programming", "Software development")
	require.NoError(t, err)
	return svc, author, category
}

func strPtr(s string) *string                   { return &s }
func intPtr(i int) *int                         { return &i }
func int64Ptr(i int64) *int64                   { return &i }
func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }
func idsPtr(ids ...int64) *[]int64              { return &ids }

func TestCreateBook_ResolvesReferences(t *testing.T) {
	svc, author, category := newCatalog(t)

	book, err := svc.CreateBook(context.Background(), ports.BookMutation{
		Title:       strPtr("The Go Programming Language"),
		Price:       decPtr(decimal.RequireFromString("39.99")),
		Stock:       intPtr(12),
		AuthorID:    int64Ptr(author.ID),
		CategoryIDs: idsPtr(category.ID),
	})
	require.NoError(t, err)
	require.NotZero(t, book.ID)
	require.Equal(t, author.Name, book.AuthorName)
	require.Equal(t, []int64{category.ID}, book.CategoryIDs)
	require.True(t, book.InStock())
}

func TestCreateBook_UnknownReferences(t *testing.T) {
	svc, author, _ := newCatalog(t)

	_, err := svc.CreateBook(context.Background(), ports.BookMutation{
		Title:    strPtr("Ghost"),
		AuthorID: int64Ptr(404),
	})
	require.ErrorIs(t, err, ports.ErrAuthorNotFound)

	_, err = svc.CreateBook(context.Background(), ports.BookMutation{
		Title:       strPtr("Ghost"),
		AuthorID:    int64Ptr(author.ID),
		CategoryIDs: idsPtr(404),
	})
	require.ErrorIs(t, err, ports.ErrCategoryNotFound)
}

func TestCreateBook_Validation(t *testing.T) {
	svc, author, _ := newCatalog(t)

	_, err := svc.CreateBook(context.Background(), ports.BookMutation{AuthorID: int64Ptr(author.ID)})
	require.ErrorIs(t, err, domain.ErrEmptyTitle)

	_, err = svc.CreateBook(context.Background(), ports.BookMutation{
		Title:    strPtr("Bad"),
		Price:    decPtr(decimal.RequireFromString("-1.00")),
		AuthorID: int64Ptr(author.ID),
	})
	require.ErrorIs(t, err, domain.ErrNegativePrice)

	_, err = svc.CreateBook(context.Background(), ports.BookMutation{
		Title:    strPtr("Bad"),
		Stock:    intPtr(-1),
		AuthorID: int64Ptr(author.ID),
	})
	require.ErrorIs(t, err, domain.ErrNegativeStock)
}

func TestUpdateBook_Partial(t *testing.T) {
	svc, author, _ := newCatalog(t)
	book, err := svc.CreateBook(context.Background(), ports.BookMutation{
		Title:    strPtr("Draft Title"),
		Price:    decPtr(decimal.RequireFromString("10.00")),
		Stock:    intPtr(3),
		AuthorID: int64Ptr(author.ID),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateBook(context.Background(), book.ID, ports.BookMutation{
		Title: strPtr("Final Title"),
		Stock: intPtr(0),
	})
	require.NoError(t, err)
	require.Equal(t, "Final Title", updated.Title)
	require.False(t, updated.InStock())
	require.True(t, updated.Price.Equal(decimal.RequireFromString("10.00")))
}

func TestBookQueries(t *testing.T) {
	svc, author, category := newCatalog(t)
	other, err := svc.CreateAuthor(context.Background(), "Kernighan", "")
	require.NoError(t, err)

	_, err = svc.CreateBook(context.Background(), ports.BookMutation{
		Title: strPtr("Learning Go"), Stock: intPtr(4), AuthorID: int64Ptr(author.ID),
		CategoryIDs: idsPtr(category.ID),
	})
	require.NoError(t, err)
	_, err = svc.CreateBook(context.Background(), ports.BookMutation{
		Title: strPtr("The Practice of Programming"), Stock: intPtr(0), AuthorID: int64Ptr(other.ID),
	})
	require.NoError(t, err)

	found, err := svc.SearchBooks(context.Background(), "go")
	require.NoError(t, err)
	require.Len(t, found, 1)

	byAuthor, err := svc.ListBooksByAuthor(context.Background(), other.ID)
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)

	byCategory, err := svc.ListBooksByCategory(context.Background(), category.ID)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)

	available, err := svc.ListAvailableBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, available, 1)
	require.Equal(t, "Learning Go", available[0].Title)
}

func TestAuthorAndCategoryCRUD(t *testing.T) {
	svc, author, category := newCatalog(t)

	renamed, err := svc.UpdateAuthor(context.Background(), author.ID, "Alan Donovan", "Go team")
	require.NoError(t, err)
	require.Equal(t, "Alan Donovan", renamed.Name)

	_, err = svc.UpdateCategory(context.Background(), category.ID, "Systems", "Low-level")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(context.Background(), category.ID))
	_, err = svc.GetCategory(context.Background(), category.ID)
	require.ErrorIs(t, err, ports.ErrCategoryNotFound)

	_, err = svc.CreateAuthor(context.Background(), "  ", "")
	require.ErrorIs(t, err, domain.ErrEmptyAuthorName)
}
