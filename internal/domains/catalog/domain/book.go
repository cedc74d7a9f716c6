package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyTitle    = errors.New("book title is required")
	ErrNegativePrice = errors.New("book price must not be negative")
	ErrNegativeStock = errors.New("book stock must not be negative")
	ErrInvalidAuthor = errors.New("author id must be greater than zero")
)

// Book is the catalog aggregate. Stock is mutated by the orders context under
// its own transaction; the catalog only sets it directly on create/update.
type Book struct {
	ID              int64
	Title           string
	Description     string
	ISBN            string
	Price           decimal.Decimal
	Stock           int
	PublicationDate *time.Time
	ImageURL        string
	AuthorID        int64
	AuthorName      string
	CategoryIDs     []int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBook validates and constructs a catalog entry.
func NewBook(title string, price decimal.Decimal, stock int, authorID int64) (*Book, error) {
	book := &Book{AuthorID: authorID}
	if err := book.Rename(title); err != nil {
		return nil, err
	}
	if err := book.Reprice(price); err != nil {
		return nil, err
	}
	if err := book.Restock(stock); err != nil {
		return nil, err
	}
	if authorID <= 0 {
		return nil, ErrInvalidAuthor
	}
	return book, nil
}

// Rename trims and validates the title.
func (b *Book) Rename(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	b.Title = title
	return nil
}

// Reprice sets the unit price. Existing order lines keep their snapshots.
func (b *Book) Reprice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrNegativePrice
	}
	b.Price = price
	return nil
}

// Restock sets the absolute stock level.
func (b *Book) Restock(stock int) error {
	if stock < 0 {
		return ErrNegativeStock
	}
	b.Stock = stock
	return nil
}

// InStock reports whether at least one copy is available.
func (b *Book) InStock() bool {
	return b.Stock > 0
}
