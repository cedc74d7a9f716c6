package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/bookworks/bookstore-api/internal/domains/orders/domain"
)

var (
	ErrNotFound     = errors.New("order not found")
	ErrBookNotFound = errors.New("book not found")
	ErrUserNotFound = errors.New("user not found")
)

// BookRef is the slice of the catalog the orders context reads and mutates:
// price for the snapshot, stock for the reservation.
type BookRef struct {
	ID    int64
	Title string
	Price decimal.Decimal
	Stock int
}

// Buyer is the user projection needed to attribute an order.
type Buyer struct {
	ID       int64
	Username string
}

// Repository persists order aggregates together with their items.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
}

// BookCatalog exposes the book lookups and stock writes the inventory ledger
// needs. LockByID must serialize concurrent callers on the same book for the
// remainder of the surrounding transaction so stock cannot be oversubscribed.
type BookCatalog interface {
	LockByID(ctx context.Context, id int64) (*BookRef, error)
	SaveStock(ctx context.Context, id int64, stock int) error
}

// UserDirectory resolves order owners.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*Buyer, error)
}

// Transactor runs fn inside one atomic storage transaction. Any error returned
// by fn aborts every write made within it, including stock mutations.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
