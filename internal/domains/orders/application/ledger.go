package application

import (
	"context"

	"github.com/bookworks/bookstore-api/internal/domains/orders/domain"
	"github.com/bookworks/bookstore-api/internal/domains/orders/ports"
)

// Ledger performs stock reservation and release against the catalog. Callers
// own the transaction; the locked read keeps concurrent reservations on the
// same book serialized until it commits or aborts.
type Ledger struct {
	books ports.BookCatalog
}

// NewLedger wires the ledger to its catalog collaborator.
func NewLedger(books ports.BookCatalog) *Ledger {
	return &Ledger{books: books}
}

// Reserve decrements the book's stock by quantity, failing without any write
// when stock is short. The returned BookRef carries the price and title read
// under the same lock, so line snapshots and the reservation agree.
func (l *Ledger) Reserve(ctx context.Context, bookID int64, quantity int) (*ports.BookRef, error) {
	book, err := l.books.LockByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book.Stock < quantity {
		return nil, &domain.InsufficientStockError{BookID: bookID, Requested: quantity, Available: book.Stock}
	}
	book.Stock -= quantity
	if err := l.books.SaveStock(ctx, bookID, book.Stock); err != nil {
		return nil, err
	}
	return book, nil
}

// Release adds quantity back to the book's stock. Used by cancellation only;
// the quantity was validated when it was reserved.
func (l *Ledger) Release(ctx context.Context, bookID int64, quantity int) error {
	book, err := l.books.LockByID(ctx, bookID)
	if err != nil {
		return err
	}
	return l.books.SaveStock(ctx, bookID, book.Stock+quantity)
}
