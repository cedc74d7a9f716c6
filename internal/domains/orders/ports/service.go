package ports

import (
	"context"

	"github.com/bookworks/bookstore-api/internal/domains/orders/domain"
)

// LineRequest asks for a quantity of one book.
type LineRequest struct {
	BookID   int64
	Quantity int
}

// CreateOrderInput carries the caller identity explicitly; order operations
// never read it from ambient state.
type CreateOrderInput struct {
	UserID          int64
	ShippingAddress string
	Items           []LineRequest
}

// Service exposes the order lifecycle use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) (*domain.Order, error)
	CancelOrder(ctx context.Context, id int64) (*domain.Order, error)
}
